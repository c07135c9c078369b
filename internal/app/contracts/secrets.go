package contracts

import "context"

type SecretProvider interface {
	GetSecret(ctx context.Context, name string) (string, error)
}
