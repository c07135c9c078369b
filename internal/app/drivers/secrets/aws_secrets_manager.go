package secrets

import (
	"context"
	"fmt"
	"neohearts-service/internal/app/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/goccy/go-json"
)

type secretsManagerAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

type AWSSecretsManager struct {
	client secretsManagerAPI
}

func NewAWSSecretsManager(ctx context.Context, internalConfig *config.InternalConfig) (*AWSSecretsManager, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(internalConfig.AWS.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &AWSSecretsManager{client: secretsmanager.NewFromConfig(cfg)}, nil
}

// GetSecret returns the secret string. A JSON object secret with a "secret"
// key is unwrapped to that value.
func (s *AWSSecretsManager) GetSecret(ctx context.Context, name string) (string, error) {
	output, err := s.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(name),
	})
	if err != nil {
		return "", err
	}

	value := aws.ToString(output.SecretString)
	if value == "" {
		return "", fmt.Errorf("secret %s has no string value", name)
	}

	var wrapped struct {
		Secret string `json:"secret"`
	}
	if json.Unmarshal([]byte(value), &wrapped) == nil && wrapped.Secret != "" {
		return wrapped.Secret, nil
	}
	return value, nil
}
