package responses

import "neohearts-service/internal/pkg/exceptions"

type ResponseDTO struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponseDTO is the error envelope. DevMessage and Location are only
// filled outside production.
type ErrorResponseDTO struct {
	StatusCode int                          `json:"status_code"`
	Success    bool                         `json:"success"`
	Message    string                       `json:"message"`
	DevMessage string                       `json:"dev_message,omitempty"`
	Location   *exceptions.Location         `json:"location,omitempty"`
	Failures   []exceptions.ResourceFailure `json:"failures,omitempty"`
}
