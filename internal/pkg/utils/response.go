package utils

import (
	"errors"
	"neohearts-service/internal/pkg/constvars"
	"neohearts-service/internal/pkg/dto/responses"
	"neohearts-service/internal/pkg/exceptions"
	"net/http"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

func BuildSuccessResponse(w http.ResponseWriter, code int, message string, data interface{}) {
	response := responses.ResponseDTO{
		Success: true,
		Message: message,
		Data:    data,
	}
	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(response)
}

// BuildErrorResponse renders err for the client. An upstream FHIR error is
// relayed with the store's own status and body. A partial update is always
// rendered as the aggregate, even when it wraps upstream errors.
func BuildErrorResponse(log *zap.Logger, w http.ResponseWriter, err error) {
	var partialErr *exceptions.PartialUpdateError
	var upstreamErr *exceptions.UpstreamError
	isPartial := errors.As(err, &partialErr)
	if !isPartial && errors.As(err, &upstreamErr) && len(upstreamErr.Body) > 0 {
		log.Error(upstreamErr.Error(),
			zap.Int(constvars.LoggingStatusCodeKey, upstreamErr.StatusCode),
			zap.String(constvars.LoggingResourceTypeKey, upstreamErr.Resource),
		)
		contentType := upstreamErr.ContentType
		if contentType == "" {
			contentType = constvars.MIMEApplicationFHIRJSON
		}
		w.Header().Set(constvars.HeaderContentType, contentType)
		w.WriteHeader(upstreamErr.StatusCode)
		w.Write(upstreamErr.Body)
		return
	}

	response := responses.ErrorResponseDTO{
		StatusCode: constvars.StatusInternalServerError,
		Success:    false,
		Message:    constvars.ErrClientSomethingWrongWithApplication,
	}
	showDetails := GetEnvString("APP_ENV", constvars.AppEnvDevelopment) != constvars.AppEnvProduction

	var customErr *exceptions.CustomError
	switch {
	case isPartial:
		response.StatusCode = constvars.StatusBadGateway
		response.Message = constvars.ErrClientPartialUpdate
		response.Failures = partialErr.Failures
		log.Error(partialErr.Error(),
			zap.Int(constvars.LoggingFailureCountKey, len(partialErr.Failures)),
		)
		if showDetails {
			response.DevMessage = partialErr.Error()
		}

	case errors.As(err, &customErr):
		response.StatusCode = customErr.StatusCode
		response.Message = customErr.ClientMessage
		log.Error(customErr.DevMessage,
			zap.Any("location", customErr.Location),
		)
		if showDetails {
			location := customErr.Location
			response.DevMessage = customErr.DevMessage
			response.Location = &location
		}

	case upstreamErr != nil:
		response.StatusCode = upstreamErr.StatusCode
		response.Message = constvars.ErrClientUpstreamUnavailable
		log.Error(upstreamErr.Error())
		if showDetails {
			response.DevMessage = upstreamErr.Error()
		}

	default:
		log.Error(err.Error())
	}

	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	w.WriteHeader(response.StatusCode)
	json.NewEncoder(w).Encode(response)
}
