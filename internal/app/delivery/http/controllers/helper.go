package controllers

import (
	"context"
	"errors"
	"neohearts-service/internal/pkg/constvars"
	"neohearts-service/internal/pkg/exceptions"
	"neohearts-service/internal/pkg/utils"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// writeUsecaseError maps a usecase failure to a response. A deadline hit
// anywhere below the controller becomes a 504 unless it is one failure of
// a partial update.
func writeUsecaseError(log *zap.Logger, w http.ResponseWriter, err error) {
	var partialErr *exceptions.PartialUpdateError
	if !errors.As(err, &partialErr) && errors.Is(err, context.DeadlineExceeded) {
		utils.BuildErrorResponse(log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(log, w, err)
}

func requestIDFrom(r *http.Request) (string, bool) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	return requestID, ok && requestID != ""
}

func urlParamID(r *http.Request) (string, error) {
	id := strings.TrimSpace(chi.URLParam(r, constvars.URLParamID))
	if id == "" {
		return "", exceptions.ErrURLParamIDValidation(errors.New("empty id"), constvars.URLParamID)
	}
	return id, nil
}
