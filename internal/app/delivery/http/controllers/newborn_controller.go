package controllers

import (
	"context"
	"neohearts-service/internal/app/contracts"
	"neohearts-service/internal/pkg/constvars"
	"neohearts-service/internal/pkg/dto/responses"
	"neohearts-service/internal/pkg/exceptions"
	"neohearts-service/internal/pkg/screening"
	"neohearts-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type NewbornController struct {
	Log            *zap.Logger
	NewbornUsecase contracts.NewbornUsecase
	Timeout        time.Duration
}

func NewNewbornController(logger *zap.Logger, newbornUsecase contracts.NewbornUsecase, timeout time.Duration) *NewbornController {
	return &NewbornController{
		Log:            logger,
		NewbornUsecase: newbornUsecase,
		Timeout:        timeout,
	}
}

func (ctrl *NewbornController) decodeRecord(w http.ResponseWriter, r *http.Request, requestID, method string) (*screening.Record, bool) {
	record := new(screening.Record)
	if err := json.NewDecoder(r.Body).Decode(record); err != nil {
		ctrl.Log.Error("NewbornController."+method+" error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return nil, false
	}
	return record, true
}

func (ctrl *NewbornController) CreateNewborn(w http.ResponseWriter, r *http.Request) {
	requestID, _ := requestIDFrom(r)
	ctrl.Log.Info("NewbornController.CreateNewborn called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	record, ok := ctrl.decodeRecord(w, r, requestID, "CreateNewborn")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	output, err := ctrl.NewbornUsecase.CreateNewborn(ctx, record)
	if err != nil {
		ctrl.Log.Error("NewbornController.CreateNewborn error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("NewbornController.CreateNewborn succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, output.PatientID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.NewbornCreatedMessage, responses.CreateNewborn{PatientID: output.PatientID})
}

func (ctrl *NewbornController) ListNewborns(w http.ResponseWriter, r *http.Request) {
	requestID, _ := requestIDFrom(r)
	ctrl.Log.Info("NewbornController.ListNewborns called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	result, err := ctrl.NewbornUsecase.ListNewborns(ctx)
	if err != nil {
		ctrl.Log.Error("NewbornController.ListNewborns error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.NewbornListSuccessMessage, result)
}

func (ctrl *NewbornController) GetNewborn(w http.ResponseWriter, r *http.Request) {
	requestID, _ := requestIDFrom(r)
	patientID, err := urlParamID(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	ctrl.Log.Info("NewbornController.GetNewborn called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	record, err := ctrl.NewbornUsecase.GetNewborn(ctx, patientID)
	if err != nil {
		ctrl.Log.Error("NewbornController.GetNewborn error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.NewbornGetSuccessMessage, record)
}

func (ctrl *NewbornController) UpdateNewborn(w http.ResponseWriter, r *http.Request) {
	requestID, _ := requestIDFrom(r)
	patientID, err := urlParamID(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	ctrl.Log.Info("NewbornController.UpdateNewborn called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	record, ok := ctrl.decodeRecord(w, r, requestID, "UpdateNewborn")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	if err := ctrl.NewbornUsecase.UpdateNewborn(ctx, patientID, record); err != nil {
		ctrl.Log.Error("NewbornController.UpdateNewborn error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.NewbornUpdatedMessage, nil)
}

func (ctrl *NewbornController) DeleteNewborn(w http.ResponseWriter, r *http.Request) {
	requestID, _ := requestIDFrom(r)
	patientID, err := urlParamID(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	ctrl.Log.Info("NewbornController.DeleteNewborn called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	if err := ctrl.NewbornUsecase.DeleteNewborn(ctx, patientID); err != nil {
		ctrl.Log.Error("NewbornController.DeleteNewborn error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.NewbornDeletedMessage, nil)
}

// BuildBundle returns the transaction bundle for a record without sending
// it to the store.
func (ctrl *NewbornController) BuildBundle(w http.ResponseWriter, r *http.Request) {
	requestID, _ := requestIDFrom(r)

	record, ok := ctrl.decodeRecord(w, r, requestID, "BuildBundle")
	if !ok {
		return
	}

	bundle, err := ctrl.NewbornUsecase.BuildBundle(r.Context(), record)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.NewbornBundleBuiltMessage, bundle)
}
