package controllers

import (
	"context"
	"neohearts-service/internal/app/contracts"
	"neohearts-service/internal/pkg/constvars"
	"neohearts-service/internal/pkg/dto/requests"
	"neohearts-service/internal/pkg/exceptions"
	"neohearts-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type OrganizationController struct {
	Log     *zap.Logger
	Usecase contracts.OrganizationUsecase
	Timeout time.Duration
}

func NewOrganizationController(logger *zap.Logger, uc contracts.OrganizationUsecase, timeout time.Duration) *OrganizationController {
	return &OrganizationController{
		Log:     logger,
		Usecase: uc,
		Timeout: timeout,
	}
}

func (ctrl *OrganizationController) CreateOrganization(w http.ResponseWriter, r *http.Request) {
	requestID, _ := requestIDFrom(r)

	request := new(requests.CreateOrganization)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		ctrl.Log.Error("OrganizationController.CreateOrganization error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	organization, err := ctrl.Usecase.CreateOrganization(ctx, request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.OrganizationCreatedMessage, organization)
}

func (ctrl *OrganizationController) ListOrganizations(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	organizations, err := ctrl.Usecase.ListOrganizations(ctx)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.OrganizationListMessage, organizations)
}

func (ctrl *OrganizationController) GetOrganization(w http.ResponseWriter, r *http.Request) {
	organizationID, err := urlParamID(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	organization, err := ctrl.Usecase.GetOrganization(ctx, organizationID)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.OrganizationGetMessage, organization)
}

func (ctrl *OrganizationController) UpdateOrganization(w http.ResponseWriter, r *http.Request) {
	requestID, _ := requestIDFrom(r)
	organizationID, err := urlParamID(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.UpdateOrganization)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		ctrl.Log.Error("OrganizationController.UpdateOrganization error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	organization, err := ctrl.Usecase.UpdateOrganizationName(ctx, organizationID, request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.OrganizationUpdatedMessage, organization)
}

func (ctrl *OrganizationController) DeleteOrganization(w http.ResponseWriter, r *http.Request) {
	organizationID, err := urlParamID(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	if err := ctrl.Usecase.DeleteOrganization(ctx, organizationID); err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.OrganizationDeletedMessage, nil)
}
