package controllers

import (
	"neohearts-service/internal/app/config"
	"neohearts-service/internal/pkg/constvars"
	"neohearts-service/internal/pkg/utils"
	"net/http"
)

type HealthController struct {
	InternalConfig *config.InternalConfig
}

func NewHealthController(internalConfig *config.InternalConfig) *HealthController {
	return &HealthController{InternalConfig: internalConfig}
}

func (ctrl *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.HealthOKMessage, map[string]string{
		"version": ctrl.InternalConfig.App.Version,
		"env":     ctrl.InternalConfig.App.Env,
	})
}
