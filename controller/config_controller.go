package controller

import (
	"context"
	"net/http"

	"stockplatform/config"
	"stockplatform/model"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog/log"
)

type ConfigController struct {
	cm *config.ConfigManager
}

func NewConfigController(cm *config.ConfigManager) *ConfigController {
	return &ConfigController{cm: cm}
}

func (ctrl *ConfigController) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-active-config",
		Method:      http.MethodGet,
		Path:        "/api/config/active",
		Summary:     "Get Active Configuration",
		Description: "Settings that can change without a restart",
		Tags:        []string{"Config"},
	}, ctrl.getActiveConfig)

	huma.Register(api, huma.Operation{
		OperationID: "reload-config",
		Method:      http.MethodPost,
		Path:        "/api/config/reload",
		Summary:     "Reload System Configuration",
		Description: "Re-reads the environment, same as sending SIGHUP",
		Tags:        []string{"Config"},
	}, ctrl.reloadConfig)
}

func (ctrl *ConfigController) getActiveConfig(ctx context.Context, input *struct{}) (*model.RuntimeConfigOutput, error) {
	return &model.RuntimeConfigOutput{Body: *ctrl.cm.GetConfig()}, nil
}

func (ctrl *ConfigController) reloadConfig(ctx context.Context, input *struct{}) (*model.DefaultResponse, error) {
	runtimeCfg, err := ctrl.cm.Reload()
	if err != nil {
		log.Error().Err(err).Msg("Config reload failed")
		return nil, huma.Error400BadRequest("Error Loading Configs: " + err.Error())
	}
	return NewResponse(runtimeCfg, "Configs Reloaded Successfully"), nil
}
