package controller

import (
	"github.com/aakash/content-server/config"
	"github.com/aakash/content-server/infra"
	"github.com/aakash/content-server/service"
)

type Controller struct {
	Config  *config.Config
	Infra   *infra.Infra
	Service *service.Service
}

func NewController(cfg *config.Config, infra *infra.Infra, svc *service.Service) *Controller {
	return &Controller{
		Config:  cfg,
		Infra:   infra,
		Service: svc,
	}
}
