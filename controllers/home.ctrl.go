package controllers

import (
	"net/http"

	"github.com/hyperforge/hyperforge.go/lib/service"
	"github.com/labstack/echo/v4"
)

// HomeController : HomeController struct
type HomeController struct {
	svc *service.ForgeService
}

func NewHomeController(svc *service.ForgeService) *HomeController {
	return &HomeController{svc: svc}
}

type HomeResponseBody struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Url         string `json:"url,omitempty"`
	Version     string `json:"version"`
}

// Home : Branding handler
func (controller *HomeController) Home(c echo.Context) error {
	return c.JSON(http.StatusOK, &HomeResponseBody{
		Title:       controller.svc.Config.BrandingTitle,
		Description: controller.svc.Config.BrandingDesc,
		Url:         controller.svc.Config.BrandingUrl,
		Version:     "v2",
	})
}
