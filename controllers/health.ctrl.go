package controllers

import (
	"net/http"

	"github.com/hyperforge/hyperforge.go/lib/responses"
	"github.com/hyperforge/hyperforge.go/lib/service"
	"github.com/labstack/echo/v4"
)

type HealthController struct {
	svc *service.ForgeService
}

func NewHealthController(svc *service.ForgeService) *HealthController {
	return &HealthController{svc: svc}
}

type HealthResponse struct {
	Result   string            `json:"result"`
	Database string            `json:"database"`
	Clients  map[string]string `json:"clients"`
}

// Health godoc
// @Summary      Check system health
// @Description  Pings the database and reports how the external clients are configured
// @Accept       json
// @Produce      json
// @Tags         Account
// @Success      200  {object}  HealthResponse
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /healthz [get]
func (controller *HealthController) Check(c echo.Context) error {
	if err := controller.svc.DB.PingContext(c.Request().Context()); err != nil {
		c.Logger().Errorf("Health check database ping failed: %v", err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}

	return c.JSON(http.StatusOK, &HealthResponse{
		Result:   "OK",
		Database: "ok",
		Clients: map[string]string{
			"mesh_provider": controller.svc.MeshConfig.APIURL,
			"manifests":     controller.svc.ManifestClient.Mode(),
		},
	})
}
