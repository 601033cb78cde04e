package controllers

import (
	"net/http"

	"github.com/hyperforge/hyperforge.go/lib/responses"
	"github.com/hyperforge/hyperforge.go/lib/service"
	"github.com/labstack/echo/v4"
)

// GraphController : Graph controller struct
type GraphController struct {
	svc *service.ForgeService
}

func NewGraphController(svc *service.ForgeService) *GraphController {
	return &GraphController{svc: svc}
}

// GetGraph godoc
// @Summary      Relationship graph
// @Description  Links manifest entries through their drop, sell, yield and recipe references. References to unknown entries appear as nodes flagged missing.
// @Accept       json
// @Produce      json
// @Tags         Graph
// @Success      200  {object}  service.RelationshipGraph
// @Failure      502  {object}  responses.ErrorResponse
// @Router       /v2/graph [get]
// @Security     OAuth2Password
func (controller *GraphController) GetGraph(c echo.Context) error {
	graph, err := controller.svc.BuildRelationshipGraph(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("Failed to build relationship graph: %v", err)
		return c.JSON(http.StatusBadGateway, responses.ManifestUnavailableError)
	}
	return c.JSON(http.StatusOK, graph)
}
