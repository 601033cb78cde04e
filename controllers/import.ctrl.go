package controllers

import (
	"net/http"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/hyperforge/hyperforge.go/common"
	"github.com/hyperforge/hyperforge.go/gameserver"
	"github.com/hyperforge/hyperforge.go/lib/responses"
	"github.com/hyperforge/hyperforge.go/lib/service"
	"github.com/labstack/echo/v4"
)

// ImportController : Import controller struct
type ImportController struct {
	svc *service.ForgeService
}

func NewImportController(svc *service.ForgeService) *ImportController {
	return &ImportController{svc: svc}
}

type GetManifestsResponseBody struct {
	Manifests []gameserver.ManifestInfo `json:"manifests"`
}

type ImportSelectionBody struct {
	Manifest string   `json:"manifest" validate:"required"`
	EntryIDs []string `json:"entry_ids"`
}

type ImportRequestBody struct {
	Selections []ImportSelectionBody `json:"selections" validate:"required,min=1,dive"`
}

// GetManifests godoc
// @Summary      List manifests
// @Description  Returns the manifests available on the game server with their entry counts
// @Accept       json
// @Produce      json
// @Tags         Import
// @Success      200  {object}  GetManifestsResponseBody
// @Failure      502  {object}  responses.ErrorResponse
// @Router       /v2/manifests [get]
// @Security     OAuth2Password
func (controller *ImportController) GetManifests(c echo.Context) error {
	manifests, err := controller.svc.ListManifests(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("Failed to list manifests: %v", err)
		return c.JSON(http.StatusBadGateway, responses.ManifestUnavailableError)
	}
	return c.JSON(http.StatusOK, &GetManifestsResponseBody{Manifests: manifests})
}

// Import godoc
// @Summary      Import manifest entries
// @Description  Imports entries from game server manifests as cdn assets. Entries already imported are skipped.
// @Accept       json
// @Produce      json
// @Tags         Import
// @Param        import  body      ImportRequestBody  True  "Import"
// @Success      200     {object}  service.ImportSummary
// @Failure      400     {object}  responses.ErrorResponse
// @Failure      502     {object}  responses.ErrorResponse
// @Router       /v2/import [post]
// @Security     OAuth2Password
func (controller *ImportController) Import(c echo.Context) error {
	userId := c.Get("UserID").(int64)
	var body ImportRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load import request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	selections := make([]service.ImportSelection, len(body.Selections))
	for i, selection := range body.Selections {
		known := false
		for _, name := range common.Manifests {
			if name == selection.Manifest {
				known = true
			}
		}
		if !known {
			return c.JSON(http.StatusBadRequest, responses.UnknownManifestError)
		}
		selections[i] = service.ImportSelection{
			Manifest: selection.Manifest,
			EntryIDs: selection.EntryIDs,
		}
	}

	summary, err := controller.svc.ImportAssets(c.Request().Context(), userId, selections)
	if err != nil {
		c.Logger().Errorf("Import failed: user_id:%v error: %v", userId, err)
		if strings.Contains(err.Error(), "fetching manifest") {
			return c.JSON(http.StatusBadGateway, responses.ManifestUnavailableError)
		}
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}

	return c.JSON(http.StatusOK, summary)
}
