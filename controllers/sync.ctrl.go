package controllers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/hyperforge/hyperforge.go/common"
	"github.com/hyperforge/hyperforge.go/db/models"
	"github.com/hyperforge/hyperforge.go/lib/responses"
	"github.com/hyperforge/hyperforge.go/lib/service"
	"github.com/labstack/echo/v4"
)

// ExportController : Export controller struct
type ExportController struct {
	svc *service.ForgeService
}

func NewExportController(svc *service.ForgeService) *ExportController {
	return &ExportController{svc: svc}
}

type ExportRecord struct {
	ID           int64      `json:"id"`
	Manifest     string     `json:"manifest"`
	Destination  string     `json:"destination,omitempty"`
	AssetCount   int        `json:"asset_count"`
	AssetIDs     []string   `json:"asset_ids,omitempty"`
	State        string     `json:"state"`
	ErrorMessage string     `json:"error_message,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	FinishedAt   *time.Time `json:"finished_at,omitempty"`
}

type SyncResponseBody struct {
	Results []service.SyncResult `json:"results"`
}

type ExportRequestBody struct {
	Manifest string   `json:"manifest" validate:"required"`
	AssetIDs []string `json:"asset_ids" validate:"required,min=1"`
}

type GetExportsResponseBody struct {
	Exports []ExportRecord `json:"exports"`
}

func exportRecordResponse(record *models.ExportRecord) ExportRecord {
	response := ExportRecord{
		ID:           record.ID,
		Manifest:     record.Manifest,
		Destination:  record.Destination,
		AssetCount:   record.AssetCount,
		AssetIDs:     record.AssetIDs,
		State:        record.State,
		ErrorMessage: record.ErrorMessage,
		CreatedAt:    record.CreatedAt,
	}
	if !record.FinishedAt.Time.IsZero() {
		finishedAt := record.FinishedAt.Time
		response.FinishedAt = &finishedAt
	}
	return response
}

// Sync godoc
// @Summary      Sync manifests
// @Description  Pushes every completed asset to its manifest on the game server
// @Accept       json
// @Produce      json
// @Tags         Export
// @Success      200  {object}  SyncResponseBody
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /v2/sync [post]
// @Security     OAuth2Password
func (controller *ExportController) Sync(c echo.Context) error {
	userId := c.Get("UserID").(int64)

	results, err := controller.svc.SyncManifests(c.Request().Context(), userId)
	if err != nil {
		c.Logger().Errorf("Sync failed: user_id:%v error: %v", userId, err)
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}

	return c.JSON(http.StatusOK, &SyncResponseBody{Results: results})
}

// SyncStatus godoc
// @Summary      Sync status
// @Description  Reports the game server connection mode and the last export per manifest
// @Accept       json
// @Produce      json
// @Tags         Export
// @Success      200  {object}  service.SyncStatus
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /v2/sync/status [get]
// @Security     OAuth2Password
func (controller *ExportController) SyncStatus(c echo.Context) error {
	status, err := controller.svc.GetSyncStatus(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, status)
}

// Export godoc
// @Summary      Export assets
// @Description  Pushes the selected completed assets to one manifest on the game server
// @Accept       json
// @Produce      json
// @Tags         Export
// @Param        export  body      ExportRequestBody  True  "Export"
// @Success      200     {object}  ExportRecord
// @Failure      400     {object}  responses.ErrorResponse
// @Failure      404     {object}  responses.ErrorResponse
// @Failure      502     {object}  responses.ErrorResponse
// @Router       /v2/export [post]
// @Security     OAuth2Password
func (controller *ExportController) Export(c echo.Context) error {
	userId := c.Get("UserID").(int64)
	var body ExportRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load export request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	known := false
	for _, name := range common.Manifests {
		if name == body.Manifest {
			known = true
		}
	}
	if !known {
		return c.JSON(http.StatusBadRequest, responses.UnknownManifestError)
	}

	record, err := controller.svc.ExportAssets(c.Request().Context(), userId, body.Manifest, body.AssetIDs)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, responses.AssetNotFoundError)
		}
		if errors.Is(err, service.ErrAssetNotCompleted) {
			return c.JSON(http.StatusBadRequest, responses.AssetNotReadyError)
		}
		c.Logger().Errorf("Export failed: user_id:%v manifest:%s error: %v", userId, body.Manifest, err)
		if strings.Contains(err.Error(), "game server") {
			return c.JSON(http.StatusBadGateway, responses.GameServerError)
		}
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}

	response := exportRecordResponse(record)
	return c.JSON(http.StatusOK, &response)
}

// GetExports godoc
// @Summary      List export records
// @Description  Returns the user's export history, failed pushes included
// @Accept       json
// @Produce      json
// @Tags         Export
// @Success      200  {object}  GetExportsResponseBody
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /v2/exports [get]
// @Security     OAuth2Password
func (controller *ExportController) GetExports(c echo.Context) error {
	userId := c.Get("UserID").(int64)

	records, err := controller.svc.ExportsFor(c.Request().Context(), userId)
	if err != nil {
		return err
	}

	response := make([]ExportRecord, len(records))
	for i, record := range records {
		response[i] = exportRecordResponse(&record)
	}
	return c.JSON(http.StatusOK, &GetExportsResponseBody{Exports: response})
}
