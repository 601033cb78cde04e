package controllers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/hyperforge/hyperforge.go/common"
	"github.com/hyperforge/hyperforge.go/db/models"
	"github.com/hyperforge/hyperforge.go/lib/responses"
	"github.com/hyperforge/hyperforge.go/lib/service"
	"github.com/labstack/echo/v4"
)

// AssetController : Asset controller struct
type AssetController struct {
	svc *service.ForgeService
}

func NewAssetController(svc *service.ForgeService) *AssetController {
	return &AssetController{svc: svc}
}

type Asset struct {
	ID             string                 `json:"id"`
	Name           string                 `json:"name"`
	Category       string                 `json:"category"`
	Description    string                 `json:"description,omitempty"`
	Prompt         string                 `json:"prompt,omitempty"`
	NegativePrompt string                 `json:"negative_prompt,omitempty"`
	ArtStyle       string                 `json:"art_style,omitempty"`
	Source         string                 `json:"source"`
	State          string                 `json:"state"`
	ModelUrl       string                 `json:"model_url,omitempty"`
	ThumbnailUrl   string                 `json:"thumbnail_url,omitempty"`
	ConceptArtUrl  string                 `json:"concept_art_url,omitempty"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
	ShareUrl       string                 `json:"share_url"`
	CreatedAt      time.Time              `json:"created_at"`
}

type Job struct {
	ID             int64      `json:"id"`
	AssetID        string     `json:"asset_id"`
	Type           string     `json:"type"`
	State          string     `json:"state"`
	Progress       int        `json:"progress"`
	ErrorMessage   string     `json:"error_message,omitempty"`
	PrecedingJobID int64      `json:"preceding_job_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	FinishedAt     *time.Time `json:"finished_at,omitempty"`
}

type GetAssetsResponseBody struct {
	Assets []Asset `json:"assets"`
}

type GetAssetResponseBody struct {
	Asset
	Job     *Job `json:"job,omitempty"`
	Version int  `json:"version"`
}

func (controller *AssetController) assetResponse(asset *models.Asset) Asset {
	return Asset{
		ID:             asset.PublicID,
		Name:           asset.Name,
		Category:       asset.Category,
		Description:    asset.Description,
		Prompt:         asset.Prompt,
		NegativePrompt: asset.NegativePrompt,
		ArtStyle:       asset.ArtStyle,
		Source:         asset.Source,
		State:          asset.State,
		ModelUrl:       asset.ModelURL,
		ThumbnailUrl:   asset.ThumbnailURL,
		ConceptArtUrl:  asset.ConceptArtURL,
		Metadata:       asset.Metadata,
		ShareUrl:       controller.svc.ShareURL(asset.PublicID),
		CreatedAt:      asset.CreatedAt,
	}
}

func jobResponse(job *models.GenerationJob, assetPublicID string) *Job {
	response := &Job{
		ID:             job.ID,
		AssetID:        assetPublicID,
		Type:           job.Type,
		State:          job.State,
		Progress:       job.Progress,
		ErrorMessage:   job.ErrorMessage,
		PrecedingJobID: job.PrecedingJobID,
		CreatedAt:      job.CreatedAt,
	}
	if !job.FinishedAt.Time.IsZero() {
		finishedAt := job.FinishedAt.Time
		response.FinishedAt = &finishedAt
	}
	return response
}

// GetAssets godoc
// @Summary      List assets
// @Description  Returns the user's asset library, newest first
// @Accept       json
// @Produce      json
// @Tags         Asset
// @Param        category  query     string  false  "Filter by category"
// @Param        state     query     string  false  "Filter by state"
// @Param        source    query     string  false  "Filter by source (forge or cdn)"
// @Param        q         query     string  false  "Search in asset names"
// @Param        limit     query     int     false  "Page size (max 100)"
// @Param        offset    query     int     false  "Page offset"
// @Success      200       {object}  GetAssetsResponseBody
// @Failure      400       {object}  responses.ErrorResponse
// @Failure      500       {object}  responses.ErrorResponse
// @Router       /v2/assets [get]
// @Security     OAuth2Password
func (controller *AssetController) GetAssets(c echo.Context) error {
	userId := c.Get("UserID").(int64)

	filter := service.AssetFilter{
		Category: c.QueryParam("category"),
		State:    c.QueryParam("state"),
		Source:   c.QueryParam("source"),
		Query:    c.QueryParam("q"),
	}
	if filter.Category != "" && !common.ValidCategory(filter.Category) {
		return c.JSON(http.StatusBadRequest, responses.InvalidCategoryError)
	}
	if c.QueryParams().Has("limit") {
		limit, err := strconv.Atoi(c.QueryParam("limit"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
		}
		filter.Limit = limit
	}
	if c.QueryParams().Has("offset") {
		offset, err := strconv.Atoi(c.QueryParam("offset"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
		}
		filter.Offset = offset
	}

	assets, err := controller.svc.AssetsFor(c.Request().Context(), userId, filter)
	if err != nil {
		return err
	}

	response := make([]Asset, len(assets))
	for i, asset := range assets {
		response[i] = controller.assetResponse(&asset)
	}
	return c.JSON(http.StatusOK, &GetAssetsResponseBody{Assets: response})
}

// GetAsset godoc
// @Summary      Retrieve a single asset
// @Description  Returns one asset with its running job and current version number
// @Accept       json
// @Produce      json
// @Tags         Asset
// @Param        id   path      string  true  "Asset public id"
// @Success      200  {object}  GetAssetResponseBody
// @Failure      404  {object}  responses.ErrorResponse
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /v2/assets/{id} [get]
// @Security     OAuth2Password
func (controller *AssetController) GetAsset(c echo.Context) error {
	userId := c.Get("UserID").(int64)

	asset, err := controller.svc.FindAssetByPublicID(c.Request().Context(), c.Param("id"), userId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, responses.AssetNotFoundError)
		}
		return err
	}

	response := GetAssetResponseBody{Asset: controller.assetResponse(asset)}

	job, err := controller.svc.GetRunningJobForAsset(c.Request().Context(), asset.ID)
	if err != nil {
		return err
	}
	if job != nil {
		response.Job = jobResponse(job, asset.PublicID)
	}

	version, err := controller.svc.LatestVersion(c.Request().Context(), asset.ID)
	if err != nil {
		return err
	}
	if version != nil {
		response.Version = version.Version
	}

	return c.JSON(http.StatusOK, &response)
}

// DeleteAsset godoc
// @Summary      Delete an asset
// @Description  Removes an asset with its jobs, versions and stored files
// @Accept       json
// @Produce      json
// @Tags         Asset
// @Param        id   path  string  true  "Asset public id"
// @Success      204
// @Failure      404  {object}  responses.ErrorResponse
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /v2/assets/{id} [delete]
// @Security     OAuth2Password
func (controller *AssetController) DeleteAsset(c echo.Context) error {
	userId := c.Get("UserID").(int64)

	asset, err := controller.svc.FindAssetByPublicID(c.Request().Context(), c.Param("id"), userId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, responses.AssetNotFoundError)
		}
		return err
	}

	if err := controller.svc.DeleteAsset(c.Request().Context(), asset); err != nil {
		c.Logger().Errorf("Failed to delete asset: user_id:%v asset_id:%s error: %v", userId, asset.PublicID, err)
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetAssetQR godoc
// @Summary      Share QR code
// @Description  Renders the asset share link as a png qr code. Does not require authentication.
// @Produce      png
// @Tags         Asset
// @Param        id   path  string  true  "Asset public id"
// @Success      200  {string}  string  "PNG image"
// @Failure      404  {object}  responses.ErrorResponse
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /v2/assets/{id}/qr [get]
func (controller *AssetController) GetAssetQR(c echo.Context) error {
	asset, err := controller.svc.FindSharedAsset(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, responses.AssetNotFoundError)
		}
		return err
	}

	png, err := controller.svc.AssetShareQR(asset.PublicID)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/png", png)
}
