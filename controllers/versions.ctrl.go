package controllers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/hyperforge/hyperforge.go/common"
	"github.com/hyperforge/hyperforge.go/db/models"
	"github.com/hyperforge/hyperforge.go/lib/responses"
	"github.com/hyperforge/hyperforge.go/lib/service"
	"github.com/labstack/echo/v4"
)

// VersionController : Version controller struct
type VersionController struct {
	svc *service.ForgeService
}

func NewVersionController(svc *service.ForgeService) *VersionController {
	return &VersionController{svc: svc}
}

type Version struct {
	Version    int       `json:"version"`
	Hash       string    `json:"hash"`
	ParentHash string    `json:"parent_hash,omitempty"`
	Label      string    `json:"label,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type GetVersionsResponseBody struct {
	Versions []Version `json:"versions"`
}

type CreateSnapshotRequestBody struct {
	Label string `json:"label"`
}

type DiffResponseBody struct {
	From int                 `json:"from"`
	To   int                 `json:"to"`
	Diff []service.FieldDiff `json:"diff"`
}

type RestoreResponseBody struct {
	Asset   Asset   `json:"asset"`
	Version Version `json:"version"`
}

func versionResponse(version *models.AssetVersion) Version {
	return Version{
		Version:    version.Version,
		Hash:       version.Hash,
		ParentHash: version.ParentHash,
		Label:      version.Label,
		CreatedAt:  version.CreatedAt,
	}
}

func (controller *VersionController) findAsset(c echo.Context) (*models.Asset, error) {
	userId := c.Get("UserID").(int64)

	asset, err := controller.svc.FindAssetByPublicID(c.Request().Context(), c.Param("id"), userId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, c.JSON(http.StatusNotFound, responses.AssetNotFoundError)
		}
		return nil, err
	}
	return asset, nil
}

// GetVersions godoc
// @Summary      List asset versions
// @Description  Returns the asset's version log, newest first
// @Accept       json
// @Produce      json
// @Tags         Version
// @Param        id   path      string  true  "Asset public id"
// @Success      200  {object}  GetVersionsResponseBody
// @Failure      404  {object}  responses.ErrorResponse
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /v2/assets/{id}/versions [get]
// @Security     OAuth2Password
func (controller *VersionController) GetVersions(c echo.Context) error {
	asset, err := controller.findAsset(c)
	if asset == nil {
		return err
	}

	versions, err := controller.svc.VersionsFor(c.Request().Context(), asset.ID)
	if err != nil {
		return err
	}

	response := make([]Version, len(versions))
	for i, version := range versions {
		response[i] = versionResponse(&version)
	}
	return c.JSON(http.StatusOK, &GetVersionsResponseBody{Versions: response})
}

// CreateSnapshot godoc
// @Summary      Snapshot an asset
// @Description  Appends the asset's current state to its version log. Returns the existing head when nothing changed.
// @Accept       json
// @Produce      json
// @Tags         Version
// @Param        id        path      string                     true  "Asset public id"
// @Param        snapshot  body      CreateSnapshotRequestBody  false "Snapshot"
// @Success      200       {object}  Version
// @Failure      404       {object}  responses.ErrorResponse
// @Failure      500       {object}  responses.ErrorResponse
// @Router       /v2/assets/{id}/versions [post]
// @Security     OAuth2Password
func (controller *VersionController) CreateSnapshot(c echo.Context) error {
	userId := c.Get("UserID").(int64)

	asset, err := controller.findAsset(c)
	if asset == nil {
		return err
	}

	var body CreateSnapshotRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load snapshot request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	version, err := controller.svc.SnapshotAsset(c.Request().Context(), asset, userId, body.Label)
	if err != nil {
		return err
	}

	response := versionResponse(version)
	return c.JSON(http.StatusOK, &response)
}

// DiffVersions godoc
// @Summary      Diff two versions
// @Description  Compares two stored snapshots field by field
// @Accept       json
// @Produce      json
// @Tags         Version
// @Param        id    path      string  true  "Asset public id"
// @Param        from  query     int     true  "Version to compare from"
// @Param        to    query     int     true  "Version to compare to"
// @Success      200   {object}  DiffResponseBody
// @Failure      400   {object}  responses.ErrorResponse
// @Failure      404   {object}  responses.ErrorResponse
// @Router       /v2/assets/{id}/versions/diff [get]
// @Security     OAuth2Password
func (controller *VersionController) DiffVersions(c echo.Context) error {
	asset, err := controller.findAsset(c)
	if asset == nil {
		return err
	}

	from, errFrom := strconv.Atoi(c.QueryParam("from"))
	to, errTo := strconv.Atoi(c.QueryParam("to"))
	if errFrom != nil || errTo != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	fromVersion, err := controller.svc.FindVersion(c.Request().Context(), asset.ID, from)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, responses.VersionNotFoundError)
		}
		return err
	}
	toVersion, err := controller.svc.FindVersion(c.Request().Context(), asset.ID, to)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, responses.VersionNotFoundError)
		}
		return err
	}

	return c.JSON(http.StatusOK, &DiffResponseBody{
		From: fromVersion.Version,
		To:   toVersion.Version,
		Diff: service.DiffSnapshots(fromVersion.Snapshot, toVersion.Snapshot),
	})
}

// RestoreVersion godoc
// @Summary      Restore a version
// @Description  Writes a stored snapshot back onto the asset and appends the restored state to the log
// @Accept       json
// @Produce      json
// @Tags         Version
// @Param        id       path      string  true  "Asset public id"
// @Param        version  path      int     true  "Version to restore"
// @Success      200      {object}  RestoreResponseBody
// @Failure      400      {object}  responses.ErrorResponse
// @Failure      404      {object}  responses.ErrorResponse
// @Router       /v2/assets/{id}/versions/{version}/restore [post]
// @Security     OAuth2Password
func (controller *VersionController) RestoreVersion(c echo.Context) error {
	asset, err := controller.findAsset(c)
	if asset == nil {
		return err
	}
	if asset.Source == common.AssetSourceCDN {
		return c.JSON(http.StatusBadRequest, responses.CdnAssetImmutableError)
	}

	running, err := controller.svc.GetRunningJobForAsset(c.Request().Context(), asset.ID)
	if err != nil {
		return err
	}
	if running != nil {
		return c.JSON(http.StatusBadRequest, responses.GenerationInProgressError)
	}

	versionNumber, err := strconv.Atoi(c.Param("version"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	version, err := controller.svc.FindVersion(c.Request().Context(), asset.ID, versionNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, responses.VersionNotFoundError)
		}
		return err
	}

	restored, err := controller.svc.RestoreVersion(c.Request().Context(), asset, version)
	if err != nil {
		return err
	}

	assetCtrl := AssetController{svc: controller.svc}
	return c.JSON(http.StatusOK, &RestoreResponseBody{
		Asset:   assetCtrl.assetResponse(asset),
		Version: versionResponse(restored),
	})
}
