package controllers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/hyperforge/hyperforge.go/common"
	"github.com/hyperforge/hyperforge.go/db/models"
	"github.com/hyperforge/hyperforge.go/lib/responses"
	"github.com/hyperforge/hyperforge.go/lib/service"
	"github.com/hyperforge/hyperforge.go/meshy"
	"github.com/labstack/echo/v4"
)

// GenerateController : Generate controller struct
type GenerateController struct {
	svc *service.ForgeService
}

func NewGenerateController(svc *service.ForgeService) *GenerateController {
	return &GenerateController{svc: svc}
}

type GenerateRequestBody struct {
	Name            string `json:"name" validate:"required"`
	Category        string `json:"category" validate:"required"`
	Description     string `json:"description"`
	Prompt          string `json:"prompt" validate:"required"`
	NegativePrompt  string `json:"negative_prompt"`
	ArtStyle        string `json:"art_style"`
	EnhancePrompt   bool   `json:"enhance_prompt"`
	SuggestMetadata bool   `json:"suggest_metadata"`
}

type GenerateResponseBody struct {
	Asset Asset `json:"asset"`
	Job   Job   `json:"job"`
}

type ImageGenerateRequestBody struct {
	AssetID     string `json:"asset_id"`
	ImageUrl    string `json:"image_url"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

type ConceptRequestBody struct {
	AssetID  string `json:"asset_id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Prompt   string `json:"prompt" validate:"required"`
	ArtStyle string `json:"art_style"`
}

type ConceptResponseBody struct {
	Asset Asset `json:"asset"`
}

type RefineRequestBody struct {
	AssetID       string `json:"asset_id" validate:"required"`
	TexturePrompt string `json:"texture_prompt"`
	EnablePBR     bool   `json:"enable_pbr"`
}

type JobResponseBody struct {
	Job Job `json:"job"`
}

// submitError maps a failed job submission to the canned responses.
// The job row already carries the failure, the response only decides
// the status code.
func submitError(c echo.Context, err error) error {
	var meshyErr *meshy.MeshyError
	if errors.As(err, &meshyErr) {
		c.Logger().Errorf("Mesh provider rejected task: %v", err)
		return c.JSON(http.StatusBadGateway, responses.MeshProviderError)
	}
	c.Logger().Errorf("Failed to submit generation: %v", err)
	sentry.CaptureException(err)
	return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
}

// guardWritable rejects generation on imported or busy assets. Returns
// false when a response has been written.
func guardWritable(c echo.Context, svc *service.ForgeService, asset *models.Asset) (bool, error) {
	if asset.Source == common.AssetSourceCDN {
		return false, c.JSON(http.StatusBadRequest, responses.CdnAssetImmutableError)
	}
	job, err := svc.GetRunningJobForAsset(c.Request().Context(), asset.ID)
	if err != nil {
		return false, err
	}
	if job != nil {
		return false, c.JSON(http.StatusBadRequest, responses.GenerationInProgressError)
	}
	return true, nil
}

// Generate godoc
// @Summary      Generate an asset from text
// @Description  Creates an asset and submits a text-to-3d preview task for it
// @Accept       json
// @Produce      json
// @Tags         Generate
// @Param        generate  body      GenerateRequestBody  True  "Generate"
// @Success      200       {object}  GenerateResponseBody
// @Failure      400       {object}  responses.ErrorResponse
// @Failure      502       {object}  responses.ErrorResponse
// @Router       /v2/generate [post]
// @Security     OAuth2Password
func (controller *GenerateController) Generate(c echo.Context) error {
	userId := c.Get("UserID").(int64)
	var body GenerateRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load generate request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		c.Logger().Errorf("Invalid generate request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if !common.ValidCategory(body.Category) {
		return c.JSON(http.StatusBadRequest, responses.InvalidCategoryError)
	}

	asset, job, err := controller.svc.GenerateAsset(c.Request().Context(), userId, service.GenerateParams{
		Name:            body.Name,
		Category:        body.Category,
		Description:     body.Description,
		Prompt:          body.Prompt,
		NegativePrompt:  body.NegativePrompt,
		ArtStyle:        body.ArtStyle,
		EnhancePrompt:   body.EnhancePrompt,
		SuggestMetadata: body.SuggestMetadata,
	})
	if err != nil {
		return submitError(c, err)
	}

	assetCtrl := AssetController{svc: controller.svc}
	return c.JSON(http.StatusOK, &GenerateResponseBody{
		Asset: assetCtrl.assetResponse(asset),
		Job:   *jobResponse(job, asset.PublicID),
	})
}

// GenerateFromImage godoc
// @Summary      Generate an asset from an image
// @Description  Submits an image-to-3d task, from a raw image url or from an asset's concept art
// @Accept       json
// @Produce      json
// @Tags         Generate
// @Param        generate  body      ImageGenerateRequestBody  True  "Image generate"
// @Success      200       {object}  GenerateResponseBody
// @Failure      400       {object}  responses.ErrorResponse
// @Failure      404       {object}  responses.ErrorResponse
// @Failure      502       {object}  responses.ErrorResponse
// @Router       /v2/generate/image [post]
// @Security     OAuth2Password
func (controller *GenerateController) GenerateFromImage(c echo.Context) error {
	userId := c.Get("UserID").(int64)
	var body ImageGenerateRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load image generate request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	params := service.ImageGenerateParams{
		ImageURL:    body.ImageUrl,
		Name:        body.Name,
		Category:    body.Category,
		Description: body.Description,
	}
	if body.AssetID != "" {
		asset, err := controller.svc.FindAssetByPublicID(c.Request().Context(), body.AssetID, userId)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return c.JSON(http.StatusNotFound, responses.AssetNotFoundError)
			}
			return err
		}
		if ok, err := guardWritable(c, controller.svc, asset); !ok {
			return err
		}
		params.Asset = asset
	} else if body.Category != "" && !common.ValidCategory(body.Category) {
		return c.JSON(http.StatusBadRequest, responses.InvalidCategoryError)
	}

	asset, job, err := controller.svc.GenerateAssetFromImage(c.Request().Context(), userId, params)
	if err != nil {
		if strings.Contains(err.Error(), "no source image") {
			return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
		}
		return submitError(c, err)
	}

	assetCtrl := AssetController{svc: controller.svc}
	return c.JSON(http.StatusOK, &GenerateResponseBody{
		Asset: assetCtrl.assetResponse(asset),
		Job:   *jobResponse(job, asset.PublicID),
	})
}

// GenerateConcept godoc
// @Summary      Generate concept art
// @Description  Renders concept art through the ai gateway and saves it on a draft asset
// @Accept       json
// @Produce      json
// @Tags         Generate
// @Param        concept  body      ConceptRequestBody  True  "Concept art"
// @Success      200      {object}  ConceptResponseBody
// @Failure      400      {object}  responses.ErrorResponse
// @Failure      404      {object}  responses.ErrorResponse
// @Failure      502      {object}  responses.ErrorResponse
// @Router       /v2/generate/concept [post]
// @Security     OAuth2Password
func (controller *GenerateController) GenerateConcept(c echo.Context) error {
	userId := c.Get("UserID").(int64)
	var body ConceptRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load concept request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		c.Logger().Errorf("Invalid concept request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	params := service.ConceptArtParams{
		Name:     body.Name,
		Category: body.Category,
		Prompt:   body.Prompt,
		ArtStyle: body.ArtStyle,
	}
	if body.AssetID != "" {
		asset, err := controller.svc.FindAssetByPublicID(c.Request().Context(), body.AssetID, userId)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return c.JSON(http.StatusNotFound, responses.AssetNotFoundError)
			}
			return err
		}
		if asset.Source == common.AssetSourceCDN {
			return c.JSON(http.StatusBadRequest, responses.CdnAssetImmutableError)
		}
		params.Asset = asset
	} else if body.Category != "" && !common.ValidCategory(body.Category) {
		return c.JSON(http.StatusBadRequest, responses.InvalidCategoryError)
	}

	asset, err := controller.svc.GenerateConceptArt(c.Request().Context(), userId, params)
	if err != nil {
		c.Logger().Errorf("Concept art generation failed: user_id:%v error: %v", userId, err)
		sentry.CaptureException(err)
		if strings.Contains(err.Error(), "storage") {
			return c.JSON(http.StatusBadGateway, responses.StorageError)
		}
		return c.JSON(http.StatusBadGateway, responses.GatewayError)
	}

	assetCtrl := AssetController{svc: controller.svc}
	return c.JSON(http.StatusOK, &ConceptResponseBody{Asset: assetCtrl.assetResponse(asset)})
}

// Refine godoc
// @Summary      Refine a preview asset
// @Description  Submits a refine task that textures the asset's preview mesh
// @Accept       json
// @Produce      json
// @Tags         Generate
// @Param        refine  body      RefineRequestBody  True  "Refine"
// @Success      200     {object}  JobResponseBody
// @Failure      400     {object}  responses.ErrorResponse
// @Failure      404     {object}  responses.ErrorResponse
// @Failure      502     {object}  responses.ErrorResponse
// @Router       /v2/generate/refine [post]
// @Security     OAuth2Password
func (controller *GenerateController) Refine(c echo.Context) error {
	userId := c.Get("UserID").(int64)
	var body RefineRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load refine request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	asset, err := controller.svc.FindAssetByPublicID(c.Request().Context(), body.AssetID, userId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, responses.AssetNotFoundError)
		}
		return err
	}
	if ok, err := guardWritable(c, controller.svc, asset); !ok {
		return err
	}

	job, err := controller.svc.RefineAsset(c.Request().Context(), asset, service.RefineParams{
		TexturePrompt: body.TexturePrompt,
		EnablePBR:     body.EnablePBR,
	})
	if err != nil {
		if strings.Contains(err.Error(), "no preview task") {
			return c.JSON(http.StatusBadRequest, responses.NoPreviewTaskError)
		}
		return submitError(c, err)
	}

	return c.JSON(http.StatusOK, &JobResponseBody{Job: *jobResponse(job, asset.PublicID)})
}
