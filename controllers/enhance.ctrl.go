package controllers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/hyperforge/hyperforge.go/common"
	"github.com/hyperforge/hyperforge.go/lib/responses"
	"github.com/hyperforge/hyperforge.go/lib/service"
	"github.com/labstack/echo/v4"
)

// EnhanceController : Enhance controller struct
type EnhanceController struct {
	svc *service.ForgeService
}

func NewEnhanceController(svc *service.ForgeService) *EnhanceController {
	return &EnhanceController{svc: svc}
}

type EnhancePromptRequestBody struct {
	Prompt   string `json:"prompt" validate:"required"`
	Category string `json:"category"`
}

type EnhancePromptResponseBody struct {
	Prompt string `json:"prompt"`
}

type RetextureRequestBody struct {
	AssetID     string `json:"asset_id" validate:"required"`
	StylePrompt string `json:"style_prompt" validate:"required"`
	EnablePBR   bool   `json:"enable_pbr"`
}

type RegenerateRequestBody struct {
	AssetID string `json:"asset_id" validate:"required"`
	Prompt  string `json:"prompt"`
}

// EnhancePrompt godoc
// @Summary      Enhance a prompt
// @Description  Rewrites a raw prompt into a detailed 3d generation prompt
// @Accept       json
// @Produce      json
// @Tags         Enhance
// @Param        prompt  body      EnhancePromptRequestBody  True  "Prompt"
// @Success      200     {object}  EnhancePromptResponseBody
// @Failure      400     {object}  responses.ErrorResponse
// @Failure      502     {object}  responses.ErrorResponse
// @Router       /v2/enhance/prompt [post]
// @Security     OAuth2Password
func (controller *EnhanceController) EnhancePrompt(c echo.Context) error {
	var body EnhancePromptRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load enhance request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	enhanced, err := controller.svc.EnhancePrompt(c.Request().Context(), body.Prompt, body.Category)
	if err != nil {
		c.Logger().Errorf("Prompt enhancement failed: %v", err)
		return c.JSON(http.StatusBadGateway, responses.GatewayError)
	}

	return c.JSON(http.StatusOK, &EnhancePromptResponseBody{Prompt: enhanced})
}

// Retexture godoc
// @Summary      Retexture an asset
// @Description  Submits a retexture task that re-skins a completed model with a new style
// @Accept       json
// @Produce      json
// @Tags         Enhance
// @Param        retexture  body      RetextureRequestBody  True  "Retexture"
// @Success      200        {object}  JobResponseBody
// @Failure      400        {object}  responses.ErrorResponse
// @Failure      404        {object}  responses.ErrorResponse
// @Failure      502        {object}  responses.ErrorResponse
// @Router       /v2/enhance/retexture [post]
// @Security     OAuth2Password
func (controller *EnhanceController) Retexture(c echo.Context) error {
	userId := c.Get("UserID").(int64)
	var body RetextureRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load retexture request body: %v", err)
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
	if asset.State != common.AssetStateCompleted {
		return c.JSON(http.StatusBadRequest, responses.AssetNotReadyError)
	}
	if ok, err := guardWritable(c, controller.svc, asset); !ok {
		return err
	}

	job, err := controller.svc.RetextureAsset(c.Request().Context(), asset, service.RetextureParams{
		StylePrompt: body.StylePrompt,
		EnablePBR:   body.EnablePBR,
	})
	if err != nil {
		if strings.Contains(err.Error(), "no model to retexture") {
			return c.JSON(http.StatusBadRequest, responses.AssetNotReadyError)
		}
		return submitError(c, err)
	}

	return c.JSON(http.StatusOK, &JobResponseBody{Job: *jobResponse(job, asset.PublicID)})
}

// Regenerate godoc
// @Summary      Regenerate an asset
// @Description  Snapshots the asset and runs a fresh generation, optionally with a new prompt
// @Accept       json
// @Produce      json
// @Tags         Enhance
// @Param        regenerate  body      RegenerateRequestBody  True  "Regenerate"
// @Success      200         {object}  JobResponseBody
// @Failure      400         {object}  responses.ErrorResponse
// @Failure      404         {object}  responses.ErrorResponse
// @Failure      502         {object}  responses.ErrorResponse
// @Router       /v2/enhance/regenerate [post]
// @Security     OAuth2Password
func (controller *EnhanceController) Regenerate(c echo.Context) error {
	userId := c.Get("UserID").(int64)
	var body RegenerateRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load regenerate request body: %v", err)
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

	job, err := controller.svc.RegenerateAsset(c.Request().Context(), asset, body.Prompt)
	if err != nil {
		return submitError(c, err)
	}

	return c.JSON(http.StatusOK, &JobResponseBody{Job: *jobResponse(job, asset.PublicID)})
}
