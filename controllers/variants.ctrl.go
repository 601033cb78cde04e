package controllers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/hyperforge/hyperforge.go/common"
	"github.com/hyperforge/hyperforge.go/lib/responses"
	"github.com/hyperforge/hyperforge.go/lib/service"
	"github.com/labstack/echo/v4"
)

// VariantController : Variant controller struct
type VariantController struct {
	svc *service.ForgeService
}

func NewVariantController(svc *service.ForgeService) *VariantController {
	return &VariantController{svc: svc}
}

type CreateVariantRequestBody struct {
	AssetID  string `json:"asset_id" validate:"required"`
	Modifier string `json:"modifier" validate:"required"`
}

// CreateVariant godoc
// @Summary      Create an asset variant
// @Description  Clones an asset and generates it anew with the modifier mixed into the prompt
// @Accept       json
// @Produce      json
// @Tags         Variant
// @Param        variant  body      CreateVariantRequestBody  True  "Variant"
// @Success      200      {object}  GenerateResponseBody
// @Failure      400      {object}  responses.ErrorResponse
// @Failure      404      {object}  responses.ErrorResponse
// @Failure      502      {object}  responses.ErrorResponse
// @Router       /v2/variants [post]
// @Security     OAuth2Password
func (controller *VariantController) CreateVariant(c echo.Context) error {
	userId := c.Get("UserID").(int64)
	var body CreateVariantRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load variant request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	src, err := controller.svc.FindAssetByPublicID(c.Request().Context(), body.AssetID, userId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, responses.AssetNotFoundError)
		}
		return err
	}
	// imported assets carry no prompt to vary
	if src.Source == common.AssetSourceCDN {
		return c.JSON(http.StatusBadRequest, responses.CdnAssetImmutableError)
	}

	variant, job, err := controller.svc.CreateVariant(c.Request().Context(), src, body.Modifier)
	if err != nil {
		return submitError(c, err)
	}

	assetCtrl := AssetController{svc: controller.svc}
	return c.JSON(http.StatusOK, &GenerateResponseBody{
		Asset: assetCtrl.assetResponse(variant),
		Job:   *jobResponse(job, variant.PublicID),
	})
}

// GetVariants godoc
// @Summary      List variants of an asset
// @Description  Returns the assets generated as variants of the given asset
// @Accept       json
// @Produce      json
// @Tags         Variant
// @Param        id   path      string  true  "Asset public id"
// @Success      200  {object}  GetAssetsResponseBody
// @Failure      404  {object}  responses.ErrorResponse
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /v2/variants/{id} [get]
// @Security     OAuth2Password
func (controller *VariantController) GetVariants(c echo.Context) error {
	userId := c.Get("UserID").(int64)

	src, err := controller.svc.FindAssetByPublicID(c.Request().Context(), c.Param("id"), userId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, responses.AssetNotFoundError)
		}
		return err
	}

	variants, err := controller.svc.VariantsFor(c.Request().Context(), userId, src.ID)
	if err != nil {
		return err
	}

	assetCtrl := AssetController{svc: controller.svc}
	response := make([]Asset, len(variants))
	for i, variant := range variants {
		response[i] = assetCtrl.assetResponse(&variant)
	}
	return c.JSON(http.StatusOK, &GetAssetsResponseBody{Assets: response})
}
