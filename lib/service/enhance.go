package service

import (
	"context"
	"fmt"

	"github.com/hyperforge/hyperforge.go/common"
	"github.com/hyperforge/hyperforge.go/db/models"
	"github.com/hyperforge/hyperforge.go/meshy"
)

// EnhancePrompt rewrites a raw prompt through the gateway without
// touching any asset, the studio's standalone enhance action.
func (svc *ForgeService) EnhancePrompt(ctx context.Context, prompt string, category string) (string, error) {
	return svc.GatewayClient.EnhancePrompt(ctx, prompt, category)
}

type RetextureParams struct {
	StylePrompt string
	EnablePBR   bool
}

// RetextureAsset re-skins a completed model with a new texture style.
// The provider works from the mirrored model url, so this also covers
// assets whose original task has expired.
func (svc *ForgeService) RetextureAsset(ctx context.Context, asset *models.Asset, params RetextureParams) (*models.GenerationJob, error) {
	if asset.ModelURL == "" {
		return nil, fmt.Errorf("asset has no model to retexture")
	}
	return svc.submitJob(ctx, asset, common.JobTypeRetexture, 0, func(ctx context.Context) (string, error) {
		return svc.MeshClient.CreateRetextureTask(ctx, &meshy.RetextureRequest{
			ModelURL:         asset.ModelURL,
			TextStylePrompt:  params.StylePrompt,
			ArtStyle:         asset.ArtStyle,
			EnableOriginalUV: true,
			EnablePBR:        params.EnablePBR,
		})
	})
}

// RegenerateAsset runs a fresh generation for an existing asset. The
// current state is snapshotted first so the previous model stays
// reachable through the version log.
func (svc *ForgeService) RegenerateAsset(ctx context.Context, asset *models.Asset, newPrompt string) (*models.GenerationJob, error) {
	if _, err := svc.SnapshotAsset(ctx, asset, asset.UserID, "before regenerate"); err != nil {
		return nil, err
	}
	if newPrompt != "" {
		asset.Prompt = newPrompt
	}
	preset := svc.Presets.For(asset.Category)
	return svc.submitJob(ctx, asset, common.JobTypeRegenerate, 0, func(ctx context.Context) (string, error) {
		return svc.MeshClient.CreateTextTo3DTask(ctx, svc.previewRequest(asset, preset))
	})
}
