package service

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/hyperforge/hyperforge.go/common"
	"github.com/hyperforge/hyperforge.go/db/models"
	"github.com/hyperforge/hyperforge.go/meshy"
	"github.com/uptrace/bun"
)

type GenerateParams struct {
	Name            string
	Category        string
	Description     string
	Prompt          string
	NegativePrompt  string
	ArtStyle        string
	EnhancePrompt   bool
	SuggestMetadata bool
}

// GenerateAsset creates a forge asset and submits its preview task to
// the mesh provider.
func (svc *ForgeService) GenerateAsset(ctx context.Context, userId int64, params GenerateParams) (*models.Asset, *models.GenerationJob, error) {
	preset := svc.Presets.For(params.Category)

	prompt := params.Prompt
	if params.EnhancePrompt {
		enhanced, err := svc.GatewayClient.EnhancePrompt(ctx, prompt, params.Category)
		if err != nil {
			svc.Logger.Warnf("Prompt enhancement failed, using the raw prompt: %v", err)
		} else {
			prompt = enhanced
		}
	}
	if preset.PromptSuffix != "" {
		prompt = joinPromptParts(prompt, preset.PromptSuffix)
	}
	artStyle := params.ArtStyle
	if artStyle == "" {
		artStyle = preset.ArtStyle
	}

	asset := &models.Asset{
		PublicID:       uuid.NewString(),
		UserID:         userId,
		Name:           params.Name,
		Category:       params.Category,
		Description:    params.Description,
		Prompt:         prompt,
		NegativePrompt: joinPromptParts(params.NegativePrompt, preset.NegativePrompt),
		ArtStyle:       artStyle,
		Source:         common.AssetSourceForge,
	}
	if params.SuggestMetadata {
		metadata, err := svc.GatewayClient.SuggestMetadata(ctx, params.Name, params.Category, params.Description)
		if err != nil {
			svc.Logger.Warnf("Metadata suggestion failed: %v", err)
		} else {
			asset.Metadata = metadata
		}
	}

	job, err := svc.submitJob(ctx, asset, common.JobTypePreview, 0, func(ctx context.Context) (string, error) {
		return svc.MeshClient.CreateTextTo3DTask(ctx, svc.previewRequest(asset, preset))
	})
	return asset, job, err
}

type ImageGenerateParams struct {
	// Asset is an existing draft to mesh, nil creates a new asset.
	Asset       *models.Asset
	ImageURL    string
	Name        string
	Category    string
	Description string
}

// GenerateAssetFromImage submits an image-to-3d task, either for a fresh
// asset or for a draft that already carries concept art.
func (svc *ForgeService) GenerateAssetFromImage(ctx context.Context, userId int64, params ImageGenerateParams) (*models.Asset, *models.GenerationJob, error) {
	asset := params.Asset
	imageURL := params.ImageURL
	if asset != nil && imageURL == "" {
		imageURL = asset.ConceptArtURL
	}
	if imageURL == "" {
		return nil, nil, fmt.Errorf("no source image for image-to-3d generation")
	}
	if asset == nil {
		asset = &models.Asset{
			PublicID:      uuid.NewString(),
			UserID:        userId,
			Name:          params.Name,
			Category:      params.Category,
			Description:   params.Description,
			Source:        common.AssetSourceForge,
			ConceptArtURL: imageURL,
		}
	}
	preset := svc.Presets.For(asset.Category)

	job, err := svc.submitJob(ctx, asset, common.JobTypeImageTo3D, 0, func(ctx context.Context) (string, error) {
		return svc.MeshClient.CreateImageTo3DTask(ctx, &meshy.ImageTo3DRequest{
			ImageURL:        imageURL,
			Topology:        preset.Topology,
			TargetPolycount: preset.TargetPolycount,
			EnablePBR:       true,
			ShouldTexture:   true,
		})
	})
	return asset, job, err
}

type ConceptArtParams struct {
	// Asset is an existing asset to attach the art to, nil creates a draft.
	Asset    *models.Asset
	Name     string
	Category string
	Prompt   string
	ArtStyle string
}

// GenerateConceptArt renders concept art through the gateway, stores it
// and saves it on a draft asset. The vision pass that fills description
// and tags is best-effort.
func (svc *ForgeService) GenerateConceptArt(ctx context.Context, userId int64, params ConceptArtParams) (*models.Asset, error) {
	asset := params.Asset
	category := params.Category
	if asset != nil {
		category = asset.Category
	}
	preset := svc.Presets.For(category)
	artStyle := params.ArtStyle
	if artStyle == "" {
		artStyle = preset.ArtStyle
	}

	image, err := svc.GatewayClient.GenerateConceptArt(ctx, params.Prompt, artStyle)
	if err != nil {
		return nil, err
	}

	if asset == nil {
		asset = &models.Asset{
			PublicID: uuid.NewString(),
			UserID:   userId,
			Name:     params.Name,
			Category: category,
			Prompt:   params.Prompt,
			ArtStyle: artStyle,
			Source:   common.AssetSourceForge,
			State:    common.AssetStateDraft,
		}
	}

	url, err := svc.StorageClient.Upload(ctx,
		svc.StorageConfig.ImagesBucket,
		fmt.Sprintf("assets/%s/concept.png", asset.PublicID),
		"image/png",
		bytes.NewReader(image))
	if err != nil {
		return nil, err
	}
	asset.ConceptArtURL = url

	if analysis, err := svc.GatewayClient.AnalyzeImage(ctx, image, "image/png"); err != nil {
		svc.Logger.Warnf("Concept art analysis failed: %v", err)
	} else {
		if asset.Description == "" {
			asset.Description = analysis.Caption
		}
		if asset.Metadata == nil {
			asset.Metadata = map[string]interface{}{}
		}
		if len(analysis.Tags) > 0 {
			asset.Metadata["tags"] = analysis.Tags
		}
		if len(analysis.Palette) > 0 {
			asset.Metadata["palette"] = analysis.Palette
		}
	}

	err = svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if asset.ID == 0 {
			_, err := tx.NewInsert().Model(asset).Exec(ctx)
			return err
		}
		_, err := tx.NewUpdate().Model(asset).WherePK().Exec(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return asset, nil
}

type RefineParams struct {
	TexturePrompt string
	EnablePBR     bool
}

// RefineAsset turns a preview mesh into a textured model. The refine
// task references the preview task on the provider side.
func (svc *ForgeService) RefineAsset(ctx context.Context, asset *models.Asset, params RefineParams) (*models.GenerationJob, error) {
	previewJob, err := svc.latestSucceededJob(ctx, asset.ID, common.JobTypePreview)
	if err != nil {
		return nil, err
	}
	if previewJob == nil || previewJob.MeshyTaskID == "" {
		return nil, fmt.Errorf("asset has no preview task to refine")
	}
	return svc.submitJob(ctx, asset, common.JobTypeRefine, previewJob.ID, func(ctx context.Context) (string, error) {
		return svc.MeshClient.CreateTextTo3DTask(ctx, &meshy.TextTo3DRequest{
			Mode:          meshy.ModeRefine,
			PreviewTaskID: previewJob.MeshyTaskID,
			TexturePrompt: params.TexturePrompt,
			EnablePBR:     params.EnablePBR,
		})
	})
}

// CreateVariant clones an asset and generates it anew with the modifier
// mixed into the prompt.
func (svc *ForgeService) CreateVariant(ctx context.Context, src *models.Asset, modifier string) (*models.Asset, *models.GenerationJob, error) {
	variant := &models.Asset{
		PublicID:       uuid.NewString(),
		UserID:         src.UserID,
		Name:           src.Name,
		Category:       src.Category,
		Description:    src.Description,
		Prompt:         joinPromptParts(src.Prompt, modifier),
		NegativePrompt: src.NegativePrompt,
		ArtStyle:       src.ArtStyle,
		Source:         common.AssetSourceForge,
		ParentAssetID:  src.ID,
	}
	preset := svc.Presets.For(variant.Category)

	job, err := svc.submitJob(ctx, variant, common.JobTypePreview, 0, func(ctx context.Context) (string, error) {
		return svc.MeshClient.CreateTextTo3DTask(ctx, svc.previewRequest(variant, preset))
	})
	return variant, job, err
}

func (svc *ForgeService) previewRequest(asset *models.Asset, preset CategoryPreset) *meshy.TextTo3DRequest {
	return &meshy.TextTo3DRequest{
		Mode:            meshy.ModePreview,
		Prompt:          asset.Prompt,
		ArtStyle:        asset.ArtStyle,
		NegativePrompt:  asset.NegativePrompt,
		Topology:        preset.Topology,
		TargetPolycount: preset.TargetPolycount,
		SymmetryMode:    preset.SymmetryMode,
		ShouldRemesh:    true,
	}
}

// submitJob stores the job and asset in one transaction, submits the
// provider task and moves the job to pending. A provider error marks
// job and asset failed instead of rolling back so the attempt stays
// visible in the job log.
func (svc *ForgeService) submitJob(ctx context.Context, asset *models.Asset, jobType string, precedingJobId int64, submit func(ctx context.Context) (string, error)) (*models.GenerationJob, error) {
	asset.State = startStateForJob(jobType)
	job := &models.GenerationJob{
		UserID:         asset.UserID,
		Type:           jobType,
		State:          common.JobStateInitialized,
		PrecedingJobID: precedingJobId,
	}
	err := svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if asset.ID == 0 {
			if _, err := tx.NewInsert().Model(asset).Exec(ctx); err != nil {
				return err
			}
		} else {
			if _, err := tx.NewUpdate().Model(asset).WherePK().Exec(ctx); err != nil {
				return err
			}
		}
		job.AssetID = asset.ID
		_, err := tx.NewInsert().Model(job).Exec(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	taskID, err := submit(ctx)
	if err != nil {
		if failErr := svc.HandleFailedJob(ctx, job, asset, err.Error()); failErr != nil {
			svc.Logger.Errorf("Could not mark job %d failed: %v", job.ID, failErr)
		}
		return job, err
	}
	job.MeshyTaskID = taskID
	job.State = common.JobStatePending
	if _, err := svc.DB.NewUpdate().Model(job).WherePK().Exec(ctx); err != nil {
		return job, err
	}
	return job, nil
}

func startStateForJob(jobType string) string {
	switch jobType {
	case common.JobTypeRefine, common.JobTypeRetexture:
		return common.AssetStateRefining
	default:
		return common.AssetStateGenerating
	}
}
