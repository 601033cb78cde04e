package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/hyperforge/hyperforge.go/common"
	"github.com/hyperforge/hyperforge.go/db/models"
	"github.com/hyperforge/hyperforge.go/meshy"
	"github.com/uptrace/bun"
)

// StartJobPollerRoutine drives every inflight generation job to a
// terminal state by polling the mesh provider. Blocks until ctx is done.
func (svc *ForgeService) StartJobPollerRoutine(ctx context.Context) {
	ticker := time.NewTicker(time.Duration(svc.MeshConfig.PollIntervalSeconds) * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			svc.CheckAllInflightJobs(ctx)
		}
	}
}

// CheckAllInflightJobs polls the provider once for every tracked job.
// Errors are reported per job, one broken job does not stall the rest.
func (svc *ForgeService) CheckAllInflightJobs(ctx context.Context) {
	jobs, err := svc.InflightJobs(ctx)
	if err != nil {
		svc.Logger.Errorf("Could not load inflight jobs: %v", err)
		sentry.CaptureException(err)
		return
	}
	for _, job := range jobs {
		job := job
		if err := svc.TrackJobStatus(ctx, &job); err != nil {
			svc.Logger.Errorf("Error tracking job %d (task %s): %v", job.ID, job.MeshyTaskID, err)
			sentry.CaptureException(err)
		}
	}
}

// TrackJobStatus reconciles one job against the provider's task state.
func (svc *ForgeService) TrackJobStatus(ctx context.Context, job *models.GenerationJob) error {
	if common.TerminalJobState(job.State) {
		return nil
	}

	asset, err := svc.FindAsset(ctx, job.AssetID)
	if err != nil {
		return err
	}

	timeout := time.Duration(svc.MeshConfig.PollTimeoutSeconds) * time.Second
	if timeout > 0 && time.Since(job.CreatedAt) > timeout {
		return svc.HandleFailedJob(ctx, job, asset, "generation timed out")
	}
	// no task id yet: the submit call is either still in flight or
	// crashed, the timeout above eventually reaps it
	if job.MeshyTaskID == "" {
		return nil
	}

	task, err := svc.MeshClient.GetTask(ctx, meshyFamilyForJobType(job.Type), job.MeshyTaskID)
	if err != nil {
		var meshyErr *meshy.MeshyError
		if errors.As(err, &meshyErr) && meshyErr.StatusCode == 404 {
			return svc.HandleFailedJob(ctx, job, asset, "provider task not found")
		}
		return err
	}

	switch task.Status {
	case meshy.StatusPending:
		return nil
	case meshy.StatusInProgress:
		changed := false
		if job.State != common.JobStateInProgress {
			job.State = common.JobStateInProgress
			changed = true
		}
		// progress is monotone, the provider occasionally reports lower
		// values right after a stage change
		if task.Progress > job.Progress {
			job.Progress = task.Progress
			changed = true
		}
		if !changed {
			return nil
		}
		_, err := svc.DB.NewUpdate().Model(job).WherePK().Exec(ctx)
		return err
	case meshy.StatusSucceeded:
		return svc.HandleSucceededJob(ctx, job, asset, task)
	case meshy.StatusFailed, meshy.StatusCanceled:
		message := task.ErrorMessage()
		if message == "" {
			message = fmt.Sprintf("generation %s", strings.ToLower(task.Status))
		}
		return svc.HandleFailedJob(ctx, job, asset, message)
	default:
		return fmt.Errorf("unexpected task status %s for job %d", task.Status, job.ID)
	}
}

// HandleSucceededJob mirrors the provider files into storage, finalizes
// job and asset and publishes the update. A mirror error leaves the job
// inflight so the next tick retries.
func (svc *ForgeService) HandleSucceededJob(ctx context.Context, job *models.GenerationJob, asset *models.Asset, task *meshy.Task) error {
	if task.ModelUrls.Glb == "" {
		return svc.HandleFailedJob(ctx, job, asset, "provider returned no model file")
	}

	modelURL, err := svc.StorageClient.Mirror(ctx,
		svc.StorageConfig.ModelsBucket,
		fmt.Sprintf("assets/%s/%s.glb", asset.PublicID, job.MeshyTaskID),
		task.ModelUrls.Glb)
	if err != nil {
		return fmt.Errorf("mirroring model for job %d: %w", job.ID, err)
	}
	asset.ModelURL = modelURL

	if task.ThumbnailURL != "" {
		thumbURL, err := svc.StorageClient.Mirror(ctx,
			svc.StorageConfig.ImagesBucket,
			fmt.Sprintf("assets/%s/%s_thumb.png", asset.PublicID, job.MeshyTaskID),
			task.ThumbnailURL)
		if err != nil {
			svc.Logger.Warnf("Could not mirror thumbnail for job %d, keeping the provider url: %v", job.ID, err)
			thumbURL = task.ThumbnailURL
		}
		asset.ThumbnailURL = thumbURL
	}

	if job.Type == common.JobTypePreview {
		asset.State = common.AssetStatePreview
	} else {
		asset.State = common.AssetStateCompleted
	}
	job.State = common.JobStateSucceeded
	job.Progress = 100
	job.FinishedAt = bun.NullTime{Time: time.Now()}

	err = svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewUpdate().Model(job).WherePK().Exec(ctx); err != nil {
			return err
		}
		_, err := tx.NewUpdate().Model(asset).WherePK().Exec(ctx)
		return err
	})
	if err != nil {
		return err
	}
	svc.Logger.Infof("Job %d (%s) succeeded for asset %s", job.ID, job.Type, asset.PublicID)

	if _, err := svc.SnapshotAsset(ctx, asset, job.UserID, job.Type); err != nil {
		svc.Logger.Errorf("Could not snapshot asset %s after job %d: %v", asset.PublicID, job.ID, err)
		sentry.CaptureException(err)
	}

	svc.publishAssetUpdate(asset)
	return nil
}

// HandleFailedJob finalizes a failed or canceled job and marks its
// asset failed.
func (svc *ForgeService) HandleFailedJob(ctx context.Context, job *models.GenerationJob, asset *models.Asset, message string) error {
	job.State = common.JobStateFailed
	job.ErrorMessage = message
	job.FinishedAt = bun.NullTime{Time: time.Now()}
	asset.State = common.AssetStateFailed

	err := svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewUpdate().Model(job).WherePK().Exec(ctx); err != nil {
			return err
		}
		_, err := tx.NewUpdate().Model(asset).WherePK().Exec(ctx)
		return err
	})
	if err != nil {
		return err
	}
	svc.Logger.Infof("Job %d (%s) failed for asset %s: %s", job.ID, job.Type, asset.PublicID, message)

	svc.publishAssetUpdate(asset)
	return nil
}

func (svc *ForgeService) publishAssetUpdate(asset *models.Asset) {
	svc.AssetPubSub.Publish(asset.State, *asset)
	svc.AssetPubSub.Publish(strconv.FormatInt(asset.UserID, 10), *asset)
}

func meshyFamilyForJobType(jobType string) string {
	switch jobType {
	case common.JobTypeImageTo3D:
		return meshy.FamilyImageTo3D
	case common.JobTypeRetexture:
		return meshy.FamilyRetexture
	default:
		// preview, refine and regenerate are all text-to-3d tasks
		return meshy.FamilyTextTo3D
	}
}
