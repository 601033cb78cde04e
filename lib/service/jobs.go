package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/hyperforge/hyperforge.go/common"
	"github.com/hyperforge/hyperforge.go/db/models"
	"github.com/uptrace/bun"
)

func (svc *ForgeService) FindJob(ctx context.Context, jobId int64, userId int64) (*models.GenerationJob, error) {
	var job models.GenerationJob

	err := svc.DB.NewSelect().Model(&job).
		Where("id = ?", jobId).
		Where("user_id = ?", userId).
		Limit(1).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

type JobFilter struct {
	AssetID int64
	State   string
}

func (svc *ForgeService) JobsFor(ctx context.Context, userId int64, filter JobFilter) ([]models.GenerationJob, error) {
	jobs := []models.GenerationJob{}

	query := svc.DB.NewSelect().Model(&jobs).Where("user_id = ?", userId)
	if filter.AssetID != 0 {
		query.Where("asset_id = ?", filter.AssetID)
	}
	if filter.State != "" {
		query.Where("state = ?", filter.State)
	}
	query.OrderExpr("id DESC").Limit(100)
	err := query.Scan(ctx)
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

// GetRunningJobForAsset returns the asset's non-terminal job, or nil
// when the asset is idle. An asset never has more than one job running.
func (svc *ForgeService) GetRunningJobForAsset(ctx context.Context, assetId int64) (*models.GenerationJob, error) {
	var job models.GenerationJob

	err := svc.DB.NewSelect().Model(&job).
		Where("asset_id = ?", assetId).
		Where("state IN (?)", bun.In([]string{common.JobStateInitialized, common.JobStatePending, common.JobStateInProgress})).
		Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}

func (svc *ForgeService) latestSucceededJob(ctx context.Context, assetId int64, jobType string) (*models.GenerationJob, error) {
	var job models.GenerationJob

	err := svc.DB.NewSelect().Model(&job).
		Where("asset_id = ?", assetId).
		Where("type = ?", jobType).
		Where("state = ?", common.JobStateSucceeded).
		OrderExpr("id DESC").
		Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}

// InflightJobs lists every non-terminal job. Jobs that never received a
// provider task id are included so the timeout sweep can reap them.
func (svc *ForgeService) InflightJobs(ctx context.Context) ([]models.GenerationJob, error) {
	jobs := []models.GenerationJob{}

	err := svc.DB.NewSelect().Model(&jobs).
		Where("state IN (?)", bun.In([]string{common.JobStateInitialized, common.JobStatePending, common.JobStateInProgress})).
		OrderExpr("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return jobs, nil
}
