package service

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hyperforge/hyperforge.go/common"
	"github.com/hyperforge/hyperforge.go/db/models"
	"github.com/hyperforge/hyperforge.go/gameserver"
	"github.com/uptrace/bun"
)

var ErrAssetNotCompleted = errors.New("asset is not completed")

// ExportAssets pushes the selected assets into a manifest. The push is
// recorded as an ExportRecord whether it succeeds or fails, the record
// log doubles as the sync history.
func (svc *ForgeService) ExportAssets(ctx context.Context, userId int64, manifestName string, publicIDs []string) (*models.ExportRecord, error) {
	assets := make([]*models.Asset, 0, len(publicIDs))
	for _, publicID := range publicIDs {
		asset, err := svc.FindAssetByPublicID(ctx, publicID, userId)
		if err != nil {
			return nil, err
		}
		if asset.State != common.AssetStateCompleted {
			return nil, fmt.Errorf("asset %s: %w", publicID, ErrAssetNotCompleted)
		}
		assets = append(assets, asset)
	}
	return svc.exportToManifest(ctx, userId, manifestName, assets)
}

// SyncManifests exports every completed forge asset into the manifest
// matching its category. Manifests without any matching assets are
// reported but not pushed.
func (svc *ForgeService) SyncManifests(ctx context.Context, userId int64) ([]SyncResult, error) {
	results := []SyncResult{}
	for _, manifestName := range common.Manifests {
		assets, err := svc.completedAssetsForManifest(ctx, userId, manifestName)
		if err != nil {
			return nil, err
		}
		result := SyncResult{Manifest: manifestName, Exported: len(assets)}
		if len(assets) > 0 {
			if _, err := svc.exportToManifest(ctx, userId, manifestName, assets); err != nil {
				result.Exported = 0
				result.Error = err.Error()
			}
		}
		results = append(results, result)
	}
	return results, nil
}

type SyncResult struct {
	Manifest string `json:"manifest"`
	Exported int    `json:"exported"`
	Error    string `json:"error,omitempty"`
}

func (svc *ForgeService) exportToManifest(ctx context.Context, userId int64, manifestName string, assets []*models.Asset) (*models.ExportRecord, error) {
	record := &models.ExportRecord{
		UserID:      userId,
		Manifest:    manifestName,
		Destination: svc.exportDestination(),
		AssetCount:  len(assets),
		AssetIDs:    make([]string, 0, len(assets)),
	}
	for _, asset := range assets {
		record.AssetIDs = append(record.AssetIDs, asset.PublicID)
	}

	err := svc.pushAssets(ctx, manifestName, assets)
	record.FinishedAt = bun.NullTime{Time: time.Now()}
	if err != nil {
		record.State = common.ExportStateFailed
		record.ErrorMessage = err.Error()
		if _, insertErr := svc.DB.NewInsert().Model(record).Exec(ctx); insertErr != nil {
			svc.Logger.Errorf("Could not write failed export record for %s: %v", manifestName, insertErr)
		}
		return record, err
	}

	record.State = common.ExportStateCompleted
	if _, err := svc.DB.NewInsert().Model(record).Exec(ctx); err != nil {
		svc.Logger.Errorf("Could not write export record for %s: %v", manifestName, err)
		return record, nil
	}
	svc.Logger.Infof("Exported %d assets to manifest %s", len(assets), manifestName)
	svc.archiveExport(ctx, record, assets)
	return record, nil
}

func (svc *ForgeService) pushAssets(ctx context.Context, manifestName string, assets []*models.Asset) error {
	manifest, err := svc.ManifestClient.FetchManifest(ctx, manifestName)
	if err != nil {
		return err
	}
	for _, asset := range assets {
		manifest.Upsert(manifestEntryForAsset(asset))
	}
	return svc.ManifestClient.PushManifest(ctx, manifestName, manifest)
}

// archiveExport drops a json copy of the exported entries into the
// content bucket, an audit trail independent of the game server.
func (svc *ForgeService) archiveExport(ctx context.Context, record *models.ExportRecord, assets []*models.Asset) {
	entries := make([]gameserver.ManifestEntry, 0, len(assets))
	for _, asset := range assets {
		entries = append(entries, manifestEntryForAsset(asset))
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		svc.Logger.Errorf("Could not encode export archive for record %d: %v", record.ID, err)
		return
	}
	path := fmt.Sprintf("exports/%s/%d.json", record.Manifest, record.ID)
	if _, err := svc.StorageClient.Upload(ctx, svc.StorageConfig.ContentBucket, path, "application/json", bytes.NewReader(data)); err != nil {
		svc.Logger.Errorf("Could not archive export record %d: %v", record.ID, err)
	}
}

func manifestEntryForAsset(asset *models.Asset) gameserver.ManifestEntry {
	entry := gameserver.ManifestEntry{
		ID:          entryIDForAsset(asset),
		Name:        asset.Name,
		Category:    asset.Category,
		Description: asset.Description,
		ModelURL:    asset.ModelURL,
		IconURL:     asset.ThumbnailURL,
	}
	if stats, ok := asset.Metadata["stats"].(map[string]interface{}); ok {
		entry.Stats = stats
	}
	return entry
}

// entryIDForAsset keeps imported assets on their original manifest id so
// a round trip updates the entry instead of duplicating it.
func entryIDForAsset(asset *models.Asset) string {
	if id, ok := asset.Metadata["manifest_id"].(string); ok && id != "" {
		return id
	}
	return slugify(asset.Name)
}

func (svc *ForgeService) completedAssetsForManifest(ctx context.Context, userId int64, manifestName string) ([]*models.Asset, error) {
	categories := []string{}
	for _, category := range common.Categories {
		if common.ManifestForCategory(category) == manifestName {
			categories = append(categories, category)
		}
	}
	assets := []*models.Asset{}
	err := svc.DB.NewSelect().Model(&assets).
		Where("user_id = ?", userId).
		Where("source = ?", common.AssetSourceForge).
		Where("state = ?", common.AssetStateCompleted).
		Where("category IN (?)", bun.In(categories)).
		OrderExpr("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return assets, nil
}

func (svc *ForgeService) exportDestination() string {
	if svc.ManifestClient.Mode() == gameserver.HTTP_CLIENT_TYPE && svc.ManifestConfig != nil {
		return svc.ManifestConfig.URL
	}
	return gameserver.LOCAL_CLIENT_TYPE
}

func (svc *ForgeService) ExportsFor(ctx context.Context, userId int64) ([]models.ExportRecord, error) {
	records := []models.ExportRecord{}

	err := svc.DB.NewSelect().Model(&records).
		Where("user_id = ?", userId).
		OrderExpr("id DESC").
		Limit(100).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}

type SyncStatusManifest struct {
	gameserver.ManifestInfo
	LastExportAt    *time.Time `json:"last_export_at,omitempty"`
	LastExportState string     `json:"last_export_state,omitempty"`
}

type SyncStatus struct {
	Mode      string               `json:"mode"`
	Reachable bool                 `json:"reachable"`
	Manifests []SyncStatusManifest `json:"manifests"`
}

// GetSyncStatus reports how the forge currently talks to the game
// server and when each manifest was last exported. An unreachable game
// server is part of the status, not an error.
func (svc *ForgeService) GetSyncStatus(ctx context.Context) (*SyncStatus, error) {
	status := &SyncStatus{
		Mode:      svc.ManifestClient.Mode(),
		Manifests: []SyncStatusManifest{},
	}
	infos, err := svc.ManifestClient.ListManifests(ctx)
	if err != nil {
		svc.Logger.Warnf("Game server unreachable for sync status: %v", err)
		return status, nil
	}
	status.Reachable = true
	for _, info := range infos {
		entry := SyncStatusManifest{ManifestInfo: info}
		record := &models.ExportRecord{}
		err := svc.DB.NewSelect().Model(record).
			Where("manifest = ?", info.Name).
			OrderExpr("id DESC").
			Limit(1).Scan(ctx)
		switch {
		case err == nil:
			at := record.CreatedAt
			entry.LastExportAt = &at
			entry.LastExportState = record.State
		case !errors.Is(err, sql.ErrNoRows):
			return nil, err
		}
		status.Manifests = append(status.Manifests, entry)
	}
	return status, nil
}
