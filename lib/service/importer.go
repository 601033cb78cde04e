package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hyperforge/hyperforge.go/common"
	"github.com/hyperforge/hyperforge.go/db/models"
	"github.com/hyperforge/hyperforge.go/gameserver"
	"golang.org/x/sync/errgroup"
)

const (
	ImportStatusImported = "imported"
	ImportStatusSkipped  = "skipped"
	ImportStatusFailed   = "failed"
)

type ImportSelection struct {
	Manifest string
	// EntryIDs limits the import, empty imports every entry with a model.
	EntryIDs []string
}

type ImportResult struct {
	Manifest string `json:"manifest"`
	EntryID  string `json:"entry_id"`
	PublicID string `json:"public_id,omitempty"`
	Status   string `json:"status"`
	Reason   string `json:"reason,omitempty"`
}

type ImportSummary struct {
	Imported int            `json:"imported"`
	Skipped  int            `json:"skipped"`
	Failed   int            `json:"failed"`
	Results  []ImportResult `json:"results"`
}

func (s *ImportSummary) add(result ImportResult) {
	switch result.Status {
	case ImportStatusImported:
		s.Imported++
	case ImportStatusSkipped:
		s.Skipped++
	case ImportStatusFailed:
		s.Failed++
	}
	s.Results = append(s.Results, result)
}

func (svc *ForgeService) ListManifests(ctx context.Context) ([]gameserver.ManifestInfo, error) {
	return svc.ManifestClient.ListManifests(ctx)
}

// ImportAssets copies manifest entries into the user's library as cdn
// assets. Entries already imported and entries without a model file are
// skipped, not errors, re-running an import is safe.
func (svc *ForgeService) ImportAssets(ctx context.Context, userId int64, selections []ImportSelection) (*ImportSummary, error) {
	manifests := make([]*gameserver.Manifest, len(selections))
	g, gctx := errgroup.WithContext(ctx)
	for i, selection := range selections {
		i, name := i, selection.Manifest
		g.Go(func() error {
			m, err := svc.ManifestClient.FetchManifest(gctx, name)
			if err != nil {
				return fmt.Errorf("fetching manifest %s: %w", name, err)
			}
			manifests[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	imported, err := svc.importedEntryKeys(ctx, userId)
	if err != nil {
		return nil, err
	}

	summary := &ImportSummary{Results: []ImportResult{}}
	for i, selection := range selections {
		manifest := manifests[i]
		for _, entry := range selectedEntries(manifest, selection.EntryIDs) {
			summary.add(svc.importEntry(ctx, userId, manifest.Name, entry, imported))
		}
	}
	return summary, nil
}

func selectedEntries(manifest *gameserver.Manifest, entryIDs []string) []gameserver.ManifestEntry {
	if len(entryIDs) == 0 {
		return manifest.Entries
	}
	entries := []gameserver.ManifestEntry{}
	for _, id := range entryIDs {
		if entry := manifest.Entry(id); entry != nil {
			entries = append(entries, *entry)
		} else {
			// keep a placeholder so the result reports the miss
			entries = append(entries, gameserver.ManifestEntry{ID: id})
		}
	}
	return entries
}

func (svc *ForgeService) importEntry(ctx context.Context, userId int64, manifestName string, entry gameserver.ManifestEntry, imported map[string]bool) ImportResult {
	result := ImportResult{Manifest: manifestName, EntryID: entry.ID}
	key := manifestName + "/" + entry.ID
	switch {
	case entry.Name == "" && entry.ModelURL == "":
		result.Status = ImportStatusFailed
		result.Reason = "entry not found in manifest"
		return result
	case entry.ModelURL == "":
		result.Status = ImportStatusSkipped
		result.Reason = "entry has no model file"
		return result
	case imported[key]:
		result.Status = ImportStatusSkipped
		result.Reason = "already imported"
		return result
	}

	category := entry.Category
	if !common.ValidCategory(category) {
		category = common.CategoryForManifest(manifestName)
	}
	name := entry.Name
	if name == "" {
		name = entry.ID
	}
	asset := &models.Asset{
		PublicID:     uuid.NewString(),
		UserID:       userId,
		Name:         name,
		Category:     category,
		Description:  entry.Description,
		Source:       common.AssetSourceCDN,
		State:        common.AssetStateCompleted,
		ModelURL:     entry.ModelURL,
		ThumbnailURL: entry.IconURL,
		Metadata: map[string]interface{}{
			"manifest":    manifestName,
			"manifest_id": entry.ID,
		},
	}
	if len(entry.Stats) > 0 {
		asset.Metadata["stats"] = entry.Stats
	}
	if _, err := svc.DB.NewInsert().Model(asset).Exec(ctx); err != nil {
		result.Status = ImportStatusFailed
		result.Reason = err.Error()
		return result
	}
	imported[key] = true

	if _, err := svc.SnapshotAsset(ctx, asset, userId, "import"); err != nil {
		svc.Logger.Errorf("Could not snapshot imported asset %s: %v", asset.PublicID, err)
	}

	result.Status = ImportStatusImported
	result.PublicID = asset.PublicID
	return result
}

// importedEntryKeys indexes the user's cdn assets by manifest and entry
// id. The mapping lives in asset metadata, so the check runs in Go
// instead of a json query, which keeps it portable across postgres and
// sqlite.
func (svc *ForgeService) importedEntryKeys(ctx context.Context, userId int64) (map[string]bool, error) {
	assets := []models.Asset{}
	err := svc.DB.NewSelect().Model(&assets).
		Where("user_id = ?", userId).
		Where("source = ?", common.AssetSourceCDN).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	keys := map[string]bool{}
	for _, asset := range assets {
		manifest, _ := asset.Metadata["manifest"].(string)
		entryID, _ := asset.Metadata["manifest_id"].(string)
		if manifest != "" && entryID != "" {
			keys[manifest+"/"+entryID] = true
		}
	}
	return keys, nil
}
