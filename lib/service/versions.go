package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/hyperforge/hyperforge.go/db/models"
	"github.com/uptrace/bun"
)

const (
	DiffAdded   = "added"
	DiffRemoved = "removed"
	DiffChanged = "changed"
)

type FieldDiff struct {
	Field string      `json:"field"`
	Kind  string      `json:"kind"`
	From  interface{} `json:"from,omitempty"`
	To    interface{} `json:"to,omitempty"`
}

// SnapshotHash hashes the canonical json encoding of a snapshot.
// encoding/json sorts map keys on all nesting levels, which makes the
// encoding canonical for snapshot maps regardless of whether they were
// built in memory or read back from the database.
func SnapshotHash(snapshot map[string]interface{}) (string, error) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// SnapshotAsset appends the asset's current state to its version log.
// Snapshotting content identical to the head is a no-op returning the
// head. Rows past the retention cap are pruned oldest first.
func (svc *ForgeService) SnapshotAsset(ctx context.Context, asset *models.Asset, userId int64, label string) (*models.AssetVersion, error) {
	snapshot := asset.SnapshotFields()
	hash, err := SnapshotHash(snapshot)
	if err != nil {
		return nil, err
	}

	var result *models.AssetVersion
	err = svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		head := &models.AssetVersion{}
		err := tx.NewSelect().Model(head).
			Where("asset_id = ?", asset.ID).
			OrderExpr("version DESC").
			Limit(1).Scan(ctx)
		if err != nil {
			if !errors.Is(err, sql.ErrNoRows) {
				return err
			}
			head = nil
		}
		if head != nil && head.Hash == hash {
			result = head
			return nil
		}

		version := &models.AssetVersion{
			AssetID:  asset.ID,
			UserID:   userId,
			Version:  1,
			Hash:     hash,
			Label:    label,
			Snapshot: snapshot,
		}
		if head != nil {
			version.Version = head.Version + 1
			version.ParentHash = head.Hash
		}
		if _, err := tx.NewInsert().Model(version).Exec(ctx); err != nil {
			return err
		}

		// the log is linear with strictly increasing versions, so the
		// retention cut-off is a plain version threshold
		if keep := svc.Config.MaxVersionsPerAsset; keep > 0 && version.Version > keep {
			_, err := tx.NewDelete().Model((*models.AssetVersion)(nil)).
				Where("asset_id = ?", asset.ID).
				Where("version <= ?", version.Version-keep).
				Exec(ctx)
			if err != nil {
				return err
			}
		}
		result = version
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (svc *ForgeService) VersionsFor(ctx context.Context, assetId int64) ([]models.AssetVersion, error) {
	versions := []models.AssetVersion{}

	err := svc.DB.NewSelect().Model(&versions).
		Where("asset_id = ?", assetId).
		OrderExpr("version DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return versions, nil
}

func (svc *ForgeService) FindVersion(ctx context.Context, assetId int64, version int) (*models.AssetVersion, error) {
	var assetVersion models.AssetVersion

	err := svc.DB.NewSelect().Model(&assetVersion).
		Where("asset_id = ?", assetId).
		Where("version = ?", version).
		Limit(1).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &assetVersion, nil
}

// LatestVersion returns the head of the asset's version log, nil when
// the log is empty.
func (svc *ForgeService) LatestVersion(ctx context.Context, assetId int64) (*models.AssetVersion, error) {
	var version models.AssetVersion

	err := svc.DB.NewSelect().Model(&version).
		Where("asset_id = ?", assetId).
		OrderExpr("version DESC").
		Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &version, nil
}

// DiffSnapshots compares two snapshots key by key. Nested values such
// as metadata are compared by canonical json equality and reported as a
// single changed field.
func DiffSnapshots(from, to map[string]interface{}) []FieldDiff {
	keys := map[string]bool{}
	for k := range from {
		keys[k] = true
	}
	for k := range to {
		keys[k] = true
	}
	sorted := make([]string, 0, len(keys))
	for k := range keys {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)

	diffs := []FieldDiff{}
	for _, k := range sorted {
		fromVal, inFrom := from[k]
		toVal, inTo := to[k]
		switch {
		case !inFrom:
			diffs = append(diffs, FieldDiff{Field: k, Kind: DiffAdded, To: toVal})
		case !inTo:
			diffs = append(diffs, FieldDiff{Field: k, Kind: DiffRemoved, From: fromVal})
		default:
			if !jsonEqual(fromVal, toVal) {
				diffs = append(diffs, FieldDiff{Field: k, Kind: DiffChanged, From: fromVal, To: toVal})
			}
		}
	}
	return diffs
}

func jsonEqual(a, b interface{}) bool {
	aj, errA := json.Marshal(a)
	bj, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(aj, bj)
}

// RestoreVersion writes a stored snapshot back onto the asset and
// appends the restored state to the log, restores never rewrite
// history.
func (svc *ForgeService) RestoreVersion(ctx context.Context, asset *models.Asset, version *models.AssetVersion) (*models.AssetVersion, error) {
	asset.ApplySnapshot(version.Snapshot)
	if _, err := svc.DB.NewUpdate().Model(asset).WherePK().Exec(ctx); err != nil {
		return nil, err
	}
	return svc.SnapshotAsset(ctx, asset, asset.UserID, fmt.Sprintf("restore v%d", version.Version))
}
