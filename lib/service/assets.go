package service

import (
	"context"
	"database/sql"
	"strings"

	"github.com/hyperforge/hyperforge.go/db/models"
	"github.com/hyperforge/hyperforge.go/storage"
	qrcode "github.com/skip2/go-qrcode"
	"github.com/uptrace/bun"
)

type AssetFilter struct {
	Category string
	State    string
	Source   string
	Query    string
	Limit    int
	Offset   int
}

func (svc *ForgeService) FindAsset(ctx context.Context, assetId int64) (*models.Asset, error) {
	var asset models.Asset

	err := svc.DB.NewSelect().Model(&asset).Where("id = ?", assetId).Limit(1).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

// FindAssetByPublicID scopes the lookup to the owning user, api
// consumers never see numeric ids.
func (svc *ForgeService) FindAssetByPublicID(ctx context.Context, publicID string, userId int64) (*models.Asset, error) {
	var asset models.Asset

	err := svc.DB.NewSelect().Model(&asset).
		Where("public_id = ?", publicID).
		Where("user_id = ?", userId).
		Limit(1).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

func (svc *ForgeService) AssetsFor(ctx context.Context, userId int64, filter AssetFilter) ([]models.Asset, error) {
	assets := []models.Asset{}

	query := svc.DB.NewSelect().Model(&assets).Where("user_id = ?", userId)
	if filter.Category != "" {
		query.Where("category = ?", filter.Category)
	}
	if filter.State != "" {
		query.Where("state = ?", filter.State)
	}
	if filter.Source != "" {
		query.Where("source = ?", filter.Source)
	}
	if filter.Query != "" {
		// lower+like instead of ilike so the sqlite dev setup behaves the same
		query.Where("lower(name) LIKE ?", "%"+strings.ToLower(filter.Query)+"%")
	}
	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	query.OrderExpr("id DESC").Limit(limit)
	if filter.Offset > 0 {
		query.Offset(filter.Offset)
	}
	err := query.Scan(ctx)
	if err != nil {
		return nil, err
	}
	return assets, nil
}

func (svc *ForgeService) VariantsFor(ctx context.Context, userId int64, parentAssetId int64) ([]models.Asset, error) {
	assets := []models.Asset{}

	err := svc.DB.NewSelect().Model(&assets).
		Where("user_id = ?", userId).
		Where("parent_asset_id = ?", parentAssetId).
		OrderExpr("id DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return assets, nil
}

// AssetPublicIDs resolves asset row ids to their public ids in one
// query, used when job listings are mapped to responses.
func (svc *ForgeService) AssetPublicIDs(ctx context.Context, assetIds []int64) (map[int64]string, error) {
	result := map[int64]string{}
	if len(assetIds) == 0 {
		return result, nil
	}
	var assets []models.Asset
	err := svc.DB.NewSelect().Model(&assets).
		Column("id", "public_id").
		Where("id IN (?)", bun.In(assetIds)).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	for _, asset := range assets {
		result[asset.ID] = asset.PublicID
	}
	return result, nil
}

// FindSharedAsset looks an asset up by public id without the owner
// scope, for the unauthenticated share endpoints.
func (svc *ForgeService) FindSharedAsset(ctx context.Context, publicID string) (*models.Asset, error) {
	var asset models.Asset

	err := svc.DB.NewSelect().Model(&asset).Where("public_id = ?", publicID).Limit(1).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

// ShareURL is the public viewer link for an asset.
func (svc *ForgeService) ShareURL(publicID string) string {
	return strings.TrimSuffix(svc.Config.ViewerBaseUrl, "/") + "/assets/" + publicID
}

// AssetShareQR renders the share link as a png qr code, scanned from
// the studio to open a model on a phone.
func (svc *ForgeService) AssetShareQR(publicID string) ([]byte, error) {
	return qrcode.Encode(svc.ShareURL(publicID), qrcode.Medium, 256)
}

// DeleteAsset removes the asset with its jobs and versions. Export
// records are kept, they are an audit trail. Storage objects are
// deleted best-effort afterwards, an orphaned file is preferable to a
// deleted asset that still renders in the library.
func (svc *ForgeService) DeleteAsset(ctx context.Context, asset *models.Asset) error {
	err := svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*models.GenerationJob)(nil)).Where("asset_id = ?", asset.ID).Exec(ctx); err != nil {
			return err
		}
		if _, err := tx.NewDelete().Model((*models.AssetVersion)(nil)).Where("asset_id = ?", asset.ID).Exec(ctx); err != nil {
			return err
		}
		if _, err := tx.NewDelete().Model(asset).WherePK().Exec(ctx); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	pathsByBucket := map[string][]string{}
	for _, rawURL := range []string{asset.ModelURL, asset.ThumbnailURL, asset.ConceptArtURL, asset.VrmURL} {
		bucket, path, ok := storage.ParsePublicURL(rawURL)
		if !ok {
			continue
		}
		pathsByBucket[bucket] = append(pathsByBucket[bucket], path)
	}
	for bucket, paths := range pathsByBucket {
		if err := svc.StorageClient.Delete(ctx, bucket, paths...); err != nil {
			svc.Logger.Errorf("Could not delete storage objects in %s: %v", bucket, err)
		}
	}
	return nil
}
