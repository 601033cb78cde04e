package service

import (
	"context"
	"encoding/json"
	"io"

	"github.com/hyperforge/hyperforge.go/common"
	"github.com/hyperforge/hyperforge.go/db/models"
)

type assetEvent struct {
	models.Asset
	OwnerLogin string `json:"owner_login"`
}

// SubscribeAssetEvents returns a channel carrying every asset state
// change external consumers care about.
func (svc *ForgeService) SubscribeAssetEvents() (chan models.Asset, error) {
	assetChan := make(chan models.Asset)
	svc.AssetPubSub.Subscribe(common.AssetStatePreview, assetChan)
	svc.AssetPubSub.Subscribe(common.AssetStateCompleted, assetChan)
	svc.AssetPubSub.Subscribe(common.AssetStateFailed, assetChan)
	return assetChan, nil
}

// EncodeAssetWithOwner writes the amqp payload for an asset event, the
// owner's login is resolved so consumers do not need our user table.
func (svc *ForgeService) EncodeAssetWithOwner(ctx context.Context, w io.Writer, asset models.Asset) error {
	user, err := svc.FindUser(ctx, asset.UserID)
	if err != nil {
		return err
	}
	return json.NewEncoder(w).Encode(assetEvent{Asset: asset, OwnerLogin: user.Login})
}
