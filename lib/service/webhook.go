package service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/hyperforge/hyperforge.go/common"
	"github.com/hyperforge/hyperforge.go/db/models"
)

// StartWebhookSubscription forwards finished generations to the
// configured webhook url. Blocks until ctx is done.
func (svc *ForgeService) StartWebhookSubscription(ctx context.Context) {
	svc.Logger.Infof("Starting webhook subscription with webhook url %s", svc.Config.WebhookUrl)
	completedAssets := make(chan models.Asset)
	failedAssets := make(chan models.Asset)
	svc.AssetPubSub.Subscribe(common.AssetStateCompleted, completedAssets)
	svc.AssetPubSub.Subscribe(common.AssetStateFailed, failedAssets)
	for {
		select {
		case <-ctx.Done():
			return
		case completed := <-completedAssets:
			svc.postToWebhook(completed)
		case failed := <-failedAssets:
			svc.postToWebhook(failed)
		}
	}
}

func (svc *ForgeService) postToWebhook(asset models.Asset) {
	payload := new(bytes.Buffer)
	err := json.NewEncoder(payload).Encode(asset)
	if err != nil {
		svc.Logger.Error(err)
		return
	}

	resp, err := http.Post(svc.Config.WebhookUrl, "application/json", payload)
	if err != nil {
		svc.Logger.Error(err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		msg, err := io.ReadAll(resp.Body)
		if err != nil {
			svc.Logger.Error(err)
		}
		svc.Logger.Errorf("Webhook status code was %d, body: %s", resp.StatusCode, msg)
	}
}
