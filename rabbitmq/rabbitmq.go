package rabbitmq

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/getsentry/sentry-go"
	"github.com/hyperforge/hyperforge.go/common"
	"github.com/hyperforge/hyperforge.go/db/models"
	"github.com/labstack/gommon/log"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/ziflex/lecho/v3"
)

// bufPool reuses encode buffers between published events. With a single
// publisher routine there is only ever one buffer in here.
var bufPool = sync.Pool{
	New: func() interface{} { return new(bytes.Buffer) },
}

const (
	contentTypeJSON = "application/json"
)

type (
	SubscribeToAssetEventsFunc = func() (events chan models.Asset, err error)
	EncodeAssetEventFunc       = func(ctx context.Context, w io.Writer, asset models.Asset) error
)

type Client interface {
	StartPublishAssetEvents(context.Context, SubscribeToAssetEventsFunc, EncodeAssetEventFunc) error
	// Close will close all connections to rabbitmq
	Close() error
}

type DefaultClient struct {
	amqpClient AMQPClient

	logger *lecho.Logger

	assetExchange string
}

type ClientOption = func(client *DefaultClient)

func WithAssetExchange(exchange string) ClientOption {
	return func(client *DefaultClient) {
		client.assetExchange = exchange
	}
}

func WithLogger(logger *lecho.Logger) ClientOption {
	return func(client *DefaultClient) {
		client.logger = logger
	}
}

func NewClient(amqpClient AMQPClient, options ...ClientOption) (Client, error) {
	client := &DefaultClient{
		amqpClient: amqpClient,

		logger: lecho.New(
			os.Stdout,
			lecho.WithLevel(log.DEBUG),
			lecho.WithTimestamp(),
		),

		assetExchange: "hyperforge_asset",
	}

	for _, opt := range options {
		opt(client)
	}

	return client, nil
}

func (client *DefaultClient) Close() error { return client.amqpClient.Close() }

// StartPublishAssetEvents forwards every asset state change to the
// asset exchange so companion services (game server, discord bot) can
// react without polling the api.
func (client *DefaultClient) StartPublishAssetEvents(ctx context.Context, subscribeFunc SubscribeToAssetEventsFunc, encodeFunc EncodeAssetEventFunc) error {
	err := client.amqpClient.ExchangeDeclare(
		client.assetExchange,
		// topic exchanges let consumers bind on routing key patterns
		// like asset.npc.* or asset.*.completed
		"topic",
		// Durable and Non-Auto-Deleted exchanges will survive server restarts and remain
		// declared when there are no remaining bindings.
		true,
		false,
		// Non-Internal exchange's accept direct publishing
		false,
		// Nowait: We set this to false as we want to wait for a server response
		// to check whether the exchange was created succesfully
		false,
		nil,
	)
	if err != nil {
		return err
	}

	client.logger.Info("Starting rabbitmq asset event publisher")

	events, err := subscribeFunc()
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return context.Canceled
		case asset := <-events:
			err = client.publishToAssetExchange(ctx, asset, encodeFunc)
			if err != nil {
				captureErr(client.logger, err)
			}
		}
	}
}

func (client *DefaultClient) publishToAssetExchange(ctx context.Context, asset models.Asset, encodeFunc EncodeAssetEventFunc) error {
	payload := bufPool.Get().(*bytes.Buffer)
	payload.Reset()
	defer bufPool.Put(payload)

	err := encodeFunc(ctx, payload, asset)
	if err != nil {
		return err
	}

	key := fmt.Sprintf("%s.%s.%s", common.AssetEventRoutingPrefix, asset.Category, asset.State)

	err = client.amqpClient.PublishWithContext(ctx,
		client.assetExchange,
		key,
		false,
		false,
		amqp.Publishing{
			ContentType: contentTypeJSON,
			Body:        payload.Bytes(),
		},
	)
	if err != nil {
		return err
	}

	client.logger.Debugf("Published asset event %s for asset %s", key, asset.PublicID)

	return nil
}

func captureErr(logger *lecho.Logger, err error) {
	logger.Error(err)
	sentry.CaptureException(err)
}
