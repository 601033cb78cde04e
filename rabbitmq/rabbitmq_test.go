package rabbitmq_test

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/hyperforge/hyperforge.go/common"
	"github.com/hyperforge/hyperforge.go/db/models"
	"github.com/hyperforge/hyperforge.go/rabbitmq"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
)

type publishedMsg struct {
	exchange string
	key      string
	body     []byte
}

type mockAMQPClient struct {
	mu        sync.Mutex
	exchanges []string
	published []publishedMsg
}

func (m *mockAMQPClient) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	// the publisher reuses its encode buffer, keep a copy
	m.published = append(m.published, publishedMsg{
		exchange: exchange,
		key:      key,
		body:     append([]byte{}, msg.Body...),
	})
	return nil
}

func (m *mockAMQPClient) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exchanges = append(m.exchanges, name)
	return nil
}

func (m *mockAMQPClient) Close() error { return nil }

func (m *mockAMQPClient) snapshot() []publishedMsg {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]publishedMsg{}, m.published...)
}

func TestStartPublishAssetEvents(t *testing.T) {
	t.Parallel()
	amqpClient := &mockAMQPClient{}

	client, err := rabbitmq.NewClient(amqpClient, rabbitmq.WithAssetExchange("test_asset"))
	assert.NoError(t, err)

	events := make(chan models.Asset, 2)
	events <- models.Asset{PublicID: "a1", Category: common.CategoryNPC, State: common.AssetStateCompleted}
	events <- models.Asset{PublicID: "a2", Category: common.CategoryWeapon, State: common.AssetStateFailed}

	subscribeFunc := func() (chan models.Asset, error) {
		return events, nil
	}
	encodeFunc := func(ctx context.Context, w io.Writer, asset models.Asset) error {
		return json.NewEncoder(w).Encode(asset)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		client.StartPublishAssetEvents(ctx, subscribeFunc, encodeFunc)
	}()

	//wait a bit for events to be processed
	time.Sleep(time.Second)

	msgs := amqpClient.snapshot()
	assert.Len(t, msgs, 2)
	assert.Equal(t, "test_asset", msgs[0].exchange)
	assert.Equal(t, "asset.npc.completed", msgs[0].key)
	assert.Equal(t, "asset.weapon.failed", msgs[1].key)

	payload := models.Asset{}
	assert.NoError(t, json.Unmarshal(msgs[0].body, &payload))
	assert.Equal(t, "a1", payload.PublicID)
}
