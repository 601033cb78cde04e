package service

import (
	"sync"

	"github.com/google/uuid"
	"github.com/hyperforge/hyperforge.go/db/models"
)

// Pubsub fans out asset updates to in-process subscribers. Topics are
// either an asset state or a user id, publishers post to both.
type Pubsub struct {
	mu   sync.RWMutex
	subs map[string]map[string]chan models.Asset
}

func NewPubsub() *Pubsub {
	ps := &Pubsub{}
	ps.subs = make(map[string]map[string]chan models.Asset)
	return ps
}

func (ps *Pubsub) Subscribe(topic string, ch chan models.Asset) (subId string) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.subs[topic] == nil {
		ps.subs[topic] = make(map[string]chan models.Asset)
	}
	subId = uuid.NewString()
	ps.subs[topic][subId] = ch
	return subId
}

func (ps *Pubsub) Unsubscribe(id string, topic string) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.subs[topic] == nil {
		return
	}
	if ps.subs[topic][id] == nil {
		return
	}
	close(ps.subs[topic][id])
	delete(ps.subs[topic], id)
}

func (ps *Pubsub) Publish(topic string, msg models.Asset) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	if ps.subs[topic] == nil {
		return
	}

	for _, ch := range ps.subs[topic] {
		ch <- msg
	}
}
