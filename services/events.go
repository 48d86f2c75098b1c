// services/events.go - in-process pub/sub for per-game realtime events
package services

import (
	"encoding/json"
	"sync"
)

// GameEvent is the payload published to a game's subscribers.
type GameEvent struct {
	Type    string `json:"type"`
	GameID  uint   `json:"game_id"`
	QuestID uint   `json:"quest_id,omitempty"`
	TeamID  uint   `json:"team_id,omitempty"`
	Title   string `json:"title,omitempty"`
	Correct *bool  `json:"correct,omitempty"`
}

const (
	EventQuestActivated      = "quest_activated"
	EventQuestFinalized      = "quest_finalized"
	EventSubmissionEvaluated = "submission_evaluated"
)

// EventBroker fans out JSON-encoded events to websocket subscribers,
// keyed by game ID.
type EventBroker struct {
	mu   sync.RWMutex
	subs map[uint]map[chan []byte]struct{}
}

func NewEventBroker() *EventBroker {
	return &EventBroker{
		subs: make(map[uint]map[chan []byte]struct{}),
	}
}

// Subscribe returns a channel receiving events for the given game.
func (b *EventBroker) Subscribe(gameID uint) chan []byte {
	ch := make(chan []byte, 16)
	b.mu.Lock()
	if b.subs[gameID] == nil {
		b.subs[gameID] = make(map[chan []byte]struct{})
	}
	b.subs[gameID][ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a channel from the game's subscribers.
func (b *EventBroker) Unsubscribe(gameID uint, ch chan []byte) {
	b.mu.Lock()
	delete(b.subs[gameID], ch)
	if len(b.subs[gameID]) == 0 {
		delete(b.subs, gameID)
	}
	b.mu.Unlock()
}

// Publish sends an event to all subscribers of the given game.
func (b *EventBroker) Publish(event GameEvent) {
	data, _ := json.Marshal(event)
	b.mu.RLock()
	for ch := range b.subs[event.GameID] {
		select {
		case ch <- data:
		default:
			// Drop if subscriber is slow.
		}
	}
	b.mu.RUnlock()
}
