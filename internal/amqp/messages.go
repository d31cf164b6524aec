package amqp

import (
	"encoding/json"
	"time"
)

// Message kinds routed through the spend sync queue.
const (
	KindSpendSync   = "spend.sync"
	KindSpendDelete = "spend.delete"
)

// SpendMessage is the envelope for ledger mutation events. It carries
// only the record id; the worker reads the full record from the shared
// store, so a stale message never syncs stale data.
type SpendMessage struct {
	Kind      string    `json:"kind"`
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewSpendSyncMessage(id string) *SpendMessage {
	return &SpendMessage{Kind: KindSpendSync, ID: id, Timestamp: time.Now()}
}

func NewSpendDeleteMessage(id string) *SpendMessage {
	return &SpendMessage{Kind: KindSpendDelete, ID: id, Timestamp: time.Now()}
}

func (m *SpendMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func SpendMessageFromJSON(data []byte) (*SpendMessage, error) {
	var msg SpendMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
