package amqp

import (
	"encoding/json"
	"time"
)

const (
	OpAppend = "append"
	OpDelete = "delete"
)

// JournalEvent notifies the mirror worker that the journal changed. It
// carries the full entry so the worker can mirror deletions of rows that no
// longer exist in the database.
type JournalEvent struct {
	Op        string    `json:"op"`
	ID        int64     `json:"id,omitempty"` // database row, append only
	Period    string    `json:"period"`
	Index     int       `json:"index"`
	Date      string    `json:"date"`
	Kind      string    `json:"kind"`
	Amount    int64     `json:"amount"`
	Category  string    `json:"category,omitempty"`
	Note      string    `json:"note,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *JournalEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func JournalEventFromJSON(data []byte) (*JournalEvent, error) {
	var ev JournalEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}
