package amqp

import (
	"encoding/json"
	"time"
)

// RegisterSyncMessage tells the worker which month's payroll register is
// stale. It carries no document data: the worker reloads the document
// from the shared backend, so a lost or reordered message costs nothing
// but freshness.
type RegisterSyncMessage struct {
	Year      int       `json:"year"`
	Month     int       `json:"month"` // 1-12
	Timestamp time.Time `json:"timestamp"`
}

func NewRegisterSyncMessage(year int, month time.Month) *RegisterSyncMessage {
	return &RegisterSyncMessage{
		Year:      year,
		Month:     int(month),
		Timestamp: time.Now(),
	}
}

func (m *RegisterSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func RegisterSyncMessageFromJSON(data []byte) (*RegisterSyncMessage, error) {
	var msg RegisterSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
