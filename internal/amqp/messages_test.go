package amqp

import (
	"testing"
	"time"
)

func TestRegisterSyncMessageRoundTrip(t *testing.T) {
	msg := NewRegisterSyncMessage(2024, time.March)
	if msg.Year != 2024 || msg.Month != 3 {
		t.Fatalf("message = %+v", msg)
	}
	if msg.Timestamp.IsZero() {
		t.Fatal("timestamp not set")
	}

	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	decoded, err := RegisterSyncMessageFromJSON(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Year != msg.Year || decoded.Month != msg.Month {
		t.Fatalf("decoded = %+v, want %+v", decoded, msg)
	}
}

func TestRegisterSyncMessageFromJSONRejectsGarbage(t *testing.T) {
	if _, err := RegisterSyncMessageFromJSON([]byte("{not json")); err == nil {
		t.Fatal("expected error for malformed message")
	}
}
