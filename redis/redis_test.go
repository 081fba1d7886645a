package redis

import (
	"strings"
	"testing"
	"time"

	"github.com/meinhoongagan/taskr/store"
)

func TestEncodeEventShape(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	payload, err := encodeEvent(store.Event{Kind: store.EventBookingStatus, EntityID: "b1", Status: "confirmed", At: at})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	for _, want := range []string{`"kind":"booking.status_changed"`, `"entity_id":"b1"`, `"status":"confirmed"`} {
		if !strings.Contains(payload, want) {
			t.Fatalf("payload %s missing %s", payload, want)
		}
	}

	ev, err := decodeEvent(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !ev.At.Equal(at) || ev.EntityID != "b1" {
		t.Fatalf("unexpected event %+v", ev)
	}
}

func TestObserverDropsWhenFull(t *testing.T) {
	p := &Publisher{events: make(chan store.Event, 1)}
	obs := p.Observer()
	obs(store.Event{Kind: store.EventUserCreated, EntityID: "u1"})
	obs(store.Event{Kind: store.EventUserCreated, EntityID: "u2"})

	if len(p.events) != 1 {
		t.Fatalf("expected one queued event, got %d", len(p.events))
	}
	if ev := <-p.events; ev.EntityID != "u1" {
		t.Fatalf("expected first event kept, got %s", ev.EntityID)
	}
}
