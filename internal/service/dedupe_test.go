package service

import (
	"testing"
	"time"
)

func TestEventDeduperMarksFirstDelivery(t *testing.T) {
	d := NewEventDeduper(time.Hour)

	if !d.MarkProcessed("evt_1") {
		t.Error("first delivery reported as duplicate")
	}
	if d.MarkProcessed("evt_1") {
		t.Error("second delivery of the same id reported as new")
	}
	if !d.MarkProcessed("evt_2") {
		t.Error("different event id reported as duplicate")
	}
}

func TestEventDeduperExpiry(t *testing.T) {
	now := time.Unix(5000, 0)
	d := NewEventDeduper(time.Hour)
	d.now = func() time.Time { return now }

	if !d.MarkProcessed("evt_1") {
		t.Fatal("first delivery reported as duplicate")
	}

	now = now.Add(30 * time.Minute)
	if d.MarkProcessed("evt_1") {
		t.Error("delivery inside the TTL reported as new")
	}

	now = now.Add(31 * time.Minute)
	if !d.MarkProcessed("evt_1") {
		t.Error("delivery after the TTL still reported as duplicate")
	}
}
