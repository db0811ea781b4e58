package registry

import (
	"testing"

	"github.com/bjwhitworth/cricket-data/internal/model"
)

func TestAllocator_HighWaterMark(t *testing.T) {
	records := []model.MasterRecord{
		{VenueID: "ven_000003"},
		{VenueID: "ven_000117"},
		{VenueID: "ven_000009"},
	}

	alloc := NewAllocator(records)
	if got := alloc.Next(); got != "ven_000118" {
		t.Errorf("expected ven_000118, got %s", got)
	}
	if got := alloc.Next(); got != "ven_000119" {
		t.Errorf("expected ven_000119, got %s", got)
	}
}

func TestAllocator_IgnoresMalformedIDs(t *testing.T) {
	records := []model.MasterRecord{
		{VenueID: "ven_000005"},
		{VenueID: "venue_000999"},
		{VenueID: "ven_abc"},
		{VenueID: ""},
		{VenueID: " ven_000007 "}, // whitespace tolerated
	}

	alloc := NewAllocator(records)
	if got := alloc.Next(); got != "ven_000008" {
		t.Errorf("expected ven_000008, got %s", got)
	}
}

func TestAllocator_EmptyRegistryStartsAtOne(t *testing.T) {
	alloc := NewAllocator(nil)
	if got := alloc.Next(); got != "ven_000001" {
		t.Errorf("expected ven_000001, got %s", got)
	}
}
