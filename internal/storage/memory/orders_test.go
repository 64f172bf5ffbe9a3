package memory

import (
	"testing"

	"github.com/mysmilelab/labsync/internal/domain/model"
)

func TestReplaceAndOrders(t *testing.T) {
	s := NewOrderStore()
	if len(s.Orders()) != 0 {
		t.Fatal("new store must be empty")
	}
	if !s.FetchedAt().IsZero() {
		t.Fatal("fetch time must start zero")
	}

	s.Replace([]model.Order{{ID: 1}, {ID: 2}})
	if len(s.Orders()) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(s.Orders()))
	}
	if s.FetchedAt().IsZero() {
		t.Fatal("fetch time must be stamped")
	}

	s.Replace([]model.Order{{ID: 3}})
	orders := s.Orders()
	if len(orders) != 1 || orders[0].ID != 3 {
		t.Fatalf("replace must drop the old snapshot, got %v", orders)
	}
}

func TestOrdersReturnsCopy(t *testing.T) {
	s := NewOrderStore()
	s.Replace([]model.Order{{ID: 1, Comment: "original"}})

	got := s.Orders()
	got[0].Comment = "mutated"

	if again := s.Orders(); again[0].Comment != "original" {
		t.Fatal("mutating a returned slice must not affect the store")
	}
}

func TestFind(t *testing.T) {
	s := NewOrderStore()
	s.Replace([]model.Order{{ID: 1}, {ID: 7, ExternalID: "B2"}})

	o, ok := s.Find(7)
	if !ok || o.ExternalID != "B2" {
		t.Fatalf("unexpected result: %+v (%v)", o, ok)
	}
	if _, ok := s.Find(99); ok {
		t.Fatal("unknown id must not be found")
	}
}
