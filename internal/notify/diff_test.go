package notify

import (
	"testing"

	"github.com/mysmilelab/labsync/internal/domain/model"
)

func TestNewOrdersDisjointSnapshots(t *testing.T) {
	before := []model.Order{{ExternalID: "A1"}}
	after := []model.Order{{ExternalID: "B2"}, {ExternalID: "C3"}}

	fresh := NewOrders(before, after)
	if len(fresh) != 2 {
		t.Fatalf("expected 2 new orders, got %d", len(fresh))
	}
	if fresh[0].ExternalID != "B2" || fresh[1].ExternalID != "C3" {
		t.Fatalf("unexpected new orders: %v", fresh)
	}
}

func TestNewOrdersOverlappingSnapshots(t *testing.T) {
	before := []model.Order{{ExternalID: "A1"}, {ExternalID: "B2"}}
	after := []model.Order{{ExternalID: "B2"}, {ExternalID: "C3"}}

	fresh := NewOrders(before, after)
	if len(fresh) != 1 {
		t.Fatalf("expected 1 new order, got %d", len(fresh))
	}
	if fresh[0].ExternalID != "C3" {
		t.Fatalf("expected C3, got %s", fresh[0].ExternalID)
	}
}

func TestNewOrdersSkipsAlreadyNotified(t *testing.T) {
	before := []model.Order{}
	after := []model.Order{
		{ExternalID: "A1", NewOrderNotified: true},
		{ExternalID: "B2"},
	}

	fresh := NewOrders(before, after)
	if len(fresh) != 1 {
		t.Fatalf("expected 1 new order, got %d", len(fresh))
	}
	if fresh[0].ExternalID != "B2" {
		t.Fatalf("expected B2, got %s", fresh[0].ExternalID)
	}
}

func TestNewOrdersIdenticalSnapshots(t *testing.T) {
	orders := []model.Order{{ExternalID: "A1"}, {ExternalID: "B2"}}
	if fresh := NewOrders(orders, orders); len(fresh) != 0 {
		t.Fatalf("expected no new orders, got %d", len(fresh))
	}
}

func TestNewOrdersEmptyBefore(t *testing.T) {
	after := []model.Order{{ExternalID: "A1"}}
	if fresh := NewOrders(nil, after); len(fresh) != 1 {
		t.Fatalf("expected 1 new order, got %d", len(fresh))
	}
}

// The reference scenario: one known notified order plus one arrival.
func TestNewOrdersReferenceScenario(t *testing.T) {
	before := []model.Order{{ExternalID: "A1", NewOrderNotified: true}}
	after := []model.Order{
		{ExternalID: "A1", NewOrderNotified: true},
		{ExternalID: "B2"},
	}

	fresh := NewOrders(before, after)
	if len(fresh) != 1 {
		t.Fatalf("expected exactly 1 new order, got %d", len(fresh))
	}
	if fresh[0].ExternalID != "B2" {
		t.Fatalf("expected B2, got %s", fresh[0].ExternalID)
	}
}
