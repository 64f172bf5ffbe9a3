package notify

import "github.com/mysmilelab/labsync/internal/domain/model"

// NewOrders computes which orders arrived between two snapshots. An order is
// a notification candidate only when its external id is absent from the
// before snapshot and its new-order flag is still unset; the flag check
// guards against duplicate emails across overlapping sync cycles.
func NewOrders(before, after []model.Order) []model.Order {
	seen := make(map[string]struct{}, len(before))
	for _, o := range before {
		seen[o.ExternalID] = struct{}{}
	}

	var fresh []model.Order
	for _, o := range after {
		if _, ok := seen[o.ExternalID]; ok {
			continue
		}
		if o.NewOrderNotified {
			continue
		}
		fresh = append(fresh, o)
	}
	return fresh
}
