package dto

import "github.com/mysmilelab/labsync/internal/domain/model"

// IntervalRequest changes the auto-sync cadence.
type IntervalRequest struct {
	Minutes int `json:"minutes" binding:"required"`
}

// AutoSyncStateResponse describes the scheduler as seen by the dashboard.
type AutoSyncStateResponse struct {
	Running         bool              `json:"running"`
	IntervalMinutes int               `json:"intervalMinutes"`
	LastReport      *model.TickReport `json:"lastReport,omitempty"`
}
