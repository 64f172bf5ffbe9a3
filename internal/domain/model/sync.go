package model

import "time"

// SyncState is the ephemeral outcome of one platform sync attempt.
type SyncState string

const (
	SyncStateLoading SyncState = "loading"
	SyncStateSuccess SyncState = "success"
	SyncStateError   SyncState = "error"
	// SyncStateSkipped marks platforms that were not called at all
	// (not connected, or no sync endpoint).
	SyncStateSkipped SyncState = "skipped"
)

// SyncStatus is the per-platform status badge shown after a sync. Entries
// are held only in memory and cleared shortly after the sync completes.
type SyncStatus struct {
	Platform   Platform  `json:"plateforme"`
	State      SyncState `json:"state"`
	Message    string    `json:"message,omitempty"`
	SavedCount int       `json:"savedCount"`
	At         time.Time `json:"at"`
}

// TickReport aggregates the outcome of one auto-sync cycle.
type TickReport struct {
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	// Skipped is true when the cycle found another cycle in flight and
	// did nothing.
	Skipped             bool `json:"skipped"`
	PlatformsSynced     int  `json:"platformsSynced"`
	PlatformsFailed     int  `json:"platformsFailed"`
	PlatformsSkipped    int  `json:"platformsSkipped"`
	NewOrders           int  `json:"newOrders"`
	NotificationsSent   int  `json:"notificationsSent"`
	NotificationsFailed int  `json:"notificationsFailed"`
}
