package calendarsync

import (
	"time"

	"github.com/KasumiMercury/primind-jetlag/internal/domain"
)

type SyncResult struct {
	TripID       string            `json:"trip_id"`
	Status       domain.SyncStatus `json:"status"`
	EventIDs     []string          `json:"event_ids"`
	Created      int               `json:"created"`
	Patched      int               `json:"patched"`
	Failed       int               `json:"failed"`
	Deleted      int               `json:"deleted"`
	DeleteFailed []string          `json:"delete_failed,omitempty"`
}

type RemoveResult struct {
	TripID  string   `json:"trip_id"`
	Deleted []string `json:"deleted"`
	Failed  []string `json:"failed"`
}

type StatusResult struct {
	TripID        string            `json:"trip_id"`
	Status        domain.SyncStatus `json:"status"`
	EventsCreated int               `json:"events_created"`
	EventsFailed  int               `json:"events_failed"`
	ErrorMessage  string            `json:"error_message,omitempty"`
	LastSyncedAt  *time.Time        `json:"last_synced_at,omitempty"`
}
