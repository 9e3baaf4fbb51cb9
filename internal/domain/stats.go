package domain

import "time"

// ProfileStats aggregates a user's history for the profile view.
type ProfileStats struct {
	Total        int64      `json:"total"`
	Level1Count  int64      `json:"level1_count"`
	Level2Count  int64      `json:"level2_count"`
	StarredCount int64      `json:"starred_count"`
	LastActive   *time.Time `json:"last_active,omitempty"`
}
