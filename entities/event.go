package entities

import "time"

type AnalyticsEvent struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"index" json:"name"`
	SessionID string         `gorm:"index" json:"session_id,omitempty"`
	Params    map[string]any `gorm:"serializer:json" json:"params,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
