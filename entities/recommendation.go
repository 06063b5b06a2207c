package entities

import "time"

// Kinds of saved recommendations.
const (
	KindAnalysis = "analysis"
	KindAdvisory = "advisory"
)

type SavedRecommendation struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	Kind      string         `gorm:"index" json:"kind"` // analysis|advisory
	SessionID string         `gorm:"index" json:"session_id,omitempty"`
	Input     map[string]any `gorm:"serializer:json" json:"input"`
	Output    map[string]any `gorm:"serializer:json" json:"output"`
	CreatedAt time.Time      `json:"created_at"`
}
