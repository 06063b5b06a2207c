package repositoryImp

import (
	"context"

	"gorm.io/gorm"

	"agrismart/entities"
	"agrismart/pkg/session"
)

// StoreSink persists events into the analytics_events table.
type StoreSink struct{ db *gorm.DB }

func New(db *gorm.DB) *StoreSink { return &StoreSink{db: db} }

func (r *StoreSink) Track(ctx context.Context, name string, params map[string]any) error {
	ev := &entities.AnalyticsEvent{Name: name, SessionID: session.From(ctx), Params: params}
	return r.db.WithContext(ctx).Create(ev).Error
}

// Counts returns the number of stored events per event name.
func (r *StoreSink) Counts(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Name string
		N    int64
	}
	err := r.db.WithContext(ctx).Model(&entities.AnalyticsEvent{}).
		Select("name, count(*) AS n").Group("name").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Name] = row.N
	}
	return out, nil
}
