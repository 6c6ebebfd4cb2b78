package repository

import (
	"context"
	"time"

	"github.com/questx-lab/questkit/internal/entity"
	"github.com/questx-lab/questkit/pkg/xcontext"
)

type TrackingEventFilter struct {
	Event string
	Since time.Time
	Limit int
}

type TrackingEventRepository interface {
	Create(ctx context.Context, data *entity.TrackingEvent) error
	GetList(ctx context.Context, filter TrackingEventFilter) ([]entity.TrackingEvent, error)
	Count(ctx context.Context, event string) (int64, error)
}

type trackingEventRepository struct{}

func NewTrackingEventRepository() *trackingEventRepository {
	return &trackingEventRepository{}
}

func (r *trackingEventRepository) Create(ctx context.Context, data *entity.TrackingEvent) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *trackingEventRepository) GetList(
	ctx context.Context, filter TrackingEventFilter,
) ([]entity.TrackingEvent, error) {
	var result []entity.TrackingEvent
	tx := xcontext.DB(ctx).Model(&entity.TrackingEvent{}).Order("created_at DESC")

	if filter.Event != "" {
		tx = tx.Where("event=?", filter.Event)
	}

	if !filter.Since.IsZero() {
		tx = tx.Where("created_at>=?", filter.Since)
	}

	if filter.Limit > 0 {
		tx = tx.Limit(filter.Limit)
	}

	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *trackingEventRepository) Count(ctx context.Context, event string) (int64, error) {
	var result int64
	err := xcontext.DB(ctx).Model(&entity.TrackingEvent{}).
		Where("event=?", event).
		Count(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}
