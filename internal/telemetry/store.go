package telemetry

import (
	"context"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/questx-lab/questkit/internal/entity"
	"github.com/questx-lab/questkit/internal/host"
	"github.com/questx-lab/questkit/internal/repository"
	"github.com/questx-lab/questkit/pkg/xcontext"
	"gorm.io/gorm"
)

// StoreTracker saves tracked events to the database.
type StoreTracker struct {
	db    *gorm.DB
	repo  repository.TrackingEventRepository
	clock clockwork.Clock
}

func NewStoreTracker(
	db *gorm.DB,
	repo repository.TrackingEventRepository,
	clock clockwork.Clock,
) *StoreTracker {
	return &StoreTracker{db: db, repo: repo, clock: clock}
}

func (t *StoreTracker) TrackEvent(ctx context.Context, ev host.TrackEvent) {
	err := t.repo.Create(xcontext.WithDB(ctx, t.db), &entity.TrackingEvent{
		Base: entity.Base{
			ID:        uuid.NewString(),
			CreatedAt: t.clock.Now(),
		},
		Event:      ev.Event,
		Properties: ev.Properties,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot save tracking event %s: %v", ev.Event, err)
	}
}

func (t *StoreTracker) LogError(context.Context, string, *host.LogOptions) {}

func (t *StoreTracker) LogInfo(context.Context, string) {}
