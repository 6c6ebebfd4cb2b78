package xcontext

import (
	"context"
	"net/http"

	"github.com/jonboulle/clockwork"
	"github.com/questx-lab/questkit/config"
	"github.com/questx-lab/questkit/pkg/logger"
	"gorm.io/gorm"
)

type (
	loggerKey  struct{}
	configsKey struct{}
	clockKey   struct{}
	dbKey      struct{}
	httpKey    struct{}
)

func WithLogger(ctx context.Context, l logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// Logger returns the logger of this context. A context without logger uses a
// logger which only writes errors.
func Logger(ctx context.Context) logger.Logger {
	l, ok := ctx.Value(loggerKey{}).(logger.Logger)
	if !ok {
		return logger.NewLogger(logger.ERROR)
	}

	return l
}

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

// Configs returns the configurations of this context, or the default ones if
// they were not set.
func Configs(ctx context.Context) config.Configs {
	cfg, ok := ctx.Value(configsKey{}).(config.Configs)
	if !ok {
		return config.Default()
	}

	return cfg
}

func WithClock(ctx context.Context, clock clockwork.Clock) context.Context {
	return context.WithValue(ctx, clockKey{}, clock)
}

func Clock(ctx context.Context) clockwork.Clock {
	clock, ok := ctx.Value(clockKey{}).(clockwork.Clock)
	if !ok {
		return clockwork.NewRealClock()
	}

	return clock
}

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

// DB returns the database of this context bound to it, or nil if there is no
// database.
func DB(ctx context.Context) *gorm.DB {
	db, ok := ctx.Value(dbKey{}).(*gorm.DB)
	if !ok {
		return nil
	}

	return db.WithContext(ctx)
}

func WithHTTPClient(ctx context.Context, client *http.Client) context.Context {
	return context.WithValue(ctx, httpKey{}, client)
}

func HTTPClient(ctx context.Context) *http.Client {
	client, ok := ctx.Value(httpKey{}).(*http.Client)
	if !ok {
		return http.DefaultClient
	}

	return client
}
