package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/jonboulle/clockwork"
	"github.com/questx-lab/questkit/config"
	"github.com/questx-lab/questkit/internal/client/hostapi"
	"github.com/questx-lab/questkit/internal/domain/activewallet"
	"github.com/questx-lab/questkit/internal/domain/playstreak"
	"github.com/questx-lab/questkit/internal/domain/queststatus"
	"github.com/questx-lab/questkit/internal/domain/rewardclaim"
	"github.com/questx-lab/questkit/internal/host"
	"github.com/questx-lab/questkit/internal/querycache"
	"github.com/questx-lab/questkit/internal/repository"
	"github.com/questx-lab/questkit/internal/telemetry"
	"github.com/questx-lab/questkit/pkg/authenticator"
	"github.com/questx-lab/questkit/pkg/blockchain"
	"github.com/questx-lab/questkit/pkg/blockchain/eth"
	"github.com/questx-lab/questkit/pkg/kafka"
	"github.com/questx-lab/questkit/pkg/logger"
	"github.com/questx-lab/questkit/pkg/xcontext"
	"github.com/questx-lab/questkit/pkg/xredis"
	"github.com/urfave/cli/v2"
)

type srv struct {
	app   *cli.App
	ctx   context.Context
	clock clockwork.Clock

	cache  *querycache.Cache
	wallet *eth.Wallet
	host   *questHost
	kafka  *telemetry.KafkaTracker

	resolver     *queststatus.Resolver
	reconciler   *activewallet.Reconciler
	orchestrator *rewardclaim.Orchestrator
	scheduler    *playstreak.Scheduler
}

// questHost composes the host backend, the telemetry sinks and the session
// into the capabilities the domains need.
type questHost struct {
	*hostapi.Client
	host.Telemetry
	host.Session
}

var _ host.Host = (*questHost)(nil)

func (s *srv) load(c *cli.Context) error {
	s.ctx = context.Background()
	s.clock = clockwork.NewRealClock()
	s.ctx = xcontext.WithClock(s.ctx, s.clock)

	if err := s.loadConfig(c.String("config")); err != nil {
		return err
	}

	if err := s.loadLogger(); err != nil {
		return err
	}

	if err := s.loadCache(); err != nil {
		return err
	}

	if err := s.loadWallet(); err != nil {
		return err
	}

	tracker, err := s.loadTelemetry()
	if err != nil {
		return err
	}

	s.loadHost(tracker)
	s.loadDomains()
	return nil
}

func (s *srv) loadConfig(path string) error {
	cfg := config.Default()
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return err
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	s.ctx = xcontext.WithConfigs(s.ctx, cfg)
	return nil
}

func (s *srv) loadLogger() error {
	level, err := logger.ParseLevel(xcontext.Configs(s.ctx).LogLevel)
	if err != nil {
		return err
	}

	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(level))
	return nil
}

func (s *srv) loadCache() error {
	cfg := xcontext.Configs(s.ctx).Redis
	if !cfg.Enable {
		s.cache = querycache.NewInMemory(s.clock)
		return nil
	}

	redisClient, err := xredis.NewClient(s.ctx, cfg.Addr)
	if err != nil {
		return err
	}

	s.cache = querycache.New(querycache.NewRedisStore(redisClient), s.clock)
	return nil
}

func (s *srv) loadWallet() error {
	cfg := xcontext.Configs(s.ctx)
	if cfg.Eth.PrivateKey == "" {
		xcontext.Logger(s.ctx).Warnf("No private key is configured, only off-chain rewards can be claimed")
		return nil
	}

	wallet, err := eth.NewWallet(cfg.Eth, cfg.Claim.GasLimit)
	if err != nil {
		return err
	}

	s.wallet = wallet
	return nil
}

func (s *srv) loadTelemetry() (host.Telemetry, error) {
	cfg := xcontext.Configs(s.ctx)
	trackers := []host.Telemetry{telemetry.NewLogTracker()}

	if cfg.Kafka.Enable {
		publisher, err := kafka.NewPublisher(cfg.Kafka.ClientID, cfg.Kafka.Addrs)
		if err != nil {
			return nil, err
		}

		s.kafka = telemetry.NewKafkaTracker(publisher, cfg.Kafka.TrackingTopic, s.clock)
		trackers = append(trackers, s.kafka)
	}

	if cfg.Database.Driver != "" {
		db, err := repository.NewDatabase(cfg.Database)
		if err != nil {
			return nil, err
		}

		trackers = append(trackers, telemetry.NewStoreTracker(
			db, repository.NewTrackingEventRepository(), s.clock))
	}

	return telemetry.Multi(trackers...), nil
}

func (s *srv) loadHost(tracker host.Telemetry) {
	cfg := xcontext.Configs(s.ctx).Host

	var signer hostapi.Signer
	if s.wallet != nil {
		signer = s.wallet
	}

	engine := authenticator.NewTokenEngine[authenticator.AccessToken](cfg.TokenSecret, time.Hour)
	s.host = &questHost{
		Client:    hostapi.NewWithEndpoints(cfg.Endpoints, cfg.AccessToken, signer),
		Telemetry: tracker,
		Session:   authenticator.NewSession(engine, cfg.AccessToken),
	}
}

func (s *srv) loadDomains() {
	var wallet blockchain.Wallet
	if s.wallet != nil {
		wallet = s.wallet
	}

	s.resolver = queststatus.NewResolver(s.host, s.cache)
	s.reconciler = activewallet.NewReconciler(s.host, s.cache)
	s.orchestrator = rewardclaim.NewOrchestrator(s.host, wallet, s.cache, s.clock)
	s.scheduler = playstreak.NewScheduler(s.host, s.cache, s.clock)
}

func (s *srv) close(*cli.Context) error {
	if s.scheduler != nil {
		s.scheduler.StopAll()
	}

	if s.kafka != nil {
		ctx, cancel := context.WithTimeout(s.ctx, 5*time.Second)
		defer cancel()
		if err := s.kafka.Stop(ctx); err != nil {
			xcontext.Logger(s.ctx).Warnf("Cannot stop tracking publisher: %v", err)
		}
	}

	if s.wallet != nil {
		s.wallet.Close()
	}

	return nil
}
