package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env      string `toml:"env"`
	LogLevel string `toml:"log_level"`

	Host     HostConfigs     `toml:"host"`
	Quest    QuestConfigs    `toml:"quest"`
	Sync     SyncConfigs     `toml:"sync"`
	Claim    ClaimConfigs    `toml:"claim"`
	Redis    RedisConfigs    `toml:"redis"`
	Kafka    KafkaConfigs    `toml:"kafka"`
	Database DatabaseConfigs `toml:"database"`
	Eth      EthConfigs      `toml:"eth"`
	Metrics  ServerConfigs   `toml:"metrics"`
}

// Duration allows durations in configuration files to be written as "60s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}

	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

type HostConfigs struct {
	// Endpoints of the host backend. The api client picks them randomly and
	// falls back to the next one when a call fails.
	Endpoints   []string `toml:"endpoints"`
	AccessToken string   `toml:"access_token"`
	TokenSecret string   `toml:"token_secret"`
	ProjectID   string   `toml:"project_id"`
}

type QuestConfigs struct {
	FreshnessTTL Duration `toml:"freshness_ttl"`
	WaitPeriod   Duration `toml:"wait_period"`
	ClaimPeriod  Duration `toml:"claim_period"`
}

type SyncConfigs struct {
	Interval      Duration `toml:"interval"`
	CacheTTL      Duration `toml:"cache_ttl"`
	CacheRetries  int      `toml:"cache_retries"`
	DedupWindow   Duration `toml:"dedup_window"`
	DefaultRunner string   `toml:"default_runner"`
}

type ClaimConfigs struct {
	ConfirmAttempts    int      `toml:"confirm_attempts"`
	ConfirmRetryDelay  Duration `toml:"confirm_retry_delay"`
	EnabledRewardTypes []string `toml:"enabled_reward_types"`
	GasLimit           uint64   `toml:"gas_limit"`
}

type RedisConfigs struct {
	Enable bool   `toml:"enable"`
	Addr   string `toml:"addr"`
}

type KafkaConfigs struct {
	Enable        bool     `toml:"enable"`
	Addrs         []string `toml:"addrs"`
	ClientID      string   `toml:"client_id"`
	TrackingTopic string   `toml:"tracking_topic"`
}

type DatabaseConfigs struct {
	Driver   string `toml:"driver"`
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Database string `toml:"database"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

func (d *DatabaseConfigs) ConnectionString() string {
	if d.Driver == "sqlite" {
		return d.Database
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type EthConfigs struct {
	PrivateKey string        `toml:"private_key"`
	Chains     []ChainConfig `toml:"chains"`
}

type ChainConfig struct {
	Chain   string   `toml:"chain" json:"chain"`
	ChainID int64    `toml:"chain_id" json:"chain_id"`
	Rpcs    []string `toml:"rpcs" json:"rpcs"`

	// ETH
	UseEip1559 bool `toml:"use_eip_1559" json:"use_eip_1559"` // For gas calculation
}

type ServerConfigs struct {
	Host string `toml:"host"`
	Port string `toml:"port"`
}

func (s ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

// Default returns the configurations used when a field is not provided in the
// configuration file.
func Default() Configs {
	return Configs{
		Env:      "local",
		LogLevel: "info",
		Quest: QuestConfigs{
			FreshnessTTL: Duration{time.Minute},
			WaitPeriod:   Duration{7 * 24 * time.Hour},
			ClaimPeriod:  Duration{24 * time.Hour},
		},
		Sync: SyncConfigs{
			Interval:      Duration{time.Minute},
			CacheTTL:      Duration{5 * time.Minute},
			CacheRetries:  1,
			DedupWindow:   Duration{500 * time.Millisecond},
			DefaultRunner: "hyperplay",
		},
		Claim: ClaimConfigs{
			ConfirmAttempts:    5,
			ConfirmRetryDelay:  Duration{time.Second},
			EnabledRewardTypes: []string{"ERC20", "ERC721", "ERC1155", "POINTS", "EXTERNAL-TASKS"},
			GasLimit:           300000,
		},
		Kafka: KafkaConfigs{
			ClientID:      "questkit",
			TrackingTopic: "quest-tracking",
		},
		Database: DatabaseConfigs{
			Driver:   "sqlite",
			Database: "questkit.db",
		},
		Metrics: ServerConfigs{Host: "127.0.0.1", Port: "9090"},
	}
}
