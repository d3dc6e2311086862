package config

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/event-horizon/common"
	eventsconfig "github.com/gaze-network/event-horizon/modules/events/config"
	"github.com/gaze-network/event-horizon/pkg/logger"
	"github.com/gaze-network/event-horizon/pkg/logger/slogx"
	"github.com/gaze-network/event-horizon/pkg/middleware/requestcontext"
	"github.com/gaze-network/event-horizon/pkg/middleware/requestlogger"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	isInit bool
	mu     sync.Mutex
	config = &Config{
		EnableModules: []string{common.ModuleEvents.String()},
		Logger: logger.Config{
			Output: "TEXT",
		},
		Network: common.NetworkTestnet,
		SuiNode: SuiNodeClient{
			Timeout: 30 * time.Second,
		},
		HTTPServer: HTTPServerConfig{
			Port: 8080,
			Logger: requestlogger.Config{
				SkipPaths: []string{"/", "/metrics"},
			},
		},
		Metrics: MetricsConfig{
			Path: "/metrics",
		},
		Modules: Modules{
			Events: eventsconfig.Config{
				OwnershipSource: eventsconfig.OwnershipSourceOwnedObjects,
				RefreshInterval: 15 * time.Second,
				GasBudget:       50_000_000,
				Database:        "none",
			},
		},
	}
)

type Config struct {
	EnableModules []string         `mapstructure:"enable_modules"`
	APIOnly       bool             `mapstructure:"api_only"`
	Logger        logger.Config    `mapstructure:"logger"`
	Network       common.Network   `mapstructure:"network"`
	SuiNode       SuiNodeClient    `mapstructure:"sui_node"`
	HTTPServer    HTTPServerConfig `mapstructure:"http_server"`
	Metrics       MetricsConfig    `mapstructure:"metrics"`
	Wallet        WalletConfig     `mapstructure:"wallet"`
	Modules       Modules          `mapstructure:"modules"`
}

type Modules struct {
	Events eventsconfig.Config `mapstructure:"events"`
}

type SuiNodeClient struct {
	// URL overrides the network's public fullnode endpoint.
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
	Debug   bool          `mapstructure:"debug"`
}

type HTTPServerConfig struct {
	Port      int                               `mapstructure:"port"`
	Logger    requestlogger.Config              `mapstructure:"logger"`
	RequestIP requestcontext.WithClientIPConfig `mapstructure:"request_ip"`
}

type MetricsConfig struct {
	Disabled bool   `mapstructure:"disabled"`
	Path     string `mapstructure:"path"`
}

// WalletConfig is the connected wallet. An address without a private key
// gives a read-only session.
type WalletConfig struct {
	PrivateKey string `mapstructure:"private_key"` // bech32 `suiprivkey1...`
	Address    string `mapstructure:"address"`
}

// Parse parse the configuration from environment variables
func Parse(configFile ...string) Config {
	mu.Lock()
	defer mu.Unlock()
	return parse(configFile...)
}

// Load returns the loaded configuration
func Load() Config {
	mu.Lock()
	defer mu.Unlock()
	if isInit {
		return *config
	}
	return parse()
}

// BindPFlag binds a specific key to a pflag (as used by cobra).
func BindPFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		logger.Panic("Something went wrong, failed to bind flag for config", slog.String("package", "config"), slogx.Error(err))
	}
}

func parse(configFile ...string) Config {
	ctx := logger.WithContext(context.Background(), slog.String("package", "config"))

	if len(configFile) > 0 && configFile[0] != "" {
		viper.SetConfigFile(configFile[0])
	} else {
		viper.AddConfigPath("./")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if err := viper.ReadInConfig(); err != nil {
		var errNotfound viper.ConfigFileNotFoundError
		if errors.As(err, &errNotfound) {
			logger.WarnContext(ctx, "Config file not found, use default config value", slogx.Error(err))
		} else {
			logger.PanicContext(ctx, "Invalid config file", slogx.Error(err))
		}
	}

	if err := viper.Unmarshal(&config); err != nil {
		logger.PanicContext(ctx, "Something went wrong, failed to unmarshal config", slogx.Error(err))
	}

	isInit = true
	return *config
}
