package config

import (
	"time"

	"github.com/gaze-network/event-horizon/internal/postgres"
)

// Sources of the wallet's tickets and POAPs.
const (
	OwnershipSourceOwnedObjects = "owned_objects"
	OwnershipSourcePlatform     = "platform"
)

type Config struct {
	// PackageID is the published `event_mgnt_sc` package.
	PackageID string `mapstructure:"package_id"`

	// PlatformID is the shared platform object holding all events.
	PlatformID string `mapstructure:"platform_id"`

	// OwnershipSource selects where user tickets and POAPs are read from:
	// "owned_objects" (default) or "platform".
	OwnershipSource string `mapstructure:"ownership_source"`

	// RefreshInterval is the background refresh period. 0 disables polling.
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`

	// GasBudget in MIST for every submitted transaction.
	GasBudget uint64 `mapstructure:"gas_budget"`

	// Database stores the action journal: "none" (default) or "postgres".
	Database string          `mapstructure:"database"`
	Postgres postgres.Config `mapstructure:"postgres"`
}
