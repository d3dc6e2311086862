package events

const (
	Version = "v0.1.0"

	// DefaultPackageID is the `event_mgnt_sc` package published on testnet.
	DefaultPackageID = "0xeeea3e14b44ebc4db154f243ecfc6cbdbee8390b4c01a6b8cf893a4d5514a65c"
)
