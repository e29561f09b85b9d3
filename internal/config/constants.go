package config

import "time"

// Application names and files.
const (
	AppName        = "sprintsync"
	ConfigName     = "sprintsync"
	EnvPrefix      = "SPRINTSYNC"
	GuestDBFile    = "guest.db"
	LocalStoreDir  = "local"
	LogFileName    = "sprintsync.log"
	DefaultEnvFile = ".env"
)

// Runtime defaults.
const (
	DefaultRefreshInterval = 5 * time.Minute
	DefaultRouteCacheTTL   = 5 * time.Minute
	DefaultHistoryLimit    = 50
	DefaultPersistDebounce = 300 * time.Millisecond
	DefaultTheme           = "default"
	MaxHistoryLimit        = 1000
)
