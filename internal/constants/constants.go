package constants

import "time"

const (
	UpdateInterval     = 60 * time.Second
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
	CycleTimeout       = 45 * time.Second
)

const (
	DefaultRegion   = "europe"
	DefaultPlatform = "euw1"
	DefaultLocale   = "en_US"

	// used when the ddragon versions endpoint is unreachable
	FallbackDataDragonVersion = "13.24.1"

	MatchCount   = 5
	MasteryCount = 5
)

const (
	// keys shipped in docs and examples look like this and are not usable
	PlaceholderKeyPrefix = "RGAPI-XXXX"
	RiotKeyPrefix        = "RGAPI-"
)

const (
	ShutdownTimeout = 5 * time.Second
)
