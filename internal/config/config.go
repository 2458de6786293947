package config

import (
	"fmt"
	"lol-overlay/internal/constants"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	GameName string
	TagLine  string

	Region   string
	Platform string

	// derived from Region/Platform; tests point these at local servers
	RegionalBaseURL string
	PlatformBaseURL string

	DDragonLocale string

	DBPath     string
	ServerPort string
	OverlayDir string
	StatsFile  string
	LogLevel   string

	UpdateInterval time.Duration
	MatchCount     int
	MasteryCount   int
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		GameName:       getEnv("GAME_NAME", ""),
		TagLine:        getEnv("TAG_LINE", ""),
		Region:         getEnv("RIOT_REGION", constants.DefaultRegion),
		Platform:       getEnv("RIOT_PLATFORM", constants.DefaultPlatform),
		DDragonLocale:  getEnv("DDRAGON_LOCALE", constants.DefaultLocale),
		DBPath:         getEnv("DB_PATH", "overlay.db"),
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		OverlayDir:     getEnv("OVERLAY_DIR", "overlay"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		UpdateInterval: getEnvDuration("UPDATE_INTERVAL", constants.UpdateInterval),
		MatchCount:     getEnvInt("MATCH_COUNT", constants.MatchCount),
		MasteryCount:   getEnvInt("MASTERY_COUNT", constants.MasteryCount),
	}

	cfg.RegionalBaseURL = fmt.Sprintf("https://%s.api.riotgames.com", cfg.Region)
	cfg.PlatformBaseURL = fmt.Sprintf("https://%s.api.riotgames.com", cfg.Platform)
	cfg.StatsFile = getEnv("STATS_FILE", cfg.OverlayDir+"/stats.json")

	if cfg.GameName == "" || cfg.TagLine == "" {
		return nil, fmt.Errorf("GAME_NAME and TAG_LINE are required")
	}

	logger.Info().
		Str("game_name", cfg.GameName).
		Str("tag_line", cfg.TagLine).
		Str("region", cfg.Region).
		Str("platform", cfg.Platform).
		Str("server_port", cfg.ServerPort).
		Str("stats_file", cfg.StatsFile).
		Dur("update_interval", cfg.UpdateInterval).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

var Module = fx.Provide(Load)
