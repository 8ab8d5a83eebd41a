package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	BotToken      string        `envconfig:"BOT_TOKEN" required:"true"`
	AdminChatID   int64         `envconfig:"ADMIN_CHAT_ID" required:"true"`
	UsersFile     string        `envconfig:"USERS_FILE" default:"./data/users.json"`
	SchedulesFile string        `envconfig:"SCHEDULES_FILE" default:"./data/schedules.json"`
	APIURL        string        `envconfig:"HL_API_URL" default:"https://api.hyperliquid.xyz/info"`
	APITimeout    time.Duration `envconfig:"HL_API_TIMEOUT" default:"10s"`
	SnapshotTTL   time.Duration `envconfig:"HL_SNAPSHOT_TTL" default:"30s"`
	LogLevel      string        `envconfig:"LOG_LEVEL" default:"info"`  // debug|info|warn|error
	HTTPAddr      string        `envconfig:"HTTP_ADDR" default:":8080"` // healthz
}

// Load reads environment variables into Config.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
