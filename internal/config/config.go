package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

const defaultExternalHTTPTimeout = 90 * time.Second
const defaultExternalHTTPTimeoutSeconds = int(defaultExternalHTTPTimeout / time.Second)

type Config struct {
	SlackBotToken   string `yaml:"slack_bot_token"`
	ReportChannelID string `yaml:"report_channel_id"`

	DBPath      string `yaml:"db_path"`
	HeatmapPath string `yaml:"heatmap_path"`

	EmotionColumn string `yaml:"emotion_column"`
	DomainColumn  string `yaml:"domain_column"`

	Schedule      string `yaml:"schedule"`
	ScheduleInput string `yaml:"schedule_input"`
	Timezone      string `yaml:"timezone"`

	ExternalHTTPTimeoutSeconds int `yaml:"external_http_timeout_seconds"`

	Location *time.Location `yaml:"-"` // computed from Timezone, not from YAML
}

func LoadConfig() Config {
	var cfg Config

	configPath := "config.yaml"
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		configPath = envPath
	}
	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			log.Fatalf("Error parsing %s: %v", configPath, err)
		}
		log.Printf("Loaded config from %s", configPath)
	}

	envOverride(&cfg.SlackBotToken, "SLACK_BOT_TOKEN")
	envOverride(&cfg.ReportChannelID, "REPORT_CHANNEL_ID")
	envOverrideAllowEmpty(&cfg.DBPath, "DB_PATH")
	envOverride(&cfg.HeatmapPath, "HEATMAP_PATH")
	envOverride(&cfg.EmotionColumn, "EMOTION_COLUMN")
	envOverride(&cfg.DomainColumn, "DOMAIN_COLUMN")
	envOverride(&cfg.Schedule, "SCHEDULE")
	envOverride(&cfg.ScheduleInput, "SCHEDULE_INPUT")
	envOverride(&cfg.Timezone, "TIMEZONE")
	envOverrideInt(&cfg.ExternalHTTPTimeoutSeconds, "EXTERNAL_HTTP_TIMEOUT_SECONDS")

	if cfg.ExternalHTTPTimeoutSeconds == 0 {
		cfg.ExternalHTTPTimeoutSeconds = defaultExternalHTTPTimeoutSeconds
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "Local"
	}

	if strings.EqualFold(cfg.Timezone, "Local") {
		cfg.Location = time.Local
	} else {
		loc, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			log.Fatalf("invalid timezone '%s': %v", cfg.Timezone, err)
		}
		cfg.Location = loc
	}

	if cfg.ExternalHTTPTimeoutSeconds < 5 {
		log.Fatalf("invalid external_http_timeout_seconds '%d': must be >= 5", cfg.ExternalHTTPTimeoutSeconds)
	}
	if cfg.Schedule != "" {
		if _, err := ParseSchedule(cfg.Schedule); err != nil {
			log.Fatalf("invalid schedule '%s': %v", cfg.Schedule, err)
		}
	}
	if (cfg.SlackBotToken == "") != (cfg.ReportChannelID == "") {
		log.Printf("WARNING: slack_bot_token and report_channel_id must both be set to post summaries; Slack posting disabled.")
	}

	return cfg
}

// ParseSchedule parses a standard 5-field cron expression
// (minute hour day-of-month month day-of-week).
func ParseSchedule(expr string) (cron.Schedule, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	return parser.Parse(strings.TrimSpace(expr))
}

func envOverride(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}

func envOverrideAllowEmpty(field *string, envKey string) {
	if val, ok := os.LookupEnv(envKey); ok {
		*field = val
	}
}

func envOverrideInt(field *int, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			log.Fatalf("invalid %s '%s': %v", envKey, val, err)
		}
		*field = parsed
	}
}

func (c Config) SlackConfigured() bool {
	return c.SlackBotToken != "" && c.ReportChannelID != ""
}

func (c Config) StoreConfigured() bool {
	return strings.TrimSpace(c.DBPath) != ""
}
