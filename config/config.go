package config

import (
	"encoding/json"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/haseab/tiba-backend/pkg/utils"
)

type ServerConfig struct {
	Port          string
	BaseURL       string
	AllowedOrigin string
	APIKey        string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type TogglConfig struct {
	APIToken string
}

type CalendarConfig struct {
	CredentialsFile string
	CalendarID      string
}

// ReportConfig holds the process-wide report parameters. These used to be
// module-level flags in the old service; making them explicit config means
// no redeploy to change modes.
type ReportConfig struct {
	Timezone            string
	Location            *time.Location
	DayHours            float64
	NeutralActivities   map[string]bool
	DisplayNames        map[string]string
	DistractionSource   string
	DistractionFile     string
	DistractionShortcut string
}

type Config struct {
	Server   ServerConfig
	DB       DatabaseConfig
	Redis    RedisConfig
	Toggl    TogglConfig
	Calendar CalendarConfig
	Report   ReportConfig
	Env      string
}

func LoadConfig() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	timezone := getEnv("TIMEZONE", "America/Toronto")

	return &Config{
		Server: ServerConfig{
			Port:          getEnv("PORT", "3002"),
			BaseURL:       getEnv("BASE_URL", "http://localhost:3002"),
			AllowedOrigin: getEnv("ALLOWED_ORIGIN", ""),
			APIKey:        getEnv("API_KEY", ""),
		},
		DB: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "tiba"),
			Password: getEnv("DB_PASS", ""),
			DBName:   getEnv("DB_NAME", "tiba"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Toggl: TogglConfig{
			APIToken: getEnv("TOGGL_API_TOKEN", ""),
		},
		Calendar: CalendarConfig{
			CredentialsFile: getEnv("GOOGLE_CREDENTIALS_FILE", "credentials.json"),
			CalendarID:      getEnv("GOOGLE_CALENDAR_ID", "primary"),
		},
		Report: ReportConfig{
			Timezone:            timezone,
			Location:            utils.LoadLocation(timezone),
			DayHours:            getEnvFloat("REPORT_DAY_HOURS", 16),
			NeutralActivities:   getEnvSet("NEUTRAL_ACTIVITIES", ""),
			DisplayNames:        getEnvMap("ACTIVITY_DISPLAY_NAMES", "{}"),
			DistractionSource:   getEnv("DISTRACTION_SOURCE", "postgres"),
			DistractionFile:     getEnv("DISTRACTION_FILE", "keyboard_shortcut_launches.csv"),
			DistractionShortcut: getEnv("DISTRACTION_SHORTCUT", "Command + `"),
		},
		Env: getEnv("ENV", "prod"),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: %s=%q is not an integer, using %d", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("Warning: %s=%q is not a number, using %v", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

func getEnvSet(key, defaultValue string) map[string]bool {
	set := make(map[string]bool)
	for _, item := range strings.Split(getEnv(key, defaultValue), ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			set[item] = true
		}
	}
	return set
}

func getEnvMap(key, defaultValue string) map[string]string {
	raw := getEnv(key, defaultValue)
	m := make(map[string]string)
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		log.Printf("Warning: %s is not valid JSON, using empty table: %v", key, err)
	}
	return m
}
