package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Host         string
	Port         int
	AllowOrigins []string
	LogLevel     string
	LogFile      string
	MaxUploadMB  int

	ReferenceFile       string
	ReferenceReloadCron string // cron spec, empty disables the scheduled reload
	MatchThreshold      int    // accept score, 0..100
}

func Load() Config {
	_ = godotenv.Load()

	port, _ := strconv.Atoi(getenv("PORT", "8082"))
	mb, _ := strconv.Atoi(getenv("MAX_UPLOAD_MB", "64"))
	threshold, _ := strconv.Atoi(getenv("MATCH_THRESHOLD", "80"))
	origins := strings.Split(getenv("ALLOW_ORIGINS", "*"), ",")
	return Config{
		Host:                getenv("HOST", "127.0.0.1"),
		Port:                port,
		AllowOrigins:        origins,
		LogLevel:            getenv("LOG_LEVEL", "info"),
		LogFile:             getenv("LOG_FILE", "logs/jifmatch-service.log"),
		MaxUploadMB:         mb,
		ReferenceFile:       getenv("REFERENCE_FILE", "data/impact_factors.csv"),
		ReferenceReloadCron: getenv("REFERENCE_RELOAD_CRON", ""),
		MatchThreshold:      threshold,
	}
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
