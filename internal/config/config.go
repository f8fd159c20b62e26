/* Copyright (c) 2026 Manivannan Senthilrajan
 * SPDX-License-Identifier: BSD-3-Clause */
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv   string
	TZ       string
	HTTPAddr string
	LogLevel string

	DBDSN string

	GitLabBaseURL string
	GitLabToken   string
	GitLabProject string

	CommentaryFile string
	ActivityFile   string

	OpenAIKey     string
	OpenAIModel   string
	OpenAITimeout time.Duration

	RefreshCron string
	HTTPTimeout time.Duration
	PerPage     int
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" { return def }
	return v
}

func atoi(key string, def int) int {
	v := os.Getenv(key)
	if v == "" { return def }
	i, err := strconv.Atoi(v)
	if err != nil { return def }
	return i
}

func dur(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" { return def }
	d, err := time.ParseDuration(v)
	if err != nil { return def }
	return d
}

func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		AppEnv:   getenv("APP_ENV", "dev"),
		TZ:       getenv("APP_TZ", "Europe/London"),
		HTTPAddr: getenv("HTTP_ADDR", ":8080"),
		LogLevel: getenv("LOG_LEVEL", ""),

		DBDSN: getenv("DB_DSN", ""),

		GitLabBaseURL: strings.TrimRight(getenv("GITLAB_BASE_URL", "https://gitlab.com"), "/"),
		GitLabToken:   getenv("GITLAB_TOKEN", ""),
		GitLabProject: getenv("GITLAB_PROJECT_ID", ""),

		CommentaryFile: getenv("COMMENTARY_FILE", "sprint_commentary.json"),
		ActivityFile:   getenv("ACTIVITY_FILE", "user_activity.json"),

		OpenAIKey:     getenv("OPENAI_API_KEY", ""),
		OpenAIModel:   getenv("OPENAI_MODEL", "gpt-4.1-mini"),
		OpenAITimeout: dur("OPENAI_TIMEOUT", 20*time.Second),

		RefreshCron: getenv("REFRESH_CRON", ""),
		HTTPTimeout: dur("HTTP_TIMEOUT", 15*time.Second),
		PerPage:     atoi("GITLAB_PER_PAGE", 100),
	}

	if cfg.PerPage <= 0 || cfg.PerPage > 100 { cfg.PerPage = 100 }

	// set global timezone if available
	if loc, err := time.LoadLocation(cfg.TZ); err == nil {
		time.Local = loc
	} else {
		log.Printf("warning: cannot load TZ %s: %v", cfg.TZ, err)
	}
	return cfg
}
