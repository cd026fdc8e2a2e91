// Copyright (c) 2026 Evan Bronson.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port                 int
	DatabaseURL          string
	DatabaseType         string
	BaseURL              string
	AppBasePath          string
	IdentityURL          string
	SuperAdmin           string
	EmailDomain          string
	JudgeCodeExpiryHours int
}

// ParseFlags validates flags and fills in defaults from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("hackboard", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3100 // default
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType == "postgres" {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = "file:hackboard.db"
	}

	cfg.BaseURL = strings.TrimRight(os.Getenv("BASE_URL"), "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:" + strconv.Itoa(cfg.Port)
	}

	cfg.AppBasePath = os.Getenv("APP_BASE_PATH")
	if cfg.AppBasePath == "" {
		cfg.AppBasePath = "/"
	}

	// Identity service is required; every authenticated route depends on it
	cfg.IdentityURL = strings.TrimRight(os.Getenv("IDENTITY_URL"), "/")
	if cfg.IdentityURL == "" {
		return Config{}, errors.New("IDENTITY_URL required")
	}

	cfg.SuperAdmin = strings.ToLower(os.Getenv("SUPER_ADMIN_EMAIL"))
	cfg.EmailDomain = strings.ToLower(os.Getenv("EMAIL_DOMAIN"))

	if hoursStr := os.Getenv("JUDGE_CODE_EXPIRY_HOURS"); hoursStr != "" {
		hours, err := strconv.Atoi(hoursStr)
		if err != nil || hours <= 0 {
			return Config{}, errors.New("invalid JUDGE_CODE_EXPIRY_HOURS env variable")
		}
		cfg.JudgeCodeExpiryHours = hours
	} else {
		cfg.JudgeCodeExpiryHours = 168 // one week
	}

	return cfg, nil
}
