package main

import (
	"log"
	"time"

	appconfig "blogify-backend/internal/config"
	"blogify-backend/pkg/container"
)

// Config holds the worker's own knobs, taken from the already validated
// application config.
type Config struct {
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	DigestInterval time.Duration
	JobConfig      appconfig.JobConfig
}

func loadConfig(c *container.Container) *Config {
	cfg := &Config{
		RedisAddr:      c.Config.Redis.Host,
		RedisPassword:  c.Config.Redis.Password,
		RedisDB:        c.Config.Redis.DB,
		DigestInterval: c.Config.Jobs.DigestInterval,
		JobConfig:      c.Config.Jobs,
	}

	log.Printf("[Config] Redis: %s, digest interval: %s",
		cfg.RedisAddr, cfg.DigestInterval)

	return cfg
}
