package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		bind:          "0.0.0.0",
		boardPool:     100,
		gracePeriod:   5 * time.Minute,
		historySize:   50,
		port:          8080,
		roomMaxAge:    2 * time.Hour,
		sweepInterval: 10 * time.Minute,
	}
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, validConfig().validate())

	cfg := validConfig()
	cfg.tlsCert = "cert.pem"
	assert.Error(t, cfg.validate())

	cfg.tlsKey = "key.pem"
	assert.NoError(t, cfg.validate())

	cfg = validConfig()
	cfg.port = 0
	assert.Error(t, cfg.validate())

	cfg = validConfig()
	cfg.port = 65536
	assert.Error(t, cfg.validate())

	cfg = validConfig()
	cfg.historySize = 0
	assert.Error(t, cfg.validate())

	cfg = validConfig()
	cfg.boardPool = 0
	assert.Error(t, cfg.validate())

	cfg = validConfig()
	cfg.sweepInterval = 500 * time.Millisecond
	assert.Error(t, cfg.validate())
}

func TestConfigScheme(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, "http", cfg.scheme())

	cfg.tlsCert = "cert.pem"
	cfg.tlsKey = "key.pem"
	assert.Equal(t, "https", cfg.scheme())
}
