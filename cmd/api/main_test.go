package main

import (
	"context"
	"testing"
	"time"

	"github.com/dwikikusuma/storefront/pkg/config"
	"github.com/dwikikusuma/storefront/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunReturnsErrorWhenDatabaseUnreachable(t *testing.T) {
	cfg := config.Load()
	cfg.Postgres.Host = "127.0.0.1"
	cfg.Postgres.Port = 1 // nothing listens here

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := run(ctx, cfg, logger.Discard())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db open")
}
