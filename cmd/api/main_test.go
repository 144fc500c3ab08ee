package main

import (
	"context"
	"path/filepath"
	"testing"

	"revenue-model/internal/config"
	"revenue-model/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRunReturnsConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Server
		want string
	}{
		{"bad port", config.Server{Port: "0", Store: "memory", LogLevel: "error"}, "invalid port"},
		{"bad store", config.Server{Port: "8080", Store: "postgres", LogLevel: "error"}, "invalid store"},
		{"bad log level", config.Server{Port: "8080", Store: "memory", LogLevel: "loud"}, "logger"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(&tt.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	repo, err := store.NewSQLite(filepath.Join(t.TempDir(), "revenue.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	ctx := context.Background()
	require.NoError(t, seed(ctx, repo, zap.NewNop()))
	require.NoError(t, seed(ctx, repo, zap.NewNop()))

	all, err := repo.ListScenarios(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].Active)
	units, err := repo.ListUnits(ctx, all[0].ID)
	require.NoError(t, err)
	assert.Len(t, units, len(config.Default().Units))
}
