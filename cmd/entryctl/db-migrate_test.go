package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlembicRevision(t *testing.T) {
	names := []string{
		"20240301000001_create_player_stats.up.sql",
		"20240301000001_create_player_stats.down.sql",
		"20240301000002_create_scheduled_offline.up.sql",
		"20240301000002_create_scheduled_offline.down.sql",
		"20260116000003_add_tickets.up.sql",
		"20260116000003_add_tickets.down.sql",
	}

	tests := []struct {
		name     string
		version  int64
		expected string
	}{
		{name: "latest", version: 20260116000003, expected: "20260116_add_tickets"},
		{name: "first", version: 20240301000001, expected: "20240301_create_player_stats"},
		{name: "same day sequence", version: 20240301000002, expected: "20240301_create_scheduled_offline"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			revision, err := alembicRevision(names, tt.version)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, revision)
		})
	}
}

func TestAlembicRevision_UnknownVersion(t *testing.T) {
	names := []string{"20260116000003_add_tickets.up.sql"}

	_, err := alembicRevision(names, 20990101000001)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no migration file found")
}

func TestAlembicRevision_IgnoresDownFiles(t *testing.T) {
	// Only a down file exists for the version, so there is nothing to map.
	names := []string{"20260116000003_add_tickets.down.sql"}

	_, err := alembicRevision(names, 20260116000003)
	require.Error(t, err)
}
