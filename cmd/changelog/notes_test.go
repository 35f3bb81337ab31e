package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleChangelog = `# Changelog

All notable changes to this project will be documented in this file.

## [Unreleased]

### Added
- Certificate watch command

## [0.2.0] - 2026-03-01

### Added
- Database first-run initialization
- Schema migrations

### Fixed
- Health poll no longer sleeps after the first success

## [0.1.0] - 2026-01-16

### Added
- Initial release

[Unreleased]: https://example.com/entrykit/compare/v0.2.0...HEAD
[0.2.0]: https://example.com/entrykit/compare/v0.1.0...v0.2.0
[0.1.0]: https://example.com/entrykit/releases/tag/v0.1.0
`

func TestParseNotes(t *testing.T) {
	notes, err := ParseNotes([]byte(sampleChangelog))
	require.NoError(t, err)

	require.Len(t, notes.Releases, 3)
	assert.Equal(t, "Unreleased", notes.Releases[0].Version)
	assert.Equal(t, "", notes.Releases[0].Date)
	assert.Equal(t, "0.2.0", notes.Releases[1].Version)
	assert.Equal(t, "2026-03-01", notes.Releases[1].Date)

	assert.Contains(t, notes.Releases[1].Body, "Database first-run initialization")
	assert.NotContains(t, notes.Releases[1].Body, "Initial release")

	assert.Equal(t, "https://example.com/entrykit/releases/tag/v0.1.0", notes.Links["0.1.0"])
}

func TestRelease_Lookup(t *testing.T) {
	notes, err := ParseNotes([]byte(sampleChangelog))
	require.NoError(t, err)

	tests := []struct {
		name    string
		version string
		found   bool
	}{
		{name: "exact", version: "0.2.0", found: true},
		{name: "v prefix", version: "v0.1.0", found: true},
		{name: "missing", version: "9.9.9", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			release := notes.Release(tt.version)
			if tt.found {
				require.NotNil(t, release)
			} else {
				assert.Nil(t, release)
			}
		})
	}
}

func TestLint_Valid(t *testing.T) {
	notes, err := ParseNotes([]byte(sampleChangelog))
	require.NoError(t, err)
	assert.Empty(t, Lint(notes))
}

func TestLint_Problems(t *testing.T) {
	const broken = `# Changelog

## [0.2] - March 1st

### Added
- Something
`
	notes, err := ParseNotes([]byte(broken))
	require.NoError(t, err)

	problems := Lint(notes)
	assert.Contains(t, problems, `version "0.2" is not semver`)
	assert.Contains(t, problems, `version "0.2" date "March 1st" is not ISO 8601`)
	assert.Contains(t, problems, `version "0.2" has no link definition`)
	assert.Contains(t, problems, "missing Unreleased section")
}

func TestSplitHeading(t *testing.T) {
	tests := []struct {
		heading string
		version string
		date    string
	}{
		{heading: "[1.2.3] - 2026-01-16", version: "1.2.3", date: "2026-01-16"},
		{heading: "[Unreleased]", version: "Unreleased", date: ""},
		{heading: "0.1.0 - 2026-01-16", version: "0.1.0", date: "2026-01-16"},
	}

	for _, tt := range tests {
		version, date := splitHeading(tt.heading)
		assert.Equal(t, tt.version, version)
		assert.Equal(t, tt.date, date)
	}
}
