package database

import (
	"testing"

	modelspkg "hearth/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersistentModels_IncludesKarmaTransaction(t *testing.T) {
	found := false
	for _, model := range PersistentModels() {
		if _, ok := model.(*modelspkg.KarmaTransaction); ok {
			found = true
			break
		}
	}
	require.True(t, found, "PersistentModels should include KarmaTransaction")
}

func TestRegisterMigrations_OrderedAndPaired(t *testing.T) {
	ms := GetMigrations()
	require.NotEmpty(t, ms)

	prev := 0
	for _, m := range ms {
		assert.Greater(t, m.Version, prev, "migrations must be strictly ordered")
		assert.NotEmpty(t, m.UpScript)
		assert.NotEmpty(t, m.DownScript)
		prev = m.Version
	}
}
