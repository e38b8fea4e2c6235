package helper

import (
	"io/fs"
	"testing"

	"dinebook/migrations"

	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/assert"
)

func TestApply_UnknownAction(t *testing.T) {
	err := apply(nil, "sideways")

	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestEmbeddedMigrations(t *testing.T) {
	ups, err := fs.Glob(migrations.Postgres, "postgres/*.up.sql")
	assert.NoError(t, err)

	downs, err := fs.Glob(migrations.Postgres, "postgres/*.down.sql")
	assert.NoError(t, err)

	assert.NotEmpty(t, ups)
	assert.Len(t, downs, len(ups))

	source, err := iofs.New(migrations.Postgres, "postgres")
	assert.NoError(t, err)

	first, err := source.First()
	assert.NoError(t, err)
	assert.Equal(t, uint(1), first)

	// every version can be read in both directions
	for version := first; ; {
		_, _, err = source.ReadUp(version)
		assert.NoError(t, err, "up %d", version)

		_, _, err = source.ReadDown(version)
		assert.NoError(t, err, "down %d", version)

		next, nextErr := source.Next(version)
		if nextErr != nil {
			break
		}

		version = next
	}
}
