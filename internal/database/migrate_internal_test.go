package database

import (
	"errors"
	"io"
	"io/fs"
	"testing"

	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_Sequence(t *testing.T) {
	src, err := iofs.New(migrationsFS, "migrations")
	require.NoError(t, err)

	defer src.Close()

	version, err := src.First()
	require.NoError(t, err)

	versions := []uint{version}

	for {
		next, err := src.Next(version)
		if errors.Is(err, fs.ErrNotExist) {
			break
		}

		require.NoError(t, err)

		versions = append(versions, next)
		version = next
	}

	assert.Equal(t, []uint{1, 2, 3}, versions)

	for _, v := range versions {
		r, _, err := src.ReadDown(v)
		require.NoError(t, err, "version %d has no down migration", v)
		r.Close()
	}
}

// Entry columns must hold every value entry validation accepts: amounts with
// more than two decimals, years past int32 and descriptions of any length.
func TestMigrations_EntryColumnsMatchValidation(t *testing.T) {
	src, err := iofs.New(migrationsFS, "migrations")
	require.NoError(t, err)

	defer src.Close()

	r, _, err := src.ReadUp(3)
	require.NoError(t, err)

	defer r.Close()

	body, err := io.ReadAll(r)
	require.NoError(t, err)

	sql := string(body)
	assert.Regexp(t, `description\s+TYPE TEXT`, sql)
	assert.Regexp(t, `year\s+TYPE BIGINT`, sql)
	assert.Regexp(t, `value\s+TYPE NUMERIC;`, sql)
}
