package postgres

import (
	"io/fs"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Los montos se guardan con la precisión que produce el dominio: ninguna columna NUMERIC fija escala.
func TestMigrations_NumericColumnsKeepDomainPrecision(t *testing.T) {
	files, err := fs.Glob(migrationsFS, "migrations/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	scaled := regexp.MustCompile(`(?i)NUMERIC\s*\(`)
	for _, name := range files {
		body, err := fs.ReadFile(migrationsFS, name)
		require.NoError(t, err)
		assert.Falsef(t, scaled.Match(body), "%s declara NUMERIC con escala fija", name)
	}
}
