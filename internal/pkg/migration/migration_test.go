package migration

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabaseURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/gomotor?sslmode=disable", DatabaseURL("postgres://u:p@db:5432/gomotor?sslmode=disable"))
	assert.Equal(t, "pgx5://u@db/gomotor", DatabaseURL("postgresql://u@db/gomotor"))
	assert.Equal(t, "pgx5://already", DatabaseURL("pgx5://already"))
}

func TestEmbeddedFilesArePaired(t *testing.T) {
	entries, err := fs.ReadDir(files, "sql")
	require.NoError(t, err)

	ups, downs := map[string]bool{}, map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		}
	}

	require.NotEmpty(t, ups)
	assert.Equal(t, ups, downs)
}

func TestSeededPolicies(t *testing.T) {
	b, err := fs.ReadFile(files, "sql/000001_identity.up.sql")
	require.NoError(t, err)

	for _, line := range []string{
		"('p', 'admin', '*', '*')",
		"('p', 'sales', 'catalog.vehicles', 'read')",
		"('p', 'sales', 'lead.leads', 'write')",
		"('p', 'sales', 'identity.profile', '*')",
	} {
		assert.Contains(t, string(b), line)
	}
}
