package footnotes

import (
	"embed"

	"github.com/goliatone/go-cms-footnotes/internal/migrations"
)

// GetMigrationsFS returns the embedded migration files, one directory per
// dialect under data/.
func GetMigrationsFS() embed.FS {
	return migrations.FS()
}
