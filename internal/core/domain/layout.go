package domain

import (
	"os"
	"path/filepath"
)

const (
	// IkonDirName is the name of the per-user cache directory.
	IkonDirName = "ikon"

	// SetsDirName is the name of the icon set cache directory.
	SetsDirName = "sets"

	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "ikon.yaml"

	// SQLiteFileName is the default name of the sqlite cache database.
	SQLiteFileName = "sets.db"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultCachePath returns the default directory for the persistent icon set cache.
// It joins the user cache directory, ikon and sets, and falls back to .ikon/sets.
func DefaultCachePath() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join("."+IkonDirName, SetsDirName)
	}
	return filepath.Join(base, IkonDirName, SetsDirName)
}

// DefaultSQLitePath returns the default sqlite database path inside dir.
func DefaultSQLitePath(dir string) string {
	return filepath.Join(dir, SQLiteFileName)
}
