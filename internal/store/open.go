package store

import "fmt"

// Open returns the backend named by kind ("memory" or "sqlite").
func Open(kind, dbPath string) (Repository, error) {
	switch kind {
	case "memory":
		return NewMemory(), nil
	case "sqlite":
		return NewSQLite(dbPath)
	default:
		return nil, fmt.Errorf("unknown store %q", kind)
	}
}
