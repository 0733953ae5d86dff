package storage

import "fmt"

// NewStore builds the expression archive for the requested backend kind. An
// empty kind selects the in-memory archive.
func NewStore(kind, sqlitePath string) (Store, error) {
	switch kind {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return newSQLiteStore(sqlitePath)
	default:
		return nil, fmt.Errorf("unknown expression store kind %q (want memory or sqlite)", kind)
	}
}

// CloseIfSupported closes archives that hold external resources; the
// in-memory archive has none and is left as is.
func CloseIfSupported(store Store) error {
	closer, ok := store.(interface{ Close() error })
	if !ok {
		return nil
	}
	return closer.Close()
}
