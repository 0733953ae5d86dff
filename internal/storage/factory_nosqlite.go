//go:build !sqlite

package storage

import "errors"

func newSQLiteStore(_ string) (Store, error) {
	return nil, errors.New("sqlite expression archive not compiled in; rebuild with -tags sqlite")
}
