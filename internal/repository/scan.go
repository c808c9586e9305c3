package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/joseph-ayodele/linguabridge/internal/common"
)

func millis(t time.Time) int64 { return t.UTC().UnixMilli() }

func fromMillis(ms int64) time.Time { return time.UnixMilli(ms).UTC() }

// notFound maps sql.ErrNoRows onto common.ErrNotFound.
func notFound(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, common.ErrNotFound)
	}
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}
