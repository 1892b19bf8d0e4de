package repository

import (
	"context"
	"errors"
	"time"

	"library-backend/internal/database"
)

var ErrNotFound = errors.New("record not found")

// scope carries the database handle and default query timeout shared by
// every repository.
type scope struct {
	db      *database.Database
	timeout time.Duration
}

func newScope(db *database.Database) scope {
	return scope{
		db:      db,
		timeout: db.GetQueryTimeout(),
	}
}

func (s scope) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}
