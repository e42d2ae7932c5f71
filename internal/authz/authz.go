// Package authz resolves a (login, password?, required-role) tuple into an
// internal person id. It is the sole gate commands and queries pass through
// before touching the store.
package authz

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Role constrains which persons may satisfy an authorization check.
type Role int

const (
	// Any accepts either an organizer or a regular user.
	Any Role = iota
	// User requires is_organizer = false.
	User
	// Organizer requires is_organizer = true.
	Organizer
)

// ErrUnauthorized collapses not-found, wrong-password and wrong-role into a
// single outcome; callers never learn which one occurred.
var ErrUnauthorized = errors.New("authz: unauthorized")

// Authorize selects the person by login, optionally checks password, and
// constrains on role. password may be nil when looking up a party by login
// alone (a talk's speaker, or a friend-intent target).
func Authorize(ctx context.Context, db pgxQuerier, login string, password *string, role Role) (int64, error) {
	var id int64
	var storedPassword string
	var isOrganizer bool

	err := db.QueryRow(ctx, `SELECT id, password, is_organizer FROM persons WHERE login = $1`, login).
		Scan(&id, &storedPassword, &isOrganizer)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrUnauthorized
		}
		return 0, err
	}

	if password != nil && *password != storedPassword {
		return 0, ErrUnauthorized
	}

	switch role {
	case User:
		if isOrganizer {
			return 0, ErrUnauthorized
		}
	case Organizer:
		if !isOrganizer {
			return 0, ErrUnauthorized
		}
	}

	return id, nil
}

// pgxQuerier is satisfied by *pgxpool.Pool and pgx.Tx alike, so Authorize
// can run inside a caller's transaction.
type pgxQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ pgxQuerier = (*pgxpool.Pool)(nil)
var _ pgxQuerier = (pgx.Tx)(nil)
