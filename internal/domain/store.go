// Package domain implements the relational conference model: the mutating
// commands and reporting queries, against a pgx connection pool.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-confcore/internal/authz"
)

// Talk lifecycle states.
const (
	StatusProposed = "Proposed"
	StatusAccepted = "Accepted"
	StatusRejected = "Rejected"
)

// pgUniqueViolation is Postgres' SQLSTATE for a unique constraint breach.
const pgUniqueViolation = "23505"

// Store wraps a pool of connections to a single database and implements
// every domain command and query.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore adopts an already-open pool. Session owns opening/closing it.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// querier is satisfied by *pgxpool.Pool and pgx.Tx alike, so the lookup
// helpers below work identically inside or outside a transaction.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

var _ querier = (*pgxpool.Pool)(nil)
var _ querier = (pgx.Tx)(nil)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func authorize(ctx context.Context, db querier, login string, password *string, role authz.Role) (int64, error) {
	id, err := authz.Authorize(ctx, db, login, password, role)
	if err != nil {
		if errors.Is(err, authz.ErrUnauthorized) {
			return 0, newAuth("authorize", err)
		}
		return 0, newStore("authorize", err)
	}
	return id, nil
}

func personIDByLogin(ctx context.Context, db querier, login string) (int64, error) {
	return authorize(ctx, db, login, nil, authz.Any)
}

func eventByName(ctx context.Context, db querier, op, eventName string) (id int64, start, end time.Time, err error) {
	err = db.QueryRow(ctx,
		`SELECT id, start_timestamp, end_timestamp FROM events WHERE eventname = $1`, eventName).
		Scan(&id, &start, &end)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, time.Time{}, time.Time{}, newValidation(op, "eventname", eventName, errors.New("event not found"))
		}
		return 0, time.Time{}, time.Time{}, newStore(op, err)
	}
	return id, start, end, nil
}

func talkByTag(ctx context.Context, db querier, op, tag string) (id int64, status string, err error) {
	err = db.QueryRow(ctx, `SELECT id, status FROM talks WHERE talk = $1`, tag).Scan(&id, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, "", newValidation(op, "talk", tag, errors.New("talk not found"))
		}
		return 0, "", newStore(op, err)
	}
	return id, status, nil
}
