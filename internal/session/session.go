// Package session holds the optional database handle and gates every
// request behind a successful open.
package session

import (
	"context"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"go-confcore/internal/config"
	"go-confcore/internal/domain"
)

// Session is a single-assignment, read-after-open slot for the database
// pool. The dispatcher borrows it read-only for every non-open request.
type Session struct {
	pool *pgxpool.Pool
	cfg  config.Config
	log  zerolog.Logger
}

// New constructs a Session with no pool open yet.
func New(cfg config.Config, log zerolog.Logger) *Session {
	return &Session{cfg: cfg, log: log}
}

// Open establishes the database handle and applies the bootstrap migration.
// A second Open on an already-open Session closes the prior pool first and
// opens a fresh one, rather than erroring.
func (s *Session) Open(ctx context.Context, baza, login, password string) error {
	if s.pool != nil {
		s.pool.Close()
		s.pool = nil
	}

	dsn := fmt.Sprintf("postgres://%s:%s@localhost/%s", login, password, baza)

	var pool *pgxpool.Pool
	connect := func() error {
		attemptCtx, cancel := context.WithTimeout(ctx, s.cfg.ConnectTimeout)
		defer cancel()

		p, err := pgxpool.New(attemptCtx, dsn)
		if err != nil {
			return err
		}
		if err := p.Ping(attemptCtx); err != nil {
			p.Close()
			return err
		}
		pool = p
		return nil
	}

	b := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), s.cfg.ConnectMaxRetries),
		ctx,
	)
	if err := backoff.Retry(connect, b); err != nil {
		return newSessionErr("open", fmt.Errorf("connecting to %s: %w", baza, err))
	}

	if err := s.bootstrap(ctx, pool); err != nil {
		pool.Close()
		return err
	}

	s.pool = pool
	s.log.Debug().Str("baza", baza).Msg("session opened")
	return nil
}

// bootstrap probes the store with checkScript; on failure it applies
// installScript. Both run inside one transaction so a partial install never
// leaves the schema half-built.
func (s *Session) bootstrap(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, checkScript); err == nil {
		return nil
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return newSessionErr("open", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, installScript); err != nil {
		return newSessionErr("open", fmt.Errorf("installing schema: %w", err))
	}
	if err := tx.Commit(ctx); err != nil {
		return newSessionErr("open", err)
	}
	s.log.Debug().Msg("schema installed")
	return nil
}

// Store returns the domain.Store bound to the open pool, or ErrNoConnection
// if open has not yet succeeded.
func (s *Session) Store() (*domain.Store, error) {
	if s.pool == nil {
		return nil, domain.ErrNoConnection
	}
	return domain.NewStore(s.pool), nil
}

// Close releases the pool, if any.
func (s *Session) Close() {
	if s.pool != nil {
		s.pool.Close()
		s.pool = nil
	}
}

func newSessionErr(op string, err error) error {
	return &domain.SessionError{Error: domain.Error{Op: op, Err: err}}
}
