package authz

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

// fakeRow and fakeQuerier stand in for a pgx connection so role/password
// logic can be exercised without a live Postgres instance.

type person struct {
	id          int64
	password    string
	isOrganizer bool
}

type fakeRow struct {
	p   person
	err error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*int64)) = r.p.id
	*(dest[1].(*string)) = r.p.password
	*(dest[2].(*bool)) = r.p.isOrganizer
	return nil
}

type fakeQuerier struct {
	byLogin map[string]person
}

func (f fakeQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	login := args[0].(string)
	p, ok := f.byLogin[login]
	if !ok {
		return fakeRow{err: pgx.ErrNoRows}
	}
	return fakeRow{p: p}
}

func newFixture() fakeQuerier {
	return fakeQuerier{byLogin: map[string]person{
		"org":  {id: 1, password: "pw", isOrganizer: true},
		"user": {id: 2, password: "pw", isOrganizer: false},
	}}
}

func TestAuthorize_UnknownLogin(t *testing.T) {
	db := newFixture()
	pw := "pw"
	_, err := Authorize(context.Background(), db, "ghost", &pw, Any)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthorize_WrongPassword(t *testing.T) {
	db := newFixture()
	pw := "wrong"
	_, err := Authorize(context.Background(), db, "org", &pw, Any)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthorize_WrongRole(t *testing.T) {
	db := newFixture()
	pw := "pw"

	_, err := Authorize(context.Background(), db, "user", &pw, Organizer)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = Authorize(context.Background(), db, "org", &pw, User)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthorize_Success(t *testing.T) {
	db := newFixture()
	pw := "pw"

	id, err := Authorize(context.Background(), db, "org", &pw, Organizer)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), id)

	id, err = Authorize(context.Background(), db, "user", &pw, User)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), id)

	id, err = Authorize(context.Background(), db, "user", &pw, Any)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), id)
}

func TestAuthorize_NilPasswordSkipsCheck(t *testing.T) {
	db := newFixture()
	id, err := Authorize(context.Background(), db, "user", nil, Any)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), id)
}

func TestAuthorize_PropagatesOtherErrors(t *testing.T) {
	db := fakeQuerierErr{err: errors.New("connection reset")}
	pw := "pw"
	_, err := Authorize(context.Background(), db, "org", &pw, Any)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnauthorized)
}

type fakeQuerierErr struct{ err error }

func (f fakeQuerierErr) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return fakeRow{err: f.err}
}
