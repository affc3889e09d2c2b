package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/campusdesk/internal/pkg/apperrors"
)

var tokenNow = time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

func newTokenRepo(db *fakeDB) *TokenRepository {
	repo := NewTokenRepository(db)
	repo.now = func() time.Time { return tokenNow }
	return repo
}

func scanStoredToken(profileID int64, expiry time.Time, revoked bool) func(dest ...any) error {
	return func(dest ...any) error {
		*(dest[0].(*int64)) = profileID
		*(dest[1].(*time.Time)) = expiry
		*(dest[2].(*bool)) = revoked
		return nil
	}
}

func TestTokenRepository_ConsumeTokenIsGuarded(t *testing.T) {
	db := &fakeDB{rows: []func(dest ...any) error{scanInt(42)}}
	repo := newTokenRepo(db)

	profileID, err := repo.ConsumeToken(context.Background(), "rt-1")

	require.NoError(t, err)
	assert.Equal(t, int64(42), profileID)
	require.Len(t, db.sql, 1)
	assert.Equal(t,
		"UPDATE refresh_tokens SET is_revoked = $1 WHERE is_revoked = $2 AND token = $3 AND expiry_date > $4 RETURNING profile_id",
		db.sql[0])
	assert.Equal(t, []any{true, false, "rt-1", tokenNow}, db.args[0])
}

func TestTokenRepository_ConsumeTokenClassifiesMisses(t *testing.T) {
	tests := []struct {
		name   string
		lookup func(dest ...any) error
		want   error
	}{
		{"unknown", scanErr(pgx.ErrNoRows), apperrors.ErrTokenNotFound},
		{"already consumed", scanStoredToken(42, tokenNow.Add(time.Hour), true), apperrors.ErrTokenRevoked},
		{"expired", scanStoredToken(42, tokenNow.Add(-time.Hour), false), apperrors.ErrTokenExpired},
		// Live on re-read means a concurrent consumer won between the two statements.
		{"lost race", scanStoredToken(42, tokenNow.Add(time.Hour), false), apperrors.ErrTokenRevoked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := &fakeDB{rows: []func(dest ...any) error{scanErr(pgx.ErrNoRows), tt.lookup}}
			repo := newTokenRepo(db)

			profileID, err := repo.ConsumeToken(context.Background(), "rt-1")

			assert.ErrorIs(t, err, tt.want)
			assert.Zero(t, profileID)
			assert.Len(t, db.sql, 2)
		})
	}
}

func TestTokenRepository_RevokeTokenOnlyOnce(t *testing.T) {
	db := &fakeDB{execTag: pgconn.NewCommandTag("UPDATE 1")}
	repo := newTokenRepo(db)

	require.NoError(t, repo.RevokeToken(context.Background(), "rt-1"))
	assert.Equal(t, "UPDATE refresh_tokens SET is_revoked = $1 WHERE is_revoked = $2 AND token = $3", db.sql[0])

	db.execTag = pgconn.NewCommandTag("UPDATE 0")
	assert.ErrorIs(t, repo.RevokeToken(context.Background(), "rt-1"), apperrors.ErrTokenRevoked)
}

func TestTokenRepository_CleanupExpiredTokens(t *testing.T) {
	db := &fakeDB{execTag: pgconn.NewCommandTag("DELETE 7")}
	repo := newTokenRepo(db)

	removed, err := repo.CleanupExpiredTokens(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(7), removed)
	assert.Equal(t,
		"DELETE FROM refresh_tokens WHERE (expiry_date < $1 OR (is_revoked = $2 AND created_at < $3))",
		db.sql[0])
	assert.Equal(t, []any{tokenNow, true, tokenNow.Add(-30 * 24 * time.Hour)}, db.args[0])
}
