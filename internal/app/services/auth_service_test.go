package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/campusdesk/internal/app/models"
	"github.com/yigit/campusdesk/internal/app/models/dto"
	"github.com/yigit/campusdesk/internal/cache"
	"github.com/yigit/campusdesk/internal/pkg/apperrors"
	pkgauth "github.com/yigit/campusdesk/internal/pkg/auth"
	"github.com/yigit/campusdesk/internal/pkg/validation"
)

// ── Mock ProfileStore ──

type mockProfileStore struct {
	byID      map[int64]*models.Profile
	nextID    int64
	lastLogin map[int64]time.Time
}

func newMockProfileStore() *mockProfileStore {
	return &mockProfileStore{byID: map[int64]*models.Profile{}, lastLogin: map[int64]time.Time{}}
}

func (m *mockProfileStore) add(t *testing.T, email, password string, role models.Role, active bool) *models.Profile {
	t.Helper()
	hash, err := pkgauth.HashPassword(password)
	require.NoError(t, err)
	p := &models.Profile{Email: email, PasswordHash: hash, FullName: "Test User", Role: role, IsActive: active}
	require.NoError(t, m.CreateWithPassword(context.Background(), p))
	return p
}

func (m *mockProfileStore) GetByID(_ context.Context, id int64) (*models.Profile, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, apperrors.NewResourceNotFoundError("profile not found")
	}
	cp := *p
	cp.PasswordHash = ""
	return &cp, nil
}

func (m *mockProfileStore) GetWithCredentials(_ context.Context, id int64) (*models.Profile, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, apperrors.NewResourceNotFoundError("profile not found")
	}
	cp := *p
	return &cp, nil
}

func (m *mockProfileStore) GetByEmail(_ context.Context, email string) (*models.Profile, error) {
	for _, p := range m.byID {
		if p.Email == strings.ToLower(email) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, apperrors.NewResourceNotFoundError("profile not found")
}

func (m *mockProfileStore) CreateWithPassword(_ context.Context, p *models.Profile) error {
	for _, existing := range m.byID {
		if existing.Email == strings.ToLower(p.Email) {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	m.nextID++
	p.ID = m.nextID
	p.Email = strings.ToLower(p.Email)
	cp := *p
	m.byID[p.ID] = &cp
	return nil
}

func (m *mockProfileStore) UpdatePassword(_ context.Context, id int64, hash string) error {
	m.byID[id].PasswordHash = hash
	return nil
}

func (m *mockProfileStore) TouchLastLogin(_ context.Context, id int64, at time.Time) error {
	m.lastLogin[id] = at
	return nil
}

// ── Mock TokenStore ──

type tokenRecord struct {
	profileID int64
	expiry    time.Time
	revoked   bool
}

type mockTokenStore struct {
	tokens map[string]*tokenRecord
}

func newMockTokenStore() *mockTokenStore {
	return &mockTokenStore{tokens: map[string]*tokenRecord{}}
}

func (m *mockTokenStore) CreateToken(_ context.Context, token string, profileID int64, expiry time.Time) error {
	m.tokens[token] = &tokenRecord{profileID: profileID, expiry: expiry}
	return nil
}

func (m *mockTokenStore) ConsumeToken(_ context.Context, token string) (int64, error) {
	rec, ok := m.tokens[token]
	switch {
	case !ok:
		return 0, apperrors.ErrTokenNotFound
	case rec.revoked:
		return 0, apperrors.ErrTokenRevoked
	case rec.expiry.Before(time.Now()):
		return 0, apperrors.ErrTokenExpired
	}
	rec.revoked = true
	return rec.profileID, nil
}

func (m *mockTokenStore) RevokeToken(_ context.Context, token string) error {
	rec, ok := m.tokens[token]
	if !ok || rec.revoked {
		return apperrors.ErrTokenRevoked
	}
	rec.revoked = true
	return nil
}

func (m *mockTokenStore) RevokeAllProfileTokens(_ context.Context, profileID int64) error {
	for _, rec := range m.tokens {
		if rec.profileID == profileID {
			rec.revoked = true
		}
	}
	return nil
}

type authFixture struct {
	svc       *AuthService
	profiles  *mockProfileStore
	tokens    *mockTokenStore
	blacklist *cache.MemoryStore
	jwt       *pkgauth.JWTService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		profiles:  newMockProfileStore(),
		tokens:    newMockTokenStore(),
		blacklist: cache.NewMemoryStore(),
		jwt: pkgauth.NewJWTService(pkgauth.JWTConfig{
			SecretKey:       "test-secret",
			AccessTokenExp:  time.Hour,
			RefreshTokenExp: 24 * time.Hour,
			TokenIssuer:     "campusdesk-test",
		}),
	}
	f.svc = NewAuthService(f.profiles, f.tokens, f.blacklist, f.jwt, validation.New())
	return f
}

func TestAuthService_SignUpStudent(t *testing.T) {
	f := newAuthFixture()

	session, err := f.svc.SignUp(context.Background(), &dto.SignUpRequest{
		Email: "Jane@School.edu", Password: "secret123", FullName: "Jane Doe", Role: models.RoleStudent,
	})

	require.NoError(t, err)
	assert.Equal(t, "/student", session.LandingPath)
	assert.Equal(t, "jane@school.edu", session.Profile.Email)
	assert.Empty(t, session.Profile.PasswordHash)
	require.NotNil(t, session.Token)
	assert.Equal(t, "Bearer", session.Token.TokenType)
	assert.Contains(t, f.tokens.tokens, session.Token.RefreshToken)
}

func TestAuthService_SignUpRejectsAdminRole(t *testing.T) {
	f := newAuthFixture()

	_, err := f.svc.SignUp(context.Background(), &dto.SignUpRequest{
		Email: "root@school.edu", Password: "secret123", FullName: "Root", Role: models.RoleAdmin,
	})

	fields, ok := validation.AsFieldErrors(err)
	require.True(t, ok)
	assert.Contains(t, fields, "role")
	assert.Empty(t, f.profiles.byID)
}

func TestAuthService_SignUpWeakPassword(t *testing.T) {
	f := newAuthFixture()

	_, err := f.svc.SignUp(context.Background(), &dto.SignUpRequest{
		Email: "a@school.edu", Password: "onlyletters", FullName: "Weak", Role: models.RoleLecturer,
	})

	fields, ok := validation.AsFieldErrors(err)
	require.True(t, ok)
	assert.Equal(t, "password must contain at least one digit", fields["password"])
}

func TestAuthService_SignIn(t *testing.T) {
	f := newAuthFixture()
	lecturer := f.profiles.add(t, "lect@school.edu", "secret123", models.RoleLecturer, true)
	f.profiles.add(t, "gone@school.edu", "secret123", models.RoleStudent, false)

	t.Run("success", func(t *testing.T) {
		session, err := f.svc.SignIn(context.Background(), &dto.LoginRequest{Email: "lect@school.edu", Password: "secret123"})
		require.NoError(t, err)
		assert.Equal(t, "/lecturer", session.LandingPath)
		assert.Equal(t, lecturer.ID, session.Profile.ID)
		assert.Empty(t, session.Profile.PasswordHash)
		assert.Contains(t, f.profiles.lastLogin, lecturer.ID)

		claims, err := f.jwt.ValidateAndExtractClaims(session.Token.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, models.RoleLecturer, claims.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := f.svc.SignIn(context.Background(), &dto.LoginRequest{Email: "lect@school.edu", Password: "nope12345"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := f.svc.SignIn(context.Background(), &dto.LoginRequest{Email: "who@school.edu", Password: "secret123"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("inactive", func(t *testing.T) {
		_, err := f.svc.SignIn(context.Background(), &dto.LoginRequest{Email: "gone@school.edu", Password: "secret123"})
		assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
	})
}

func TestAuthService_RefreshRotatesToken(t *testing.T) {
	f := newAuthFixture()
	f.profiles.add(t, "s@school.edu", "secret123", models.RoleStudent, true)

	first, err := f.svc.SignIn(context.Background(), &dto.LoginRequest{Email: "s@school.edu", Password: "secret123"})
	require.NoError(t, err)

	second, err := f.svc.Refresh(context.Background(), first.Token.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.Token.RefreshToken, second.Token.RefreshToken)
	assert.True(t, f.tokens.tokens[first.Token.RefreshToken].revoked)

	_, err = f.svc.Refresh(context.Background(), first.Token.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}

func TestAuthService_SignOutBlacklistsAccessToken(t *testing.T) {
	f := newAuthFixture()
	f.profiles.add(t, "s@school.edu", "secret123", models.RoleStudent, true)
	session, err := f.svc.SignIn(context.Background(), &dto.LoginRequest{Email: "s@school.edu", Password: "secret123"})
	require.NoError(t, err)

	claims, err := f.jwt.ValidateAndExtractClaims(session.Token.AccessToken)
	require.NoError(t, err)

	require.NoError(t, f.svc.SignOut(context.Background(), claims, session.Token.RefreshToken))

	listed, err := f.blacklist.IsBlacklisted(context.Background(), claims.ID)
	require.NoError(t, err)
	assert.True(t, listed)
	assert.True(t, f.tokens.tokens[session.Token.RefreshToken].revoked)

	// A second sign-out with an already unknown token still succeeds.
	assert.NoError(t, f.svc.SignOut(context.Background(), claims, "unknown"))
}

func TestAuthService_ChangePassword(t *testing.T) {
	f := newAuthFixture()
	p := f.profiles.add(t, "s@school.edu", "secret123", models.RoleStudent, true)

	err := f.svc.ChangePassword(context.Background(), p.ID, &dto.ChangePasswordRequest{CurrentPassword: "wrong1234", NewPassword: "newsecret1"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	require.NoError(t, f.svc.ChangePassword(context.Background(), p.ID, &dto.ChangePasswordRequest{CurrentPassword: "secret123", NewPassword: "newsecret1"}))

	_, err = f.svc.SignIn(context.Background(), &dto.LoginRequest{Email: "s@school.edu", Password: "newsecret1"})
	assert.NoError(t, err)
}

func TestAuthService_CreateProfileAllowsAdmin(t *testing.T) {
	f := newAuthFixture()

	profile, err := f.svc.CreateProfile(context.Background(), &dto.CreateProfileRequest{
		Email: "ops@school.edu", Password: "secret123", FullName: "Ops Admin", Role: models.RoleAdmin,
	})

	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, profile.Role)
	assert.True(t, profile.IsActive)

	_, err = f.svc.CreateProfile(context.Background(), &dto.CreateProfileRequest{
		Email: "ops@school.edu", Password: "secret123", FullName: "Ops Admin", Role: models.RoleAdmin,
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestAuthService_CurrentProfile(t *testing.T) {
	f := newAuthFixture()
	p := f.profiles.add(t, "a@school.edu", "secret123", models.RoleAdmin, true)

	session, err := f.svc.CurrentProfile(context.Background(), p.ID)

	require.NoError(t, err)
	assert.Equal(t, "/admin", session.LandingPath)
	assert.Nil(t, session.Token)
}

func TestAuthService_RefreshAfterSignOutIsRefused(t *testing.T) {
	f := newAuthFixture()
	f.profiles.add(t, "s@school.edu", "secret123", models.RoleStudent, true)
	session, err := f.svc.SignIn(context.Background(), &dto.LoginRequest{Email: "s@school.edu", Password: "secret123"})
	require.NoError(t, err)

	require.NoError(t, f.svc.SignOut(context.Background(), nil, session.Token.RefreshToken))
	// Signing out twice with the same refresh token is not an error.
	require.NoError(t, f.svc.SignOut(context.Background(), nil, session.Token.RefreshToken))

	_, err = f.svc.Refresh(context.Background(), session.Token.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}
