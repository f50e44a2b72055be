package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smartsellhq/smartsell/internal/auth/domain"
	"github.com/smartsellhq/smartsell/internal/auth/password"
	"github.com/smartsellhq/smartsell/internal/auth/repository"
	"github.com/smartsellhq/smartsell/internal/migration"
	dbpkg "github.com/smartsellhq/smartsell/pkg/db"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// stubVerifier resolves known tokens to profiles; anything else is
// rejected the way the live verifier rejects a bad tokeninfo response.
type stubVerifier struct {
	tokens map[string]*domain.GoogleProfile
}

func (s *stubVerifier) Verify(_ context.Context, idToken string) (*domain.GoogleProfile, error) {
	if p, ok := s.tokens[idToken]; ok {
		return p, nil
	}
	return nil, domain.ErrInvalidCredentials
}

func newAuthService(t *testing.T) (domain.Service, *gorm.DB, *stubVerifier) {
	t.Helper()

	conn, err := dbpkg.NewTest()
	require.NoError(t, err)
	require.NoError(t, migration.AutoMigrate(conn))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	verifier := &stubVerifier{tokens: map[string]*domain.GoogleProfile{}}
	svc := New(Params{
		DB:     conn,
		Log:    zap.NewNop(),
		GenID:  node,
		Repo:   repository.Provide(),
		Google: verifier,
	})
	return svc, conn, verifier
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, domain.RegisterRequest{
		Email:    "  Amal@Example.COM ",
		Name:     "Amal",
		Password: "correct horse",
	})
	require.NoError(t, err)
	require.Equal(t, "amal@example.com", res.User.Email)
	require.Equal(t, domain.ProviderLocal, res.User.Provider)
	require.NotEmpty(t, res.Session.Token)

	login, err := svc.Login(ctx, domain.LoginRequest{
		Email:    "amal@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	require.Equal(t, res.User.ID, login.User.ID)
	require.NotEqual(t, res.Session.Token, login.Session.Token)
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, domain.RegisterRequest{Email: "nope", Name: "N", Password: "long enough"})
	require.ErrorIs(t, err, domain.ErrInvalidEmail)

	_, err = svc.Register(ctx, domain.RegisterRequest{Email: "a@b.test", Name: "  ", Password: "long enough"})
	require.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = svc.Register(ctx, domain.RegisterRequest{Email: "a@b.test", Name: "A", Password: "short"})
	require.ErrorIs(t, err, domain.ErrWeakPassword)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, domain.RegisterRequest{Email: "a@b.test", Name: "A", Password: "long enough"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, domain.RegisterRequest{Email: "A@B.test", Name: "A", Password: "long enough"})
	require.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, domain.RegisterRequest{Email: "a@b.test", Name: "A", Password: "long enough"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "a@b.test", Password: "wrong wrong"})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "nobody@b.test", Password: "long enough"})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthenticateAndLogout(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, domain.RegisterRequest{Email: "a@b.test", Name: "A", Password: "long enough"})
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, res.Session.Token)
	require.NoError(t, err)
	require.Equal(t, res.User.ID, user.ID)

	require.NoError(t, svc.Logout(ctx, res.Session.Token))

	_, err = svc.Authenticate(ctx, res.Session.Token)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthenticateExpiredSession(t *testing.T) {
	svc, conn, _ := newAuthService(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, domain.RegisterRequest{Email: "a@b.test", Name: "A", Password: "long enough"})
	require.NoError(t, err)

	expired := time.Now().UTC().Add(-time.Minute)
	require.NoError(t, conn.Model(&domain.Session{}).
		Where("token = ?", res.Session.Token).
		Update("expires_at", expired).Error)

	_, err = svc.Authenticate(ctx, res.Session.Token)
	require.ErrorIs(t, err, domain.ErrSessionExpired)

	// The expired session is purged, so a second attempt is a plain miss.
	_, err = svc.Authenticate(ctx, res.Session.Token)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLoginWithGoogleProvisionsAndLinks(t *testing.T) {
	svc, _, verifier := newAuthService(t)
	ctx := context.Background()
	meta := domain.SessionMeta{UserAgent: "test", IP: "127.0.0.1"}

	verifier.tokens["tok-1"] = &domain.GoogleProfile{
		Sub: "sub-1", Email: "g@b.test", EmailVerified: true, Name: "G",
	}
	verifier.tokens["tok-unverified"] = &domain.GoogleProfile{
		Sub: "sub-3", Email: "u@b.test",
	}

	// Unverified email is refused outright.
	_, err := svc.LoginWithGoogle(ctx, "tok-unverified", meta)
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	res, err := svc.LoginWithGoogle(ctx, "tok-1", meta)
	require.NoError(t, err)
	require.Equal(t, domain.ProviderGoogle, res.User.Provider)
	require.Equal(t, "sub-1", res.User.GoogleID)

	// A local account with a matching email gets linked, not duplicated.
	local, err := svc.Register(ctx, domain.RegisterRequest{Email: "local@b.test", Name: "L", Password: "long enough"})
	require.NoError(t, err)

	verifier.tokens["tok-2"] = &domain.GoogleProfile{
		Sub: "sub-2", Email: "local@b.test", EmailVerified: true,
	}
	linked, err := svc.LoginWithGoogle(ctx, "tok-2", meta)
	require.NoError(t, err)
	require.Equal(t, local.User.ID, linked.User.ID)
	require.Equal(t, "sub-2", linked.User.GoogleID)
}

func TestLoginWithGoogleRejectsForgedToken(t *testing.T) {
	svc, conn, _ := newAuthService(t)
	ctx := context.Background()
	meta := domain.SessionMeta{UserAgent: "test", IP: "127.0.0.1"}

	victim, err := svc.Register(ctx, domain.RegisterRequest{
		Email: "victim@b.test", Name: "V", Password: "long enough",
	})
	require.NoError(t, err)

	// A token the provider does not vouch for mints no session, no matter
	// what identity the caller claims it carries.
	_, err = svc.LoginWithGoogle(ctx, "forged-token", meta)
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	var fresh domain.User
	require.NoError(t, conn.First(&fresh, "id = ?", victim.User.ID).Error)
	require.Empty(t, fresh.GoogleID)

	var sessions int64
	require.NoError(t, conn.Model(&domain.Session{}).
		Where("user_id = ?", victim.User.ID).Count(&sessions).Error)
	require.EqualValues(t, 1, sessions)
}

func TestChangePassword(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, domain.RegisterRequest{Email: "a@b.test", Name: "A", Password: "long enough"})
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, res.User.ID, domain.ChangePasswordRequest{
		CurrentPassword: "wrong", NewPassword: "fresh password",
	})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	err = svc.ChangePassword(ctx, res.User.ID, domain.ChangePasswordRequest{
		CurrentPassword: "long enough", NewPassword: "short",
	})
	require.ErrorIs(t, err, domain.ErrWeakPassword)

	err = svc.ChangePassword(ctx, res.User.ID, domain.ChangePasswordRequest{
		CurrentPassword: "long enough", NewPassword: "fresh password",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "a@b.test", Password: "long enough"})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "a@b.test", Password: "fresh password"})
	require.NoError(t, err)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := password.Hash("s3cret passphrase")
	require.NoError(t, err)
	require.NotContains(t, hash, "s3cret")

	require.True(t, password.Verify("s3cret passphrase", hash))
	require.False(t, password.Verify("other", hash))
}
