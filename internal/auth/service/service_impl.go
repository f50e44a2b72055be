package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/smartsellhq/smartsell/internal/auth/domain"
	"github.com/smartsellhq/smartsell/internal/auth/google"
	"github.com/smartsellhq/smartsell/internal/auth/password"
	"github.com/smartsellhq/smartsell/internal/ratelimit"
	dbpkg "github.com/smartsellhq/smartsell/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	sessionTTL        = 30 * 24 * time.Hour
	minPasswordLength = 8
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Repo    domain.Repository
	Google  google.Verifier
	Limiter *ratelimit.LoginLimiter `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	repo    domain.Repository
	google  google.Verifier
	limiter *ratelimit.LoginLimiter
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("auth.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		google:  p.Google,
		limiter: p.Limiter,
	}
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" || !strings.Contains(email, "@") {
		return "", domain.ErrInvalidEmail
	}
	return email, nil
}

func (s *Service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResult, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	if len(req.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: at least %d characters", domain.ErrWeakPassword, minPasswordLength)
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           s.genID.Generate(),
		Email:        email,
		Name:         name,
		Provider:     domain.ProviderLocal,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.CreateUser(ctx, s.db, user); err != nil {
		if dbpkg.IsDuplicateKeyErr(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}

	session, err := s.openSession(ctx, user.ID, req.Meta)
	if err != nil {
		return nil, err
	}

	s.log.Info("user registered", zap.String("user_id", user.ID.String()))
	return &domain.AuthResult{User: user, Session: session}, nil
}

func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResult, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}

	if res, err := s.limiter.Allow(ctx, email); err != nil {
		// A broken limiter must not lock everyone out.
		s.log.Warn("login limiter unavailable", zap.Error(err))
	} else if !res.Allowed {
		return nil, fmt.Errorf("%w: retry after %s", domain.ErrRateLimited, res.RetryAfter.Round(time.Second))
	}

	user, err := s.repo.FindUserByEmail(ctx, s.db, email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == "" || !password.Verify(req.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	session, err := s.openSession(ctx, user.ID, req.Meta)
	if err != nil {
		return nil, err
	}
	return &domain.AuthResult{User: user, Session: session}, nil
}

func (s *Service) LoginWithGoogle(ctx context.Context, idToken string, meta domain.SessionMeta) (*domain.AuthResult, error) {
	profile, err := s.google.Verify(ctx, idToken)
	if err != nil {
		return nil, err
	}
	if profile == nil || profile.Sub == "" || !profile.EmailVerified {
		return nil, domain.ErrInvalidCredentials
	}
	email, err := normalizeEmail(profile.Email)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.FindUserByGoogleID(ctx, s.db, profile.Sub)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Link by email when the account pre-exists, otherwise provision.
		user, err = s.repo.FindUserByEmail(ctx, s.db, email)
		if err != nil {
			return nil, err
		}
		now := time.Now().UTC()
		if user == nil {
			user = &domain.User{
				ID:        s.genID.Generate(),
				Email:     email,
				Name:      strings.TrimSpace(profile.Name),
				AvatarURL: profile.Picture,
				Provider:  domain.ProviderGoogle,
				GoogleID:  profile.Sub,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := s.repo.CreateUser(ctx, s.db, user); err != nil {
				if dbpkg.IsDuplicateKeyErr(err) {
					return nil, domain.ErrEmailTaken
				}
				return nil, err
			}
		} else {
			user.GoogleID = profile.Sub
			if user.AvatarURL == "" {
				user.AvatarURL = profile.Picture
			}
			user.UpdatedAt = now
			if err := s.repo.UpdateUser(ctx, s.db, user); err != nil {
				return nil, err
			}
		}
	}

	session, err := s.openSession(ctx, user.ID, meta)
	if err != nil {
		return nil, err
	}
	return &domain.AuthResult{User: user, Session: session}, nil
}

func (s *Service) ChangePassword(ctx context.Context, userID snowflake.ID, req domain.ChangePasswordRequest) error {
	if userID == 0 {
		return domain.ErrUnauthorized
	}
	if len(req.NewPassword) < minPasswordLength {
		return fmt.Errorf("%w: at least %d characters", domain.ErrWeakPassword, minPasswordLength)
	}

	user, err := s.repo.FindUserByID(ctx, s.db, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUnauthorized
	}
	// Google-only accounts hold no local credential to verify against.
	if user.PasswordHash == "" || !password.Verify(req.CurrentPassword, user.PasswordHash) {
		return domain.ErrInvalidCredentials
	}

	hash, err := password.Hash(req.NewPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.UpdatedAt = time.Now().UTC()
	return s.repo.UpdateUser(ctx, s.db, user)
}

func (s *Service) Logout(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return domain.ErrUnauthorized
	}
	return s.repo.DeleteSession(ctx, s.db, token)
}

func (s *Service) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if strings.TrimSpace(token) == "" {
		return nil, domain.ErrUnauthorized
	}

	session, err := s.repo.FindSession(ctx, s.db, token)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrUnauthorized
	}
	if time.Now().After(session.ExpiresAt) {
		_ = s.repo.DeleteSession(ctx, s.db, token)
		return nil, domain.ErrSessionExpired
	}

	user, err := s.repo.FindUserByID(ctx, s.db, session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

func (s *Service) openSession(ctx context.Context, userID snowflake.ID, meta domain.SessionMeta) (*domain.Session, error) {
	now := time.Now().UTC()
	session := &domain.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		UserAgent: meta.UserAgent,
		IP:        meta.IP,
		ExpiresAt: now.Add(sessionTTL),
		CreatedAt: now,
	}
	if err := s.repo.CreateSession(ctx, s.db, session); err != nil {
		return nil, err
	}
	return session, nil
}
