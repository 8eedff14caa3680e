package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/smallbiznis/backoffice/internal/auth/domain"
	"github.com/smallbiznis/backoffice/internal/auth/password"
	"github.com/smallbiznis/backoffice/internal/config"
	"github.com/smallbiznis/backoffice/internal/observability/logger"
	"github.com/smallbiznis/backoffice/pkg/db"
)

const minPasswordLen = 8

type service struct {
	db         *gorm.DB
	node       *snowflake.Node
	sessionTTL time.Duration
}

func New(conn *gorm.DB, node *snowflake.Node, cfg config.Config) domain.Service {
	ttl := time.Duration(cfg.SessionTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &service{db: conn, node: node, sessionTTL: ttl}
}

func (s *service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, *domain.Session, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, nil, domain.ErrInvalidEmail
	}
	if len(req.Password) < minPasswordLen {
		return nil, nil, domain.ErrWeakPassword
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, nil, err
	}

	user := &domain.User{
		ID:           s.node.Generate(),
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: hash,
	}

	var session *domain.Session
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.WithContext(ctx).Create(user).Error; err != nil {
			if db.IsDuplicateKeyErr(err) {
				return domain.ErrEmailTaken
			}
			return err
		}
		var txErr error
		session, txErr = s.createSession(ctx, tx, user.ID)
		return txErr
	})
	if err != nil {
		return nil, nil, err
	}

	logger.FromContext(ctx).Info("user registered", zap.String("user_id", user.ID.String()))
	return user, session, nil
}

func (s *service) Login(ctx context.Context, req domain.LoginRequest) (*domain.User, *domain.Session, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user domain.User
	err := s.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if !password.Verify(req.Password, user.PasswordHash) {
		return nil, nil, domain.ErrInvalidCredentials
	}

	session, err := s.createSession(ctx, s.db, user.ID)
	if err != nil {
		return nil, nil, err
	}

	logger.FromContext(ctx).Info("user logged in", zap.String("user_id", user.ID.String()))
	return &user, session, nil
}

func (s *service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.db.WithContext(ctx).
		Where("token = ?", token).
		Delete(&domain.Session{}).Error
}

func (s *service) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}

	var session domain.Session
	err := s.db.WithContext(ctx).
		Where("token = ?", token).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if session.Expired(time.Now()) {
		// expired rows are reaped lazily
		_ = s.db.WithContext(ctx).Delete(&session).Error
		return nil, domain.ErrUnauthorized
	}

	var user domain.User
	err = s.db.WithContext(ctx).
		Where("id = ?", session.UserID).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	return &user, nil
}

func (s *service) createSession(ctx context.Context, tx *gorm.DB, userID snowflake.ID) (*domain.Session, error) {
	token, err := newSessionToken()
	if err != nil {
		return nil, err
	}
	session := &domain.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}
	if err := tx.WithContext(ctx).Create(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

func newSessionToken() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}
