package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/smallbiznis/backoffice/internal/auth/domain"
	"github.com/smallbiznis/backoffice/internal/config"
)

func setup(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_loc=auto", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Session{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(db, node, config.Config{SessionTTLHours: 1}), db
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	user, sess, err := svc.Register(ctx, domain.RegisterRequest{
		Email:    "Owner@Example.com",
		Name:     "Owner",
		Password: "supersecret",
	})
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", user.Email)
	require.NotEmpty(t, sess.Token)

	authed, err := svc.Authenticate(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, authed.ID)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, domain.RegisterRequest{Email: "not-an-email", Password: "supersecret"})
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)

	_, _, err = svc.Register(ctx, domain.RegisterRequest{Email: "a@b.co", Password: "short"})
	assert.ErrorIs(t, err, domain.ErrWeakPassword)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, domain.RegisterRequest{Email: "a@b.co", Password: "supersecret"})
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, domain.RegisterRequest{Email: "A@B.CO", Password: "supersecret"})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, domain.RegisterRequest{Email: "a@b.co", Password: "supersecret"})
	require.NoError(t, err)

	user, sess, err := svc.Login(ctx, domain.LoginRequest{Email: "a@b.co", Password: "supersecret"})
	require.NoError(t, err)
	assert.Equal(t, "a@b.co", user.Email)
	assert.NotEmpty(t, sess.Token)

	_, _, err = svc.Login(ctx, domain.LoginRequest{Email: "a@b.co", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, domain.LoginRequest{Email: "nobody@b.co", Password: "supersecret"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	_, sess, err := svc.Register(ctx, domain.RegisterRequest{Email: "a@b.co", Password: "supersecret"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, sess.Token))
	_, err = svc.Authenticate(ctx, sess.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestExpiredSessionRejected(t *testing.T) {
	svc, db := setup(t)
	ctx := context.Background()

	_, sess, err := svc.Register(ctx, domain.RegisterRequest{Email: "a@b.co", Password: "supersecret"})
	require.NoError(t, err)

	require.NoError(t, db.Model(&domain.Session{}).
		Where("token = ?", sess.Token).
		Update("expires_at", time.Now().Add(-time.Minute)).Error)

	_, err = svc.Authenticate(ctx, sess.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
