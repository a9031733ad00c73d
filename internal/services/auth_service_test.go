package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"school-site-backend/internal/models"
	"school-site-backend/internal/repository"
)

type fakeAdminStore struct {
	acc *models.AdminAccount
}

func (f *fakeAdminStore) Count(ctx context.Context) (int64, error) {
	if f.acc == nil {
		return 0, nil
	}
	return 1, nil
}

func (f *fakeAdminStore) FindByUsername(ctx context.Context, username string) (*models.AdminAccount, error) {
	if f.acc == nil || f.acc.Username != username {
		return nil, repository.ErrNotFound
	}
	return f.acc, nil
}

func (f *fakeAdminStore) Create(ctx context.Context, acc *models.AdminAccount) error {
	acc.ID = primitive.NewObjectID()
	f.acc = acc
	return nil
}

func (f *fakeAdminStore) Replace(ctx context.Context, acc *models.AdminAccount) error {
	return f.Create(ctx, acc)
}

func TestSetupOnlyOnce(t *testing.T) {
	store := &fakeAdminStore{}
	svc := NewAuthService(store, "test-secret", time.Hour)

	acc, err := svc.Setup(context.Background(), "admin", "password123")
	require.NoError(t, err)
	assert.Equal(t, "admin", acc.Username)
	assert.NotEqual(t, "password123", acc.PasswordHash)

	_, err = svc.Setup(context.Background(), "other", "password456")
	assert.ErrorIs(t, err, ErrAdminExists)
}

func TestLoginAndVerify(t *testing.T) {
	store := &fakeAdminStore{}
	svc := NewAuthService(store, "test-secret", time.Hour)

	_, err := svc.Setup(context.Background(), "admin", "password123")
	require.NoError(t, err)

	token, err := svc.Login(context.Background(), "admin", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, store.acc.ID.Hex(), claims.AdminID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	store := &fakeAdminStore{}
	svc := NewAuthService(store, "test-secret", time.Hour)
	_, err := svc.Setup(context.Background(), "admin", "password123")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "nobody", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyRejectsExpiredAndForeignTokens(t *testing.T) {
	store := &fakeAdminStore{}
	svc := NewAuthService(store, "test-secret", -time.Minute)
	_, err := svc.Setup(context.Background(), "admin", "password123")
	require.NoError(t, err)

	expired, err := svc.Login(context.Background(), "admin", "password123")
	require.NoError(t, err)
	_, err = svc.Verify(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewAuthService(store, "another-secret", time.Hour)
	foreign, err := other.Login(context.Background(), "admin", "password123")
	require.NoError(t, err)
	_, err = svc.Verify(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestResetReplacesAccount(t *testing.T) {
	store := &fakeAdminStore{}
	svc := NewAuthService(store, "test-secret", time.Hour)
	_, err := svc.Setup(context.Background(), "admin", "password123")
	require.NoError(t, err)

	_, err = svc.Reset(context.Background(), "admin2", "newpassword")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "admin", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	token, err := svc.Login(context.Background(), "admin2", "newpassword")
	require.NoError(t, err)
	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin2", claims.Username)
}
