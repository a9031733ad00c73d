package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"school-site-backend/internal/models"
	"school-site-backend/internal/repository"
)

var (
	ErrAdminExists        = errors.New("admin account already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// AdminStore is what AuthService needs from the admins collection.
type AdminStore interface {
	Count(ctx context.Context) (int64, error)
	FindByUsername(ctx context.Context, username string) (*models.AdminAccount, error)
	Create(ctx context.Context, acc *models.AdminAccount) error
	Replace(ctx context.Context, acc *models.AdminAccount) error
}

type AuthService struct {
	admins   AdminStore
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(admins AdminStore, secret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{admins: admins, secret: []byte(secret), tokenTTL: tokenTTL}
}

// Setup creates the admin account if and only if none exists.
func (s *AuthService) Setup(ctx context.Context, username, password string) (*models.AdminAccount, error) {
	n, err := s.admins.Count(ctx)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, ErrAdminExists
	}
	acc, err := newAccount(username, password)
	if err != nil {
		return nil, err
	}
	if err := s.admins.Create(ctx, acc); err != nil {
		return nil, err
	}
	return acc, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	acc, err := s.admins.FindByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}
	return s.signToken(acc)
}

// Reset destructively replaces the single admin account.
func (s *AuthService) Reset(ctx context.Context, username, password string) (*models.AdminAccount, error) {
	acc, err := newAccount(username, password)
	if err != nil {
		return nil, err
	}
	if err := s.admins.Replace(ctx, acc); err != nil {
		return nil, err
	}
	return acc, nil
}

// Claims carried by an admin bearer token.
type TokenClaims struct {
	AdminID  string
	Username string
}

func (s *AuthService) signToken(acc *models.AdminAccount) (string, error) {
	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"admin_id": acc.ID.Hex(),
		"username": acc.Username,
		"iat":      now.Unix(),
		"exp":      now.Add(s.tokenTTL).Unix(),
	})
	return tok.SignedString(s.secret)
}

// Verify validates signature and expiry and returns the embedded claims.
func (s *AuthService) Verify(tokenStr string) (*TokenClaims, error) {
	tok, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	id, _ := claims["admin_id"].(string)
	if id == "" {
		return nil, ErrInvalidToken
	}
	username, _ := claims["username"].(string)
	return &TokenClaims{AdminID: id, Username: username}, nil
}

func newAccount(username, password string) (*models.AdminAccount, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &models.AdminAccount{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}, nil
}
