package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/neha18-dp/freshbasket-aws-project/internal/model"
	"github.com/neha18-dp/freshbasket-aws-project/internal/notify"
	"github.com/neha18-dp/freshbasket-aws-project/internal/store"
)

type AuthService struct {
	store    store.Store
	notifier *notify.Notifier
}

func NewAuthService(st store.Store, notifier *notify.Notifier) *AuthService {
	return &AuthService{store: st, notifier: notifier}
}

type SignupInput struct {
	Username string
	Password string
	Email    string
}

// Signup creates a user with role "user". Roles are never inferred from the
// username; seller and admin accounts are provisioned explicitly.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (model.User, error) {
	if in.Username == "" {
		return model.User{}, &ValidationError{Field: "username", Reason: "required"}
	}
	if in.Password == "" {
		return model.User{}, &ValidationError{Field: "password", Reason: "required"}
	}

	_, err := s.store.GetUser(ctx, in.Username)
	if err == nil {
		return model.User{}, &ValidationError{Field: "username", Reason: "already taken"}
	}
	if !errors.Is(err, store.ErrNotFound) {
		return model.User{}, fmt.Errorf("signup: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, fmt.Errorf("signup: %w", err)
	}

	u := model.User{
		Username:     in.Username,
		PasswordHash: string(hash),
		Email:        in.Email,
		Role:         model.RoleUser,
	}
	if err := s.store.PutUser(ctx, u); err != nil {
		return model.User{}, fmt.Errorf("signup: %w", err)
	}

	s.notifier.UserRegistered(ctx, u.Username)
	return u, nil
}

// Login verifies the password against the stored hash. There is no fallback
// path that grants a role based on the shape of the username.
func (s *AuthService) Login(ctx context.Context, username, password string) (model.User, error) {
	u, err := s.store.GetUser(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return model.User{}, ErrBadCredentials
	}
	if err != nil {
		return model.User{}, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return model.User{}, ErrBadCredentials
	}
	return u, nil
}

func (s *AuthService) GetUser(ctx context.Context, username string) (model.User, error) {
	return s.store.GetUser(ctx, username)
}

type ProfileInput struct {
	Email   string
	Phone   string
	Address string
}

// UpdateProfile overwrites the user's contact fields. Username, role and
// password are not editable here.
func (s *AuthService) UpdateProfile(ctx context.Context, username string, in ProfileInput) (model.User, error) {
	u, err := s.store.GetUser(ctx, username)
	if err != nil {
		return model.User{}, err
	}

	u.Email = in.Email
	u.Phone = in.Phone
	u.Address = in.Address
	if err := s.store.PutUser(ctx, u); err != nil {
		return model.User{}, fmt.Errorf("update profile: %w", err)
	}
	return u, nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.store.ListUsers(ctx)
}
