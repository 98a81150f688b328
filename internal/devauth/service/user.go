package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/aussiebroadwan/worklane/internal/devauth/domain"
	"github.com/aussiebroadwan/worklane/internal/devauth/store"
	"github.com/aussiebroadwan/worklane/pkg/cryptox"
	"github.com/aussiebroadwan/worklane/pkg/slogx"
)

type UserService struct {
	Store store.Store
}

// Register validates and creates an account. Validation problems are returned
// as a ValidationError.
func (s *UserService) Register(ctx context.Context, username, email, password string) (domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	problems := ValidationError{}
	if username == "" {
		problems.Add("username", msgRequired)
	}
	if email == "" {
		problems.Add("email", msgRequired)
	} else if _, err := mail.ParseAddress(email); err != nil {
		problems.Add("email", "Enter a valid email address.")
	}
	if password == "" {
		problems.Add("password", msgRequired)
	}

	users := s.Store.Users()
	if username != "" {
		taken, err := users.UsernameTaken(ctx, username)
		if err != nil {
			return domain.User{}, err
		}
		if taken {
			problems.Add("username", "Username already taken.")
		}
	}
	if _, ok := problems["email"]; !ok {
		taken, err := users.EmailTaken(ctx, email)
		if err != nil {
			return domain.User{}, err
		}
		if taken {
			problems.Add("email", "Email already registered.")
		}
	}
	if err := problems.OrNil(); err != nil {
		return domain.User{}, err
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := users.CreateUser(ctx, domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	})
	if errors.Is(err, store.ErrAlreadyExists) {
		// Lost a race with a concurrent registration.
		return domain.User{}, ValidationError{"username": {"Username already taken."}}
	}
	if err != nil {
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user registered", "user_id", user.ID)
	return user, nil
}

// Authenticate checks a username/password pair.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		return domain.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, id)
}
