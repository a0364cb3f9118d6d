package usecase

import (
	"context"
	"errors"
	"time"

	"inotecloud/dto"
	"inotecloud/model"
	"inotecloud/repository"
	"inotecloud/services"
	"inotecloud/utils"

	"golang.org/x/crypto/bcrypt"
)

// AuthService implements registration, login and current-user lookup.
type AuthService struct {
	Users  UserStore
	Tokens *services.TokenService

	RegisterTTL time.Duration
	LoginTTL    time.Duration
	BcryptCost  int

	Now func() time.Time
}

type RegisterResult struct {
	User  *model.User
	Token string
}

type LoginResult struct {
	AuthToken string
	Name      string
}

func (s *AuthService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *AuthService) cost() int {
	if s.BcryptCost == 0 {
		return bcrypt.DefaultCost
	}
	return s.BcryptCost
}

// Register creates a user and returns it with a short-lived token.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*RegisterResult, error) {
	fields, err := utils.ValidateStruct(req)
	if err != nil {
		return nil, internal("validating registration", err)
	}
	if fields != nil {
		return nil, ValidationError("Invalid registration details", fields)
	}

	existing, err := s.Users.FindUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, internal("looking up user", err)
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	hash, err := services.HashPassword(req.Password, s.cost())
	if err != nil {
		return nil, internal("hashing password", err)
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Date:     s.now(),
	}
	if err := s.Users.CreateUser(ctx, user); err != nil {
		// Lost a race with a concurrent registration for the same email.
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, internal("creating user", err)
	}

	token, err := s.Tokens.Issue(user.ID.Hex(), s.RegisterTTL)
	if err != nil {
		return nil, internal("issuing token", err)
	}
	return &RegisterResult{User: user, Token: token}, nil
}

// Login checks credentials and returns a long-lived token. Unknown email and wrong password
// produce the same error.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*LoginResult, error) {
	fields, err := utils.ValidateStruct(req)
	if err != nil {
		return nil, internal("validating login", err)
	}
	if fields != nil {
		return nil, ValidationError("Invalid login details", fields)
	}

	user, err := s.Users.FindUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, internal("looking up user", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	ok, err := services.VerifyPassword(user.Password, req.Password)
	if err != nil || !ok {
		return nil, ErrInvalidCredentials
	}

	token, err := s.Tokens.Issue(user.ID.Hex(), s.LoginTTL)
	if err != nil {
		return nil, internal("issuing token", err)
	}
	return &LoginResult{AuthToken: token, Name: user.Name}, nil
}

// CurrentUser resolves the identity carried by a verified token.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*model.User, error) {
	id, err := parseID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	user, err := s.Users.FindUserByID(ctx, id)
	if err != nil {
		return nil, internal("looking up user", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
