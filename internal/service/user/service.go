package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/kabz8/Nextcare/internal/model"
	"github.com/kabz8/Nextcare/internal/repository"
	apperrors "github.com/kabz8/Nextcare/pkg/errors"
	"github.com/kabz8/Nextcare/pkg/security"
	"github.com/kabz8/Nextcare/pkg/validator"
)

const bcryptCost = 12

type Service struct {
	repo   repository.UserRepository
	hasher security.PasswordHasher
}

func NewService(repo repository.UserRepository, hasher security.PasswordHasher) *Service {
	if hasher == nil {
		hasher = security.NewBcryptHasher(bcryptCost)
	}
	return &Service{repo: repo, hasher: hasher}
}

func (s *Service) CreateUser(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	if err := validator.ValidateStruct(req); err != nil {
		return nil, apperrors.NewBadRequest(validator.Message(err), err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		if errors.Is(err, security.ErrPasswordTooShort) {
			return nil, apperrors.NewBadRequest(err.Error(), err)
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = model.UserRoleUser
	}

	u := &model.User{
		Username: req.Username,
		Password: hash,
		Role:     role,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict("username already exists", err)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Info().Int64("user_id", u.ID).Str("username", u.Username).Msg("user created")
	return u, nil
}

func (s *Service) GetUser(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("user", err)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

func (s *Service) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("user", err)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}
