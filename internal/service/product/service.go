package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/kabz8/Nextcare/internal/model"
	"github.com/kabz8/Nextcare/internal/repository"
	apperrors "github.com/kabz8/Nextcare/pkg/errors"
	"github.com/kabz8/Nextcare/pkg/validator"
)

type Service struct {
	repo repository.ProductRepository
}

func NewService(repo repository.ProductRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filter model.ProductFilter) ([]*model.Product, error) {
	products, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Product, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, mapError(err, "get")
	}
	return p, nil
}

func (s *Service) Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error) {
	if err := validator.ValidateStruct(req); err != nil {
		return nil, apperrors.NewBadRequest(validator.Message(err), err)
	}

	p := req.ToModel()
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	log.Info().Int64("product_id", p.ID).Str("category", p.Category).Msg("product created")
	return p, nil
}

// Update replaces every editable field of an existing product.
func (s *Service) Update(ctx context.Context, id int64, req *model.ProductRequest) (*model.Product, error) {
	if err := validator.ValidateStruct(req); err != nil {
		return nil, apperrors.NewBadRequest(validator.Message(err), err)
	}

	p := req.ToModel()
	p.ID = id
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, mapError(err, "update")
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapError(err, "delete")
	}
	log.Info().Int64("product_id", id).Msg("product deleted")
	return nil
}

func mapError(err error, op string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound("product", err)
	}
	return fmt.Errorf("failed to %s product: %w", op, err)
}
