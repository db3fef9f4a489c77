// Package catalog serves the read-mostly clinic content: treatments and testimonials.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"github.com/kabz8/Nextcare/internal/model"
	"github.com/kabz8/Nextcare/internal/repository"
	apperrors "github.com/kabz8/Nextcare/pkg/errors"
	"github.com/kabz8/Nextcare/pkg/validator"
)

const (
	servicesKey     = "services"
	testimonialsKey = "testimonials"
)

type Service struct {
	services     repository.ServiceRepository
	testimonials repository.TestimonialRepository
	cache        *cache.Cache
}

// NewService caches reads for ttl. A non-positive ttl disables expiry.
func NewService(services repository.ServiceRepository, testimonials repository.TestimonialRepository, ttl, cleanup time.Duration) *Service {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	return &Service{
		services:     services,
		testimonials: testimonials,
		cache:        cache.New(ttl, cleanup),
	}
}

func (s *Service) ListServices(ctx context.Context) ([]*model.Service, error) {
	if cached, ok := s.cache.Get(servicesKey); ok {
		return cached.([]*model.Service), nil
	}

	services, err := s.services.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	s.cache.SetDefault(servicesKey, services)
	return services, nil
}

func (s *Service) GetService(ctx context.Context, id int64) (*model.Service, error) {
	key := fmt.Sprintf("service:%d", id)
	if cached, ok := s.cache.Get(key); ok {
		return cached.(*model.Service), nil
	}

	svc, err := s.services.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("service", err)
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}

	s.cache.SetDefault(key, svc)
	return svc, nil
}

func (s *Service) ListTestimonials(ctx context.Context) ([]*model.Testimonial, error) {
	if cached, ok := s.cache.Get(testimonialsKey); ok {
		return cached.([]*model.Testimonial), nil
	}

	testimonials, err := s.testimonials.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list testimonials: %w", err)
	}

	s.cache.SetDefault(testimonialsKey, testimonials)
	return testimonials, nil
}

func (s *Service) CreateTestimonial(ctx context.Context, req *model.CreateTestimonialRequest) (*model.Testimonial, error) {
	if err := validator.ValidateStruct(req); err != nil {
		return nil, apperrors.NewBadRequest(validator.Message(err), err)
	}

	t := req.ToModel()
	if err := s.testimonials.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to create testimonial: %w", err)
	}
	s.cache.Delete(testimonialsKey)

	log.Info().Int64("testimonial_id", t.ID).Int("rating", t.Rating).Msg("testimonial created")
	return t, nil
}
