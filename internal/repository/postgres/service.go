package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kabz8/Nextcare/internal/model"
	"github.com/kabz8/Nextcare/internal/repository"
)

func (r *serviceRepository) Create(ctx context.Context, service *model.Service) error {
	query := `
		INSERT INTO services (name, description, icon)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	if err := r.db.QueryRowxContext(ctx, query, service.Name, service.Description, service.Icon).Scan(&service.ID); err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

func (r *serviceRepository) Get(ctx context.Context, id int64) (*model.Service, error) {
	query := `
		SELECT id, name, description, icon
		FROM services
		WHERE id = $1
	`
	var service model.Service
	if err := r.db.GetContext(ctx, &service, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return &service, nil
}

func (r *serviceRepository) List(ctx context.Context) ([]*model.Service, error) {
	query := `
		SELECT id, name, description, icon
		FROM services
		ORDER BY id
	`
	services := []*model.Service{}
	if err := r.db.SelectContext(ctx, &services, query); err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

func (r *serviceRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, "services")
}
