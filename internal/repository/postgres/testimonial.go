package postgres

import (
	"context"
	"fmt"

	"github.com/kabz8/Nextcare/internal/model"
)

func (r *testimonialRepository) Create(ctx context.Context, t *model.Testimonial) error {
	query := `
		INSERT INTO testimonials (name, content, rating, patient_since)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	if err := r.db.QueryRowxContext(ctx, query, t.Name, t.Content, t.Rating, t.PatientSince).Scan(&t.ID); err != nil {
		return fmt.Errorf("failed to create testimonial: %w", err)
	}
	return nil
}

func (r *testimonialRepository) List(ctx context.Context) ([]*model.Testimonial, error) {
	query := `
		SELECT id, name, content, rating, patient_since
		FROM testimonials
		ORDER BY id
	`
	testimonials := []*model.Testimonial{}
	if err := r.db.SelectContext(ctx, &testimonials, query); err != nil {
		return nil, fmt.Errorf("failed to list testimonials: %w", err)
	}
	return testimonials, nil
}

func (r *testimonialRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, "testimonials")
}
