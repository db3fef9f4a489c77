package product

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kabz8/Nextcare/internal/model"
	"github.com/kabz8/Nextcare/internal/repository/memory"
	apperrors "github.com/kabz8/Nextcare/pkg/errors"
)

func newRequest(name, category string, featured bool) *model.ProductRequest {
	return &model.ProductRequest{
		Name:        name,
		Description: "Everyday oral care",
		Price:       "24.99",
		ImageURL:    "https://example.com/p.jpg",
		Category:    category,
		Stock:       10,
		Featured:    featured,
	}
}

func TestService_CRUD(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewStore().Products)

	created, err := svc.Create(ctx, newRequest("Electric Toothbrush", "toothbrushes", true))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Electric Toothbrush", got.Name)

	req := newRequest("Electric Toothbrush Pro", "toothbrushes", false)
	req.Price = "89.99"
	updated, err := svc.Update(ctx, created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "89.99", updated.Price)

	got, err = svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Electric Toothbrush Pro", got.Name)
	assert.False(t, got.Featured)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
	assert.True(t, apperrors.IsCode(svc.Delete(ctx, created.ID), apperrors.ErrNotFound))
}

func TestService_List(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewStore().Products)

	_, err := svc.Create(ctx, newRequest("Whitening Kit", "whitening", true))
	require.NoError(t, err)
	_, err = svc.Create(ctx, newRequest("Floss", "floss", false))
	require.NoError(t, err)
	_, err = svc.Create(ctx, newRequest("Whitening Strips", "whitening", false))
	require.NoError(t, err)

	all, err := svc.List(ctx, model.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	whitening, err := svc.List(ctx, model.ProductFilter{Category: "whitening"})
	require.NoError(t, err)
	assert.Len(t, whitening, 2)

	featured, err := svc.List(ctx, model.ProductFilter{FeaturedOnly: true})
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, "Whitening Kit", featured[0].Name)
}

func TestService_Validation(t *testing.T) {
	svc := NewService(memory.NewStore().Products)

	req := newRequest("Floss", "floss", false)
	req.Price = "cheap"
	_, err := svc.Create(context.Background(), req)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrBadRequest))

	req = newRequest("", "floss", false)
	_, err = svc.Update(context.Background(), 1, req)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrBadRequest))

	_, err = svc.Update(context.Background(), 1, newRequest("Floss", "floss", false))
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
}
