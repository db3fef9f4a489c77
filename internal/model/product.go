package model

import "time"

// Product is a marketplace item. Price is kept as a decimal string.
type Product struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Price       string    `db:"price" json:"price"`
	ImageURL    string    `db:"image_url" json:"imageUrl"`
	Category    string    `db:"category" json:"category"`
	Stock       int       `db:"stock" json:"stock"`
	Featured    bool      `db:"featured" json:"featured"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

type ProductRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Description string `json:"description" binding:"required"`
	Price       string `json:"price" binding:"required,numeric"`
	ImageURL    string `json:"imageUrl" binding:"required"`
	Category    string `json:"category" binding:"required,max=50"`
	Stock       int    `json:"stock" binding:"gte=0"`
	Featured    bool   `json:"featured"`
}

func (r *ProductRequest) ToModel() *Product {
	return &Product{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		ImageURL:    r.ImageURL,
		Category:    r.Category,
		Stock:       r.Stock,
		Featured:    r.Featured,
	}
}

// ProductFilter narrows product listings. Zero values match everything.
type ProductFilter struct {
	Category     string
	FeaturedOnly bool
}
