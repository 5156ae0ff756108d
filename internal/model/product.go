package model

import "time"

type Product struct {
	ID              int64      `db:"id" json:"id"`
	SKU             string     `db:"sku" json:"sku"`
	Name            string     `db:"name" json:"name"`
	Description     *string    `db:"description" json:"description,omitempty"`
	Details         *string    `db:"details" json:"details,omitempty"`
	CategoryID      int64      `db:"category_id" json:"category_id"`
	BrandID         int64      `db:"brand_id" json:"brand_id"`
	Scale           *string    `db:"scale" json:"scale,omitempty"`
	DifficultyLevel *string    `db:"difficulty_level" json:"difficulty_level,omitempty"`
	Material        *string    `db:"material" json:"material,omitempty"`
	Weight          *string    `db:"weight" json:"weight,omitempty"`
	Dimensions      *string    `db:"dimensions" json:"dimensions,omitempty"`
	AgeRating       *string    `db:"age_rating" json:"age_rating,omitempty"`
	OriginalPrice   float64    `db:"original_price" json:"original_price"`
	SellingPrice    float64    `db:"selling_price" json:"selling_price"`
	IsActive        bool       `db:"is_active" json:"is_active"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       *time.Time `db:"updated_at" json:"updated_at,omitempty"`
	DeletedAt       *time.Time `db:"deleted_at" json:"-"`

	Images []ProductImage `db:"-" json:"images,omitempty"`
}

type ProductImage struct {
	ID        int64     `db:"id" json:"id"`
	ProductID int64     `db:"product_id" json:"product_id"`
	ImageURL  string    `db:"image_url" json:"image_url"`
	PublicID  string    `db:"public_id" json:"-"`
	IsPrimary bool      `db:"is_primary" json:"is_primary"`
	SortOrder int       `db:"sort_order" json:"sort_order"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// UploadedImage : результат загрузки картинки во внешнее хранилище
type UploadedImage struct {
	PublicID string `json:"public_id"`
	ImageURL string `json:"image_url"`
}
