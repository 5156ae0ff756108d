package model

import "time"

type Banner struct {
	ID           int64      `db:"id" json:"id"`
	Title        string     `db:"title" json:"title"`
	Description  *string    `db:"description" json:"description,omitempty"`
	ImageURL     string     `db:"image_url" json:"image_url"`
	PublicID     string     `db:"public_id" json:"-"`
	RedirectLink *string    `db:"redirect_link" json:"redirect_link,omitempty"`
	DisplayOrder *int       `db:"display_order" json:"display_order,omitempty"`
	StartDate    time.Time  `db:"start_date" json:"start_date"`
	EndDate      *time.Time `db:"end_date" json:"end_date,omitempty"`
	IsActive     bool       `db:"is_active" json:"is_active"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    *time.Time `db:"updated_at" json:"updated_at,omitempty"`
	DeletedAt    *time.Time `db:"deleted_at" json:"-"`
}
