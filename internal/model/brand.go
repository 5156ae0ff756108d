package model

import "time"

type Brand struct {
	ID          int64      `db:"id" json:"id"`
	Name        string     `db:"name" json:"name"`
	Description *string    `db:"description" json:"description,omitempty"`
	LogoURL     *string    `db:"logo_url" json:"logo_url,omitempty"`
	PublicID    *string    `db:"public_id" json:"-"`
	Website     *string    `db:"website" json:"website,omitempty"`
	Country     *string    `db:"country" json:"country,omitempty"`
	IsActive    bool       `db:"is_active" json:"is_active"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   *time.Time `db:"updated_at" json:"updated_at,omitempty"`
	DeletedAt   *time.Time `db:"deleted_at" json:"-"`
}
