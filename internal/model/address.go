package model

import "time"

type Address struct {
	ID             int64      `db:"id" json:"id"`
	UserID         int64      `db:"user_id" json:"user_id"`
	RecipientName  string     `db:"recipient_name" json:"recipient_name"`
	RecipientPhone string     `db:"recipient_phone" json:"recipient_phone"`
	Address        string     `db:"address" json:"address"`
	Province       string     `db:"province" json:"province"`
	Ward           string     `db:"ward" json:"ward"`
	IsDefault      bool       `db:"is_default" json:"is_default"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      *time.Time `db:"updated_at" json:"updated_at,omitempty"`
	DeletedAt      *time.Time `db:"deleted_at" json:"-"`
}
