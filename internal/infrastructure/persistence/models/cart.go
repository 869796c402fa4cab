// Package models holds gorm persistence models.
package models

import "time"

// CartModel maps a cart key to its serialized snapshot. Data is the
// versioned JSON blob; Version is duplicated into its own column so
// operators can count carts pending migration without parsing blobs.
type CartModel struct {
	Key       string    `gorm:"primaryKey;size:64"`
	Version   int       `gorm:"not null"`
	Data      []byte    `gorm:"type:jsonb;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName overrides gorm's default pluralization.
func (CartModel) TableName() string {
	return "carts"
}
