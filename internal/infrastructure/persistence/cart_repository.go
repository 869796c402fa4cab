// Package persistence implements the domain repository interfaces on
// Postgres via gorm.
package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/driftwear/storefront/internal/domain/cart"
	"github.com/driftwear/storefront/internal/domain/shared"
	"github.com/driftwear/storefront/internal/infrastructure/persistence/models"
)

// GormCartRepository stores cart snapshots as versioned JSON blobs.
type GormCartRepository struct {
	db *gorm.DB
}

var _ cart.Repository = (*GormCartRepository)(nil)

func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// Load reads and decodes the snapshot for a cart key, running any pending
// schema migrations on the blob.
func (r *GormCartRepository) Load(ctx context.Context, key string) (*cart.Snapshot, error) {
	var model models.CartModel
	if err := r.db.WithContext(ctx).First(&model, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("loading cart %s: %w", key, err)
	}

	snap, err := cart.DecodeSnapshot(model.Data)
	if err != nil {
		return nil, fmt.Errorf("cart %s: %w", key, err)
	}
	return snap, nil
}

// Save upserts the snapshot blob for a cart key.
func (r *GormCartRepository) Save(ctx context.Context, key string, snap *cart.Snapshot) error {
	data, err := snap.Encode()
	if err != nil {
		return fmt.Errorf("encoding cart %s: %w", key, err)
	}

	model := models.CartModel{
		Key:     key,
		Version: snap.Version,
		Data:    data,
	}
	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"version", "data", "updated_at"}),
		}).
		Create(&model).Error
	if err != nil {
		return fmt.Errorf("saving cart %s: %w", key, err)
	}
	return nil
}

// Delete removes the stored cart. Deleting an absent key reports
// shared.ErrNotFound.
func (r *GormCartRepository) Delete(ctx context.Context, key string) error {
	result := r.db.WithContext(ctx).Delete(&models.CartModel{}, "key = ?", key)
	if result.Error != nil {
		return fmt.Errorf("deleting cart %s: %w", key, result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
