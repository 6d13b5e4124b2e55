package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/garage-booking/internal/models"
)

type Snapshot struct {
	CreatedAt time.Time        `json:"created_at"`
	Bookings  []models.Booking `json:"bookings"`
	Services  []models.Service `json:"services"`
}

// Backup writes a JSON snapshot of bookings and services to a Store.
type Backup struct {
	db    *gorm.DB
	store Store
	clock func() time.Time
}

func New(db *gorm.DB, store Store, clock func() time.Time) *Backup {
	return &Backup{db: db, store: store, clock: clock}
}

func (b *Backup) Configured() bool {
	return b.store != nil
}

// Run returns the key of the stored snapshot.
func (b *Backup) Run(ctx context.Context) (string, error) {
	if b.store == nil {
		return "", ErrNotConfigured
	}

	snap := Snapshot{CreatedAt: b.clock()}

	// one read transaction so the two tables agree
	err := b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Order("id ASC").Find(&snap.Bookings).Error; err != nil {
			return fmt.Errorf("read bookings: %w", err)
		}
		if err := tx.Order("id ASC").Find(&snap.Services).Error; err != nil {
			return fmt.Errorf("read services: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("backup: %w", err)
	}

	body, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("backup: encode: %w", err)
	}

	key := "garage-" + snap.CreatedAt.Format("20060102-150405") + ".json"
	if err := b.store.Put(ctx, key, body); err != nil {
		return "", fmt.Errorf("backup: upload: %w", err)
	}

	return key, nil
}
