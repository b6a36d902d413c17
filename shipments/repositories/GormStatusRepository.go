package repositories

import (
	"errors"
	"fmt"

	"rebar-shipment-backend/db/models"

	"gorm.io/gorm"
)

// gormStatusRepository is the Postgres-backed overlay store. Each row carries
// a revision counter and updates are optimistic compare-and-swap, which
// closes the lost-update race the flat-file store accepts: a writer whose
// base revision went stale retries against the fresh row instead of
// clobbering it.
type gormStatusRepository struct {
	db *gorm.DB
}

func NewGormStatusRepository(db *gorm.DB) StatusRepository {
	return &gormStatusRepository{db: db}
}

func (r *gormStatusRepository) GetAll() ([]models.ShipmentStatus, error) {
	var rows []models.ShipmentStatus
	err := r.db.Order("update_time desc").Find(&rows).Error
	return rows, err
}

func (r *gormStatusRepository) Upsert(identity, status string) error {
	return r.upsertTx(r.db, identity, status)
}

func (r *gormStatusRepository) BatchUpsert(identities []string, status string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, id := range identities {
			if err := r.upsertTx(tx, id, status); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *gormStatusRepository) upsertTx(tx *gorm.DB, identity, status string) error {
	const maxAttempts = 2

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		var existing models.ShipmentStatus
		err := tx.First(&existing, "identity = ?", identity).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			row := models.ShipmentStatus{Identity: identity, Status: status, Revision: 1}
			if err := tx.Create(&row).Error; err != nil {
				// Concurrent insert of the same identity; retry as an update.
				lastErr = err
				continue
			}
			return nil
		}
		if err != nil {
			return err
		}

		result := tx.Model(&models.ShipmentStatus{}).
			Where("identity = ? AND revision = ?", identity, existing.Revision).
			Updates(map[string]interface{}{
				"status":   status,
				"revision": existing.Revision + 1,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			return nil
		}
		// Revision moved under us; reload and try once more.
		lastErr = fmt.Errorf("stale revision %d for identity %s", existing.Revision, identity)
	}
	return lastErr
}
