package repositories

import (
	"rebar-shipment-backend/db/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CheckinRepository interface {
	CreateCheckin(checkin *models.Checkin) (*models.Checkin, error)
	GetFilteredCheckins(pageSize int, offset int, project string) ([]models.Checkin, int64, error)
}

type checkinRepository struct {
	db *gorm.DB
}

func NewCheckinRepository(db *gorm.DB) CheckinRepository {
	return &checkinRepository{
		db: db,
	}
}

func (r *checkinRepository) CreateCheckin(checkin *models.Checkin) (*models.Checkin, error) {
	checkin.ID = uuid.New()
	err := r.db.Create(checkin).Error
	return checkin, err
}

// GetFilteredCheckins retrieves check-in records newest first, optionally
// scoped to one project. The head-office overview passes an empty project.
func (r *checkinRepository) GetFilteredCheckins(pageSize int, offset int, project string) ([]models.Checkin, int64, error) {
	var checkins []models.Checkin
	var total int64

	db := r.db.Model(&models.Checkin{})
	if project != "" {
		db = db.Where("project = ?", project)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("created_at desc").
		Limit(pageSize).
		Offset(offset).
		Find(&checkins).Error
	if err != nil {
		return nil, 0, err
	}

	return checkins, total, nil
}
