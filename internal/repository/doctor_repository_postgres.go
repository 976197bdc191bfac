package repository

import (
	"context"
	"fmt"

	"doctor-finder/internal/domain/entity"
	domainRepo "doctor-finder/internal/domain/repository"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// doctorRecord is the table layout of a directory entry
type doctorRecord struct {
	ID             string         `gorm:"type:varchar(64);primaryKey"`
	Position       int            `gorm:"not null;index"`
	Name           string         `gorm:"type:varchar(255);not null"`
	Specialty      string         `gorm:"type:varchar(100);not null;index"`
	Experience     int            `gorm:"not null;default:0"`
	Rating         float64        `gorm:"not null;default:0"`
	AvailableSlots pq.StringArray `gorm:"type:text[]"`
	Image          string         `gorm:"type:text"`
	Location       string         `gorm:"type:varchar(255)"`
}

func (doctorRecord) TableName() string {
	return "doctors"
}

type postgresDoctorRepository struct {
	db   *gorm.DB
	log  *logrus.Logger
	seed []entity.Doctor
}

// MigrateDoctors creates or updates the doctors table.
func MigrateDoctors(db *gorm.DB) error {
	if err := db.AutoMigrate(&doctorRecord{}); err != nil {
		return fmt.Errorf("failed to migrate doctors table: %w", err)
	}
	return nil
}

// NewPostgresDoctorRepository reads the directory from the doctors table,
// inserting seed when the table is empty. The table must be migrated first.
func NewPostgresDoctorRepository(db *gorm.DB, log *logrus.Logger, seed []entity.Doctor) domainRepo.DoctorRepository {
	return &postgresDoctorRepository{db: db, log: log, seed: seed}
}

func (r *postgresDoctorRepository) FindAll(ctx context.Context) ([]entity.Doctor, error) {
	db := r.db.WithContext(ctx)
	if err := r.seedIfEmpty(db); err != nil {
		return nil, err
	}

	var records []doctorRecord
	if err := db.Order("position ASC").Find(&records).Error; err != nil {
		return nil, err
	}

	doctors := make([]entity.Doctor, len(records))
	for i, record := range records {
		doctors[i] = entity.Doctor{
			ID:             record.ID,
			Name:           record.Name,
			Specialty:      record.Specialty,
			Experience:     record.Experience,
			Rating:         record.Rating,
			AvailableSlots: []string(record.AvailableSlots),
			Image:          record.Image,
			Location:       record.Location,
		}
	}
	return doctors, nil
}

func (r *postgresDoctorRepository) seedIfEmpty(db *gorm.DB) error {
	var count int64
	if err := db.Model(&doctorRecord{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 || len(r.seed) == 0 {
		return nil
	}

	records := make([]doctorRecord, len(r.seed))
	for i, doctor := range r.seed {
		records[i] = doctorRecord{
			ID:             doctor.ID,
			Position:       i,
			Name:           doctor.Name,
			Specialty:      doctor.Specialty,
			Experience:     doctor.Experience,
			Rating:         doctor.Rating,
			AvailableSlots: pq.StringArray(doctor.AvailableSlots),
			Image:          doctor.Image,
			Location:       doctor.Location,
		}
	}
	if err := db.Create(&records).Error; err != nil {
		return fmt.Errorf("failed to seed doctors: %w", err)
	}

	r.log.Infof("Seeded %d doctors", len(records))
	return nil
}
