package repositories

import (
	"audit-app/controllers/idgen"
	"audit-app/models"
	"audit-app/types"

	"gorm.io/gorm"
)

type AuditEntryRepository struct {
	DB *gorm.DB
}

func NewAuditEntryRepository(DB *gorm.DB) *AuditEntryRepository {
	return &AuditEntryRepository{DB: DB}
}

// Create persists a new audit entry, assigning a snowflake id when the caller
// did not set one.
func (r *AuditEntryRepository) Create(entry *models.AuditEntry) error {
	if entry.ID == 0 {
		entry.ID = types.SnowflakeID(idgen.GenerateID())
	}
	return r.DB.Create(entry).Error
}

func (r *AuditEntryRepository) GetByID(id int64) (*models.AuditEntry, error) {
	var entry models.AuditEntry
	err := r.DB.First(&entry, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// GetByAuditStaffID returns a clerk's entries, most recent first.
func (r *AuditEntryRepository) GetByAuditStaffID(staffID uint) ([]models.AuditEntry, error) {
	var entries []models.AuditEntry
	err := r.DB.Where("audit_staff_id = ?", staffID).Order("created_at desc").Find(&entries).Error
	return entries, err
}

// GetAll returns every entry, most recent first, for the client and admin views.
func (r *AuditEntryRepository) GetAll() ([]models.AuditEntry, error) {
	var entries []models.AuditEntry
	err := r.DB.Order("created_at desc").Find(&entries).Error
	return entries, err
}

// UpdateClientAction persists the outcome of a client review. The update is
// conditional on the row still being Submitted so a concurrent second review
// cannot overwrite the first; zero rows affected means the entry moved on.
func (r *AuditEntryRepository) UpdateClientAction(entry *models.AuditEntry) error {
	result := r.DB.Model(&models.AuditEntry{}).
		Where("id = ? AND status = ?", entry.ID, models.StatusSubmitted).
		Updates(map[string]interface{}{
			"status":                 entry.Status,
			"client_action":          entry.ClientAction,
			"client_action_date":     entry.ClientActionDate,
			"client_action_comments": entry.ClientActionComments,
			"updated_at":             entry.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrEntryNotSubmitted
	}
	return nil
}
