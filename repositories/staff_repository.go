package repositories

import (
	"audit-app/models"

	"gorm.io/gorm"
)

type StaffRepository struct {
	DB *gorm.DB
}

func NewStaffRepository(DB *gorm.DB) *StaffRepository {
	return &StaffRepository{DB: DB}
}

func (r *StaffRepository) GetAuditStaffByCode(staffID string) (*models.AuditStaff, error) {
	var staff models.AuditStaff
	err := r.DB.Where("staff_id = ?", staffID).First(&staff).Error
	if err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *StaffRepository) GetClientStaffByCode(staffID string) (*models.ClientStaff, error) {
	var staff models.ClientStaff
	err := r.DB.Where("staff_id = ?", staffID).First(&staff).Error
	if err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *StaffRepository) GetClientStaffByID(id uint) (*models.ClientStaff, error) {
	var staff models.ClientStaff
	err := r.DB.First(&staff, id).Error
	if err != nil {
		return nil, err
	}
	return &staff, nil
}

// GetReviewersByLocation lists the active client staff reviewing a location,
// ordered by display name.
func (r *StaffRepository) GetReviewersByLocation(location string) ([]models.ClientStaff, error) {
	var staff []models.ClientStaff
	err := r.DB.Where("location = ? AND is_active = ?", location, true).
		Order("name asc").Find(&staff).Error
	return staff, err
}

func (r *StaffRepository) GetAllAuditStaff() ([]models.AuditStaff, error) {
	var staff []models.AuditStaff
	err := r.DB.Order("name asc").Find(&staff).Error
	return staff, err
}

func (r *StaffRepository) GetAllClientStaff() ([]models.ClientStaff, error) {
	var staff []models.ClientStaff
	err := r.DB.Order("name asc").Find(&staff).Error
	return staff, err
}

// LastAuditStaff returns the most recently created audit clerk; used to
// auto-number new clerk codes.
func (r *StaffRepository) LastAuditStaff() (*models.AuditStaff, error) {
	var staff models.AuditStaff
	err := r.DB.Order("id desc").First(&staff).Error
	if err != nil {
		return nil, err
	}
	return &staff, nil
}
