package models

import (
	"strings"

	"gorm.io/gorm"
)

// AuditStaff is a warehouse audit clerk. A clerk may be permitted at several
// locations; Locations holds them comma separated.
type AuditStaff struct {
	gorm.Model
	StaffID   string `json:"staff_id" gorm:"unique"`
	Name      string `json:"name"`
	Pin       string `json:"pin"`
	Locations string `json:"locations"`
	IsActive  bool   `json:"is_active" gorm:"default:true"`
	CreatedBy int    `json:"created_by"`
	UpdatedBy int    `json:"updated_by"`
}

func (s *AuditStaff) LocationList() []string {
	var list []string
	for _, loc := range strings.Split(s.Locations, ",") {
		loc = strings.TrimSpace(loc)
		if loc != "" {
			list = append(list, loc)
		}
	}
	return list
}

func (s *AuditStaff) HasLocation(location string) bool {
	for _, loc := range s.LocationList() {
		if loc == location {
			return true
		}
	}
	return false
}

// ClientStaff reviews objections raised at exactly one location.
type ClientStaff struct {
	gorm.Model
	StaffID   string `json:"staff_id" gorm:"unique"`
	Name      string `json:"name"`
	Pin       string `json:"pin"`
	Location  string `json:"location"`
	IsActive  bool   `json:"is_active" gorm:"default:true"`
	CreatedBy int    `json:"created_by"`
	UpdatedBy int    `json:"updated_by"`
}
