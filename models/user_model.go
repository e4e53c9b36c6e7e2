package models

import "gorm.io/gorm"

// User is an administrator account for roster and inventory management.
type User struct {
	gorm.Model
	Username string `json:"username" gorm:"unique"`
	Password string `json:"password"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active" gorm:"default:true"`
}

type LoginLog struct {
	gorm.Model
	UserType      string  `json:"user_type"` // admin, audit or client
	StaffID       string  `json:"staff_id"`
	Username      string  `json:"username"`
	SessionID     string  `json:"session_id"`
	LoginStatus   string  `json:"login_status"`
	FailureReason *string `json:"failure_reason"`
	IPAddress     string  `json:"ip_address"`
	UserAgent     string  `json:"user_agent"`
}
