package models

import (
	"errors"
	"strings"
	"time"

	"audit-app/types"
)

// Audit entry lifecycle statuses. Draft, Approved, Rejected and Closed are
// part of the stored enum for compatibility with existing data but are never
// assigned as a stored status by any code path: entries are created as
// Completed or Submitted, and client review moves Submitted to Completed or
// Resubmitted.
const (
	StatusDraft       = "Draft"
	StatusSubmitted   = "Submitted"
	StatusApproved    = "Approved"
	StatusRejected    = "Rejected"
	StatusResubmitted = "Resubmitted"
	StatusCompleted   = "Completed"
	StatusClosed      = "Closed"
)

// Objection direction against the ODIN reference maximum.
const (
	ObjectionShort  = "Short"
	ObjectionExcess = "Excess"
)

// Actions a client reviewer may take on a submitted entry.
const (
	ClientActionApproved = "Approved"
	ClientActionRejected = "Rejected"
)

var (
	ErrInvalidClientAction = errors.New("action must be Approved or Rejected")
	ErrEntryNotSubmitted   = errors.New("entry is not awaiting client review")
	ErrCommentsRequired    = errors.New("comments are required when rejecting an entry")
)

type AuditEntry struct {
	ID        types.SnowflakeID `json:"id" gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt *time.Time        `json:"updated_at"`

	AuditStaffID   uint   `json:"audit_staff_id"`
	AuditStaffName string `json:"audit_staff_name"`
	Location       string `json:"location"`

	SkuID   string `json:"sku_id"`
	SkuName string `json:"sku_name"`

	PickingQty         float64 `json:"picking_qty" gorm:"default:0"`
	PickingLocation    string  `json:"picking_location"`
	BulkQty            float64 `json:"bulk_qty" gorm:"default:0"`
	BulkLocation       string  `json:"bulk_location"`
	NearExpiryQty      float64 `json:"near_expiry_qty" gorm:"default:0"`
	NearExpiryLocation string  `json:"near_expiry_location" gorm:"default:'NA'"`
	JitQty             float64 `json:"jit_qty" gorm:"default:0"`
	JitLocation        string  `json:"jit_location" gorm:"default:'NA'"`
	DamagedQty         float64 `json:"damaged_qty" gorm:"default:0"`
	DamagedLocation    string  `json:"damaged_location" gorm:"default:'NA'"`

	// ODIN reference quantities copied from the inventory record at creation
	// time, so later inventory edits do not alter past entries.
	MinQtyOdin     float64 `json:"min_qty_odin" gorm:"default:0"`
	BlockedQtyOdin float64 `json:"blocked_qty_odin" gorm:"default:0"`
	MaxQtyOdin     float64 `json:"max_qty_odin" gorm:"default:0"`

	// Computed once at creation, never recomputed.
	TotalQuantityIdentified float64 `json:"total_quantity_identified"`
	QtyTested               float64 `json:"qty_tested" gorm:"default:0"`

	Status string `json:"status" gorm:"default:'Draft'"`

	ObjectionRaised         bool    `json:"objection_raised" gorm:"default:false"`
	ObjectionType           *string `json:"objection_type"`
	AssignedClientStaffID   *uint   `json:"assigned_client_staff_id"`
	AssignedClientStaffName string  `json:"assigned_client_staff_name"`
	ObjectionRemarks        string  `json:"objection_remarks"`

	ClientAction         string     `json:"client_action"`
	ClientActionDate     *time.Time `json:"client_action_date"`
	ClientActionComments string     `json:"client_action_comments"`
}

// ApplyClientAction moves a Submitted entry through client review. Approval
// marks the entry Completed (no further action required); rejection marks it
// Resubmitted and requires comments so the clerk has feedback to correct the
// count. Any other current status is a conflict: Completed, Resubmitted and
// Closed are terminal.
func (e *AuditEntry) ApplyClientAction(action, comments string, now time.Time) error {
	if action != ClientActionApproved && action != ClientActionRejected {
		return ErrInvalidClientAction
	}
	if e.Status != StatusSubmitted {
		return ErrEntryNotSubmitted
	}
	comments = strings.TrimSpace(comments)
	if action == ClientActionRejected && comments == "" {
		return ErrCommentsRequired
	}

	switch action {
	case ClientActionApproved:
		e.Status = StatusCompleted
	case ClientActionRejected:
		e.Status = StatusResubmitted
	}
	e.ClientAction = action
	e.ClientActionDate = &now
	e.ClientActionComments = comments
	e.UpdatedAt = &now
	return nil
}
