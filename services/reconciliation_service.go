package services

import (
	"errors"
	"math"
	"strings"
	"time"

	"audit-app/config"
	"audit-app/models"
	"audit-app/utils"

	"gorm.io/gorm"
)

// discrepancyTolerance absorbs floating point noise from user entered
// decimals. It is not a business tolerance window.
const discrepancyTolerance = 0.01

var (
	ErrAuditStaffNotFound = errors.New("audit staff not found")
	ErrAuditStaffInactive = errors.New("audit staff account is inactive")
	ErrInventoryNotFound  = errors.New("inventory not found")
	ErrInvalidLocation    = errors.New("location is not a recognized audit location")
	ErrLocationNotAllowed = errors.New("audit staff is not permitted at this location")
	ErrAssigneeRequired   = errors.New("an assigned client staff is required when an objection is raised")
	ErrRemarksRequired    = errors.New("objection remarks are required when an objection is raised")
	ErrReviewerNotFound   = errors.New("assigned client staff not found")
	ErrReviewerInactive   = errors.New("assigned client staff account is inactive")
	ErrReviewerWrongSite  = errors.New("assigned client staff does not review this location")
	ErrEntryNotFound      = errors.New("audit entry not found")
)

// CategoryCounts are the five physical count categories of one audit pass.
type CategoryCounts struct {
	Picking    float64
	Bulk       float64
	NearExpiry float64
	Jit        float64
	Damaged    float64
}

func (c CategoryCounts) Total() float64 {
	return c.Picking + c.Bulk + c.NearExpiry + c.Jit + c.Damaged
}

type EvaluationResult struct {
	Total         float64
	Discrepancy   bool
	ObjectionType string // Short or Excess when Discrepancy is set
}

// Evaluate compares the counted total against the ODIN reference maximum.
// When maxQtyOdin is zero there is nothing to reconcile against and no
// discrepancy is ever raised. Pure: no lookups, no side effects.
func Evaluate(counts CategoryCounts, maxQtyOdin float64) EvaluationResult {
	result := EvaluationResult{Total: counts.Total()}

	if maxQtyOdin <= 0 {
		return result
	}
	if math.Abs(result.Total-maxQtyOdin) <= discrepancyTolerance {
		return result
	}

	result.Discrepancy = true
	if result.Total < maxQtyOdin {
		result.ObjectionType = models.ObjectionShort
	} else {
		result.ObjectionType = models.ObjectionExcess
	}
	return result
}

// StaffDirectory resolves clerk and reviewer records. Implemented by
// repositories.StaffRepository.
type StaffDirectory interface {
	GetAuditStaffByCode(staffID string) (*models.AuditStaff, error)
	GetClientStaffByID(id uint) (*models.ClientStaff, error)
}

// InventoryCatalog resolves SKU master records. Implemented by
// repositories.InventoryRepository.
type InventoryCatalog interface {
	GetBySkuID(skuID string) (*models.Inventory, error)
}

// EntryStore owns audit entry persistence. Implemented by
// repositories.AuditEntryRepository.
type EntryStore interface {
	Create(entry *models.AuditEntry) error
	GetByID(id int64) (*models.AuditEntry, error)
	UpdateClientAction(entry *models.AuditEntry) error
}

// EntryInput is one clerk submission. Quantities are already parsed with the
// permissive utils.ParseQty policy by the caller.
type EntryInput struct {
	AuditStaffCode string
	Location       string
	SkuID          string

	Counts CategoryCounts

	PickingLocation    string
	BulkLocation       string
	NearExpiryLocation string
	JitLocation        string
	DamagedLocation    string

	QtyTested float64

	// Objection routing, required only when Evaluate reports a discrepancy.
	AssignedClientStaffID uint
	ObjectionRemarks      string
}

type ReconciliationService struct {
	staff     StaffDirectory
	inventory InventoryCatalog
	entries   EntryStore
}

func NewReconciliationService(staff StaffDirectory, inventory InventoryCatalog, entries EntryStore) *ReconciliationService {
	return &ReconciliationService{staff: staff, inventory: inventory, entries: entries}
}

func defaultLabel(label, fallback string) string {
	if label != "" {
		return label
	}
	if fallback != "" {
		return fallback
	}
	return "NA"
}

// Submit validates a clerk submission, evaluates the count against the ODIN
// reference and persists the resulting entry: Completed when the count
// reconciles, Submitted with the objection routed to a client reviewer when
// it does not. Validation failures create nothing.
func (s *ReconciliationService) Submit(input EntryInput) (*models.AuditEntry, error) {
	staff, err := s.staff.GetAuditStaffByCode(utils.NormalizeCode(input.AuditStaffCode))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuditStaffNotFound
		}
		return nil, err
	}
	if !staff.IsActive {
		return nil, ErrAuditStaffInactive
	}

	if !config.IsValidLocation(input.Location) {
		return nil, ErrInvalidLocation
	}
	if !staff.HasLocation(input.Location) {
		return nil, ErrLocationNotAllowed
	}

	item, err := s.inventory.GetBySkuID(utils.NormalizeCode(input.SkuID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInventoryNotFound
		}
		return nil, err
	}

	eval := Evaluate(input.Counts, item.MaxQtyOdin)

	entry := &models.AuditEntry{
		AuditStaffID:   staff.ID,
		AuditStaffName: staff.Name,
		Location:       input.Location,
		SkuID:          item.SkuID,
		SkuName:        item.Name,

		PickingQty:         input.Counts.Picking,
		PickingLocation:    defaultLabel(input.PickingLocation, item.PickingLocation),
		BulkQty:            input.Counts.Bulk,
		BulkLocation:       defaultLabel(input.BulkLocation, item.BulkLocation),
		NearExpiryQty:      input.Counts.NearExpiry,
		NearExpiryLocation: defaultLabel(input.NearExpiryLocation, ""),
		JitQty:             input.Counts.Jit,
		JitLocation:        defaultLabel(input.JitLocation, ""),
		DamagedQty:         input.Counts.Damaged,
		DamagedLocation:    defaultLabel(input.DamagedLocation, ""),

		MinQtyOdin:     item.MinQtyOdin,
		BlockedQtyOdin: item.BlockedQtyOdin,
		MaxQtyOdin:     item.MaxQtyOdin,

		TotalQuantityIdentified: eval.Total,
		QtyTested:               input.QtyTested,

		Status: models.StatusCompleted,
	}

	if eval.Discrepancy {
		if input.AssignedClientStaffID == 0 {
			return nil, ErrAssigneeRequired
		}
		remarks := strings.TrimSpace(input.ObjectionRemarks)
		if remarks == "" {
			return nil, ErrRemarksRequired
		}

		reviewer, err := s.staff.GetClientStaffByID(input.AssignedClientStaffID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrReviewerNotFound
			}
			return nil, err
		}
		if !reviewer.IsActive {
			return nil, ErrReviewerInactive
		}
		if reviewer.Location != input.Location {
			return nil, ErrReviewerWrongSite
		}

		objectionType := eval.ObjectionType
		reviewerID := reviewer.ID

		entry.Status = models.StatusSubmitted
		entry.ObjectionRaised = true
		entry.ObjectionType = &objectionType
		entry.AssignedClientStaffID = &reviewerID
		entry.AssignedClientStaffName = reviewer.Name
		entry.ObjectionRemarks = remarks
	}

	if err := s.entries.Create(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Adjudicate applies a client reviewer's Approved/Rejected decision to a
// submitted entry. The store update is conditional on the entry still being
// Submitted, so a concurrent second decision surfaces as a conflict instead
// of silently overwriting the first.
func (s *ReconciliationService) Adjudicate(id int64, action, comments string) (*models.AuditEntry, error) {
	entry, err := s.entries.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}

	if err := entry.ApplyClientAction(action, comments, time.Now()); err != nil {
		return nil, err
	}
	if err := s.entries.UpdateClientAction(entry); err != nil {
		return nil, err
	}
	return entry, nil
}
