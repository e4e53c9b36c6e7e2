package services

import (
	"testing"

	"audit-app/models"
	"audit-app/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestEvaluateNoReferenceNeverRaisesDiscrepancy(t *testing.T) {
	cases := []CategoryCounts{
		{},
		{Picking: 40},
		{Picking: 50, Bulk: 10, NearExpiry: 3, Jit: 2, Damaged: 1},
		{Damaged: 9999},
	}

	for _, counts := range cases {
		result := Evaluate(counts, 0)
		assert.False(t, result.Discrepancy, "counts %+v", counts)
		assert.Empty(t, result.ObjectionType)
	}
}

func TestEvaluateTotalIsPlainSum(t *testing.T) {
	counts := CategoryCounts{Picking: 10, Bulk: 20, NearExpiry: 5, Jit: 2.5, Damaged: 1}
	result := Evaluate(counts, 100)
	assert.Equal(t, 38.5, result.Total)
}

func TestEvaluateToleranceBoundary(t *testing.T) {
	counts := CategoryCounts{Picking: 50}

	// 0.01 off is still considered reconciled, it only absorbs float noise.
	assert.False(t, Evaluate(counts, 50.01).Discrepancy)
	assert.True(t, Evaluate(counts, 50.02).Discrepancy)
}

func TestEvaluateShortAndExcess(t *testing.T) {
	short := Evaluate(CategoryCounts{Picking: 40}, 50)
	require.True(t, short.Discrepancy)
	assert.Equal(t, models.ObjectionShort, short.ObjectionType)

	excess := Evaluate(CategoryCounts{Picking: 60}, 50)
	require.True(t, excess.Discrepancy)
	assert.Equal(t, models.ObjectionExcess, excess.ObjectionType)
}

func TestEvaluateIsPure(t *testing.T) {
	counts := CategoryCounts{Picking: 40, Bulk: 3}
	first := Evaluate(counts, 50)
	second := Evaluate(counts, 50)
	assert.Equal(t, first, second)
}

// --- fakes for the directory, catalog and store ---

type fakeStaffDirectory struct {
	audit  map[string]models.AuditStaff
	client map[uint]models.ClientStaff
}

func (f *fakeStaffDirectory) GetAuditStaffByCode(staffID string) (*models.AuditStaff, error) {
	staff, ok := f.audit[staffID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &staff, nil
}

func (f *fakeStaffDirectory) GetClientStaffByID(id uint) (*models.ClientStaff, error) {
	staff, ok := f.client[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &staff, nil
}

type fakeInventoryCatalog struct {
	items map[string]models.Inventory
}

func (f *fakeInventoryCatalog) GetBySkuID(skuID string) (*models.Inventory, error) {
	item, ok := f.items[skuID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &item, nil
}

type fakeEntryStore struct {
	entries map[int64]models.AuditEntry
	nextID  int64
	creates int
}

func newFakeEntryStore() *fakeEntryStore {
	return &fakeEntryStore{entries: map[int64]models.AuditEntry{}, nextID: 1}
}

func (f *fakeEntryStore) Create(entry *models.AuditEntry) error {
	if entry.ID == 0 {
		entry.ID = types.SnowflakeID(f.nextID)
		f.nextID++
	}
	f.entries[int64(entry.ID)] = *entry
	f.creates++
	return nil
}

func (f *fakeEntryStore) GetByID(id int64) (*models.AuditEntry, error) {
	entry, ok := f.entries[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &entry, nil
}

func (f *fakeEntryStore) UpdateClientAction(entry *models.AuditEntry) error {
	stored, ok := f.entries[int64(entry.ID)]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if stored.Status != models.StatusSubmitted {
		return models.ErrEntryNotSubmitted
	}
	f.entries[int64(entry.ID)] = *entry
	return nil
}

func newTestService() (*ReconciliationService, *fakeEntryStore) {
	staff := &fakeStaffDirectory{
		audit: map[string]models.AuditStaff{
			"7": {
				Model:     gorm.Model{ID: 7},
				StaffID:   "7",
				Name:      "Ravi Sharma",
				Locations: "Noida WH,Gurugram WH",
				IsActive:  true,
			},
			"8": {
				Model:     gorm.Model{ID: 8},
				StaffID:   "8",
				Name:      "Former Clerk",
				Locations: "Noida WH",
				IsActive:  false,
			},
		},
		client: map[uint]models.ClientStaff{
			21: {Model: gorm.Model{ID: 21}, StaffID: "CLI-001", Name: "Amit Kumar", Location: "Noida WH", IsActive: true},
			22: {Model: gorm.Model{ID: 22}, StaffID: "CLI-002", Name: "Sneha Reddy", Location: "Mumbai WH", IsActive: true},
		},
	}
	inventory := &fakeInventoryCatalog{
		items: map[string]models.Inventory{
			"657611": {SkuID: "657611", Name: "Product A", PickingLocation: "A-1-1", BulkLocation: "B-1-1", MinQtyOdin: 10, BlockedQtyOdin: 5, MaxQtyOdin: 50},
			"657699": {SkuID: "657699", Name: "Unreferenced Product", MaxQtyOdin: 0},
		},
	}
	store := newFakeEntryStore()
	return NewReconciliationService(staff, inventory, store), store
}

func matchedInput() EntryInput {
	return EntryInput{
		AuditStaffCode: "7",
		Location:       "Noida WH",
		SkuID:          "657611",
		Counts:         CategoryCounts{Picking: 50},
	}
}

func TestSubmitReconciledEntryIsCompleted(t *testing.T) {
	service, store := newTestService()

	entry, err := service.Submit(matchedInput())
	require.NoError(t, err)

	assert.Equal(t, models.StatusCompleted, entry.Status)
	assert.Equal(t, 50.0, entry.TotalQuantityIdentified)
	assert.False(t, entry.ObjectionRaised)
	assert.Nil(t, entry.ObjectionType)
	assert.Nil(t, entry.AssignedClientStaffID)
	assert.Equal(t, 1, store.creates)

	// Names and reference quantities are frozen onto the entry.
	assert.Equal(t, "Ravi Sharma", entry.AuditStaffName)
	assert.Equal(t, "Product A", entry.SkuName)
	assert.Equal(t, 50.0, entry.MaxQtyOdin)
	assert.Equal(t, "A-1-1", entry.PickingLocation)
	assert.Equal(t, "B-1-1", entry.BulkLocation)
	assert.Equal(t, "NA", entry.JitLocation)
}

func TestSubmitShortCountRaisesObjection(t *testing.T) {
	service, _ := newTestService()

	input := matchedInput()
	input.Counts = CategoryCounts{Picking: 40}
	input.AssignedClientStaffID = 21
	input.ObjectionRemarks = "short by 10 against ODIN"

	entry, err := service.Submit(input)
	require.NoError(t, err)

	assert.Equal(t, models.StatusSubmitted, entry.Status)
	assert.Equal(t, 40.0, entry.TotalQuantityIdentified)
	assert.True(t, entry.ObjectionRaised)
	require.NotNil(t, entry.ObjectionType)
	assert.Equal(t, models.ObjectionShort, *entry.ObjectionType)
	require.NotNil(t, entry.AssignedClientStaffID)
	assert.Equal(t, uint(21), *entry.AssignedClientStaffID)
	assert.Equal(t, "Amit Kumar", entry.AssignedClientStaffName)
}

func TestSubmitNoReferenceCompletesDespiteMismatch(t *testing.T) {
	service, _ := newTestService()

	input := matchedInput()
	input.SkuID = "657699"
	input.Counts = CategoryCounts{Picking: 40}

	entry, err := service.Submit(input)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, entry.Status)
	assert.False(t, entry.ObjectionRaised)
}

func TestSubmitDiscrepancyWithoutAssigneeFails(t *testing.T) {
	service, store := newTestService()

	input := matchedInput()
	input.Counts = CategoryCounts{Picking: 40}
	input.ObjectionRemarks = "short"

	_, err := service.Submit(input)
	assert.ErrorIs(t, err, ErrAssigneeRequired)
	assert.Zero(t, store.creates)
}

func TestSubmitDiscrepancyWithoutRemarksFails(t *testing.T) {
	service, store := newTestService()

	input := matchedInput()
	input.Counts = CategoryCounts{Picking: 40}
	input.AssignedClientStaffID = 21
	input.ObjectionRemarks = "   "

	_, err := service.Submit(input)
	assert.ErrorIs(t, err, ErrRemarksRequired)
	assert.Zero(t, store.creates)
}

func TestSubmitReviewerAtOtherLocationFails(t *testing.T) {
	service, store := newTestService()

	input := matchedInput()
	input.Counts = CategoryCounts{Picking: 40}
	input.AssignedClientStaffID = 22 // reviews Mumbai WH
	input.ObjectionRemarks = "short"

	_, err := service.Submit(input)
	assert.ErrorIs(t, err, ErrReviewerWrongSite)
	assert.Zero(t, store.creates)
}

func TestSubmitUnknownStaffAndInactiveStaffAreDistinct(t *testing.T) {
	service, _ := newTestService()

	input := matchedInput()
	input.AuditStaffCode = "99"
	_, err := service.Submit(input)
	assert.ErrorIs(t, err, ErrAuditStaffNotFound)

	input = matchedInput()
	input.AuditStaffCode = "8"
	_, err = service.Submit(input)
	assert.ErrorIs(t, err, ErrAuditStaffInactive)
}

func TestSubmitUnknownSkuFails(t *testing.T) {
	service, _ := newTestService()

	input := matchedInput()
	input.SkuID = "000000"
	_, err := service.Submit(input)
	assert.ErrorIs(t, err, ErrInventoryNotFound)
}

func TestSubmitLocationOutsideClerkScopeFails(t *testing.T) {
	service, _ := newTestService()

	input := matchedInput()
	input.Location = "Mumbai WH"
	_, err := service.Submit(input)
	assert.ErrorIs(t, err, ErrLocationNotAllowed)
}

func submitObjection(t *testing.T, service *ReconciliationService) *models.AuditEntry {
	t.Helper()
	input := matchedInput()
	input.Counts = CategoryCounts{Picking: 40}
	input.AssignedClientStaffID = 21
	input.ObjectionRemarks = "short by 10"
	entry, err := service.Submit(input)
	require.NoError(t, err)
	return entry
}

func TestAdjudicateApprovalCompletesEntry(t *testing.T) {
	service, store := newTestService()
	entry := submitObjection(t, service)

	updated, err := service.Adjudicate(int64(entry.ID), models.ClientActionApproved, "")
	require.NoError(t, err)

	assert.Equal(t, models.StatusCompleted, updated.Status)
	assert.Equal(t, models.ClientActionApproved, updated.ClientAction)
	require.NotNil(t, updated.ClientActionDate)

	stored := store.entries[int64(entry.ID)]
	assert.Equal(t, models.StatusCompleted, stored.Status)
}

func TestAdjudicateRejectionResubmitsEntry(t *testing.T) {
	service, _ := newTestService()
	entry := submitObjection(t, service)

	updated, err := service.Adjudicate(int64(entry.ID), models.ClientActionRejected, "recount needed")
	require.NoError(t, err)

	assert.Equal(t, models.StatusResubmitted, updated.Status)
	assert.Equal(t, models.ClientActionRejected, updated.ClientAction)
	assert.Equal(t, "recount needed", updated.ClientActionComments)
}

func TestAdjudicateUnknownEntryFails(t *testing.T) {
	service, store := newTestService()

	_, err := service.Adjudicate(12345, models.ClientActionApproved, "")
	assert.ErrorIs(t, err, ErrEntryNotFound)
	assert.Empty(t, store.entries)
}

func TestAdjudicateSecondDecisionConflicts(t *testing.T) {
	service, _ := newTestService()
	entry := submitObjection(t, service)

	_, err := service.Adjudicate(int64(entry.ID), models.ClientActionApproved, "")
	require.NoError(t, err)

	_, err = service.Adjudicate(int64(entry.ID), models.ClientActionRejected, "changed my mind")
	assert.ErrorIs(t, err, models.ErrEntryNotSubmitted)
}

func TestAdjudicateStoreGuardCatchesConcurrentDecision(t *testing.T) {
	service, store := newTestService()
	entry := submitObjection(t, service)

	// Simulate a concurrent reviewer winning between the read and the write.
	loaded, err := store.GetByID(int64(entry.ID))
	require.NoError(t, err)
	require.NoError(t, loaded.ApplyClientAction(models.ClientActionApproved, "", loaded.CreatedAt))

	raced := store.entries[int64(entry.ID)]
	raced.Status = models.StatusCompleted
	store.entries[int64(entry.ID)] = raced

	err = store.UpdateClientAction(loaded)
	assert.ErrorIs(t, err, models.ErrEntryNotSubmitted)
}
