package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func submittedEntry() *AuditEntry {
	objType := ObjectionShort
	assignee := uint(21)
	return &AuditEntry{
		Status:                  StatusSubmitted,
		ObjectionRaised:         true,
		ObjectionType:           &objType,
		AssignedClientStaffID:   &assignee,
		AssignedClientStaffName: "Amit Kumar",
		ObjectionRemarks:        "short by 10",
	}
}

func TestApplyClientActionApproval(t *testing.T) {
	entry := submittedEntry()
	now := time.Now()

	require.NoError(t, entry.ApplyClientAction(ClientActionApproved, "", now))

	assert.Equal(t, StatusCompleted, entry.Status)
	assert.Equal(t, ClientActionApproved, entry.ClientAction)
	require.NotNil(t, entry.ClientActionDate)
	assert.Equal(t, now, *entry.ClientActionDate)
	require.NotNil(t, entry.UpdatedAt)

	// The objection record survives approval so the history stays readable.
	assert.True(t, entry.ObjectionRaised)
	require.NotNil(t, entry.ObjectionType)
	assert.Equal(t, ObjectionShort, *entry.ObjectionType)
	assert.Equal(t, "short by 10", entry.ObjectionRemarks)
}

func TestApplyClientActionRejection(t *testing.T) {
	entry := submittedEntry()
	now := time.Now()

	require.NoError(t, entry.ApplyClientAction(ClientActionRejected, "  recount aisle A  ", now))

	assert.Equal(t, StatusResubmitted, entry.Status)
	assert.Equal(t, ClientActionRejected, entry.ClientAction)
	assert.Equal(t, "recount aisle A", entry.ClientActionComments)
}

func TestApplyClientActionRejectionRequiresComments(t *testing.T) {
	entry := submittedEntry()

	err := entry.ApplyClientAction(ClientActionRejected, "   ", time.Now())
	assert.ErrorIs(t, err, ErrCommentsRequired)
	assert.Equal(t, StatusSubmitted, entry.Status)
}

func TestApplyClientActionApprovalCommentsOptional(t *testing.T) {
	entry := submittedEntry()

	require.NoError(t, entry.ApplyClientAction(ClientActionApproved, "", time.Now()))
	assert.Empty(t, entry.ClientActionComments)
}

func TestApplyClientActionRejectsUnknownAction(t *testing.T) {
	entry := submittedEntry()

	err := entry.ApplyClientAction("Escalated", "", time.Now())
	assert.ErrorIs(t, err, ErrInvalidClientAction)
	assert.Equal(t, StatusSubmitted, entry.Status)
	assert.Empty(t, entry.ClientAction)
}

func TestApplyClientActionGuardsNonSubmittedStatuses(t *testing.T) {
	for _, status := range []string{StatusDraft, StatusCompleted, StatusResubmitted, StatusClosed} {
		entry := submittedEntry()
		entry.Status = status

		err := entry.ApplyClientAction(ClientActionApproved, "", time.Now())
		assert.ErrorIs(t, err, ErrEntryNotSubmitted, "status %s", status)
		assert.Equal(t, status, entry.Status)
	}
}
