package controllers

import (
	"strings"
	"testing"

	"audit-app/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateCSVKnownKinds(t *testing.T) {
	cases := []struct {
		kind     string
		filename string
		header   string
	}{
		{"audit-staff", "audit_staff_template.csv", "staffId,name,pin,locations"},
		{"client-staff", "client_staff_template.csv", "staffId,name,pin,location"},
		{"inventory", "inventory_template.csv", "skuId,name,pickingLocation,bulkLocation,minQtyOdin,blockedQtyOdin,maxQtyOdin"},
	}

	for _, tc := range cases {
		content, filename, ok := TemplateCSV(tc.kind)
		require.True(t, ok, tc.kind)
		assert.Equal(t, tc.filename, filename)
		assert.True(t, strings.HasPrefix(content, tc.header+"\n"), tc.kind)
	}
}

func TestTemplateCSVUnknownKind(t *testing.T) {
	_, _, ok := TemplateCSV("warehouses")
	assert.False(t, ok)
}

func TestTemplateCSVRoundTripsThroughReader(t *testing.T) {
	content, _, ok := TemplateCSV("audit-staff")
	require.True(t, ok)

	rows, err := utils.ReadCSVRecords(strings.NewReader(content))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "AUD-001", rows[0]["staffId"])
	assert.Equal(t, "Noida WH,Mumbai WH", rows[0]["locations"])
	assert.Equal(t, "5678", rows[1]["pin"])
}
