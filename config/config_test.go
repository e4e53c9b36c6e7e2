package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidLocationFallsBackToDefaults(t *testing.T) {
	old := AuditLocations
	AuditLocations = nil
	defer func() { AuditLocations = old }()

	assert.True(t, IsValidLocation("Noida WH"))
	assert.True(t, IsValidLocation("Delhi Retail"))
	assert.False(t, IsValidLocation("Chennai WH"))
	assert.False(t, IsValidLocation(""))
}

func TestIsValidLocationUsesConfiguredList(t *testing.T) {
	old := AuditLocations
	AuditLocations = []string{"Pune WH"}
	defer func() { AuditLocations = old }()

	assert.True(t, IsValidLocation("Pune WH"))
	assert.False(t, IsValidLocation("Noida WH"))
}
