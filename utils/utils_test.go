package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQty(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"50", 50},
		{" 12.5 ", 12.5},
		{"0", 0},
		{"", 0},
		{"abc", 0},
		{"12abc", 0},
		{"-3", 0},
		{"-0.5", 0},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseQty(tc.in), "input %q", tc.in)
	}
}

func TestParseQtyCell(t *testing.T) {
	assert.Nil(t, ParseQtyCell(""))
	assert.Nil(t, ParseQtyCell("   "))

	zero := ParseQtyCell("0")
	require.NotNil(t, zero)
	assert.Equal(t, 0.0, *zero)

	v := ParseQtyCell("12.5")
	require.NotNil(t, v)
	assert.Equal(t, 12.5, *v)

	// Malformed cells behave like ParseQty, present but zero.
	bad := ParseQtyCell("abc")
	require.NotNil(t, bad)
	assert.Equal(t, 0.0, *bad)
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "SNEHA01", NormalizeCode("  sneha01 "))
	assert.Equal(t, "657611", NormalizeCode("657611"))
	assert.Equal(t, "", NormalizeCode("   "))
}

func TestReadCSVRecords(t *testing.T) {
	csv := "staffId,name,pin,locations\n" +
		"7,Ravi Sharma,1234,Noida WH\n" +
		"8,Priya Singh,5678,\"Noida WH,Mumbai WH\"\n"

	rows, err := ReadCSVRecords(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "7", rows[0]["staffId"])
	assert.Equal(t, "Ravi Sharma", rows[0]["name"])
	assert.Equal(t, "Noida WH,Mumbai WH", rows[1]["locations"])
}

func TestReadCSVRecordsSkipsBlankRows(t *testing.T) {
	csv := "skuId,name\n657611,Product A\n,\n657612,Product B\n"

	rows, err := ReadCSVRecords(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "657612", rows[1]["skuId"])
}

func TestReadCSVRecordsShortRow(t *testing.T) {
	csv := "skuId,name,maxQtyOdin\n657611,Product A\n"

	rows, err := ReadCSVRecords(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Product A", rows[0]["name"])
	assert.Equal(t, "", rows[0]["maxQtyOdin"])
}
