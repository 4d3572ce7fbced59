// Copyright © 2024 The ansible-powerflex authors

package tableprinter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID     string
	Name   string
	SizeKb int64
	hidden string
}

func TestPrintAllColumns(t *testing.T) {
	var out bytes.Buffer
	err := Print(&out, []row{
		{ID: "vol-1", Name: "data", SizeKb: 8388608, hidden: "x"},
		{ID: "vol-2", Name: "logs", SizeKb: 1048576},
	})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "ID")
	assert.Contains(t, out.String(), "vol-2")
	assert.Contains(t, out.String(), "8388608")
	assert.NotContains(t, out.String(), "hidden")
}

func TestPrintSelectedColumns(t *testing.T) {
	var out bytes.Buffer
	err := Print(&out, []*row{{ID: "vol-1", Name: "data", SizeKb: 8388608}}, "Name", "ID")
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Name")
	assert.Contains(t, out.String(), "vol-1")
	assert.NotContains(t, out.String(), "SizeKb")
}

func TestPrintUnknownField(t *testing.T) {
	var out bytes.Buffer
	err := Print(&out, []row{{ID: "vol-1"}}, "Nope")
	require.Error(t, err)
}

func TestPrintEmptySlice(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Print(&out, []row{}))
	assert.Contains(t, out.String(), "No data to display.")
}

func TestPrintRejectsNonSlice(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, Print(&out, row{}))
	assert.Error(t, Print(&out, []string{"a"}))
}
