package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSKU(id string, priority int) SKU {
	return SKU{
		SKUID:        id,
		Description:  "test item",
		Length:       6.0,
		Width:        5.0,
		Height:       5.0,
		Weight:       1.0,
		Eaches:       4,
		WeeklyPicks:  10,
		ConfigID:     1,
		PickPriority: priority,
	}
}

func TestValidateSKUsAccumulatesAllFailures(t *testing.T) {
	model, err := NewConfigModel(DefaultMachineConfig())
	require.NoError(t, err)

	// Flat but oversized footprint: fails dimensions without also
	// tripping the volume check.
	tooWide := validSKU("SKU-WIDE", 1)
	tooWide.Width = 40.0
	tooWide.Length = 40.0
	tooWide.Height = 0.5
	tooWide.Eaches = 1

	tooTall := validSKU("SKU-TALL", 2)
	tooTall.Height = 9.5 // max for config 1 is 8.8

	ok := validSKU("SKU-OK", 3)

	errs := ValidateSKUs([]SKU{tooWide, tooTall, ok}, model)
	require.Len(t, errs, 2)

	assert.Equal(t, "SKU-WIDE", errs[0].SKUID)
	assert.Equal(t, CheckDimensions, errs[0].Check)
	assert.Equal(t, "SKU-TALL", errs[1].SKUID)
	assert.Equal(t, CheckHeight, errs[1].Check)
}

func TestValidateSKUsVolume(t *testing.T) {
	model, err := NewConfigModel(DefaultMachineConfig())
	require.NoError(t, err)

	// Config 1 effective volume is about 2053 in3; 200 eaches of a
	// 150 in3 item blow well past it while each unit still fits.
	s := validSKU("SKU-BULK", 1)
	s.Eaches = 200

	errs := ValidateSKUs([]SKU{s}, model)
	require.Len(t, errs, 1)
	assert.Equal(t, CheckVolume, errs[0].Check)
	assert.Contains(t, errs[0].Message, "200 eaches")
}

func TestValidateSKUsRotationAllowed(t *testing.T) {
	model, err := NewConfigModel(DefaultMachineConfig())
	require.NoError(t, err)

	// Wider than the cell but fits rotated: 20 x 8 in a 12.58" x 24"
	// cell only works with the long side along the depth.
	s := validSKU("SKU-ROT", 1)
	s.Width = 20.0
	s.Length = 8.0
	s.Eaches = 1

	errs := ValidateSKUs([]SKU{s}, model)
	assert.Empty(t, errs)
}

func TestValidateSKUsInvalidConfiguration(t *testing.T) {
	model, err := NewConfigModel(DefaultMachineConfig())
	require.NoError(t, err)

	s := validSKU("SKU-BADCFG", 1)
	s.ConfigID = 99
	s.Height = 100.0 // would also fail height, but the config check short-circuits

	errs := ValidateSKUs([]SKU{s}, model)
	require.Len(t, errs, 1)
	assert.Equal(t, CheckInvalidConfiguration, errs[0].Check)
}

func TestValidateSKUsDuplicatePriority(t *testing.T) {
	model, err := NewConfigModel(DefaultMachineConfig())
	require.NoError(t, err)

	a := validSKU("SKU-A", 3)
	b := validSKU("SKU-B", 3)
	// Same priority in a different configuration group is fine.
	c := validSKU("SKU-C", 3)
	c.ConfigID = 2

	errs := ValidateSKUs([]SKU{a, b, c}, model)
	require.Len(t, errs, 2)

	assert.Equal(t, "SKU-A", errs[0].SKUID)
	assert.Equal(t, CheckDuplicatePriority, errs[0].Check)
	assert.Equal(t, "SKU-B", errs[1].SKUID)
	assert.Equal(t, CheckDuplicatePriority, errs[1].Check)
}

func TestFailedSKUs(t *testing.T) {
	errs := []ValidationError{
		{SKUID: "SKU-B", Check: CheckHeight},
		{SKUID: "SKU-A", Check: CheckDimensions},
		{SKUID: "SKU-B", Check: CheckVolume},
	}

	ids := FailedSKUs(errs)
	assert.Equal(t, []string{"SKU-A", "SKU-B"}, ids)
}
