package domain

import (
	"fmt"
	"sort"
)

// CheckKind identifies which validation check a SKU failed.
type CheckKind string

const (
	CheckDimensions           CheckKind = "dimensions"
	CheckHeight               CheckKind = "height"
	CheckVolume               CheckKind = "volume"
	CheckDuplicatePriority    CheckKind = "duplicate_priority"
	CheckInvalidConfiguration CheckKind = "invalid_configuration"
)

// ValidationError records one failed check for one SKU. Validation
// never aborts: every failure across every SKU is accumulated and
// returned together.
type ValidationError struct {
	SKUID   string    `json:"skuId" bson:"skuId"`
	Check   CheckKind `json:"check" bson:"check"`
	Message string    `json:"message" bson:"message"`
}

// ValidateSKUs checks every SKU against its declared tray
// configuration and returns the full list of failures, possibly empty.
// A SKU referencing an undefined configuration gets a single
// invalid_configuration error and skips the geometric checks. The
// checks are pure; the caller decides whether failing SKUs are
// excluded from placement.
func ValidateSKUs(skus []SKU, model *ConfigModel) []ValidationError {
	var errs []ValidationError
	machine := model.Machine()

	for _, s := range skus {
		tc, err := model.ByID(s.ConfigID)
		if err != nil {
			errs = append(errs, ValidationError{
				SKUID:   s.SKUID,
				Check:   CheckInvalidConfiguration,
				Message: fmt.Sprintf("tray configuration %d is not defined", s.ConfigID),
			})
			continue
		}

		geom, _ := model.Geometry(s.ConfigID)
		errs = append(errs, checkDimensions(s, geom, machine)...)
		errs = append(errs, checkHeight(s, tc, geom)...)
		errs = append(errs, checkVolume(s, geom)...)
	}

	errs = append(errs, checkDuplicatePriorities(skus)...)
	return errs
}

// checkDimensions verifies the item footprint fits the cell in at
// least one of the two orientations after subtracting clearance.
func checkDimensions(s SKU, geom CellGeometry, machine MachineConfig) []ValidationError {
	usableWidth := geom.CellWidth - 2*machine.ItemClearance
	usableDepth := machine.TrayDepth - 2*machine.ItemClearance

	fitsNormal := s.Width <= usableWidth && s.Length <= usableDepth
	fitsRotated := s.Length <= usableWidth && s.Width <= usableDepth
	if fitsNormal || fitsRotated {
		return nil
	}

	return []ValidationError{{
		SKUID: s.SKUID,
		Check: CheckDimensions,
		Message: fmt.Sprintf("footprint %.2f x %.2f in does not fit cell %.2f x %.2f in (with clearance) in either orientation",
			s.Width, s.Length, usableWidth, usableDepth),
	}}
}

func checkHeight(s SKU, tc TrayConfig, geom CellGeometry) []ValidationError {
	if s.Height <= geom.MaxItemHeight {
		return nil
	}
	return []ValidationError{{
		SKUID: s.SKUID,
		Check: CheckHeight,
		Message: fmt.Sprintf("item height %.2f in exceeds max %.2f in for %d-cell tray (%.0f%% tolerance on %g in)",
			s.Height, geom.MaxItemHeight, tc.CellCount, float64(tc.HeightTolerance), tc.TrayHeight),
	}}
}

func checkVolume(s SKU, geom CellGeometry) []ValidationError {
	if s.TotalVolume() <= geom.EffectiveVolume {
		return nil
	}
	return []ValidationError{{
		SKUID: s.SKUID,
		Check: CheckVolume,
		Message: fmt.Sprintf("total volume %.1f in3 (%d eaches) exceeds effective cell volume %.1f in3",
			s.TotalVolume(), s.Eaches, geom.EffectiveVolume),
	}}
}

// checkDuplicatePriorities reports every SKU that shares a pick
// priority with another SKU in the same configuration group.
func checkDuplicatePriorities(skus []SKU) []ValidationError {
	type groupKey struct {
		configID int
		priority int
	}

	counts := make(map[groupKey]int)
	for _, s := range skus {
		counts[groupKey{s.ConfigID, s.PickPriority}]++
	}

	var errs []ValidationError
	for _, s := range skus {
		if counts[groupKey{s.ConfigID, s.PickPriority}] > 1 {
			errs = append(errs, ValidationError{
				SKUID: s.SKUID,
				Check: CheckDuplicatePriority,
				Message: fmt.Sprintf("pick priority %d is assigned to multiple SKUs in configuration %d",
					s.PickPriority, s.ConfigID),
			})
		}
	}
	return errs
}

// FailedSKUs returns the set of SKU ids with at least one validation
// error, in deterministic order for reporting.
func FailedSKUs(errs []ValidationError) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, e := range errs {
		if !seen[e.SKUID] {
			seen[e.SKUID] = true
			ids = append(ids, e.SKUID)
		}
	}
	sort.Strings(ids)
	return ids
}
