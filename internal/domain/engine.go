package domain

import (
	"fmt"
	"sort"
)

// Result is the output of one slotting run: the placement table plus
// the aggregate summary. Given identical input the result is
// byte-for-byte identical on every run.
type Result struct {
	Placements []PlacementRecord `json:"placements" bson:"placements"`
	Summary    Summary           `json:"summary" bson:"summary"`
}

// Slot runs the full placement pipeline over an immutable SKU list and
// machine configuration:
//
//	Loaded -> Validated -> Located -> Allocated -> Zoned -> Summarized
//
// SKUs with validation errors are excluded from placement but remain
// counted in summary totals. SKUs whose logical tray received no
// physical tray become no_tray warnings. The pipeline is synchronous
// and performs no I/O.
func Slot(skus []SKU, cfg MachineConfig) (*Result, error) {
	model, err := NewConfigModel(cfg)
	if err != nil {
		return nil, err
	}

	valErrs := ValidateSKUs(skus, model)
	excluded := make(map[string]bool)
	for _, e := range valErrs {
		excluded[e.SKUID] = true
	}

	valid := make([]SKU, 0, len(skus))
	for _, s := range skus {
		if !excluded[s.SKUID] {
			valid = append(valid, s)
		}
	}

	alloc := AllocateTrays(valid, model)

	var (
		records  []PlacementRecord
		warnings []PlacementWarning
	)
	for _, s := range valid {
		tc, err := model.ByID(s.ConfigID)
		if err != nil {
			continue
		}
		loc := LocateCell(s.PickPriority, cfg.Towers, tc.CellCount, TowerOffset(tc.ID, cfg.Towers))

		physicalTray, ok := alloc.PhysicalTray(loc.Tower, tc.ID, loc.ConfigTray)
		if !ok {
			warnings = append(warnings, PlacementWarning{
				Kind:  WarnNoTray,
				SKUID: s.SKUID,
				Tower: loc.Tower,
				Message: fmt.Sprintf("no physical tray for configuration %d tray %d in tower %d",
					tc.ID, loc.ConfigTray, loc.Tower),
			})
			continue
		}

		geom, err := model.Geometry(tc.ID)
		if err != nil {
			continue
		}

		records = append(records, PlacementRecord{
			BinLabel:        BinLabel(cfg.ZoneLabel, physicalTray, tc.ID, loc.CellIndex),
			SKU:             s,
			Tower:           loc.Tower,
			PhysicalTray:    physicalTray,
			CellIndex:       loc.CellIndex,
			ConfigID:        tc.ID,
			ConfigLabel:     model.ConfigLabel(tc.ID),
			ConfigTray:      loc.ConfigTray,
			CellVolume:      geom.CellVolume,
			EffectiveVolume: geom.EffectiveVolume,
			FillPct:         tc.FillPct,
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Tower != records[j].Tower {
			return records[i].Tower < records[j].Tower
		}
		if records[i].PhysicalTray != records[j].PhysicalTray {
			return records[i].PhysicalTray < records[j].PhysicalTray
		}
		return records[i].CellIndex < records[j].CellIndex
	})

	ClassifyZones(records, cfg.GoldenPct, cfg.SilverPct, cfg.BronzePct)

	summary := BuildSummary(records, len(skus), model, alloc, valErrs, warnings)

	if records == nil {
		records = []PlacementRecord{}
	}
	return &Result{Placements: records, Summary: summary}, nil
}
