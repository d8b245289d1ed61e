package domain

import (
	"fmt"
	"sort"
)

// WarningKind identifies a non-fatal placement warning.
type WarningKind string

const (
	WarnNoTray         WarningKind = "no_tray"
	WarnTrayOverweight WarningKind = "tray_overweight"
)

// PlacementWarning is attached to a SKU that could not be given a
// physical tray, or to a tray whose summed cell weight exceeds the
// machine's per-tray limit.
type PlacementWarning struct {
	Kind         WarningKind `json:"kind" bson:"kind"`
	SKUID        string      `json:"skuId,omitempty" bson:"skuId,omitempty"`
	Tower        int         `json:"tower,omitempty" bson:"tower,omitempty"`
	PhysicalTray int         `json:"physicalTray,omitempty" bson:"physicalTray,omitempty"`
	Message      string      `json:"message" bson:"message"`
}

// TowerSummary aggregates one tower's usage.
type TowerSummary struct {
	Tower          int              `json:"tower" bson:"tower"`
	TraysUsed      int              `json:"traysUsed" bson:"traysUsed"`
	TraysAvailable int              `json:"traysAvailable" bson:"traysAvailable"`
	Items          int              `json:"items" bson:"items"`
	Weight         float64          `json:"weightLbs" bson:"weightLbs"`
	ZoneCounts     map[ZoneTier]int `json:"zoneCounts" bson:"zoneCounts"`
}

// ConfigSummary aggregates one tray configuration's usage together
// with its derived cell dimensions.
type ConfigSummary struct {
	ConfigID        int     `json:"configId" bson:"configId"`
	Label           string  `json:"label" bson:"label"`
	CellCount       int     `json:"cellCount" bson:"cellCount"`
	CellWidth       float64 `json:"cellWidthIn" bson:"cellWidthIn"`
	CellVolume      float64 `json:"cellVolumeIn3" bson:"cellVolumeIn3"`
	EffectiveVolume float64 `json:"effectiveVolumeIn3" bson:"effectiveVolumeIn3"`
	MaxItemHeight   float64 `json:"maxItemHeightIn" bson:"maxItemHeightIn"`
	TraysAllocated  int     `json:"traysAllocated" bson:"traysAllocated"`
	Items           int     `json:"items" bson:"items"`
}

// Summary is the aggregate view of one slotting run. Excluded SKUs
// (validation failures, no_tray) are absent from the placement table
// but still counted here.
type Summary struct {
	TotalSKUs          int                `json:"totalSkus" bson:"totalSkus"`
	TotalPlaced        int                `json:"totalPlaced" bson:"totalPlaced"`
	TotalExcluded      int                `json:"totalExcluded" bson:"totalExcluded"`
	TraysUsed          int                `json:"traysUsed" bson:"traysUsed"`
	TraysAvailable     int                `json:"traysAvailable" bson:"traysAvailable"`
	TotalCells         int                `json:"totalCells" bson:"totalCells"`
	OccupiedCells      int                `json:"occupiedCells" bson:"occupiedCells"`
	CellUtilizationPct float64            `json:"cellUtilizationPct" bson:"cellUtilizationPct"`
	TotalPicks         int                `json:"totalPicks" bson:"totalPicks"`
	GoldenPicks        int                `json:"goldenPicks" bson:"goldenPicks"`
	GoldenPickPct      float64            `json:"goldenPickPct" bson:"goldenPickPct"`
	HighPickSKUs       int                `json:"highPickSkus" bson:"highPickSkus"`
	HeaviestTrayWeight float64            `json:"heaviestTrayLbs" bson:"heaviestTrayLbs"`
	AvgTrayWeight      float64            `json:"avgTrayWeightLbs" bson:"avgTrayWeightLbs"`
	WeightLimit        float64            `json:"weightLimitLbs" bson:"weightLimitLbs"`
	Towers             []TowerSummary     `json:"towers" bson:"towers"`
	Configs            []ConfigSummary    `json:"configs" bson:"configs"`
	Warnings           []PlacementWarning `json:"warnings" bson:"warnings"`
	ValidationErrors   []ValidationError  `json:"validationErrors" bson:"validationErrors"`
}

// BuildSummary aggregates placement records, allocation results and
// the collected warning/error lists into a Summary. Overweight-tray
// warnings are computed here, after all placements are known.
func BuildSummary(records []PlacementRecord, totalSKUs int, model *ConfigModel,
	alloc *TrayAllocation, valErrs []ValidationError, warnings []PlacementWarning) Summary {

	machine := model.Machine()

	s := Summary{
		TotalSKUs:        totalSKUs,
		TotalPlaced:      len(records),
		TotalExcluded:    totalSKUs - len(records),
		TraysAvailable:   machine.TraysPerTower() * machine.Towers,
		WeightLimit:      machine.TrayMaxWeight,
		Warnings:         warnings,
		ValidationErrors: valErrs,
	}
	if s.Warnings == nil {
		s.Warnings = []PlacementWarning{}
	}
	if s.ValidationErrors == nil {
		s.ValidationErrors = []ValidationError{}
	}

	// Per-tower aggregates.
	towerByNum := make(map[int]*TowerSummary, machine.Towers)
	for tower := 1; tower <= machine.Towers; tower++ {
		towerByNum[tower] = &TowerSummary{
			Tower:          tower,
			TraysUsed:      alloc.TraysUsed(tower),
			TraysAvailable: machine.TraysPerTower(),
			ZoneCounts:     make(map[ZoneTier]int),
		}
		s.TraysUsed += alloc.TraysUsed(tower)
	}

	// Per-configuration aggregates with derived cell dimensions.
	configByID := make(map[int]*ConfigSummary)
	for _, tc := range model.Configs() {
		geom, err := model.Geometry(tc.ID)
		if err != nil {
			continue
		}
		cs := &ConfigSummary{
			ConfigID:        tc.ID,
			Label:           model.ConfigLabel(tc.ID),
			CellCount:       tc.CellCount,
			CellWidth:       geom.CellWidth,
			CellVolume:      geom.CellVolume,
			EffectiveVolume: geom.EffectiveVolume,
			MaxItemHeight:   geom.MaxItemHeight,
			TraysAllocated:  alloc.ConfigTrays(tc.ID),
		}
		configByID[tc.ID] = cs
		s.TotalCells += cs.TraysAllocated * tc.CellCount
	}

	trayWeights := make(map[int]float64)
	trayTower := make(map[int]int)

	for _, r := range records {
		s.TotalPicks += r.SKU.WeeklyPicks
		if r.Zone == ZoneGolden {
			s.GoldenPicks += r.SKU.WeeklyPicks
		}
		if r.SKU.WeeklyPicks >= machine.HighPickThreshold {
			s.HighPickSKUs++
		}

		if t, ok := towerByNum[r.Tower]; ok {
			t.Items++
			t.Weight += r.SKU.TotalWeight()
			t.ZoneCounts[r.Zone]++
		}
		if cs, ok := configByID[r.ConfigID]; ok {
			cs.Items++
		}

		trayWeights[r.PhysicalTray] += r.SKU.TotalWeight()
		trayTower[r.PhysicalTray] = r.Tower
	}

	s.OccupiedCells = len(records)
	if s.TotalCells > 0 {
		s.CellUtilizationPct = float64(s.OccupiedCells) / float64(s.TotalCells) * 100.0
	}
	if s.TotalPicks > 0 {
		s.GoldenPickPct = float64(s.GoldenPicks) / float64(s.TotalPicks) * 100.0
	}

	// Tray weight stats and overweight warnings, in tray order for
	// deterministic output.
	trays := make([]int, 0, len(trayWeights))
	for tray := range trayWeights {
		trays = append(trays, tray)
	}
	sort.Ints(trays)

	totalWeight := 0.0
	for _, tray := range trays {
		w := trayWeights[tray]
		totalWeight += w
		if w > s.HeaviestTrayWeight {
			s.HeaviestTrayWeight = w
		}
		if w > machine.TrayMaxWeight {
			s.Warnings = append(s.Warnings, PlacementWarning{
				Kind:         WarnTrayOverweight,
				Tower:        trayTower[tray],
				PhysicalTray: tray,
				Message: fmt.Sprintf("tray %d carries %.1f lbs, over the %.1f lbs limit",
					tray, w, machine.TrayMaxWeight),
			})
		}
	}
	if len(trays) > 0 {
		s.AvgTrayWeight = totalWeight / float64(len(trays))
	}

	for tower := 1; tower <= machine.Towers; tower++ {
		s.Towers = append(s.Towers, *towerByNum[tower])
	}
	for _, tc := range model.Configs() {
		if cs, ok := configByID[tc.ID]; ok {
			s.Configs = append(s.Configs, *cs)
		}
	}

	return s
}
