package domain

import (
	"errors"
	"fmt"
	"sort"
)

// Errors
var (
	ErrInvalidConfiguration = errors.New("invalid tray configuration")
	ErrNoTrayConfigs        = errors.New("machine must define at least one tray configuration")
	ErrNoTowers             = errors.New("machine must have at least one tower")
)

// TrayConfig describes one divider layout: a tray split into a fixed
// number of equal-width cells at a given tray height.
type TrayConfig struct {
	ID              int     `json:"id" bson:"id"`
	CellCount       int     `json:"cellCount" bson:"cellCount"`
	TrayHeight      float64 `json:"trayHeightIn" bson:"trayHeightIn"`
	HeightTolerance int     `json:"heightTolerancePct" bson:"heightTolerancePct"`
	FillPct         int     `json:"fillPct" bson:"fillPct"`
}

// TrayPool is the physical tray inventory for one tray height: how many
// trays of that height each tower carries.
type TrayPool struct {
	TrayHeight    float64 `json:"trayHeightIn" bson:"trayHeightIn"`
	TraysPerTower int     `json:"traysPerTower" bson:"traysPerTower"`
}

// MachineConfig holds the full layout of one vertical lift module plus
// the slotting thresholds. It is an immutable value passed into each
// engine invocation; callers that want to remember settings between
// runs keep their own copy.
type MachineConfig struct {
	ZoneLabel         string       `json:"zoneLabel" bson:"zoneLabel"`
	Towers            int          `json:"towers" bson:"towers"`
	TrayWidth         float64      `json:"trayWidthIn" bson:"trayWidthIn"`
	TrayDepth         float64      `json:"trayDepthIn" bson:"trayDepthIn"`
	TrayPools         []TrayPool   `json:"trayPools" bson:"trayPools"`
	TrayMaxWeight     float64      `json:"trayMaxWeightLbs" bson:"trayMaxWeightLbs"`
	GoldenPct         int          `json:"goldenZonePct" bson:"goldenZonePct"`
	SilverPct         int          `json:"silverZonePct" bson:"silverZonePct"`
	BronzePct         int          `json:"bronzeZonePct" bson:"bronzeZonePct"`
	DividerWidth      float64      `json:"dividerWidthIn" bson:"dividerWidthIn"`
	ItemClearance     float64      `json:"itemClearanceIn" bson:"itemClearanceIn"`
	HighPickThreshold int          `json:"highPickThreshold" bson:"highPickThreshold"`
	TrayConfigs       []TrayConfig `json:"trayConfigs" bson:"trayConfigs"`
}

// DefaultMachineConfig returns a fresh default configuration. Every
// call returns a new value; there is no shared mutable default.
func DefaultMachineConfig() MachineConfig {
	return MachineConfig{
		ZoneLabel: "V",
		Towers:    3,
		TrayWidth: 78.0,
		TrayDepth: 24.0,
		TrayPools: []TrayPool{
			{TrayHeight: 2.0, TraysPerTower: 14},
			{TrayHeight: 4.0, TraysPerTower: 18},
			{TrayHeight: 6.0, TraysPerTower: 12},
			{TrayHeight: 8.0, TraysPerTower: 6},
		},
		TrayMaxWeight:     750.0,
		GoldenPct:         50,
		SilverPct:         75,
		BronzePct:         90,
		DividerWidth:      0.5,
		ItemClearance:     0.25,
		HighPickThreshold: 4,
		TrayConfigs: []TrayConfig{
			{ID: 1, CellCount: 6, TrayHeight: 8.0, HeightTolerance: 10, FillPct: 85},
			{ID: 2, CellCount: 8, TrayHeight: 6.0, HeightTolerance: 10, FillPct: 85},
			{ID: 3, CellCount: 16, TrayHeight: 4.0, HeightTolerance: 10, FillPct: 85},
			{ID: 4, CellCount: 30, TrayHeight: 2.0, HeightTolerance: 10, FillPct: 85},
		},
	}
}

// Validate checks the cross-field constraints on a machine config.
func (c MachineConfig) Validate() error {
	if len(c.ZoneLabel) != 1 {
		return fmt.Errorf("zone label must be exactly one character, got %q", c.ZoneLabel)
	}
	if c.Towers < 1 {
		return ErrNoTowers
	}
	if len(c.TrayConfigs) == 0 {
		return ErrNoTrayConfigs
	}
	if c.GoldenPct < 1 || c.GoldenPct > 100 {
		return fmt.Errorf("golden zone percentage must be 1-100, got %d", c.GoldenPct)
	}
	if c.SilverPct < 1 || c.SilverPct > 100 {
		return fmt.Errorf("silver zone percentage must be 1-100, got %d", c.SilverPct)
	}
	if c.BronzePct < 1 || c.BronzePct > 100 {
		return fmt.Errorf("bronze zone percentage must be 1-100, got %d", c.BronzePct)
	}
	if c.SilverPct <= c.GoldenPct {
		return fmt.Errorf("silver zone percentage (%d) must be greater than golden (%d)", c.SilverPct, c.GoldenPct)
	}
	if c.BronzePct <= c.SilverPct {
		return fmt.Errorf("bronze zone percentage (%d) must be greater than silver (%d)", c.BronzePct, c.SilverPct)
	}
	return nil
}

// PoolSize returns how many physical trays of the given height one
// tower carries. Heights with no pool entry have zero trays.
func (c MachineConfig) PoolSize(trayHeight float64) int {
	for _, p := range c.TrayPools {
		if p.TrayHeight == trayHeight {
			return p.TraysPerTower
		}
	}
	return 0
}

// TraysPerTower returns the total physical tray count per tower.
func (c MachineConfig) TraysPerTower() int {
	total := 0
	for _, p := range c.TrayPools {
		total += p.TraysPerTower
	}
	return total
}

// CellGeometry holds the derived dimensions of one cell in a tray
// configuration.
type CellGeometry struct {
	CellWidth       float64 `json:"cellWidthIn"`
	CellVolume      float64 `json:"cellVolumeIn3"`
	EffectiveVolume float64 `json:"effectiveVolumeIn3"`
	MaxItemHeight   float64 `json:"maxItemHeightIn"`
}

// ConfigModel resolves tray configuration ids to their definitions and
// derived cell geometry. Built once per run from an immutable machine
// config.
type ConfigModel struct {
	machine MachineConfig
	byID    map[int]TrayConfig
}

// NewConfigModel builds a ConfigModel. Declared configurations with a
// cell count <= 0 are rejected up front so every id the model resolves
// has usable geometry.
func NewConfigModel(machine MachineConfig) (*ConfigModel, error) {
	if machine.Towers < 1 {
		return nil, ErrNoTowers
	}
	if len(machine.TrayConfigs) == 0 {
		return nil, ErrNoTrayConfigs
	}

	byID := make(map[int]TrayConfig, len(machine.TrayConfigs))
	for _, tc := range machine.TrayConfigs {
		if tc.CellCount <= 0 {
			return nil, fmt.Errorf("%w: configuration %d has cell count %d", ErrInvalidConfiguration, tc.ID, tc.CellCount)
		}
		if _, exists := byID[tc.ID]; exists {
			return nil, fmt.Errorf("%w: duplicate configuration id %d", ErrInvalidConfiguration, tc.ID)
		}
		byID[tc.ID] = tc
	}

	return &ConfigModel{machine: machine, byID: byID}, nil
}

// Machine returns the machine config the model was built from.
func (m *ConfigModel) Machine() MachineConfig {
	return m.machine
}

// ByID resolves a tray configuration id.
func (m *ConfigModel) ByID(id int) (TrayConfig, error) {
	tc, ok := m.byID[id]
	if !ok {
		return TrayConfig{}, fmt.Errorf("%w: configuration %d is not defined", ErrInvalidConfiguration, id)
	}
	return tc, nil
}

// Configs returns all defined tray configurations sorted by id.
func (m *ConfigModel) Configs() []TrayConfig {
	configs := make([]TrayConfig, 0, len(m.byID))
	for _, tc := range m.byID {
		configs = append(configs, tc)
	}
	sort.Slice(configs, func(i, j int) bool { return configs[i].ID < configs[j].ID })
	return configs
}

// Geometry derives the cell dimensions for a configuration id.
//
// A tray with N cells has N-1 internal dividers, so
// cellWidth = (trayWidth - (N-1)*dividerWidth) / N. Effective volume
// scales the geometric cell volume by the configuration's fill
// percentage; max item height scales tray height by the tolerance.
func (m *ConfigModel) Geometry(id int) (CellGeometry, error) {
	tc, err := m.ByID(id)
	if err != nil {
		return CellGeometry{}, err
	}

	cellWidth := (m.machine.TrayWidth - float64(tc.CellCount-1)*m.machine.DividerWidth) / float64(tc.CellCount)
	cellVolume := cellWidth * m.machine.TrayDepth * tc.TrayHeight

	return CellGeometry{
		CellWidth:       cellWidth,
		CellVolume:      cellVolume,
		EffectiveVolume: cellVolume * float64(tc.FillPct) / 100.0,
		MaxItemHeight:   tc.TrayHeight * (1.0 + float64(tc.HeightTolerance)/100.0),
	}, nil
}

// ConfigLabel returns the display label for a configuration,
// e.g. `16-cell 4"`.
func (m *ConfigModel) ConfigLabel(id int) string {
	tc, err := m.ByID(id)
	if err != nil {
		return fmt.Sprintf("config-%d", id)
	}
	return fmt.Sprintf("%d-cell %g\"", tc.CellCount, tc.TrayHeight)
}

// ConfigLetter maps a configuration id to the single letter used in
// bin labels: 1 -> A through 26 -> Z.
func ConfigLetter(id int) string {
	if id < 1 || id > 26 {
		return "?"
	}
	return string(rune('A' + id - 1))
}
