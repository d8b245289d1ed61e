package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMachineConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*MachineConfig)
		wantErr string
	}{
		{
			name:   "default config is valid",
			mutate: func(c *MachineConfig) {},
		},
		{
			name:    "zone label must be one character",
			mutate:  func(c *MachineConfig) { c.ZoneLabel = "VL" },
			wantErr: "zone label",
		},
		{
			name:    "zero towers",
			mutate:  func(c *MachineConfig) { c.Towers = 0 },
			wantErr: "at least one tower",
		},
		{
			name:    "no tray configurations",
			mutate:  func(c *MachineConfig) { c.TrayConfigs = nil },
			wantErr: "at least one tray configuration",
		},
		{
			name:    "golden percentage out of range",
			mutate:  func(c *MachineConfig) { c.GoldenPct = 0 },
			wantErr: "golden zone percentage",
		},
		{
			name:    "silver must exceed golden",
			mutate:  func(c *MachineConfig) { c.SilverPct = 50 },
			wantErr: "greater than golden",
		},
		{
			name:    "bronze must exceed silver",
			mutate:  func(c *MachineConfig) { c.BronzePct = 75 },
			wantErr: "greater than silver",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultMachineConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestNewConfigModelRejectsBadConfigs(t *testing.T) {
	t.Run("duplicate configuration id", func(t *testing.T) {
		cfg := DefaultMachineConfig()
		cfg.TrayConfigs = append(cfg.TrayConfigs, TrayConfig{ID: 1, CellCount: 10, TrayHeight: 4.0})

		_, err := NewConfigModel(cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
	})

	t.Run("zero cell count", func(t *testing.T) {
		cfg := DefaultMachineConfig()
		cfg.TrayConfigs[0].CellCount = 0

		_, err := NewConfigModel(cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
	})

	t.Run("zero towers", func(t *testing.T) {
		cfg := DefaultMachineConfig()
		cfg.Towers = 0

		_, err := NewConfigModel(cfg)
		assert.ErrorIs(t, err, ErrNoTowers)
	})
}

func TestGeometry(t *testing.T) {
	model, err := NewConfigModel(DefaultMachineConfig())
	require.NoError(t, err)

	t.Run("six cell tray", func(t *testing.T) {
		// 78" tray, 5 dividers at 0.5": (78 - 2.5) / 6 per cell.
		geom, err := model.Geometry(1)
		require.NoError(t, err)

		assert.InDelta(t, 12.5833, geom.CellWidth, 0.001)
		assert.InDelta(t, 12.5833*24.0*8.0, geom.CellVolume, 0.01)
		assert.InDelta(t, geom.CellVolume*0.85, geom.EffectiveVolume, 0.01)
		assert.InDelta(t, 8.8, geom.MaxItemHeight, 0.001)
	})

	t.Run("thirty cell tray", func(t *testing.T) {
		geom, err := model.Geometry(4)
		require.NoError(t, err)

		assert.InDelta(t, (78.0-29*0.5)/30.0, geom.CellWidth, 0.0001)
		assert.InDelta(t, 2.2, geom.MaxItemHeight, 0.001)
	})

	t.Run("unknown configuration", func(t *testing.T) {
		_, err := model.Geometry(99)
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
	})
}

func TestConfigsSortedByID(t *testing.T) {
	cfg := DefaultMachineConfig()
	cfg.TrayConfigs = []TrayConfig{
		{ID: 3, CellCount: 16, TrayHeight: 4.0},
		{ID: 1, CellCount: 6, TrayHeight: 8.0},
		{ID: 2, CellCount: 8, TrayHeight: 6.0},
	}
	model, err := NewConfigModel(cfg)
	require.NoError(t, err)

	configs := model.Configs()
	require.Len(t, configs, 3)
	assert.Equal(t, 1, configs[0].ID)
	assert.Equal(t, 2, configs[1].ID)
	assert.Equal(t, 3, configs[2].ID)
}

func TestConfigLetter(t *testing.T) {
	assert.Equal(t, "A", ConfigLetter(1))
	assert.Equal(t, "B", ConfigLetter(2))
	assert.Equal(t, "Z", ConfigLetter(26))
	assert.Equal(t, "?", ConfigLetter(0))
	assert.Equal(t, "?", ConfigLetter(27))
}

func TestConfigLabel(t *testing.T) {
	model, err := NewConfigModel(DefaultMachineConfig())
	require.NoError(t, err)

	assert.Equal(t, `16-cell 4"`, model.ConfigLabel(3))
	assert.Equal(t, `6-cell 8"`, model.ConfigLabel(1))
}

func TestTraysPerTower(t *testing.T) {
	cfg := DefaultMachineConfig()
	// 14 + 18 + 12 + 6 from the default pools.
	assert.Equal(t, 50, cfg.TraysPerTower())
	assert.Equal(t, 18, cfg.PoolSize(4.0))
	assert.Equal(t, 0, cfg.PoolSize(3.0))
}
