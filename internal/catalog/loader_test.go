package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wms-platform/slotting-service/internal/domain"
)

const sampleCatalog = `SKU,Description,Length_in,Width_in,Height_in,Weight_lbs,Eaches,Weekly_Picks,Tray_Config,Pick_Priority
WID-001,Widget small,4.5,3.0,2.0,0.5,12,42,3,1
WID-002,Widget large,8.0,6.0,5.5,2.25,4,7,1,1

GAD-001,Gadget,2.0,2.0,1.5,0.1,30,0,4,5
`

func TestLoadParsesCatalog(t *testing.T) {
	skus, err := Load(strings.NewReader(sampleCatalog))
	require.NoError(t, err)
	require.Len(t, skus, 3, "blank rows are skipped")

	assert.Equal(t, domain.SKU{
		SKUID:        "WID-001",
		Description:  "Widget small",
		Length:       4.5,
		Width:        3.0,
		Height:       2.0,
		Weight:       0.5,
		Eaches:       12,
		WeeklyPicks:  42,
		ConfigID:     3,
		PickPriority: 1,
	}, skus[0])

	assert.Equal(t, "GAD-001", skus[2].SKUID)
	assert.Equal(t, 0, skus[2].WeeklyPicks)
}

func TestLoadHeaderIsCaseInsensitive(t *testing.T) {
	csv := `sku,description,LENGTH_IN,width_in,Height_In,weight_lbs,eaches,weekly_picks,tray_config,pick_priority
A-1,Item,1,1,1,1,1,1,1,1
`
	skus, err := Load(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, skus, 1)
	assert.Equal(t, "A-1", skus[0].SKUID)
}

func TestLoadColumnOrderIsFree(t *testing.T) {
	csv := `Pick_Priority,SKU,Tray_Config,Weekly_Picks,Eaches,Weight_lbs,Height_in,Width_in,Length_in,Description
3,B-2,2,15,6,1.5,4,5,6,Reordered
`
	skus, err := Load(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, skus, 1)

	assert.Equal(t, "B-2", skus[0].SKUID)
	assert.Equal(t, 3, skus[0].PickPriority)
	assert.Equal(t, 6.0, skus[0].Length)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		csv     string
		wantErr string
	}{
		{
			name:    "empty input",
			csv:     "",
			wantErr: "catalog is empty",
		},
		{
			name:    "missing required column",
			csv:     "SKU,Description\nA,thing\n",
			wantErr: `missing column "length_in"`,
		},
		{
			name: "description column is required",
			csv: "SKU,Length_in,Width_in,Height_in,Weight_lbs,Eaches,Weekly_Picks,Tray_Config,Pick_Priority\n" +
				"A-1,1,1,1,1,1,1,1,1\n",
			wantErr: `missing column "description"`,
		},
		{
			name: "bad number carries row and column",
			csv: sampleHeader() +
				"A-1,Item,abc,1,1,1,1,1,1,1\n",
			wantErr: "row 2, column length_in",
		},
		{
			name: "bad integer on a later row",
			csv: sampleHeader() +
				"A-1,Item,1,1,1,1,1,1,1,1\n" +
				"A-2,Item,1,1,1,1,x,1,1,1\n",
			wantErr: "row 3, column eaches",
		},
		{
			name: "missing SKU id",
			csv: sampleHeader() +
				",Item,1,1,1,1,1,1,1,1\n",
			wantErr: "SKU id is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.csv))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func sampleHeader() string {
	return "SKU,Description,Length_in,Width_in,Height_in,Weight_lbs,Eaches,Weekly_Picks,Tray_Config,Pick_Priority\n"
}

func TestExportPlacements(t *testing.T) {
	placements := []domain.PlacementRecord{
		{
			BinLabel: "V1001B01",
			SKU: domain.SKU{
				SKUID:        "WID-001",
				Description:  "Widget",
				Length:       4.5,
				Width:        3,
				Height:       2,
				Weight:       1.5,
				Eaches:       2,
				WeeklyPicks:  42,
				ConfigID:     2,
				PickPriority: 7,
			},
			Tower:        1,
			PhysicalTray: 1001,
			CellIndex:    1,
			ConfigID:     2,
			ConfigLabel:  `8-cell 6"`,
			ConfigTray:   1,
			Zone:         domain.ZoneGolden,
			CellVolume:   1207.9,
			FillPct:      85,
		},
	}

	var sb strings.Builder
	err := ExportPlacements(&sb, placements)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t,
		"Bin_Label,SKU,Description,Tower,Physical_Tray,Cell,Tray_Config,Config_Label,Config_Tray,"+
			"Pick_Priority,Weekly_Picks,Eaches,Weight_Each_lbs,Cell_Weight_lbs,"+
			"Length_in,Width_in,Height_in,Unit_Volume_in3,Total_Volume_in3,Cell_Volume_in3,"+
			"Fill_Pct,Tray_Zone",
		lines[0])
	assert.Equal(t,
		`V1001B01,WID-001,Widget,1,1001,1,2,"8-cell 6""",1,7,42,2,1.50,3.0,4.5,3,2,27.0,54.0,1207.9,85,Golden`,
		lines[1])
}
