package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/wms-platform/slotting-service/internal/domain"
)

// ExportPlacements writes a placement table as CSV, one row per placed
// SKU, in the engine's deterministic tower/tray/cell order. The column
// set is the full output table: location, configuration, pick data,
// weights, dimensions, and volumes.
func ExportPlacements(w io.Writer, placements []domain.PlacementRecord) error {
	cw := csv.NewWriter(w)

	header := []string{
		"Bin_Label", "SKU", "Description", "Tower", "Physical_Tray",
		"Cell", "Tray_Config", "Config_Label", "Config_Tray",
		"Pick_Priority", "Weekly_Picks", "Eaches",
		"Weight_Each_lbs", "Cell_Weight_lbs",
		"Length_in", "Width_in", "Height_in",
		"Unit_Volume_in3", "Total_Volume_in3", "Cell_Volume_in3",
		"Fill_Pct", "Tray_Zone",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, p := range placements {
		record := []string{
			p.BinLabel,
			p.SKU.SKUID,
			p.SKU.Description,
			strconv.Itoa(p.Tower),
			strconv.Itoa(p.PhysicalTray),
			strconv.Itoa(p.CellIndex),
			strconv.Itoa(p.ConfigID),
			p.ConfigLabel,
			strconv.Itoa(p.ConfigTray),
			strconv.Itoa(p.SKU.PickPriority),
			strconv.Itoa(p.SKU.WeeklyPicks),
			strconv.Itoa(p.SKU.Eaches),
			fmt.Sprintf("%.2f", p.SKU.Weight),
			fmt.Sprintf("%.1f", p.SKU.TotalWeight()),
			fmt.Sprintf("%g", p.SKU.Length),
			fmt.Sprintf("%g", p.SKU.Width),
			fmt.Sprintf("%g", p.SKU.Height),
			fmt.Sprintf("%.1f", p.SKU.UnitVolume()),
			fmt.Sprintf("%.1f", p.SKU.TotalVolume()),
			fmt.Sprintf("%.1f", p.CellVolume),
			strconv.Itoa(p.FillPct),
			string(p.Zone),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
