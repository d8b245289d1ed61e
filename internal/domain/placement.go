package domain

import "fmt"

// PlacementRecord is one successfully placed SKU: the final output row
// of the engine. Records are produced once at the end of the pipeline
// and never mutated afterwards, except for the zone tier the
// classifier assigns as a terminal annotation.
type PlacementRecord struct {
	BinLabel        string   `json:"binLabel" bson:"binLabel"`
	SKU             SKU      `json:"sku" bson:"sku"`
	Tower           int      `json:"tower" bson:"tower"`
	PhysicalTray    int      `json:"physicalTray" bson:"physicalTray"`
	CellIndex       int      `json:"cellIndex" bson:"cellIndex"`
	ConfigID        int      `json:"configId" bson:"configId"`
	ConfigLabel     string   `json:"configLabel" bson:"configLabel"`
	ConfigTray      int      `json:"configTray" bson:"configTray"`
	Zone            ZoneTier `json:"zone" bson:"zone"`
	CellVolume      float64  `json:"cellVolumeIn3" bson:"cellVolumeIn3"`
	EffectiveVolume float64  `json:"effectiveVolumeIn3" bson:"effectiveVolumeIn3"`
	FillPct         int      `json:"fillPct" bson:"fillPct"`
}

// BinLabel builds the human-readable bin identifier:
// zone char, 4-digit physical tray, configuration letter, 2-digit
// cell index. Example: zone V, tray 1002, configuration 2, cell 1
// -> "V1002B01".
func BinLabel(zoneLabel string, physicalTray, configID, cellIndex int) string {
	return fmt.Sprintf("%s%04d%s%02d", zoneLabel, physicalTray, ConfigLetter(configID), cellIndex)
}
