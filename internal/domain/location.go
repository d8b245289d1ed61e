package domain

// CellLocation is the logical address the mapper derives from a pick
// priority: which tower, which tray of the configuration within that
// tower, and which cell on that tray.
type CellLocation struct {
	CellNumber int `json:"cellNumber"`
	Tower      int `json:"tower"`
	ConfigTray int `json:"configTray"`
	CellIndex  int `json:"cellIndex"`
}

// TowerOffset staggers which tower receives priority #1 for each
// configuration, so the hottest item of every configuration does not
// land in the same tower.
func TowerOffset(configID, towerCount int) int {
	return (configID - 1) % towerCount
}

// LocateCell maps a pick priority to a cell location. Cell numbers
// interleave across towers before dividing into trays, which spreads
// the fastest movers evenly over all towers instead of clustering them
// in one.
//
// Cell indexes are 1-based, front-left first, increasing left-to-right
// then front-to-back.
func LocateCell(pickPriority, towerCount, cellsPerTray, towerOffset int) CellLocation {
	cellNumber := pickPriority
	tower := ((cellNumber - 1 + towerOffset) % towerCount) + 1
	positionInTower := ((cellNumber - 1) / towerCount) + 1
	configTray := ((positionInTower - 1) / cellsPerTray) + 1
	cellIndex := ((positionInTower - 1) % cellsPerTray) + 1

	return CellLocation{
		CellNumber: cellNumber,
		Tower:      tower,
		ConfigTray: configTray,
		CellIndex:  cellIndex,
	}
}
