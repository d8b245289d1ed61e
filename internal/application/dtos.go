package application

import (
	"time"

	"github.com/wms-platform/slotting-service/internal/domain"
)

// PlacementDTO is one placed SKU in API responses.
type PlacementDTO struct {
	BinLabel     string  `json:"binLabel"`
	SKUID        string  `json:"skuId"`
	Description  string  `json:"description,omitempty"`
	Tower        int     `json:"tower"`
	PhysicalTray int     `json:"physicalTray"`
	Cell         int     `json:"cell"`
	ConfigID     int     `json:"configId"`
	ConfigLabel  string  `json:"configLabel"`
	ConfigTray   int     `json:"configTray"`
	Zone         string  `json:"zone"`
	PickPriority int     `json:"pickPriority"`
	WeeklyPicks  int     `json:"weeklyPicks"`
	Eaches       int     `json:"eaches"`
	LengthIn     float64 `json:"lengthIn"`
	WidthIn      float64 `json:"widthIn"`
	HeightIn     float64 `json:"heightIn"`
	UnitWeight   float64 `json:"unitWeightLbs"`
	TotalWeight  float64 `json:"totalWeightLbs"`
	UnitVolume   float64 `json:"unitVolumeIn3"`
	TotalVolume  float64 `json:"totalVolumeIn3"`
	CellVolume   float64 `json:"cellVolumeIn3"`
	FillPct      int     `json:"fillPct"`
}

// TowerSummaryDTO aggregates one tower in API responses.
type TowerSummaryDTO struct {
	Tower          int            `json:"tower"`
	TraysUsed      int            `json:"traysUsed"`
	TraysAvailable int            `json:"traysAvailable"`
	Items          int            `json:"items"`
	WeightLbs      float64        `json:"weightLbs"`
	ZoneCounts     map[string]int `json:"zoneCounts"`
}

// ConfigSummaryDTO aggregates one tray configuration in API responses.
type ConfigSummaryDTO struct {
	ConfigID        int     `json:"configId"`
	Label           string  `json:"label"`
	CellCount       int     `json:"cellCount"`
	CellWidthIn     float64 `json:"cellWidthIn"`
	CellVolumeIn3   float64 `json:"cellVolumeIn3"`
	EffectiveVolume float64 `json:"effectiveVolumeIn3"`
	MaxItemHeightIn float64 `json:"maxItemHeightIn"`
	TraysAllocated  int     `json:"traysAllocated"`
	Items           int     `json:"items"`
}

// ValidationErrorDTO is one failed SKU check in API responses.
type ValidationErrorDTO struct {
	SKUID   string `json:"skuId"`
	Check   string `json:"check"`
	Message string `json:"message"`
}

// WarningDTO is one placement warning in API responses.
type WarningDTO struct {
	Kind         string `json:"kind"`
	SKUID        string `json:"skuId,omitempty"`
	Tower        int    `json:"tower,omitempty"`
	PhysicalTray int    `json:"physicalTray,omitempty"`
	Message      string `json:"message"`
}

// SummaryDTO is the aggregate view of one run in API responses.
type SummaryDTO struct {
	TotalSKUs          int                  `json:"totalSkus"`
	TotalPlaced        int                  `json:"totalPlaced"`
	TotalExcluded      int                  `json:"totalExcluded"`
	TraysUsed          int                  `json:"traysUsed"`
	TraysAvailable     int                  `json:"traysAvailable"`
	TotalCells         int                  `json:"totalCells"`
	OccupiedCells      int                  `json:"occupiedCells"`
	CellUtilizationPct float64              `json:"cellUtilizationPct"`
	TotalPicks         int                  `json:"totalPicks"`
	GoldenPicks        int                  `json:"goldenPicks"`
	GoldenPickPct      float64              `json:"goldenPickPct"`
	HighPickSKUs       int                  `json:"highPickSkus"`
	HeaviestTrayLbs    float64              `json:"heaviestTrayLbs"`
	AvgTrayWeightLbs   float64              `json:"avgTrayWeightLbs"`
	WeightLimitLbs     float64              `json:"weightLimitLbs"`
	Towers             []TowerSummaryDTO    `json:"towers"`
	Configs            []ConfigSummaryDTO   `json:"configs"`
	Warnings           []WarningDTO         `json:"warnings"`
	ValidationErrors   []ValidationErrorDTO `json:"validationErrors"`
}

// RunDTO is the full representation of one slotting run.
type RunDTO struct {
	RunID      string               `json:"runId"`
	SourceName string               `json:"sourceName,omitempty"`
	SKUCount   int                  `json:"skuCount"`
	Machine    domain.MachineConfig `json:"machine"`
	Placements []PlacementDTO       `json:"placements"`
	Summary    SummaryDTO           `json:"summary"`
	CreatedAt  time.Time            `json:"createdAt"`
}

// RunListDTO is the compact representation used in run listings.
type RunListDTO struct {
	RunID       string    `json:"runId"`
	SourceName  string    `json:"sourceName,omitempty"`
	SKUCount    int       `json:"skuCount"`
	TotalPlaced int       `json:"totalPlaced"`
	TraysUsed   int       `json:"traysUsed"`
	Warnings    int       `json:"warnings"`
	CreatedAt   time.Time `json:"createdAt"`
}
