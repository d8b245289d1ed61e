package application

import (
	"github.com/wms-platform/slotting-service/internal/domain"
)

// ToRunDTO converts a domain run to its full DTO
func ToRunDTO(run *domain.SlottingRun) *RunDTO {
	dto := &RunDTO{
		RunID:      run.RunID,
		SourceName: run.SourceName,
		SKUCount:   run.SKUCount,
		Machine:    run.Machine,
		Placements: make([]PlacementDTO, 0, len(run.Result.Placements)),
		Summary:    toSummaryDTO(run.Result.Summary),
		CreatedAt:  run.CreatedAt,
	}

	for _, p := range run.Result.Placements {
		dto.Placements = append(dto.Placements, toPlacementDTO(p))
	}

	return dto
}

// ToRunListDTOs converts domain runs to their compact listing DTOs
func ToRunListDTOs(runs []*domain.SlottingRun) []RunListDTO {
	dtos := make([]RunListDTO, 0, len(runs))
	for _, run := range runs {
		dtos = append(dtos, RunListDTO{
			RunID:       run.RunID,
			SourceName:  run.SourceName,
			SKUCount:    run.SKUCount,
			TotalPlaced: run.Result.Summary.TotalPlaced,
			TraysUsed:   run.Result.Summary.TraysUsed,
			Warnings:    len(run.Result.Summary.Warnings),
			CreatedAt:   run.CreatedAt,
		})
	}
	return dtos
}

func toPlacementDTO(p domain.PlacementRecord) PlacementDTO {
	return PlacementDTO{
		BinLabel:     p.BinLabel,
		SKUID:        p.SKU.SKUID,
		Description:  p.SKU.Description,
		Tower:        p.Tower,
		PhysicalTray: p.PhysicalTray,
		Cell:         p.CellIndex,
		ConfigID:     p.ConfigID,
		ConfigLabel:  p.ConfigLabel,
		ConfigTray:   p.ConfigTray,
		Zone:         string(p.Zone),
		PickPriority: p.SKU.PickPriority,
		WeeklyPicks:  p.SKU.WeeklyPicks,
		Eaches:       p.SKU.Eaches,
		LengthIn:     p.SKU.Length,
		WidthIn:      p.SKU.Width,
		HeightIn:     p.SKU.Height,
		UnitWeight:   p.SKU.Weight,
		TotalWeight:  p.SKU.TotalWeight(),
		UnitVolume:   p.SKU.UnitVolume(),
		TotalVolume:  p.SKU.TotalVolume(),
		CellVolume:   p.CellVolume,
		FillPct:      p.FillPct,
	}
}

func toSummaryDTO(s domain.Summary) SummaryDTO {
	dto := SummaryDTO{
		TotalSKUs:          s.TotalSKUs,
		TotalPlaced:        s.TotalPlaced,
		TotalExcluded:      s.TotalExcluded,
		TraysUsed:          s.TraysUsed,
		TraysAvailable:     s.TraysAvailable,
		TotalCells:         s.TotalCells,
		OccupiedCells:      s.OccupiedCells,
		CellUtilizationPct: s.CellUtilizationPct,
		TotalPicks:         s.TotalPicks,
		GoldenPicks:        s.GoldenPicks,
		GoldenPickPct:      s.GoldenPickPct,
		HighPickSKUs:       s.HighPickSKUs,
		HeaviestTrayLbs:    s.HeaviestTrayWeight,
		AvgTrayWeightLbs:   s.AvgTrayWeight,
		WeightLimitLbs:     s.WeightLimit,
		Towers:             make([]TowerSummaryDTO, 0, len(s.Towers)),
		Configs:            make([]ConfigSummaryDTO, 0, len(s.Configs)),
		Warnings:           make([]WarningDTO, 0, len(s.Warnings)),
		ValidationErrors:   make([]ValidationErrorDTO, 0, len(s.ValidationErrors)),
	}

	for _, t := range s.Towers {
		zoneCounts := make(map[string]int, len(t.ZoneCounts))
		for zone, count := range t.ZoneCounts {
			zoneCounts[string(zone)] = count
		}
		dto.Towers = append(dto.Towers, TowerSummaryDTO{
			Tower:          t.Tower,
			TraysUsed:      t.TraysUsed,
			TraysAvailable: t.TraysAvailable,
			Items:          t.Items,
			WeightLbs:      t.Weight,
			ZoneCounts:     zoneCounts,
		})
	}

	for _, c := range s.Configs {
		dto.Configs = append(dto.Configs, ConfigSummaryDTO{
			ConfigID:        c.ConfigID,
			Label:           c.Label,
			CellCount:       c.CellCount,
			CellWidthIn:     c.CellWidth,
			CellVolumeIn3:   c.CellVolume,
			EffectiveVolume: c.EffectiveVolume,
			MaxItemHeightIn: c.MaxItemHeight,
			TraysAllocated:  c.TraysAllocated,
			Items:           c.Items,
		})
	}

	for _, w := range s.Warnings {
		dto.Warnings = append(dto.Warnings, WarningDTO{
			Kind:         string(w.Kind),
			SKUID:        w.SKUID,
			Tower:        w.Tower,
			PhysicalTray: w.PhysicalTray,
			Message:      w.Message,
		})
	}

	for _, e := range s.ValidationErrors {
		dto.ValidationErrors = append(dto.ValidationErrors, ValidationErrorDTO{
			SKUID:   e.SKUID,
			Check:   string(e.Check),
			Message: e.Message,
		})
	}

	return dto
}
