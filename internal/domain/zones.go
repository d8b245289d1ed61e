package domain

import "sort"

// ZoneTier is a pick-velocity tier assigned to a placed SKU. Tiers
// are per-SKU percentile buckets, not per-tray: two items on the same
// physical tray can hold different tiers.
type ZoneTier string

const (
	ZoneGolden    ZoneTier = "Golden"
	ZoneSilver    ZoneTier = "Silver"
	ZoneBronze    ZoneTier = "Bronze"
	ZoneStandard  ZoneTier = "Standard"
	ZoneSlowMover ZoneTier = "SlowMover"
)

// ClassifyZones assigns a zone tier to every placement record in
// place. Records are ranked by weekly picks descending (stable: ties
// keep their prior relative order) and bucketed by cumulative share of
// total picks against the golden/silver/bronze thresholds. Records
// with zero weekly picks are always SlowMover.
func ClassifyZones(records []PlacementRecord, goldenPct, silverPct, bronzePct int) {
	order := make([]int, len(records))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return records[order[a]].SKU.WeeklyPicks > records[order[b]].SKU.WeeklyPicks
	})

	totalPicks := 0
	for i := range records {
		totalPicks += records[i].SKU.WeeklyPicks
	}

	goldenLimit := float64(totalPicks) * float64(goldenPct) / 100.0
	silverLimit := float64(totalPicks) * float64(silverPct) / 100.0
	bronzeLimit := float64(totalPicks) * float64(bronzePct) / 100.0

	running := 0
	for _, idx := range order {
		picks := records[idx].SKU.WeeklyPicks
		if picks == 0 {
			records[idx].Zone = ZoneSlowMover
			continue
		}

		next := float64(running + picks)
		switch {
		case next <= goldenLimit:
			records[idx].Zone = ZoneGolden
		case next <= silverLimit:
			records[idx].Zone = ZoneSilver
		case next <= bronzeLimit:
			records[idx].Zone = ZoneBronze
		default:
			records[idx].Zone = ZoneStandard
		}
		running += picks
	}
}
