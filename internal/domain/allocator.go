package domain

import (
	"math"
	"sort"
)

// TrayKey addresses one logical tray: a configuration's n-th tray
// within a tower.
type TrayKey struct {
	Tower      int
	ConfigID   int
	ConfigTray int
}

// TrayAllocation maps logical trays to physical tray numbers. Physical
// tray numbers encode the tower in the thousands digit
// (tower*1000 + position).
type TrayAllocation struct {
	trays     map[TrayKey]int
	perTower  map[int]int
	perConfig map[int]int
}

// PhysicalTray resolves a logical tray to its physical tray number.
// The second return is false when the configuration's allocation in
// that tower does not reach the requested tray.
func (a *TrayAllocation) PhysicalTray(tower, configID, configTray int) (int, bool) {
	num, ok := a.trays[TrayKey{Tower: tower, ConfigID: configID, ConfigTray: configTray}]
	return num, ok
}

// TraysUsed returns how many physical trays were allocated in a tower.
func (a *TrayAllocation) TraysUsed(tower int) int {
	return a.perTower[tower]
}

// ConfigTrays returns how many physical trays a configuration was
// granted across all towers.
func (a *TrayAllocation) ConfigTrays(configID int) int {
	return a.perConfig[configID]
}

// configDemand is the per-tower demand of one configuration within a
// height class.
type configDemand struct {
	configID int
	demand   int
	picks    int
}

// AllocateTrays assigns physical tray numbers to every configuration's
// logical trays, per tower, honoring the height-segmented hardware
// pool. Only SKUs that passed validation should be passed in.
//
// Within a tower the height classes are processed in ascending tray
// height; within a height class the configuration with the most weekly
// picks (of the SKUs mapped to that tower) gets the lowest physical
// tray numbers. When demand exceeds a height class's pool the shares
// are proportional, with the largest share decremented first (lowest
// configuration id on ties) until the pool fits exactly.
func AllocateTrays(skus []SKU, model *ConfigModel) *TrayAllocation {
	machine := model.Machine()
	alloc := &TrayAllocation{
		trays:     make(map[TrayKey]int),
		perTower:  make(map[int]int),
		perConfig: make(map[int]int),
	}

	for tower := 1; tower <= machine.Towers; tower++ {
		allocateTower(tower, skus, model, alloc)
	}
	return alloc
}

func allocateTower(tower int, skus []SKU, model *ConfigModel, alloc *TrayAllocation) {
	machine := model.Machine()

	// Demand per configuration: the highest config-tray index the
	// mapper produces for this tower, plus the tower's pick volume.
	demandByConfig := make(map[int]*configDemand)
	for _, s := range skus {
		tc, err := model.ByID(s.ConfigID)
		if err != nil {
			continue
		}
		loc := LocateCell(s.PickPriority, machine.Towers, tc.CellCount, TowerOffset(tc.ID, machine.Towers))
		if loc.Tower != tower {
			continue
		}
		d, ok := demandByConfig[tc.ID]
		if !ok {
			d = &configDemand{configID: tc.ID}
			demandByConfig[tc.ID] = d
		}
		if loc.ConfigTray > d.demand {
			d.demand = loc.ConfigTray
		}
		d.picks += s.WeeklyPicks
	}

	// Group demands by tray height, ascending height order.
	heights := make([]float64, 0)
	byHeight := make(map[float64][]*configDemand)
	for _, tc := range model.Configs() {
		d, ok := demandByConfig[tc.ID]
		if !ok {
			continue
		}
		if _, seen := byHeight[tc.TrayHeight]; !seen {
			heights = append(heights, tc.TrayHeight)
		}
		byHeight[tc.TrayHeight] = append(byHeight[tc.TrayHeight], d)
	}
	sort.Float64s(heights)

	position := 1
	for _, h := range heights {
		demands := byHeight[h]
		granted := grantAllocations(demands, machine.PoolSize(h))

		// Busiest configuration first: most weekly picks gets the
		// lowest physical tray numbers.
		sort.SliceStable(demands, func(i, j int) bool {
			if demands[i].picks != demands[j].picks {
				return demands[i].picks > demands[j].picks
			}
			return demands[i].configID < demands[j].configID
		})

		for _, d := range demands {
			n := granted[d.configID]
			for trayIdx := 1; trayIdx <= n; trayIdx++ {
				key := TrayKey{Tower: tower, ConfigID: d.configID, ConfigTray: trayIdx}
				alloc.trays[key] = tower*1000 + position
				position++
			}
			alloc.perTower[tower] += n
			alloc.perConfig[d.configID] += n
		}
	}
}

// grantAllocations decides how many trays each configuration receives
// from one height class's pool. Full demand when it fits; proportional
// shares otherwise.
func grantAllocations(demands []*configDemand, poolSize int) map[int]int {
	granted := make(map[int]int, len(demands))

	if poolSize <= 0 {
		// No hardware of this height: nothing to grant.
		for _, d := range demands {
			granted[d.configID] = 0
		}
		return granted
	}

	totalDemand := 0
	for _, d := range demands {
		totalDemand += d.demand
	}

	if totalDemand <= poolSize {
		for _, d := range demands {
			granted[d.configID] = d.demand
		}
		return granted
	}

	sum := 0
	for _, d := range demands {
		share := int(math.Round(float64(d.demand) * float64(poolSize) / float64(totalDemand)))
		if share < 1 {
			share = 1
		}
		granted[d.configID] = share
		sum += share
	}

	// Rounding can overshoot the pool: shave the largest share until
	// the sum fits exactly. Ties break on the lowest configuration id.
	for sum > poolSize {
		largest := -1
		for _, d := range demands {
			if largest == -1 || granted[d.configID] > granted[largest] {
				largest = d.configID
			}
		}
		granted[largest]--
		sum--
	}

	return granted
}
