package graph

import (
	"github.com/openmgc/mgc_core/internal/pkg/component"
)

// Classifier predicates label components from local graph structure so
// downstream aggregation can group them into power-flow chains. A component
// satisfying no predicate is simply unclassified.

// IsGridMeter checks if the component is the sole meter directly downstream
// of the grid endpoint.
func (g *ComponentGraph) IsGridMeter(c component.Component) bool {
	return g.snapshot().isGridMeter(c)
}

func (s *snapshot) isGridMeter(c component.Component) bool {
	if c.Category != component.Meter {
		return false
	}

	predecessors := s.predecessors(c.ID)
	if len(predecessors) != 1 {
		return false
	}

	predecessor := predecessors[0]
	if predecessor.Category != component.Grid {
		return false
	}

	return s.outDegree(predecessor.ID) == 1
}

// IsPVInverter checks if the component is a PV inverter.
func (g *ComponentGraph) IsPVInverter(c component.Component) bool {
	return isPVInverter(c)
}

func isPVInverter(c component.Component) bool {
	return c.Category == component.Inverter && c.InverterType == component.InverterSolar
}

// IsPVMeter checks if the component is a meter with only PV inverters
// downstream of it.
func (g *ComponentGraph) IsPVMeter(c component.Component) bool {
	snap := g.snapshot()
	return snap.isSourceMeter(c, func(succ component.Component) bool {
		return isPVInverter(succ)
	})
}

// IsPVChain checks if the component belongs to a PV chain, i.e. it is a PV
// inverter or a PV meter.
func (g *ComponentGraph) IsPVChain(c component.Component) bool {
	return g.IsPVInverter(c) || g.IsPVMeter(c)
}

// IsBatteryInverter checks if the component is a battery inverter.
func (g *ComponentGraph) IsBatteryInverter(c component.Component) bool {
	return isBatteryInverter(c)
}

func isBatteryInverter(c component.Component) bool {
	return c.Category == component.Inverter && c.InverterType == component.InverterBattery
}

// IsBatteryMeter checks if the component is a meter with only battery
// inverters downstream of it.
func (g *ComponentGraph) IsBatteryMeter(c component.Component) bool {
	snap := g.snapshot()
	return snap.isSourceMeter(c, func(succ component.Component) bool {
		return isBatteryInverter(succ)
	})
}

// IsBatteryChain checks if the component belongs to a battery chain, i.e.
// it is a battery inverter or a battery meter.
func (g *ComponentGraph) IsBatteryChain(c component.Component) bool {
	return g.IsBatteryInverter(c) || g.IsBatteryMeter(c)
}

// IsEVCharger checks if the component is an EV charger.
func (g *ComponentGraph) IsEVCharger(c component.Component) bool {
	return c.Category == component.EVCharger
}

// IsEVChargerMeter checks if the component is a meter with only EV chargers
// downstream of it.
func (g *ComponentGraph) IsEVChargerMeter(c component.Component) bool {
	snap := g.snapshot()
	return snap.isSourceMeter(c, func(succ component.Component) bool {
		return succ.Category == component.EVCharger
	})
}

// IsEVChargerChain checks if the component belongs to an EV charger chain,
// i.e. it is an EV charger or an EV charger meter.
func (g *ComponentGraph) IsEVChargerChain(c component.Component) bool {
	return g.IsEVCharger(c) || g.IsEVChargerMeter(c)
}

// IsCHP checks if the component is a CHP.
func (g *ComponentGraph) IsCHP(c component.Component) bool {
	return c.Category == component.CHP
}

// IsCHPMeter checks if the component is a meter with only CHPs downstream
// of it.
func (g *ComponentGraph) IsCHPMeter(c component.Component) bool {
	snap := g.snapshot()
	return snap.isSourceMeter(c, func(succ component.Component) bool {
		return succ.Category == component.CHP
	})
}

// IsCHPChain checks if the component belongs to a CHP chain, i.e. it is a
// CHP or a CHP meter.
func (g *ComponentGraph) IsCHPChain(c component.Component) bool {
	return g.IsCHP(c) || g.IsCHPMeter(c)
}

// isSourceMeter is the shared shape of the per-source meter predicates: a
// non-grid meter whose successors all belong to one energy source. A meter
// with no successors measures nothing downstream and never qualifies.
func (s *snapshot) isSourceMeter(c component.Component, isSource func(component.Component) bool) bool {
	if c.Category != component.Meter {
		return false
	}
	if s.isGridMeter(c) {
		return false
	}

	successors := s.successors(c.ID)
	if len(successors) == 0 {
		return false
	}
	for _, succ := range successors {
		if !isSource(succ) {
			return false
		}
	}
	return true
}
