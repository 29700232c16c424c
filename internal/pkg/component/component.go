package component

import "fmt"

// Category classifies a component's role in the microgrid circuit.
type Category string

const (
	None      Category = "NONE"
	Grid      Category = "GRID"
	Meter     Category = "METER"
	Inverter  Category = "INVERTER"
	Battery   Category = "BATTERY"
	EVCharger Category = "EV_CHARGER"
	CHP       Category = "CHP"
	Load      Category = "LOAD"
	Junction  Category = "JUNCTION"
)

var categories = map[Category]bool{
	None:      true,
	Grid:      true,
	Meter:     true,
	Inverter:  true,
	Battery:   true,
	EVCharger: true,
	CHP:       true,
	Load:      true,
	Junction:  true,
}

// InverterType discriminates inverters by the energy source behind them.
type InverterType string

const (
	InverterNone    InverterType = "NONE"
	InverterSolar   InverterType = "SOLAR"
	InverterBattery InverterType = "BATTERY"
	InverterHybrid  InverterType = "HYBRID"
)

var inverterTypes = map[InverterType]bool{
	InverterNone:    true,
	InverterSolar:   true,
	InverterBattery: true,
	InverterHybrid:  true,
}

// Metadata carries optional per-category component data. Only the grid
// endpoint populates it today.
type Metadata struct {
	FuseRatedAmps float64 `json:"FuseRatedAmps,omitempty"`
}

// Component is a node of the microgrid component graph. The ID is assigned
// by the remote source and is immutable.
type Component struct {
	ID           int          `json:"ID"`
	Category     Category     `json:"Category"`
	InverterType InverterType `json:"InverterType,omitempty"`
	Metadata     *Metadata    `json:"Metadata,omitempty"`
}

// IsValid reports whether the component can be admitted to a graph.
func (c Component) IsValid() bool {
	if c.ID < 0 {
		return false
	}
	if !categories[c.Category] {
		return false
	}
	if c.Category == Inverter && c.InverterType != "" && !inverterTypes[c.InverterType] {
		return false
	}
	return true
}

func (c Component) String() string {
	return fmt.Sprintf("%s(%d)", c.Category, c.ID)
}

// Connection is a directed edge between two components, identified by the
// ordered (Start, End) pair.
type Connection struct {
	Start int `json:"Start"`
	End   int `json:"End"`
}

// IsValid reports whether the connection can be admitted to a graph.
func (c Connection) IsValid() bool {
	return c.Start >= 0 && c.End >= 0 && c.Start != c.End
}

// Topology bundles one accepted picture of the component graph for
// publication to downstream consumers.
type Topology struct {
	Components  []Component  `json:"Components"`
	Connections []Connection `json:"Connections"`
}

func (c Connection) String() string {
	return fmt.Sprintf("(%d->%d)", c.Start, c.End)
}
