package stream

import (
	"fmt"

	"waterfreezes/internal/freeze"
)

// Command is an administrative request sent by a client.
type Command struct {
	Map   int    `json:"map"`
	Op    string `json:"op"`
	Cells []int  `json:"cells,omitempty"`
}

// Result reports what applying a command did.
type Result struct {
	Map      int    `json:"map"`
	Op       string `json:"op"`
	Cells    int    `json:"cells"`
	Failures int    `json:"failures"`
}

// UnknownOpError reports a command naming no administrative operation.
type UnknownOpError struct{ Op string }

func (e *UnknownOpError) Error() string { return fmt.Sprintf("unknown op %q", e.Op) }

// Ops lists the per-cell operations commands may name, keyed by op.
func Ops(c *freeze.Component) map[string]func(int) error {
	return map[string]func(int) error{
		"set_natural_water":               c.SetAsNaturalWater,
		"clear_natural_water":             c.ClearNaturalWater,
		"clear_natural_water_and_depth":   c.ClearNaturalWaterAndDepth,
		"set_water_depth_max":             c.SetWaterDepthToMax,
		"set_water_depth_zero":            c.SetWaterDepthToZero,
		"set_ice_depth_max":               c.SetIceDepthToMax,
		"set_ice_depth_zero":              c.SetIceDepthToZero,
		"set_ice_and_water_depth_zero":    c.SetIceAndWaterDepthToZero,
		"set_natural_water_and_depth_max": c.SetNaturalWaterAndDepthToMax,
	}
}

// Apply runs cmd against the component it addresses. Like Snapshot it must
// run on the goroutine that steps the map.
func Apply(reg *freeze.Registry, cmd Command) (Result, error) {
	res := Result{Map: cmd.Map, Op: cmd.Op}
	c, ok := reg.Get(freeze.MapID(cmd.Map))
	if !ok {
		return res, fmt.Errorf("map %d is not registered", cmd.Map)
	}
	if cmd.Op == "reinitialize" {
		return res, c.Reinitialize()
	}
	op, ok := Ops(c)[cmd.Op]
	if !ok {
		return res, &UnknownOpError{Op: cmd.Op}
	}
	rr, err := freeze.ForCells(cmd.Cells, op)
	res.Cells, res.Failures = rr.Cells, rr.Failures
	return res, err
}
