package ui

import (
	"math"
	"strconv"

	"waterfreezes/internal/core"
)

const defaultFloatStep = 0.05

// control is the HUD-side state of one adjustable parameter.
type control struct {
	def   core.ParameterControl
	label string

	intValue   int
	floatValue float64
	hasValue   bool
}

func newControls(defs []core.ParameterControl) []control {
	out := make([]control, len(defs))
	for i, d := range defs {
		out[i] = control{def: d, label: "--"}
	}
	return out
}

// refresh loads the control's current value from snap.
func (c *control) refresh(snap core.ParameterSnapshot) {
	c.hasValue = false
	c.label = "--"
	p, ok := snap.Lookup(c.def.Key)
	if !ok {
		return
	}
	switch c.def.Type {
	case core.ParamTypeInt:
		v, err := strconv.Atoi(p.Value)
		if err != nil {
			return
		}
		c.setInt(v)
	case core.ParamTypeFloat:
		v, err := strconv.ParseFloat(p.Value, 64)
		if err != nil {
			return
		}
		c.setFloat(v)
	}
}

func (c *control) setInt(v int) {
	c.intValue, c.floatValue, c.hasValue = v, float64(v), true
	c.label = strconv.Itoa(v)
}

func (c *control) setFloat(v float64) {
	c.floatValue, c.hasValue = v, true
	c.label = formatFloat(c.def.Step, v)
}

// target returns the value one step in direction, clamped into bounds, and
// whether it differs from the current value.
func (c *control) target(direction int) (float64, bool) {
	if !c.hasValue || direction == 0 {
		return 0, false
	}
	step := c.def.Step
	cur := c.floatValue
	if c.def.Type == core.ParamTypeInt {
		step = max(math.Round(step), 1)
		cur = float64(c.intValue)
	} else if step <= 0 {
		step = defaultFloatStep
	}
	t := cur + float64(direction)*step
	if c.def.HasMin {
		t = max(t, c.def.Min)
	}
	if c.def.HasMax {
		t = min(t, c.def.Max)
	}
	return t, math.Abs(t-cur) > 1e-9
}

// setter is what a simulation implements to accept HUD adjustments.
type setter struct {
	ints   core.IntParameterSetter
	floats core.FloatParameterSetter
}

func setterFor(sim any) setter {
	var s setter
	s.ints, _ = sim.(core.IntParameterSetter)
	s.floats, _ = sim.(core.FloatParameterSetter)
	return s
}

func (s setter) canSet(t core.ParamType) bool {
	switch t {
	case core.ParamTypeInt:
		return s.ints != nil
	case core.ParamTypeFloat:
		return s.floats != nil
	default:
		return false
	}
}

// adjust moves c one step in direction and pushes the value to the
// simulation. It reports whether the simulation accepted it.
func (s setter) adjust(c *control, direction int) bool {
	if !s.canSet(c.def.Type) {
		return false
	}
	t, ok := c.target(direction)
	if !ok {
		return false
	}
	if c.def.Type == core.ParamTypeInt {
		v := int(math.Round(t))
		if !s.ints.SetIntParameter(c.def.Key, v) {
			return false
		}
		c.setInt(v)
		return true
	}
	if !s.floats.SetFloatParameter(c.def.Key, t) {
		return false
	}
	c.setFloat(t)
	return true
}

func formatFloat(step, v float64) string {
	if step <= 0 {
		step = defaultFloatStep
	}
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}

// statusLines collects the non-empty group summaries of snap.
func statusLines(snap core.ParameterSnapshot) []string {
	var out []string
	for _, g := range snap.Groups {
		if g.Summary != "" {
			out = append(out, g.Summary)
		}
	}
	return out
}
