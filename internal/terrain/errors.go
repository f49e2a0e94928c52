package terrain

import "fmt"

// ConfigError reports a defect in the terrain configuration. It is never
// recoverable at runtime.
type ConfigError struct {
	Terrain ID
	Reason  string
}

func (e *ConfigError) Error() string {
	if e.Terrain == None {
		return "terrain config: " + e.Reason
	}
	return fmt.Sprintf("terrain config: %q: %s", e.Terrain, e.Reason)
}

func configErrorf(id ID, format string, args ...any) error {
	return &ConfigError{Terrain: id, Reason: fmt.Sprintf(format, args...)}
}
