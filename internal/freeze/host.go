package freeze

import "waterfreezes/internal/terrain"

// TerrainGrid is the host's terrain storage. Cells are addressed by their
// linear index.
type TerrainGrid interface {
	NumCells() int
	TerrainAt(i int) terrain.ID
	UnderTerrainAt(i int) terrain.ID
	// SetTerrain must be followed by a call to Component.OnTerrainChanged.
	SetTerrain(i int, id terrain.ID)
	SetUnderTerrain(i int, id terrain.ID)
}

// Climate reports the ambient temperature of a cell in °C.
type Climate interface {
	TemperatureAt(i int) float64
}

// Calendar exposes the host's discrete clock and season.
type Calendar interface {
	Ticks() int
	Season() Season
}

// Neighborhood appends the in-bounds 8-neighbours of cell i to dst.
type Neighborhood interface {
	Neighbors8(i int, dst []int) []int
}

// Occupancy lists the structures standing on a cell.
type Occupancy interface {
	ThingsAt(i int) []Structure
}

// Host is everything the component needs from the embedding map.
type Host interface {
	TerrainGrid
	Climate
	Calendar
	Neighborhood
	Occupancy
}

// BridgeInterop is an optional Host extension for hosts that can place
// bridges without changing the top terrain.
type BridgeInterop interface {
	BridgedAt(i int) bool
}

// FrostClearer is an optional Host extension that removes frost or snow
// artifacts when water stops being tracked on a cell.
type FrostClearer interface {
	ClearFrost(i int)
}

// Season is the host calendar's season.
type Season uint8

const (
	SeasonUndefined Season = iota
	SeasonSpring
	SeasonSummer
	SeasonFall
	SeasonWinter
	SeasonPermanentSummer
	SeasonPermanentWinter
)

// Warm reports whether natural water refills during the season.
func (s Season) Warm() bool {
	return s == SeasonSpring || s == SeasonSummer || s == SeasonPermanentSummer
}

func (s Season) String() string {
	switch s {
	case SeasonSpring:
		return "Spring"
	case SeasonSummer:
		return "Summer"
	case SeasonFall:
		return "Fall"
	case SeasonWinter:
		return "Winter"
	case SeasonPermanentSummer:
		return "PermanentSummer"
	case SeasonPermanentWinter:
		return "PermanentWinter"
	default:
		return "Undefined"
	}
}
