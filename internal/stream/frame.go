package stream

import (
	"math"
	"slices"

	"waterfreezes/internal/freeze"
	"waterfreezes/internal/terrain"
)

// Frame is one published state of a map.
type Frame struct {
	Map    int    `json:"map"`
	Tick   int    `json:"tick"`
	Season string `json:"season"`
	Width  int    `json:"width"`
	Height int    `json:"height"`

	Tracked     int     `json:"tracked"`
	Frozen      int     `json:"frozen"`
	IceVolume   float64 `json:"iceVolume"`
	WaterVolume float64 `json:"waterVolume"`

	// Ice is each cell's ice depth in percent of its water type's maximum.
	// It encodes as base64 like any byte slice.
	Ice []uint8 `json:"ice"`
}

// Snapshot builds the frame of a w x h map from its component. It must run
// on the goroutine that steps the map.
func Snapshot(id freeze.MapID, tick int, season freeze.Season, w, h int, c *freeze.Component) Frame {
	f := Frame{Map: int(id), Tick: tick, Season: season.String(), Width: w, Height: h}
	n := w * h
	f.Ice = make([]uint8, n)
	for i := range n {
		water := c.TrackedWater(i)
		if water == terrain.None {
			continue
		}
		f.Tracked++
		ice := c.Ice(i)
		f.IceVolume += ice
		f.WaterVolume += c.Water(i)
		if ice > 0 {
			f.Frozen++
		}
		stats, err := c.Table().Stats(water)
		if err != nil || stats.MaxIceDepth <= 0 {
			continue
		}
		f.Ice[i] = uint8(math.Round(min(ice/stats.MaxIceDepth, 1) * 100))
	}
	return f
}

func sortFrames(fs []Frame) []Frame {
	slices.SortFunc(fs, func(a, b Frame) int { return a.Map - b.Map })
	return fs
}
