package freeze

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"waterfreezes/internal/core"
	"waterfreezes/internal/terrain"
)

// fakeHost is an in-memory map. SetTerrain calls back into the attached
// component like a real host would.
type fakeHost struct {
	size  core.Size
	top   []terrain.ID
	under []terrain.ID
	temp  []float64

	ticks       int
	season      Season
	seasonCalls int

	things map[int][]Structure
	frost  map[int]int

	comp        *Component
	topWrites   int
	underWrites int
	listenerErr error
}

func newFakeHost(w, h int, fill terrain.ID) *fakeHost {
	size := core.Size{W: w, H: h}
	n := size.Cells()
	host := &fakeHost{
		size:   size,
		top:    make([]terrain.ID, n),
		under:  make([]terrain.ID, n),
		temp:   make([]float64, n),
		season: SeasonWinter,
		things: make(map[int][]Structure),
		frost:  make(map[int]int),
	}
	for i := range host.top {
		host.top[i] = fill
	}
	return host
}

func (h *fakeHost) NumCells() int                   { return len(h.top) }
func (h *fakeHost) TerrainAt(i int) terrain.ID      { return h.top[i] }
func (h *fakeHost) UnderTerrainAt(i int) terrain.ID { return h.under[i] }
func (h *fakeHost) TemperatureAt(i int) float64     { return h.temp[i] }
func (h *fakeHost) Ticks() int                      { return h.ticks }
func (h *fakeHost) ThingsAt(i int) []Structure      { return h.things[i] }
func (h *fakeHost) ClearFrost(i int)                { h.frost[i]++ }

func (h *fakeHost) Neighbors8(i int, dst []int) []int { return h.size.Neighbors8(i, dst) }

func (h *fakeHost) Season() Season {
	h.seasonCalls++
	return h.season
}

func (h *fakeHost) SetTerrain(i int, id terrain.ID) {
	old := h.top[i]
	h.top[i] = id
	h.topWrites++
	if h.comp != nil {
		if err := h.comp.OnTerrainChanged(i, old, id); err != nil && h.listenerErr == nil {
			h.listenerErr = err
		}
	}
}

func (h *fakeHost) SetUnderTerrain(i int, id terrain.ID) {
	h.under[i] = id
	h.underWrites++
}

func (h *fakeHost) setAllTemp(t float64) {
	for i := range h.temp {
		h.temp[i] = t
	}
}

// fill paints a rectangle without notifying the component, as map
// generation would.
func (h *fakeHost) fill(x0, y0, x1, y1 int, id terrain.ID) {
	for _, i := range h.size.Rect(x0, y0, x1, y1) {
		h.top[i] = id
	}
}

func (h *fakeHost) idx(x, y int) int { return h.size.Index(x, y) }

type bridgeHost struct {
	*fakeHost
	bridged map[int]bool
}

func (h *bridgeHost) BridgedAt(i int) bool { return h.bridged[i] }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestComponent(t *testing.T, h *fakeHost, opts ...Option) *Component {
	t.Helper()
	return attach(t, h, h, opts...)
}

func attach(t *testing.T, host Host, h *fakeHost, opts ...Option) *Component {
	t.Helper()
	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	c := New(host, terrain.MustVanilla(), opts...)
	h.comp = c
	require.NoError(t, c.Initialize())
	return c
}

// pond is a 5x5 map of soil around a 3x3 pond of shallow water.
func pond(t *testing.T) (*fakeHost, *Component) {
	t.Helper()
	h := newFakeHost(5, 5, terrain.Soil)
	h.fill(1, 1, 3, 3, terrain.WaterShallow)
	return h, newTestComponent(t, h)
}
