package stream

import (
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"waterfreezes/internal/freeze"
	"waterfreezes/internal/sims/lake"
	"waterfreezes/internal/terrain"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	return conn
}

func TestHubReplaysAndBroadcasts(t *testing.T) {
	hub := NewHub(quietLogger())
	srv := httptest.NewServer(hub)
	defer srv.Close()
	defer hub.Close()

	hub.Publish(Frame{Map: 2, Tick: 10})
	hub.Publish(Frame{Map: 1, Tick: 10})

	conn := dial(t, srv)
	var got Frame
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, 1, got.Map, "replay is ordered by map")
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, 2, got.Map)

	require.Eventually(t, func() bool { return hub.Clients() == 1 }, 5*time.Second, 10*time.Millisecond)
	hub.Publish(Frame{Map: 1, Tick: 20, Season: "Winter", Ice: []uint8{0, 50, 100}})
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, 20, got.Tick)
	assert.Equal(t, "Winter", got.Season)
	assert.Equal(t, []uint8{0, 50, 100}, got.Ice)
}

func TestHubForwardsCommands(t *testing.T) {
	hub := NewHub(quietLogger())
	srv := httptest.NewServer(hub)
	defer srv.Close()
	defer hub.Close()

	conn := dial(t, srv)
	require.NoError(t, conn.WriteJSON(Command{Map: 1, Op: "set_ice_depth_zero", Cells: []int{3, 4}}))

	select {
	case cmd := <-hub.Commands():
		assert.Equal(t, Command{Map: 1, Op: "set_ice_depth_zero", Cells: []int{3, 4}}, cmd)
	case <-time.After(5 * time.Second):
		t.Fatal("command not forwarded")
	}
}

func TestHubDropsClosedClients(t *testing.T) {
	hub := NewHub(quietLogger())
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dial(t, srv)
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, 5*time.Second, 10*time.Millisecond)
	conn.Close()
	require.Eventually(t, func() bool { return hub.Clients() == 0 }, 5*time.Second, 10*time.Millisecond)
}

// lakeMap is a map covered in shallow water apart from its river.
func lakeMap(t *testing.T) *lake.World {
	t.Helper()
	cfg := lake.DefaultConfig()
	cfg.Width, cfg.Height = 16, 12
	cfg.Params.ShallowLevel, cfg.Params.MarshLevel, cfg.Params.DeepLevel = 0, 0, 2
	cfg.Params.RiverWidth = 0
	w := lake.NewWithTable(cfg, terrain.MustVanilla(), quietLogger())
	w.Reset(0)
	require.NoError(t, w.Err())
	return w
}

func TestSnapshot(t *testing.T) {
	w := lakeMap(t)
	c := w.Component()
	require.NoError(t, c.SetIceDepthToMax(5))

	f := Snapshot(7, w.Ticks(), w.Season(), 16, 12, c)
	assert.Equal(t, 7, f.Map)
	assert.Equal(t, 16*12, f.Tracked)
	assert.Equal(t, 1, f.Frozen)
	assert.Equal(t, uint8(100), f.Ice[5])
	assert.Zero(t, f.Ice[6])
	assert.InDelta(t, 100, f.IceVolume, 1e-9)
}

func TestApply(t *testing.T) {
	w := lakeMap(t)
	reg := freeze.NewRegistry()
	reg.Add(1, w.Component())

	res, err := Apply(reg, Command{Map: 1, Op: "set_ice_depth_max", Cells: []int{0, 1, -1}})
	require.NoError(t, err)
	assert.Equal(t, Result{Map: 1, Op: "set_ice_depth_max", Cells: 3, Failures: 1}, res)
	assert.Equal(t, 100.0, w.Component().Ice(0))

	_, err = Apply(reg, Command{Map: 1, Op: "melt_everything"})
	var unknown *UnknownOpError
	require.ErrorAs(t, err, &unknown)

	_, err = Apply(reg, Command{Map: 9, Op: "reinitialize"})
	require.Error(t, err)

	_, err = Apply(reg, Command{Map: 1, Op: "reinitialize"})
	require.NoError(t, err)
	assert.Zero(t, w.Component().Ice(0))
}
