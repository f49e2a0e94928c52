package lake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/src-d/go-billy.v4/memfs"

	"waterfreezes/internal/freeze"
	"waterfreezes/internal/save"
	"waterfreezes/internal/terrain"
)

func TestSaveAndLoadFrozenPond(t *testing.T) {
	frozen := pondWorld(t, -20)
	steps(frozen, 20)
	open := pondWorld(t, 10)

	reg := freeze.NewRegistry()
	reg.Add(1, frozen.Component())
	reg.Add(2, open.Component())
	store := save.New(memfs.New(), "saves")
	require.NoError(t, store.SaveAll(reg))

	ids, err := store.List()
	require.NoError(t, err)
	assert.Equal(t, []freeze.MapID{1, 2}, ids)

	// A fresh, unfrozen map picks up the saved ice and shows it on the
	// next update.
	restored := pondWorld(t, -20)
	loaded := freeze.NewRegistry()
	loaded.Add(1, restored.Component())
	require.NoError(t, store.LoadAll(loaded))

	i := restored.size.Index(3, 3)
	assert.InDelta(t, 100, restored.comp.Ice(i), 1e-6)
	assert.Equal(t, terrain.WaterShallow, restored.TerrainAt(i))
	restored.Step()
	assert.Equal(t, terrain.LakeIce, restored.TerrainAt(i))
}
