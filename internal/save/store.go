// Package save persists freeze component grids, one JSON document per map,
// in a billy filesystem.
//
// Writes go to a temporary file that is renamed into place, so a reader
// never observes a half-written save.
package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/multierr"
	billy "gopkg.in/src-d/go-billy.v4"

	"waterfreezes/internal/freeze"
)

const (
	filePrefix = "map-"
	fileSuffix = ".json"
)

// ErrNoSave reports that a map has never been saved.
var ErrNoSave = errors.New("no save for map")

// Store reads and writes map saves below Dir.
type Store struct {
	Filesystem billy.Filesystem
	Dir        string
}

// New returns a store rooted at dir of fs.
func New(fs billy.Filesystem, dir string) *Store {
	return &Store{Filesystem: fs, Dir: dir}
}

func (s *Store) name(id freeze.MapID) string {
	return path.Join(s.Dir, filePrefix+strconv.Itoa(int(id))+fileSuffix)
}

// Write stores d as the save of map id.
func (s *Store) Write(id freeze.MapID, d freeze.SaveData) (err error) {
	if err := s.Filesystem.MkdirAll(s.Dir, 0o755); err != nil {
		return err
	}
	temp, err := s.Filesystem.TempFile(s.Dir, filePrefix)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			err = multierr.Append(err, s.Filesystem.Remove(temp.Name()))
		}
	}()

	enc := json.NewEncoder(temp)
	if err := enc.Encode(d); err != nil {
		return multierr.Append(fmt.Errorf("encode map %d: %w", id, err), temp.Close())
	}
	if err := temp.Close(); err != nil {
		return err
	}
	return s.Filesystem.Rename(temp.Name(), s.name(id))
}

// Read loads the save of map id. It returns ErrNoSave when there is none.
func (s *Store) Read(id freeze.MapID) (d freeze.SaveData, err error) {
	f, err := s.Filesystem.Open(s.name(id))
	if errors.Is(err, os.ErrNotExist) {
		return d, fmt.Errorf("map %d: %w", id, ErrNoSave)
	}
	if err != nil {
		return d, err
	}
	defer func() { err = multierr.Append(err, f.Close()) }()

	raw, err := io.ReadAll(f)
	if err != nil {
		return d, err
	}
	if err := json.Unmarshal(raw, &d); err != nil {
		return d, fmt.Errorf("decode map %d: %w", id, err)
	}
	return d, nil
}

// List returns the ids of every saved map in ascending order.
func (s *Store) List() ([]freeze.MapID, error) {
	infos, err := s.Filesystem.ReadDir(s.Dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var ids []freeze.MapID
	for _, info := range infos {
		name := info.Name()
		if info.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileSuffix))
		if err != nil {
			continue
		}
		ids = append(ids, freeze.MapID(n))
	}
	slices.Sort(ids)
	return ids, nil
}

// SaveAll writes every registered map. A failing map does not stop the
// others; all failures are returned together.
func (s *Store) SaveAll(reg *freeze.Registry) error {
	var err error
	for _, id := range reg.IDs() {
		c, ok := reg.Get(id)
		if !ok {
			continue
		}
		err = multierr.Append(err, s.Write(id, c.Snapshot()))
	}
	return err
}

// LoadAll restores every registered map that has a save. Maps without one
// keep their current state.
func (s *Store) LoadAll(reg *freeze.Registry) error {
	var err error
	for _, id := range reg.IDs() {
		c, ok := reg.Get(id)
		if !ok {
			continue
		}
		d, rerr := s.Read(id)
		if errors.Is(rerr, ErrNoSave) {
			continue
		}
		if rerr != nil {
			err = multierr.Append(err, rerr)
			continue
		}
		if rerr := c.Restore(d); rerr != nil {
			err = multierr.Append(err, fmt.Errorf("restore map %d: %w", id, rerr))
		}
	}
	return err
}
