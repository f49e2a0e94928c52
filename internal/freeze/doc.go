// Package freeze simulates water freezing into ice and thawing back on the
// water-bearing cells of a host map.
//
// A Component owns five parallel per-cell grids (natural water identity,
// tracked water identity, ice depth, water depth and exposure) and drives
// them from two entry points the host must call: OnTick on every simulation
// step and OnTerrainChanged after every top-terrain write, including the
// writes the component makes itself. Both run on the host's update thread;
// nothing here locks.
package freeze
