// Package mapgen implements the procedural world-map generation pipeline:
// height-field generation, land/ocean classification, climate construction,
// relief and terrain placement, ocean-depth smoothing, continent labeling,
// lake regeneration and river generation. internal/mapgen/strategy and
// internal/mapgen/validator build on top of this package; it imports
// neither.
package mapgen

import "github.com/google/uuid"

// HMax is the internal elevation ceiling used throughout generation.
// Elevations are rescaled to 0..255 only when the map is emitted.
const HMax = 1000

// Terrain is one of the fixed classic-ruleset terrain types.
type Terrain string

const (
	TerrainOcean     Terrain = "ocean"
	TerrainCoast     Terrain = "coast"
	TerrainDeepOcean Terrain = "deep_ocean"
	TerrainLake      Terrain = "lake"
	TerrainGrassland Terrain = "grassland"
	TerrainPlains    Terrain = "plains"
	TerrainDesert    Terrain = "desert"
	TerrainTundra    Terrain = "tundra"
	TerrainForest    Terrain = "forest"
	TerrainJungle    Terrain = "jungle"
	TerrainSwamp     Terrain = "swamp"
	TerrainHills     Terrain = "hills"
	TerrainMountains Terrain = "mountains"
)

// landFill is the placeholder terrain assigned to every land tile before any
// placer has committed a final terrain to it (§4.6 step 2, §4.8). It is the
// grassland terrain itself, so makePlains (§4.6 step 16) converts every tile
// still holding grassland at that point, whichever stage put it there.
const landFill = TerrainGrassland

// IsWater reports whether t belongs to the open-water set used by invariant
// 1 (terrain/elevation coherence) and invariant 2 (lake/ocean coherence).
func (t Terrain) IsWater() bool {
	switch t {
	case TerrainOcean, TerrainCoast, TerrainDeepOcean, TerrainLake:
		return true
	}
	return false
}

// IsOceanBody reports whether t is open ocean (not a lake) — the set whose
// 4-connected components feed ContinentLabeler's lake regeneration pass.
func (t Terrain) IsOceanBody() bool {
	switch t {
	case TerrainOcean, TerrainCoast, TerrainDeepOcean:
		return true
	}
	return false
}

// Temperature is a single discrete class per tile.
type Temperature int

const (
	Frozen Temperature = 1 << iota
	Cold
	Temperate
	Tropical
)

// TemperatureSet is a bitmask-style union of Temperature classes, letting
// callers write explicit set literals (e.g. Hot below) instead of relying on
// an implicit ordering the way the original source's duck-typed bitwise
// tests did.
type TemperatureSet int

// Hot is the {TEMPERATE, TROPICAL} set used by TerrainPlacer's swamp/desert
// conditions (§4.8).
var Hot = TemperatureSet(Temperate | Tropical)

// NotFrozen is every class except Frozen, used by forest/desert placement.
var NotFrozen = TemperatureSet(Cold | Temperate | Tropical)

// Contains reports whether t belongs to the set.
func (s TemperatureSet) Contains(t Temperature) bool {
	return int(s)&int(t) != 0
}

// Of builds a TemperatureSet containing exactly the given classes.
func Of(ts ...Temperature) TemperatureSet {
	var s TemperatureSet
	for _, t := range ts {
		s |= TemperatureSet(t)
	}
	return s
}

// RiverDir is one of the four cardinal directions a river bit can occupy.
type RiverDir int

const (
	RiverNorth RiverDir = 1 << iota
	RiverEast
	RiverSouth
	RiverWest
)

// RiverMask is the 4-bit set of directions a tile's river connects to.
type RiverMask int

// Has reports whether dir is set.
func (m RiverMask) Has(dir RiverDir) bool {
	return int(m)&int(dir) != 0
}

// With returns a copy of m with dir set.
func (m RiverMask) With(dir RiverDir) RiverMask {
	return RiverMask(int(m) | int(dir))
}

// Tile is the per-cell record (§3).
type Tile struct {
	Terrain     Terrain
	Elevation   int // 0..HMax internally; rescaled to 0..255 on emit
	Temperature Temperature
	Wetness     int // 0..100
	RiverMask   RiverMask
	ContinentID int // >=1 for land/lake; 0 for open ocean
	Resource    string
	Properties  map[string]int // sparse climate-affinity snapshot from the ruleset
}

// StartPosition is one player's starting tile.
type StartPosition struct {
	X, Y     int
	PlayerID int
}

// WorldBuffer is the pipeline's exclusively-owned, mutable generation
// buffer. It is allocated at pipeline start and handed to the caller only
// once finalized; on failure it is discarded (§3 Lifecycle).
type WorldBuffer struct {
	ID     uuid.UUID
	Width  int
	Height int

	Tiles     [][]Tile // Tiles[x][y]
	HeightMap []int    // row-major, len == Width*Height, 0..HMax

	// Transient side arrays, scoped to one generation run.
	Placed        *PlacementMap
	OceanDistance []int // row-major, Chebyshev distance to nearest land, capped at 4

	Seed      string
	Generator string
}

// NewWorldBuffer allocates a zeroed buffer of the given dimensions; every
// tile starts with an empty Terrain. Land/ocean classification (or a
// strategy's own painting) later gives land tiles landFill until a placer
// commits a final terrain (invariant 6, Placement completeness).
func NewWorldBuffer(width, height int, seed, generator string) *WorldBuffer {
	tiles := make([][]Tile, width)
	for x := range tiles {
		tiles[x] = make([]Tile, height)
	}

	return &WorldBuffer{
		ID:        uuid.New(),
		Width:     width,
		Height:    height,
		Tiles:     tiles,
		HeightMap: make([]int, width*height),
		Placed:    NewPlacementMap(width, height),
		Seed:      seed,
		Generator: generator,
	}
}

// InBounds reports whether (x,y) is a valid coordinate.
func (w *WorldBuffer) InBounds(x, y int) bool {
	return x >= 0 && x < w.Width && y >= 0 && y < w.Height
}

// HeightAt returns the elevation at (x,y), or 0 if out of bounds.
func (w *WorldBuffer) HeightAt(x, y int) int {
	if !w.InBounds(x, y) {
		return 0
	}
	return w.HeightMap[y*w.Width+x]
}

// SetHeightAt sets the elevation at (x,y). Out-of-bounds writes are no-ops.
func (w *WorldBuffer) SetHeightAt(x, y, v int) {
	if !w.InBounds(x, y) {
		return
	}
	w.HeightMap[y*w.Width+x] = v
}

// TileAt returns a pointer to the tile at (x,y), or nil if out of bounds.
func (w *WorldBuffer) TileAt(x, y int) *Tile {
	if !w.InBounds(x, y) {
		return nil
	}
	return &w.Tiles[x][y]
}

// NeighborDir describes one in-bounds cardinal neighbor of a tile.
type NeighborDir struct {
	X, Y int
	Dir  RiverDir
}

// Neighbors4 returns the four cardinal neighbor coordinates of (x,y) that
// are in bounds, alongside the RiverDir pointing from (x,y) toward them.
func (w *WorldBuffer) Neighbors4(x, y int) []NeighborDir {
	cand := [4]NeighborDir{
		{x, y - 1, RiverNorth},
		{x + 1, y, RiverEast},
		{x, y + 1, RiverSouth},
		{x - 1, y, RiverWest},
	}
	out := make([]NeighborDir, 0, 4)
	for _, c := range cand {
		if w.InBounds(c.X, c.Y) {
			out = append(out, c)
		}
	}
	return out
}

// MapData is the finalized, emitted output (§6 Output).
type MapData struct {
	Width             int
	Height            int
	Seed              string
	GeneratedAt       string
	Tiles             [][]Tile
	StartingPositions []StartPosition
}

// Finalize hands the buffer to the caller, rescaling elevation from the
// internal 0..HMax scale to the emitted 0..255 scale (§3 Tile fields). The
// WorldBuffer itself is not reused after this call — the lifecycle is
// exclusive ownership until finalization, then release (§3 Lifecycle).
func (w *WorldBuffer) Finalize(generatedAt string, startPositions []StartPosition) *MapData {
	tiles := make([][]Tile, w.Width)
	for x := range tiles {
		tiles[x] = make([]Tile, w.Height)
		for y := range tiles[x] {
			tile := w.Tiles[x][y]
			tile.Elevation = w.HeightAt(x, y) * 255 / HMax
			tiles[x][y] = tile
		}
	}

	return &MapData{
		Width:             w.Width,
		Height:            w.Height,
		Seed:              w.Seed,
		GeneratedAt:       generatedAt,
		Tiles:             tiles,
		StartingPositions: startPositions,
	}
}
