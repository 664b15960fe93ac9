package mapgen

import "civgen/internal/rng"

// LakeMaxSize is the largest 4-connected ocean component that reclassifies
// as a lake (invariant 2, GLOSSARY).
const LakeMaxSize = 2

// RemoveTinyIslands converts land tiles whose radius-2 neighborhood holds
// too few land neighbors into ocean, before continent IDs exist (§4.10).
// The threshold depends on the generator: random allows a sparser minimum
// than the other generators, since its relief has no coherent landmass
// shape to begin with.
func RemoveTinyIslands(w *WorldBuffer, generator Generator, source *rng.Source) {
	threshold := tinyIslandThreshold(generator, source)

	var toOcean [][2]int
	for x := 0; x < w.Width; x++ {
		for y := 0; y < w.Height; y++ {
			if w.Tiles[x][y].Terrain.IsWater() {
				continue
			}
			if landNeighborCount(w, x, y, 2) <= threshold {
				toOcean = append(toOcean, [2]int{x, y})
			}
		}
	}
	for _, p := range toOcean {
		w.Tiles[p[0]][p[1]].Terrain = TerrainOcean
	}
}

func tinyIslandThreshold(generator Generator, source *rng.Source) int {
	if generator == GeneratorRandom {
		return 1 + source.Intn(2) // 1..2
	}
	return 3 + source.Intn(3) // 3..5
}

func landNeighborCount(w *WorldBuffer, x, y, radius int) int {
	n := 0
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			xx, yy := x+dx, y+dy
			if !w.InBounds(xx, yy) {
				continue
			}
			if !w.Tiles[xx][yy].Terrain.IsWater() {
				n++
			}
		}
	}
	return n
}

// LabelContinents flood-fills 4-connected land (and lake) tiles, assigning
// sequential positive IDs (C5, §4.10, invariant 3). Traversal uses an
// explicit stack rather than recursion, since a continent can span the
// entire map.
func LabelContinents(w *WorldBuffer) {
	visited := make([]bool, w.Width*w.Height)
	nextID := 1

	for x := 0; x < w.Width; x++ {
		for y := 0; y < w.Height; y++ {
			idx := y*w.Width + x
			if visited[idx] || w.Tiles[x][y].Terrain.IsOceanBody() {
				continue
			}
			floodFillContinent(w, visited, x, y, nextID)
			nextID++
		}
	}
}

func floodFillContinent(w *WorldBuffer, visited []bool, sx, sy, id int) {
	type pt struct{ x, y int }
	stack := []pt{{sx, sy}}
	visited[sy*w.Width+sx] = true

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		w.Tiles[p.x][p.y].ContinentID = id

		for _, nb := range w.Neighbors4(p.x, p.y) {
			idx := nb.Y*w.Width + nb.X
			if visited[idx] {
				continue
			}
			if w.Tiles[nb.X][nb.Y].Terrain.IsOceanBody() {
				continue
			}
			visited[idx] = true
			stack = append(stack, pt{nb.X, nb.Y})
		}
	}
}

// RegenerateLakes flood-fills 4-connected open-ocean components after
// continent labeling; any component of size <= LakeMaxSize becomes lake,
// preserving the continent ID its surrounding land already claimed where
// applicable (invariant 2).
func RegenerateLakes(w *WorldBuffer) {
	visited := make([]bool, w.Width*w.Height)

	for x := 0; x < w.Width; x++ {
		for y := 0; y < w.Height; y++ {
			idx := y*w.Width + x
			if visited[idx] || !w.Tiles[x][y].Terrain.IsOceanBody() {
				continue
			}
			component := floodCollectOcean(w, visited, x, y)
			if len(component) <= LakeMaxSize {
				id := 0
				for _, p := range component {
					for _, nb := range w.Neighbors4(p[0], p[1]) {
						if cid := w.Tiles[nb.X][nb.Y].ContinentID; id == 0 && cid > 0 {
							id = cid
						}
					}
				}
				for _, p := range component {
					w.Tiles[p[0]][p[1]].Terrain = TerrainLake
					w.Tiles[p[0]][p[1]].ContinentID = id
				}
			}
		}
	}
}

func floodCollectOcean(w *WorldBuffer, visited []bool, sx, sy int) [][2]int {
	type pt struct{ x, y int }
	stack := []pt{{sx, sy}}
	visited[sy*w.Width+sx] = true
	var component [][2]int

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		component = append(component, [2]int{p.x, p.y})

		for _, nb := range w.Neighbors4(p.x, p.y) {
			idx := nb.Y*w.Width + nb.X
			if visited[idx] {
				continue
			}
			if !w.Tiles[nb.X][nb.Y].Terrain.IsOceanBody() {
				continue
			}
			visited[idx] = true
			stack = append(stack, pt{nb.X, nb.Y})
		}
	}
	return component
}
