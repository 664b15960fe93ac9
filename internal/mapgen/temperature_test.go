package mapgen

import "testing"

func TestBuildTemperatureFieldClassesInRange(t *testing.T) {
	w := NewWorldBuffer(20, 20, "seed", "fractal")
	for x := 0; x < 20; x++ {
		for y := 0; y < 20; y++ {
			w.SetHeightAt(x, y, 600)
			w.Tiles[x][y].Terrain = TerrainGrassland
		}
	}

	tf := BuildTemperatureField(w, 50)
	for _, c := range tf.Classes {
		switch c {
		case Frozen, Cold, Temperate, Tropical:
		default:
			t.Fatalf("unexpected temperature class %v", c)
		}
	}
}

func TestBuildTemperatureFieldColderNearPoles(t *testing.T) {
	w := NewWorldBuffer(10, 40, "seed", "fractal")
	for x := 0; x < 10; x++ {
		for y := 0; y < 40; y++ {
			w.SetHeightAt(x, y, 500)
			w.Tiles[x][y].Terrain = TerrainGrassland
		}
	}

	tf := BuildTemperatureField(w, 50)
	equatorTemp := tf.Continuous[19*10+5]
	poleTemp := tf.Continuous[0*10+5]
	if poleTemp >= equatorTemp {
		t.Fatalf("expected the pole row to be colder than the equator row: pole=%v equator=%v", poleTemp, equatorTemp)
	}
}

func TestApplyToWritesClassifiedTemperature(t *testing.T) {
	w := NewWorldBuffer(5, 5, "seed", "fractal")
	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			w.SetHeightAt(x, y, 500)
			w.Tiles[x][y].Terrain = TerrainGrassland
		}
	}

	tf := BuildTemperatureField(w, 50)
	tf.ApplyTo(w)

	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if w.Tiles[x][y].Temperature != tf.At(x, y) {
				t.Fatalf("expected ApplyTo to match At(%d,%d)", x, y)
			}
		}
	}
}

func TestOceanProximityModerationZeroFarFromWater(t *testing.T) {
	w := NewWorldBuffer(20, 20, "seed", "fractal")
	for x := 0; x < 20; x++ {
		for y := 0; y < 20; y++ {
			w.Tiles[x][y].Terrain = TerrainGrassland
		}
	}
	if got := oceanProximityModeration(w, 10, 10); got != 0 {
		t.Fatalf("expected zero moderation far from any water, got %v", got)
	}
}

func TestOceanProximityModerationPositiveNearWater(t *testing.T) {
	w := NewWorldBuffer(20, 20, "seed", "fractal")
	for x := 0; x < 20; x++ {
		for y := 0; y < 20; y++ {
			w.Tiles[x][y].Terrain = TerrainGrassland
		}
	}
	w.Tiles[10][10].Terrain = TerrainOcean

	if got := oceanProximityModeration(w, 11, 10); got <= 0 {
		t.Fatalf("expected positive moderation adjacent to water, got %v", got)
	}
}
