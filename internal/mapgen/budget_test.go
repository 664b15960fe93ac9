package mapgen

import "testing"

func TestAdjustTerrainParamAllNonNegative(t *testing.T) {
	b := AdjustTerrainParam(30, 40, 50, 50)
	if b.MountainPct < 0 || b.ForestPct < 0 || b.JunglePct < 0 || b.RiverPct < 0 || b.SwampPct < 0 || b.DesertPct < 0 {
		t.Fatalf("expected every budget percentage to be non-negative, got %+v", b)
	}
}

func TestAdjustTerrainParamHigherSteepnessRaisesMountains(t *testing.T) {
	low := AdjustTerrainParam(30, 10, 50, 50)
	high := AdjustTerrainParam(30, 80, 50, 50)
	if high.MountainPct <= low.MountainPct {
		t.Fatalf("expected higher steepness to raise MountainPct: low=%v high=%v", low.MountainPct, high.MountainPct)
	}
}

func TestAdjustTerrainParamHigherWetnessRaisesRiverPct(t *testing.T) {
	dry := AdjustTerrainParam(30, 40, 0, 50)
	wet := AdjustTerrainParam(30, 40, 100, 50)
	if wet.RiverPct <= dry.RiverPct {
		t.Fatalf("expected higher wetness to raise RiverPct: dry=%v wet=%v", dry.RiverPct, wet.RiverPct)
	}
}

func TestAdjustTerrainParamLowWetnessZerosSwamp(t *testing.T) {
	b := AdjustTerrainParam(30, 40, 0, 10)
	if b.SwampPct != 0 {
		t.Fatalf("expected SwampPct to floor at 0 for dry, cold parameters, got %v", b.SwampPct)
	}
}

func TestColdLevelNeverNegative(t *testing.T) {
	for _, temp := range []int{0, 50, 100} {
		if v := ColdLevel(temp); v < 0 {
			t.Fatalf("ColdLevel(%d) = %v, want >= 0", temp, v)
		}
	}
}

func TestTropicalLevelCapped(t *testing.T) {
	v := TropicalLevel(0)
	cap := 0.9 * float64(MaxColatitude)
	if v > cap {
		t.Fatalf("TropicalLevel(0) = %v, want <= %v", v, cap)
	}
}

func TestIceBaseDerivesFromColdLevel(t *testing.T) {
	temp := 50
	if got, want := IceBase(temp), ColdLevel(temp)/10; got != want {
		t.Fatalf("IceBase(%d) = %v, want %v", temp, got, want)
	}
}
