package mapgen

// MaxColatitude is the colatitude scale: 0 at the equator, MaxColatitude at
// the poles.
const MaxColatitude = 1000

// ColdLevel returns the continuous-temperature threshold below which a
// tile classifies as COLD or FROZEN, derived from temperatureParam (§4.4).
func ColdLevel(temperatureParam int) float64 {
	mc := float64(MaxColatitude)
	v := mc * (420 - 6*float64(temperatureParam)) / 700
	if v < 0 {
		return 0
	}
	return v
}

// TropicalLevel returns the continuous-temperature threshold above which a
// tile classifies as TROPICAL.
func TropicalLevel(temperatureParam int) float64 {
	mc := float64(MaxColatitude)
	v := mc * (1001 - 10*float64(temperatureParam)) / 700
	if cap := 0.9 * mc; v > cap {
		return cap
	}
	return v
}

// IceBase is the restrictive polar band width: rows within 2.5*IceBase
// colatitude units of a pole are scaled by pole normalization.
func IceBase(temperatureParam int) float64 {
	return ColdLevel(temperatureParam) / 10
}
