package optimize

import "fmt"

// rhoCopper is the resistivity of copper at 20 C, in ohm meters.
const rhoCopper = 1.68e-8

// Wire describes one AWG gauge: nominal diameter and cross section, plus
// the conservative chassis-wiring current limit.
type Wire struct {
	DiameterMM float64
	AreaMM2    float64
	MaxAmps    float64
}

// awgTable spans the even gauges from 40 down to 0000 (here -4).
// Negative keys follow the usual convention: 0 is 1/0, -2 is 3/0 and so
// on.
var awgTable = map[int]Wire{
	40: {0.0799, 0.0031, 0.014},
	38: {0.1007, 0.0049, 0.02},
	36: {0.1270, 0.0079, 0.025},
	34: {0.1600, 0.0127, 0.05},
	32: {0.2019, 0.0201, 0.08},
	30: {0.2540, 0.0317, 0.14},
	28: {0.3200, 0.0501, 0.22},
	26: {0.4039, 0.079, 0.36},
	24: {0.5110, 0.126, 0.577},
	22: {0.6438, 0.205, 0.92},
	20: {0.8128, 0.325, 1.46},
	18: {1.0236, 0.823, 2.3},
	16: {1.2908, 1.31, 3.7},
	14: {1.6281, 2.08, 5.9},
	12: {2.0525, 3.31, 9.3},
	10: {2.5883, 5.26, 15.0},
	8:  {3.2639, 8.37, 24.0},
	6:  {4.1154, 13.3, 37.0},
	4:  {5.1894, 21.2, 60.0},
	2:  {6.5437, 33.6, 95.0},
	0:  {8.2510, 53.5, 150.0},
	-2: {9.2660, 85.0, 200.0},
	-4: {11.684, 135.0, 260.0},
}

// WireFor returns the wire data for an AWG gauge.
func WireFor(gauge int) (Wire, error) {
	w, ok := awgTable[gauge]
	if !ok {
		return Wire{}, fmt.Errorf("Unknown AWG gauge, %d.", gauge)
	}
	return w, nil
}

// Resistance estimates the DC resistance of one square coil of side
// length sideLen with the given number of turns, wound from the given
// gauge.
func Resistance(gauge, turns int, sideLen float64) (float64, error) {
	w, err := WireFor(gauge)
	if err != nil {
		return 0, err
	}
	wireLen := 4 * sideLen * float64(turns)
	return rhoCopper * wireLen / (w.AreaMM2 * 1e-6), nil
}
