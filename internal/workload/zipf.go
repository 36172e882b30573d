// Package workload generates argument streams for memoized calls.
package workload

import (
	"math"
	"math/rand/v2"
	"strconv"
)

// ZipfInts generates a Zipf-distributed stream of n argument values drawn
// from keySpace distinct values. theta controls the skew (higher = more
// repeat calls, so more memoization opportunity); seed makes the stream
// reproducible.
func ZipfInts(n, keySpace int, theta float64, seed uint64) []int {
	rng := rand.New(rand.NewPCG(seed, seed+1))
	args := make([]int, n)

	spread := keySpace + 1
	zeta2 := zeta(2, theta)
	zetaN := zeta(uint64(spread), theta)
	alpha := 1.0 / (1.0 - theta)
	eta := (1 - math.Pow(2.0/float64(spread), 1.0-theta)) / (1.0 - zeta2/zetaN)
	halfPowTheta := 1.0 + math.Pow(0.5, theta)

	for i := range n {
		u := rng.Float64()
		uz := u * zetaN
		var v int
		switch {
		case uz < 1.0:
			v = 0
		case uz < halfPowTheta:
			v = 1
		default:
			v = int(float64(spread) * math.Pow(eta*u-eta+1.0, alpha))
		}
		if v >= keySpace {
			v = keySpace - 1
		}
		args[i] = v
	}
	return args
}

// ZipfKeys is ZipfInts with the values pre-formatted as canonical string
// keys, the form the store backends consume.
func ZipfKeys(n, keySpace int, theta float64, seed uint64) []string {
	ints := ZipfInts(n, keySpace, theta, seed)
	keys := make([]string, len(ints))
	for i, v := range ints {
		keys[i] = strconv.Itoa(v)
	}
	return keys
}

func zeta(n uint64, theta float64) float64 {
	sum := 0.0
	for i := uint64(1); i <= n; i++ {
		sum += 1.0 / math.Pow(float64(i), theta)
	}
	return sum
}
