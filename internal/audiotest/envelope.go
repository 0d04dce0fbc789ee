// SPDX-License-Identifier: EPL-2.0

package audiotest

// PulseEnvelope returns n energy values that are 1 for width hops at the
// start of every period hops and 0 elsewhere.
func PulseEnvelope(n, period, width int) []float64 {
	env := make([]float64, n)
	for i := range env {
		if i%period < width {
			env[i] = 1
		}
	}

	return env
}

// ConstantEnvelope returns n copies of v.
func ConstantEnvelope(n int, v float64) []float64 {
	env := make([]float64, n)
	for i := range env {
		env[i] = v
	}

	return env
}
