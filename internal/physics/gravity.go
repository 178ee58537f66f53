package physics

import "math"

// Acceleration returns the pull on a point at (x, y) toward a star of the
// given mass fixed at the origin. The magnitude is mass/(r²+epsilon); with
// epsilon = 0 it is the plain inverse-square law. A point exactly at the
// origin gets zero acceleration.
func Acceleration(x, y, mass, epsilon float64) (ax, ay float64) {
	r2 := x*x + y*y
	if r2 == 0 {
		return 0, 0
	}

	r := math.Sqrt(r2)
	magnitude := mass / (r2 + epsilon)
	ax = -magnitude * (x / r)
	ay = -magnitude * (y / r)
	return ax, ay
}
