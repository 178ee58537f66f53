package physics

import "math"

// AngularMomentum is the z-component of r × v about the origin, per unit
// particle mass. It is conserved exactly by a central force.
func AngularMomentum(x, y, vx, vy float64) float64 {
	return x*vy - y*vx
}

// Potential is the specific potential energy of the softened central force,
// zero at infinity. For epsilon = 0 it reduces to -mass/r.
func Potential(x, y, mass, epsilon float64) float64 {
	r := math.Hypot(x, y)
	if epsilon == 0 {
		if r == 0 {
			return math.Inf(-1)
		}
		return -mass / r
	}
	s := math.Sqrt(epsilon)
	return -(mass / s) * (math.Pi/2 - math.Atan(r/s))
}

// SpecificEnergy is kinetic plus potential energy per unit particle mass.
func SpecificEnergy(x, y, vx, vy, mass, epsilon float64) float64 {
	return 0.5*(vx*vx+vy*vy) + Potential(x, y, mass, epsilon)
}

// CircularSpeed is the speed of a circular orbit at radius r under the
// softened force.
func CircularSpeed(r, mass, epsilon float64) float64 {
	if r <= 0 {
		return 0
	}
	return math.Sqrt(mass * r / (r*r + epsilon))
}
