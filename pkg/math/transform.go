package math

// Transform is a position plus orientation.
type Transform struct {
	Position Vec3
	Rotation Quat
}

// At returns an unrotated transform at p.
func At(p Vec3) Transform {
	return Transform{Position: p, Rotation: QuatIdentity()}
}
