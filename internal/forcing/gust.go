// Package forcing modulates external forces applied to a cloth over time.
package forcing

import (
	"math/rand"

	"github.com/san-kum/clothsim/internal/dynamo"
)

const (
	// retargetChance is the per-frame probability of choosing a new gust
	// strength.
	retargetChance = 0.02
	// easing is the fraction of the gap to the target closed per frame.
	easing = 0.02
)

// WindSetter is satisfied by *cloth.Cloth. Gusts only move the vector; the
// enabled flag belongs to the caller.
type WindSetter interface {
	SetWindVector(dynamo.Vec3)
}

// Gust scales a base wind vector by a slowly wandering factor in
// [1-Variation, 1]. With Variation 0 the wind is exactly Base.
type Gust struct {
	Base      dynamo.Vec3
	Variation float64

	factor float64
	target float64
	rng    *rand.Rand
}

func NewGust(base dynamo.Vec3, variation float64, seed int64) *Gust {
	g := &Gust{
		Base:   base,
		factor: 1,
		target: 1,
		rng:    rand.New(rand.NewSource(seed)),
	}
	g.SetVariation(variation)
	return g
}

// SetVariation sets the gust depth, clamped to [0, 1].
func (g *Gust) SetVariation(v float64) {
	switch {
	case !(v > 0):
		v = 0
	case v > 1:
		v = 1
	}
	g.Variation = v
}

// SetBase replaces the base wind, keeping the current factor.
func (g *Gust) SetBase(v dynamo.Vec3) { g.Base = v }

// Factor is the current scale applied to Base.
func (g *Gust) Factor() float64 { return g.factor }

// Next advances one frame and returns the wind for it.
func (g *Gust) Next() dynamo.Vec3 {
	if g.Variation <= 0 {
		return g.Base
	}
	if g.rng.Float64() < retargetChance {
		g.target = (1 - g.Variation) + g.Variation*g.rng.Float64()
	}
	g.factor += (g.target - g.factor) * easing
	return g.Base.Scale(g.factor)
}

// Apply advances one frame and pushes the wind into w.
func (g *Gust) Apply(w WindSetter) {
	w.SetWindVector(g.Next())
}
