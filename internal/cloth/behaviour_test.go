package cloth_test

import (
	"math"
	"slices"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/dynamo"
)

const substep = 1.0 / 120.0

func sheet(iters int) *cloth.Cloth {
	return cloth.New(cloth.Options{
		NX:             4,
		NY:             4,
		Spacing:        1,
		Gravity:        dynamo.V3(0, -9.8, 0),
		Damping:        0.99,
		Iterations:     iters,
		UseShear:       true,
		PinEdge:        cloth.PinTop,
		MaxSubstep:     substep,
		MaxAccumulated: 0.25,
	})
}

var _ = Describe("Cloth", func() {
	var c *cloth.Cloth

	BeforeEach(func() {
		c = sheet(1)
	})

	Describe("topology", func() {
		DescribeTable("triangle index count",
			func(nx, ny int) {
				g := cloth.NewGrid(nx, ny, 0.1, dynamo.Vec3{}, true)
				Expect(g.Triangles()).To(HaveLen(6 * (nx - 1) * (ny - 1)))
			},
			Entry("2x2", 2, 2),
			Entry("4x4", 4, 4),
			Entry("9x3", 9, 3),
			Entry("32x17", 32, 17),
		)

		It("never resizes index buffers while stepping", func() {
			tris, lines := c.Triangles(), c.Lines()
			c.Step(0.5)
			Expect(c.Triangles()).To(HaveLen(len(tris)))
			Expect(&c.Triangles()[0]).To(BeIdenticalTo(&tris[0]))
			Expect(&c.Lines()[0]).To(BeIdenticalTo(&lines[0]))
		})
	})

	Describe("Step", func() {
		It("runs exactly 30 substeps for a 10 s stall and drops the rest", func() {
			Expect(c.Step(10)).To(Equal(30))
			Expect(c.Accumulated()).To(BeNumerically("<", 1e-9))
		})

		It("is a no-op for zero and NaN deltas", func() {
			c.Step(0.1)
			before := slices.Clone(c.Positions())
			c.Step(0)
			c.Step(math.NaN())
			Expect(c.Positions()).To(Equal(before))
		})

		It("keeps pinned particles fixed", func() {
			g := c.Grid()
			for i := 0; i < 50; i++ {
				c.Step(0.02)
			}
			for i := 0; i < g.ColumnCount(); i++ {
				Expect(g.Position(g.Index(i, 0))).To(Equal(dynamo.V3(float64(i), 0, 0)))
			}
		})

		It("lets the free edge sag while staying finite", func() {
			for i := 0; i < 120; i++ {
				c.Step(substep)
			}
			g := c.Grid()
			Expect(dynamo.Finite(c.Positions())).To(BeTrue())
			for i := 0; i < g.ColumnCount(); i++ {
				Expect(g.Position(g.Index(i, 3)).Y).To(BeNumerically("<", 0))
			}
		})
	})

	Describe("wind", func() {
		It("pushes the sheet downwind only while enabled", func() {
			calm, windy := sheet(2), sheet(2)
			calm.SetWind(dynamo.V3(40, 0, 0))
			calm.SetWindEnabled(false)
			windy.SetWind(dynamo.V3(40, 0, 0))

			for i := 0; i < 60; i++ {
				calm.Step(substep)
				windy.Step(substep)
			}

			k := windy.Grid().Index(1, 3)
			Expect(windy.Grid().Position(k).X).To(BeNumerically(">", calm.Grid().Position(k).X))
		})
	})

	Describe("picking", func() {
		down := dynamo.V3(0, -1, 0)

		It("hits a free particle on the ray", func() {
			hit, ok := c.HitTestRay(dynamo.V3(2, 3, 1), down)
			Expect(ok).To(BeTrue())
			Expect(hit.Index).To(Equal(c.Grid().Index(2, 1)))
			Expect(hit.Distance).To(BeNumerically("~", 0, 1e-12))
		})

		It("ignores pinned particles", func() {
			_, ok := c.HitTestRayWithin(dynamo.V3(2, 3, 0), down, 0.25)
			Expect(ok).To(BeFalse())
		})

		It("holds the grabbed particle on a moving ray regardless of forces", func() {
			c.SetPointerRay(dynamo.V3(2, 3, 1), down, true)
			c.Step(substep)
			k, t := c.Grabbed()
			Expect(k).To(Equal(c.Grid().Index(2, 1)))

			c.SetWind(dynamo.V3(0, 1e4, 1e4))
			c.SetGravity(dynamo.V3(0, -1e3, 0))

			moved := dynamo.V3(2.6, 4, 1.2)
			c.SetPointerRay(moved, down, true)
			c.Step(substep)
			Expect(c.Grid().Position(k)).To(Equal(moved.Add(down.Scale(t))))
			Expect(c.Grid().PreviousPosition(k)).To(Equal(c.Grid().Position(k)))
		})

		It("releases the grab when the pointer goes inactive", func() {
			c.SetPointerRay(dynamo.V3(2, 3, 1), down, true)
			c.Step(substep)
			c.SetPointerRay(dynamo.V3(2, 3, 1), down, false)
			k, _ := c.Grabbed()
			Expect(k).To(Equal(cloth.NoGrab))
		})
	})

	Describe("iterations", func() {
		It("stiffen the sheet as they increase", func() {
			loose, stiff := sheet(1), sheet(30)
			for i := 0; i < 60; i++ {
				loose.Step(substep)
				stiff.Step(substep)
			}
			Expect(math.Abs(edgeLength(stiff, 0, 3) - 3)).To(BeNumerically("<", math.Abs(edgeLength(loose, 0, 3)-3)))
		})
	})
})

// edgeLength is the vertical length of column i measured from the pinned row
// down to row j.
func edgeLength(c *cloth.Cloth, i, j int) float64 {
	g := c.Grid()
	total := 0.0
	for r := 0; r < j; r++ {
		total += g.Position(g.Index(i, r+1)).Sub(g.Position(g.Index(i, r))).Length()
	}
	return total
}
