package ising_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/isingsim/internal/ising"
)

const nearZeroT = 1e-12

func newEngine(size int, opts ising.Options) *ising.Engine {
	GinkgoHelper()
	if opts.Rand == nil {
		opts.Rand = ising.NewRand(uint64(GinkgoRandomSeed()))
	}
	e, err := ising.New(size, opts)
	Expect(err).NotTo(HaveOccurred())
	return e
}

func expectStates(e *ising.Engine, want int) {
	GinkgoHelper()
	for r := 0; r < e.Size(); r++ {
		for c := 0; c < e.Size(); c++ {
			Expect(e.Site(r, c).State).To(Equal(want), "site (%d,%d)", r, c)
		}
	}
}

func spinSum(e *ising.Engine) int {
	sum := 0
	for _, s := range e.Lattice().Spins() {
		sum += int(s)
	}
	return sum
}

var _ = Describe("New", func() {
	It("rejects non-positive sizes", func() {
		for _, size := range []int{0, -1, -16} {
			e, err := ising.New(size, ising.Options{})
			Expect(err).To(MatchError(ising.ErrInvalidDimension))
			Expect(e).To(BeNil())
		}
	})

	It("applies default parameters", func() {
		e := newEngine(4, ising.Options{})
		Expect(e.K()).To(Equal(1.0))
		Expect(e.J()).To(Equal(1.0))
		Expect(e.T()).To(Equal(0.01))
		Expect(e.SaveConfig()).To(BeFalse())
	})

	It("derives the Onsager critical temperature and inverse temperature", func() {
		e := newEngine(4, ising.Options{K: 2, J: 3, T: 0.5})
		Expect(e.Tc()).To(BeNumerically("~", 2*3/(2*math.Log(1+math.Sqrt2)), 1e-12))
		Expect(e.Beta()).To(BeNumerically("~", 1.0, 1e-12))

		d := newEngine(4, ising.Options{})
		Expect(d.Tc()).To(BeNumerically("~", 2.269185314213022, 1e-12))
		Expect(d.Beta()).To(BeNumerically("~", 100, 1e-9))
	})

	It("seeds every site with a valid spin and consistent observables", func() {
		e := newEngine(8, ising.Options{})
		for r := 0; r < 8; r++ {
			for c := 0; c < 8; c++ {
				site := e.Site(r, c)
				Expect(site.Spin).To(BeElementOf(ising.Up, ising.Down))
				Expect(site.State).To(Equal(int(site.Spin) * e.Lattice().NeighbourSum(r, c)))
			}
		}
		Expect(e.M()).To(Equal(float64(spinSum(e)) / 64))
	})

	It("records no snapshot at construction", func() {
		e := newEngine(4, ising.Options{SaveConfig: true})
		Expect(e.History()).To(BeEmpty())
	})

	It("re-derives beta when the temperature changes", func() {
		e := newEngine(4, ising.Options{T: 1})
		e.SetTemperature(4)
		Expect(e.T()).To(Equal(4.0))
		Expect(e.Beta()).To(BeNumerically("~", 0.25, 1e-12))
	})
})

var _ = Describe("RecalculateObservables", func() {
	const size = 4

	DescribeTable("uniform lattices",
		func(spin ising.Spin, wantM float64) {
			e := newEngine(size, ising.Options{})
			e.Fill(spin)
			e.RecalculateObservables()

			expectStates(e, 4)
			Expect(e.H()).To(Equal(-float64(size * size * 2)))
			Expect(e.M()).To(Equal(wantM))
		},
		Entry("all up", ising.Up, 1.0),
		Entry("all down", ising.Down, -1.0),
	)

	It("scales the Hamiltonian with the coupling constant", func() {
		e := newEngine(size, ising.Options{J: 2.5})
		e.Fill(ising.Up)
		e.RecalculateObservables()
		Expect(e.H()).To(Equal(-2 * 2.5 * size * size))
	})

	It("gives a positive Hamiltonian and zero magnetisation for a checkerboard", func() {
		e := newEngine(size, ising.Options{})
		for r := 0; r < size; r++ {
			for c := 0; c < size; c++ {
				if (r+c)%2 == 0 {
					e.SetSpin(r, c, ising.Up)
				} else {
					e.SetSpin(r, c, ising.Down)
				}
			}
		}
		e.RecalculateObservables()

		expectStates(e, -4)
		Expect(e.H()).To(Equal(float64(size * size * 2)))
		Expect(e.M()).To(Equal(0.0))
	})

	It("is idempotent without intervening mutation", func() {
		e := newEngine(6, ising.Options{T: 2})
		e.MetropolisSweep(3)

		e.RecalculateObservables()
		h, m, lat := e.H(), e.M(), e.Lattice()

		e.RecalculateObservables()
		Expect(e.H()).To(Equal(h))
		Expect(e.M()).To(Equal(m))
		Expect(e.Lattice().Rows()).To(Equal(lat.Rows()))
	})
})

var _ = Describe("MetropolisSweep", func() {
	const size = 3

	DescribeTable("removes a single defect at near-zero temperature",
		func(background ising.Spin, defectRow, defectCol int) {
			e := newEngine(size, ising.Options{T: nearZeroT})
			ref := newEngine(size, ising.Options{T: nearZeroT})
			e.Fill(background)
			ref.Fill(background)
			e.SetSpin(defectRow, defectCol, background.Flip())

			e.MetropolisSweep(1)
			ref.RecalculateObservables()

			Expect(e.Lattice().Spins()).To(Equal(ref.Lattice().Spins()))
			Expect(e.H()).To(Equal(ref.H()))
			Expect(e.M()).To(Equal(ref.M()))
		},
		Entry("down defect in an up lattice", ising.Up, 1, 1),
		Entry("up defect in a down lattice", ising.Down, 1, 1),
		Entry("corner defect", ising.Down, 0, 0),
	)

	It("keeps observables consistent with the spins after each sweep", func() {
		e := newEngine(10, ising.Options{T: 2.5})
		for i := 0; i < 20; i++ {
			e.MetropolisSweep(1)
			Expect(e.M()).To(BeNumerically(">=", -1))
			Expect(e.M()).To(BeNumerically("<=", 1))
			Expect(e.M()).To(Equal(float64(spinSum(e)) / 100))

			h, m := e.H(), e.M()
			e.RecalculateObservables()
			Expect(e.H()).To(Equal(h))
			Expect(e.M()).To(Equal(m))
		}
	})

	It("is reproducible for a fixed seed", func() {
		a := newEngine(8, ising.Options{T: 2.2, Rand: ising.NewRand(7)})
		b := newEngine(8, ising.Options{T: 2.2, Rand: ising.NewRand(7)})
		a.MetropolisSweep(5)
		b.MetropolisSweep(5)
		Expect(a.History()).To(Equal(b.History()))
		Expect(a.Lattice().Spins()).To(Equal(b.Lattice().Spins()))
	})
})

var _ = Describe("Wolff", func() {
	const size = 3

	DescribeTable("flips the whole uniform lattice at near-zero temperature",
		func(start ising.Spin, wantM float64) {
			e := newEngine(size, ising.Options{T: nearZeroT})
			e.Fill(start)
			e.RecalculateObservables()

			e.Wolff(1)

			expectStates(e, 4)
			Expect(e.H()).To(Equal(-float64(size * size * 2)))
			Expect(e.M()).To(Equal(wantM))
		},
		Entry("up to down", ising.Up, -1.0),
		Entry("down to up", ising.Down, 1.0),
	)

	It("flips exactly the seed when bonds are never activated", func() {
		e := newEngine(6, ising.Options{T: 1e12})
		e.Fill(ising.Up)
		e.RecalculateObservables()

		e.Wolff(1)

		Expect(spinSum(e)).To(Equal(36 - 2))
	})

	It("keeps magnetisation within bounds at finite temperature", func() {
		e := newEngine(12, ising.Options{T: 2.0})
		e.Wolff(50)
		for _, s := range e.History() {
			Expect(s.M).To(BeNumerically(">=", -1))
			Expect(s.M).To(BeNumerically("<=", 1))
		}
		Expect(e.M()).To(Equal(float64(spinSum(e)) / 144))
	})
})

var _ = Describe("History", func() {
	It("grows by one snapshot per completed iteration", func() {
		for _, save := range []bool{false, true} {
			e := newEngine(5, ising.Options{T: 2, SaveConfig: save})
			e.MetropolisSweep(3)
			e.Wolff(4)
			Expect(e.History()).To(HaveLen(7))
			Expect(e.Iterations()).To(Equal(7))
		}
	})

	It("treats non-positive iteration counts as no-ops", func() {
		e := newEngine(5, ising.Options{})
		e.MetropolisSweep(0)
		e.Wolff(-3)
		Expect(e.History()).To(BeEmpty())
	})

	It("records parameters and observables of the step", func() {
		e := newEngine(4, ising.Options{K: 1.5, J: 0.5, T: 3})
		e.Wolff(1)
		s := e.History()[0]
		Expect(s.H).To(Equal(e.H()))
		Expect(s.M).To(Equal(e.M()))
		Expect(s.K).To(Equal(1.5))
		Expect(s.J).To(Equal(0.5))
		Expect(s.T).To(Equal(3.0))
		Expect(s.Config).To(BeNil())
	})

	It("isolates stored configurations from the live lattice", func() {
		e := newEngine(4, ising.Options{T: nearZeroT, SaveConfig: true})
		e.Fill(ising.Up)
		e.RecalculateObservables()
		e.Wolff(1)

		stored := e.History()[0].Config
		Expect(stored).NotTo(BeNil())
		before := stored.Rows()

		e.Fill(ising.Up)
		e.SetSpin(2, 2, ising.Down)
		e.RecalculateObservables()

		Expect(e.History()[0].Config.Rows()).To(Equal(before))
		for _, s := range stored.Spins() {
			Expect(s).To(Equal(ising.Down))
		}
	})
})

var _ = Describe("Direct mutation", func() {
	It("rejects spins other than up and down", func() {
		e := newEngine(3, ising.Options{})
		Expect(func() { e.SetSpin(0, 0, 0) }).To(Panic())
		Expect(func() { e.Fill(2) }).To(Panic())
		Expect(func() { e.SetSpin(1, 1, ising.Down) }).NotTo(Panic())
		Expect(e.Spin(1, 1)).To(Equal(ising.Down))
	})
})
