package reactor

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Reactor lifecycle", func() {
	var r *Reactor

	BeforeEach(func() {
		r = NewSeeded(2024)
	})

	Context("in normal operation", func() {
		It("does not melt down without enough collisions", func() {
			r.rodPosition = 1
			r.temperature = MaxTemperature
			r.totalCollisions = ExplosionCollisions

			r.Update(100)

			Expect(r.Stability()).To(BeNumerically(">", ExplosionStability))
			Expect(r.Exploding()).To(BeFalse())
		})

		It("does not melt down while stable, however many collisions", func() {
			r.totalCollisions = 10 * ExplosionCollisions

			for i := 0; i < 200; i++ {
				r.Update(30)
			}

			Expect(r.Stability()).To(BeNumerically("<=", ExplosionStability))
			Expect(r.Exploding()).To(BeFalse())
		})
	})

	Context("when collisions and instability cross the thresholds", func() {
		BeforeEach(func() {
			r.rodPosition = 1
			r.temperature = MaxTemperature
			r.totalCollisions = ExplosionCollisions + 1
			r.Update(100)
		})

		It("latches into the meltdown state", func() {
			Expect(r.Exploding()).To(BeTrue())
			Expect(r.ExplosionFrame()).To(BeZero())
			Expect(r.Status().Level).To(Equal(LevelMeltdown))
		})

		It("only advances the animation afterwards", func() {
			particles := r.Particles()
			history := r.History()
			temp := r.Temperature()

			for i := 0; i < ExplosionCadence*5; i++ {
				r.Update(0)
			}

			Expect(r.ExplosionFrame()).To(BeEquivalentTo(5))
			Expect(r.Particles()).To(Equal(particles))
			Expect(r.History()).To(Equal(history))
			Expect(r.Temperature()).To(Equal(temp))
		})

		It("never recovers on its own", func() {
			for i := 0; i < 1000; i++ {
				r.Update(0)
			}
			Expect(r.Exploding()).To(BeTrue())
			Expect(r.ExplosionFrame()).To(BeEquivalentTo(MaxExplosionFrame))
		})

		It("returns to normal operation after a reset", func() {
			r.ObserveCores([]float64{12, 34})
			r.Reset()

			Expect(r.Exploding()).To(BeFalse())
			Expect(r.TotalCollisions()).To(BeZero())
			Expect(r.ParticleCount()).To(BeZero())
			Expect(r.History()).To(BeEmpty())
			Expect(r.Temperature()).To(Equal(BaseTemperature))
			Expect(r.CoreCount()).To(Equal(2))
		})
	})
})
