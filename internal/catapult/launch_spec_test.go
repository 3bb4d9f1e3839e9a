package catapult_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/catasim/internal/catapult"
)

var _ = Describe("Catapult", func() {
	var c *catapult.Catapult

	BeforeEach(func() {
		bands, err := catapult.NewBandSystem(200, 4)
		Expect(err).NotTo(HaveOccurred())
		c, err = catapult.New(bands, nil, 0.35)
		Expect(err).NotTo(HaveOccurred())
	})

	Context("without a projectile", func() {
		It("still reports stored energy", func() {
			Expect(c.SetPull(0.03)).To(Succeed())
			Expect(c.StoredEnergy()).To(BeNumerically("~", 0.36, 1e-12))
		})

		It("refuses launch queries", func() {
			_, err := c.LaunchVelocity()
			Expect(err).To(MatchError(catapult.ErrNoProjectile))

			_, err = c.SimulateLaunch(45)
			Expect(err).To(MatchError(catapult.ErrNoProjectile))
		})
	})

	Context("loaded with a 5 g pompom", func() {
		BeforeEach(func() {
			p, err := catapult.NewProjectile(0.005, "5g pompom")
			Expect(err).NotTo(HaveOccurred())
			c.Load(p)
		})

		It("launches at zero speed when not pulled", func() {
			Expect(c.LaunchVelocity()).To(Equal(0.0))
		})

		It("rejects a negative pull and keeps the previous one", func() {
			Expect(c.SetPull(0.02)).To(Succeed())
			Expect(c.SetPull(-1)).To(MatchError(catapult.ErrValidation))
			Expect(c.Pull()).To(Equal(0.02))
		})

		DescribeTable("range is symmetric around 45 degrees",
			func(theta float64) {
				Expect(c.SetPull(0.03)).To(Succeed())
				lo, err := c.RangeAtAngle(theta)
				Expect(err).NotTo(HaveOccurred())
				hi, err := c.RangeAtAngle(90 - theta)
				Expect(err).NotTo(HaveOccurred())
				Expect(lo).To(BeNumerically("~", hi, 1e-9))
			},
			Entry("flat", 0.0),
			Entry("low", 15.0),
			Entry("steep", 30.0),
			Entry("optimal", 45.0),
		)

		It("matches the reference launch", func() {
			Expect(c.SetPull(0.03)).To(Succeed())
			r, err := c.SimulateLaunch(45)
			Expect(err).NotTo(HaveOccurred())

			Expect(r.KTotal).To(Equal(800.0))
			Expect(r.StoredJ).To(BeNumerically("~", 0.36, 1e-12))
			Expect(r.UsefulJ).To(BeNumerically("~", 0.126, 1e-12))
			Expect(r.VelocityMS).To(BeNumerically("~", math.Sqrt(50.4), 1e-12))
			Expect(r.RangeM).To(BeNumerically("~", 50.4/catapult.Gravity, 1e-9))
		})
	})
})
