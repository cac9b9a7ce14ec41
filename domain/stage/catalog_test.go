package stage_test

import (
	"rugcraft/domain/stage"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Stage catalog", func() {
	Describe("Stages", func() {
		It("should hold the whole pipeline in production order", func() {
			Expect(stage.Stages).To(Equal([]stage.Stage{
				stage.DesignApproved, stage.YarnPlanning, stage.Tufting, stage.Trimming,
				stage.Washing, stage.Drying, stage.Finishing, stage.QC,
				stage.Packing, stage.ReadyToShip,
			}))
		})
		It("should begin with design approval and end ready to ship", func() {
			Expect(stage.Stages[0]).To(Equal(stage.DesignApproved))
			Expect(stage.Stages[len(stage.Stages)-1]).To(Equal(stage.ReadyToShip))
			Expect(stage.IsTerminal(stage.Stages[len(stage.Stages)-1])).To(BeTrue())
		})
	})

	Describe("Next", func() {
		It("should chain every stage to its successor", func() {
			current := stage.Stages[0]
			visited := []stage.Stage{current}
			for {
				next, ok := stage.Next(current)
				if !ok {
					break
				}
				visited = append(visited, next)
				current = next
			}
			Expect(visited).To(Equal(stage.Stages))
		})
	})
})
