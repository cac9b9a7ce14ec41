package stage

// Stage is one step of the fixed rug manufacturing pipeline.
type Stage string

const (
	DesignApproved Stage = "design_approved"
	YarnPlanning   Stage = "yarn_planning"
	Tufting        Stage = "tufting"
	Trimming       Stage = "trimming"
	Washing        Stage = "washing"
	Drying         Stage = "drying"
	Finishing      Stage = "finishing"
	QC             Stage = "qc"
	Packing        Stage = "packing"
	ReadyToShip    Stage = "ready_to_ship"
)

// Stages is the pipeline order. Transitions are strictly forward,
// one step at a time. Callers must not mutate it.
var Stages = []Stage{
	DesignApproved,
	YarnPlanning,
	Tufting,
	Trimming,
	Washing,
	Drying,
	Finishing,
	QC,
	Packing,
	ReadyToShip,
}

// BoardStages are the stages shown as kanban columns:
// the whole pipeline except the initial and the terminal stage.
var BoardStages = Stages[1 : len(Stages)-1]

// Next returns the stage immediately following current, or false when
// current is the terminal stage or not a catalog stage at all.
func Next(current Stage) (Stage, bool) {
	for i, s := range Stages {
		if s == current {
			if i == len(Stages)-1 {
				return "", false
			}
			return Stages[i+1], true
		}
	}
	return "", false
}

func IsValid(s Stage) bool {
	for _, v := range Stages {
		if v == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether s is the last pipeline stage. Reaching it
// completes the owning work order.
func IsTerminal(s Stage) bool {
	return s == ReadyToShip
}
