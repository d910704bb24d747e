package pipeline

// Phase identifies one step of a generation run.
type Phase int

// Phases in execution order.
const (
	PhaseSeeds Phase = iota
	PhaseAssign
	PhaseCluster
	PhaseSpine
	PhaseDistance
	PhaseColour
)

var phaseLabels = [...]string{
	PhaseSeeds:    "Creating region points.",
	PhaseAssign:   "Allocating region nodes.",
	PhaseCluster:  "Creating MegaRegions.",
	PhaseSpine:    "Tracing MegaRegion spines.",
	PhaseDistance: "Measuring spine distances.",
	PhaseColour:   "Colouring MegaRegions.",
}

var phaseNames = [...]string{
	PhaseSeeds:    "seeds",
	PhaseAssign:   "assign",
	PhaseCluster:  "cluster",
	PhaseSpine:    "spine",
	PhaseDistance: "distance",
	PhaseColour:   "colour",
}

// Label returns the human-readable progress label of the phase.
func (p Phase) Label() string {
	if p < 0 || int(p) >= len(phaseLabels) {
		return ""
	}
	return phaseLabels[p]
}

// String returns the short phase name used in logs and metrics.
func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// Phases returns the phases a run executes, in order. Clustering phases are
// included only when clustered is true.
func Phases(clustered bool) []Phase {
	if clustered {
		return []Phase{PhaseSeeds, PhaseAssign, PhaseCluster, PhaseSpine, PhaseDistance, PhaseColour}
	}
	return []Phase{PhaseSeeds, PhaseAssign, PhaseColour}
}

// ProgressFunc receives each phase just before it starts. It is called from
// the goroutine running Generate.
type ProgressFunc func(Phase)
