package board

// trajectoryTimeScale divides the tick count in every launch curve.
const trajectoryTimeScale = 40

// Trajectory is an upward launch curve: speed(t) = Initial - Decay*t/40.
// Positive values move a block up the screen.
type Trajectory struct {
	Initial float64
	Decay   float64
}

// At returns the upward speed after t ticks in flight.
func (tr Trajectory) At(t int) float64 {
	return tr.Initial - tr.Decay*float64(t)/trajectoryTimeScale
}

// Apex returns the tick at which the curve stops rising.
func (tr Trajectory) Apex() int {
	if tr.Decay <= 0 {
		return -1
	}
	return int(tr.Initial * trajectoryTimeScale / tr.Decay)
}

type motionKind uint8

const (
	motionConstant motionKind = iota
	motionTrajectory
)

// Motion is either a constant screen-space rate or a launch trajectory.
type Motion struct {
	kind  motionKind
	rate  float64
	curve Trajectory
}

// Constant moves a block rate pixels down per tick.
func Constant(rate float64) Motion {
	return Motion{kind: motionConstant, rate: rate}
}

// Along moves a block along a launch curve.
func Along(tr Trajectory) Motion {
	return Motion{kind: motionTrajectory, curve: tr}
}

// Velocity is the screen-space displacement per tick at time t. Launch
// curves are negated because y grows downward.
func (m Motion) Velocity(t int) float64 {
	switch m.kind {
	case motionTrajectory:
		return -m.curve.At(t)
	default:
		return m.rate
	}
}

// Trajectory returns the launch curve and whether the motion has one.
func (m Motion) Trajectory() (Trajectory, bool) {
	return m.curve, m.kind == motionTrajectory
}
