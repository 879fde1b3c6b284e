package landmark

import (
	"math"

	"github.com/persona-ai/goPersonaCoach/foundation/ring"
)

// Scores is the per-frame geometry output. Absent modalities leave their
// fields at 0.
type Scores struct {
	EyeContact        float64
	Posture           float64
	ShoulderAlignment float64
	HeadPosition      float64
	Stability         float64
	GestureVariety    float64
	HandVisibility    float64
}

const (
	gestureWindowSize = 30

	// Eye contact blends gaze alignment with eye openness; gaze dominates.
	gazeWeight     = 0.75
	opennessWeight = 0.25

	// Posture sub-score weights.
	shoulderTiltWeight = 0.25
	headCenterWeight   = 0.25
	earAlignWeight     = 0.20
	uprightWeight      = 0.20
	armRelaxWeight     = 0.10

	// Lenient floors: minor slouching should nudge the score, not crater
	// it. These are product tuning values, kept as named constants.
	shoulderAlignFloor = 50.0
	headCenterFloor    = 60.0
	earAlignFloor      = 50.0
	uprightFloor       = 55.0
	armRelaxFloor      = 40.0
)

// Scorer owns the previous-frame pose and the gesture window for one
// session. Not safe for concurrent use.
type Scorer struct {
	prevPose       []Point
	gestureHistory *ring.Buffer[string]
}

func NewScorer() *Scorer {
	return &Scorer{
		gestureHistory: ring.New[string](gestureWindowSize),
	}
}

// Score computes the frame's geometry scores. Any input slice may be nil or
// short (subject not detected); affected scores degrade to 0.
func (s *Scorer) Score(face []Point, pose []Point, gestures []string) Scores {
	var out Scores

	if len(face) >= FaceLandmarkCount {
		out.EyeContact = eyeContactScore(face)
	}

	if len(pose) >= PoseLandmarkCount {
		out.ShoulderAlignment = shoulderAlignmentScore(pose)
		out.HeadPosition = headCenterScore(pose)
		out.Posture = postureScore(pose)
		out.Stability = s.stabilityScore(pose)
		out.HandVisibility = handVisibilityScore(pose)

		prev := make([]Point, len(pose))
		copy(prev, pose)
		s.prevPose = prev
	}

	for _, g := range gestures {
		if g != "" {
			s.gestureHistory.Push(g)
		}
	}
	out.GestureVariety = gestureVarietyScore(s.gestureHistory)

	return out
}

// Reset clears the previous frame and the gesture window.
func (s *Scorer) Reset() {
	s.prevPose = nil
	s.gestureHistory.Reset()
}

// =====================================================================================================================
// Eye contact

func eyeContactScore(face []Point) float64 {
	openness := (eyeAspectRatio(face,
		LeftEyeOuterCorner, LeftEyeInnerCorner,
		LeftEyeUpperA, LeftEyeUpperB, LeftEyeLowerA, LeftEyeLowerB) +
		eyeAspectRatio(face,
			RightEyeOuterCorner, RightEyeInnerCorner,
			RightEyeUpperA, RightEyeUpperB, RightEyeLowerA, RightEyeLowerB)) / 2

	// EAR of an open eye sits around 0.25-0.35; scale so a normally open
	// eye scores near full.
	opennessScore := clamp(openness*350, 0, 100)

	gaze := gazeOffset(face)
	// Exponential falloff: small gaze deviations keep most of the score,
	// looking away decays it quickly.
	gazeScore := 100 * math.Exp(-6*gaze)

	return clamp(gazeWeight*gazeScore+opennessWeight*opennessScore, 0, 100)
}

// eyeAspectRatio is vertical eyelid span over horizontal eye width from the
// six standard eye landmarks.
func eyeAspectRatio(face []Point, outer, inner, upperA, upperB, lowerA, lowerB int) float64 {
	width := distance2D(face[outer], face[inner])
	if width == 0 {
		return 0
	}
	v1 := distance2D(face[upperA], face[lowerA])
	v2 := distance2D(face[upperB], face[lowerB])
	return (v1 + v2) / (2 * width)
}

// gazeOffset measures how far each iris center sits from the middle of its
// eye-corner span, normalized by eye width. 0 means looking dead ahead.
func gazeOffset(face []Point) float64 {
	left := irisOffset(face, LeftIrisCenter, LeftEyeOuterCorner, LeftEyeInnerCorner)
	right := irisOffset(face, RightIrisCenter, RightEyeOuterCorner, RightEyeInnerCorner)
	return (left + right) / 2
}

func irisOffset(face []Point, iris, outer, inner int) float64 {
	width := distance2D(face[outer], face[inner])
	if width == 0 {
		return 1
	}
	midX := (face[outer].X + face[inner].X) / 2
	midY := (face[outer].Y + face[inner].Y) / 2
	dx := (face[iris].X - midX) / width
	dy := (face[iris].Y - midY) / width
	return math.Hypot(dx, dy)
}

// =====================================================================================================================
// Posture

func postureScore(pose []Point) float64 {
	return clamp(
		shoulderTiltWeight*shoulderAlignmentScore(pose)+
			headCenterWeight*headCenterScore(pose)+
			earAlignWeight*earAlignmentScore(pose)+
			uprightWeight*uprightnessScore(pose)+
			armRelaxWeight*armRelaxationScore(pose),
		0, 100)
}

// shoulderAlignmentScore scores the tilt of the shoulder line; level
// shoulders score full.
func shoulderAlignmentScore(pose []Point) float64 {
	ls, rs := pose[PoseLeftShoulder], pose[PoseRightShoulder]
	width := math.Abs(ls.X - rs.X)
	if width == 0 {
		return shoulderAlignFloor
	}
	tilt := math.Atan(math.Abs(ls.Y-rs.Y)/width) * 180 / math.Pi
	return clamp(100-tilt*2.5, shoulderAlignFloor, 100)
}

// headCenterScore scores the horizontal nose offset from the shoulder
// midpoint.
func headCenterScore(pose []Point) float64 {
	ls, rs := pose[PoseLeftShoulder], pose[PoseRightShoulder]
	width := math.Abs(ls.X - rs.X)
	if width == 0 {
		return headCenterFloor
	}
	midX := (ls.X + rs.X) / 2
	offset := math.Abs(pose[PoseNose].X-midX) / width
	return clamp(100-offset*200, headCenterFloor, 100)
}

// earAlignmentScore scores the shoulder-to-ear horizontal offset, an
// upper-body lean proxy.
func earAlignmentScore(pose []Point) float64 {
	left := math.Abs(pose[PoseLeftEar].X - pose[PoseLeftShoulder].X)
	right := math.Abs(pose[PoseRightEar].X - pose[PoseRightShoulder].X)
	offset := (left + right) / 2
	return clamp(100-offset*400, earAlignFloor, 100)
}

// uprightnessScore uses the shoulder-to-hip vertical span relative to
// shoulder width as a slope ratio; a hunched torso compresses it.
func uprightnessScore(pose []Point) float64 {
	shoulderY := (pose[PoseLeftShoulder].Y + pose[PoseRightShoulder].Y) / 2
	hipY := (pose[PoseLeftHip].Y + pose[PoseRightHip].Y) / 2
	width := math.Abs(pose[PoseLeftShoulder].X - pose[PoseRightShoulder].X)
	if width == 0 {
		return uprightFloor
	}
	ratio := (hipY - shoulderY) / width
	// Seated upright subjects show a torso/shoulder ratio around 1.2+.
	return clamp(ratio*80, uprightFloor, 100)
}

// armRelaxationScore rewards elbows hanging below the shoulder line.
func armRelaxationScore(pose []Point) float64 {
	shoulderY := (pose[PoseLeftShoulder].Y + pose[PoseRightShoulder].Y) / 2
	elbowY := (pose[PoseLeftElbow].Y + pose[PoseRightElbow].Y) / 2
	delta := elbowY - shoulderY
	return clamp(50+delta*400, armRelaxFloor, 100)
}

// =====================================================================================================================
// Stability, hands, gestures

// stabilityScore inverse-scales the mean displacement of the tracked
// upper-body points between consecutive frames.
func (s *Scorer) stabilityScore(pose []Point) float64 {
	if len(s.prevPose) < PoseLandmarkCount {
		return 100
	}
	var total float64
	for _, idx := range stabilityIndices {
		total += distance2D(pose[idx], s.prevPose[idx])
	}
	avg := total / float64(len(stabilityIndices))
	return clamp(100-avg*2000, 0, 100)
}

func handVisibilityScore(pose []Point) float64 {
	visible := 0
	for _, idx := range []int{PoseLeftWrist, PoseRightWrist} {
		p := pose[idx]
		if p.X > 0 && p.X < 1 && p.Y > 0 && p.Y < 1 {
			visible++
		}
	}
	return float64(visible) * 50
}

func gestureVarietyScore(history *ring.Buffer[string]) float64 {
	if history.Len() == 0 {
		return 0
	}
	distinct := map[string]bool{}
	for _, g := range history.Values() {
		distinct[g] = true
	}
	return clamp(float64(len(distinct))*20, 0, 100)
}

// =====================================================================================================================

func distance2D(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
