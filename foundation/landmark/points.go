// Package landmark scores eye contact, posture, movement stability, and
// gesture variety from the normalized landmark coordinates delivered by the
// external face/pose detector.
package landmark

// Point is one normalized detector coordinate. X and Y are in 0..1 relative
// to the frame; Z is the detector's relative depth.
type Point struct {
	X float64
	Y float64
	Z float64
}

// Face mesh indices used by the geometry formulas, named so the formulas
// read as anatomy rather than magic numbers. Values follow the MediaPipe
// 478-point face mesh with iris refinement.
const (
	LeftEyeOuterCorner  = 33
	LeftEyeInnerCorner  = 133
	LeftEyeUpperA       = 160
	LeftEyeUpperB       = 158
	LeftEyeLowerA       = 144
	LeftEyeLowerB       = 153
	RightEyeOuterCorner = 263
	RightEyeInnerCorner = 362
	RightEyeUpperA      = 385
	RightEyeUpperB      = 387
	RightEyeLowerA      = 380
	RightEyeLowerB      = 373
	LeftIrisCenter      = 468
	RightIrisCenter     = 473

	// FaceLandmarkCount is the minimum face slice length the scorer accepts.
	FaceLandmarkCount = 478
)

// Pose landmark indices, following the MediaPipe 33-point body model.
const (
	PoseNose          = 0
	PoseLeftEar       = 7
	PoseRightEar      = 8
	PoseLeftShoulder  = 11
	PoseRightShoulder = 12
	PoseLeftElbow     = 13
	PoseRightElbow    = 14
	PoseLeftWrist     = 15
	PoseRightWrist    = 16
	PoseLeftHip       = 23
	PoseRightHip      = 24

	// PoseLandmarkCount is the minimum pose slice length the scorer accepts.
	PoseLandmarkCount = 33
)

// stabilityIndices are the upper-body points tracked between frames for the
// movement-smoothness score.
var stabilityIndices = []int{
	PoseNose,
	PoseLeftShoulder, PoseRightShoulder,
	PoseLeftElbow, PoseRightElbow,
	PoseLeftWrist, PoseRightWrist,
}
