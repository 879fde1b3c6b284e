// Package thresholds centralizes the numeric cutoffs shared between the
// per-channel extractors and the fusion engine. Both sides must agree on
// what counts as silence or an absent subject, so these values live in one
// place instead of being repeated per package.
package thresholds

const (
	// SilenceFloorDb is the decibel floor reported for silent buffers.
	SilenceFloorDb = -60.0

	// AudibleVolumeDb is the minimum volume at which pitch detection runs.
	AudibleVolumeDb = -50.0

	// ZeroStateVolumeDb marks the no-audio condition for zero-state checks.
	ZeroStateVolumeDb = -55.0

	// ZeroStateEnergy marks the no-audio energy condition.
	ZeroStateEnergy = 5.0

	// ZeroStateVision marks the no-vision condition for eye contact and
	// posture raw scores.
	ZeroStateVision = 5.0

	// Human voice band accepted by the pitch detector.
	PitchMinHz = 80.0
	PitchMaxHz = 400.0

	// PitchClarityThreshold is the normalized-difference cutoff below which
	// a lag is accepted as periodic.
	PitchClarityThreshold = 0.12

	// NoiseFloorSamples is how many volume readings are collected before the
	// noise floor is calibrated. Until then SNR reports 0.
	NoiseFloorSamples = 20

	// BaseSmoothingAlpha is the exponential smoothing factor at full
	// confidence. The effective alpha scales down with confidence.
	BaseSmoothingAlpha = 0.7

	// Words-per-minute band considered ideal delivery.
	IdealWpmLow  = 120.0
	IdealWpmHigh = 150.0

	// SlowWpm and FastWpm bound the acceptable pace range outside the ideal
	// band; beyond them the pace score degrades steeply.
	SlowWpm = 100.0
	FastWpm = 200.0

	// EmotionConfidenceFloor is the detector confidence under which fusion
	// applies a confidence penalty.
	EmotionConfidenceFloor = 0.3
)
