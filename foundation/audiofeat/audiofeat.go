// Package audiofeat extracts per-cycle voice features from a raw PCM sample
// window: volume, signal-to-noise ratio, fundamental frequency, zero-crossing
// rate, spectral centroid, and the variation statistics derived from their
// bounded histories.
package audiofeat

import (
	"math"
	"sort"

	"github.com/persona-ai/goPersonaCoach/foundation/ring"
	"github.com/persona-ai/goPersonaCoach/foundation/thresholds"
)

// Features is the extractor output for one sample window. A silent or
// uncalibrated window yields the zero value, never an error.
type Features struct {
	PitchHz         float64
	PitchVariation  float64
	VolumeDb        float64
	VolumeVariation float64
	Clarity         float64
	Energy          float64
}

const (
	pitchHistorySize  = 30
	volumeHistorySize = 30

	// Clarity sub-score weights: SNR dominates, zero-crossing rate and
	// spectral shape refine it.
	snrWeight      = 0.6
	zcrWeight      = 0.2
	centroidWeight = 0.1
	energyWeight   = 0.1
)

// Extractor owns the noise-floor calibration and the pitch/volume histories
// for one session. Not safe for concurrent use; each session owns one.
type Extractor struct {
	sampleRate int

	noiseSamples []float64
	noiseFloorDb float64
	calibrated   bool

	pitchHistory  *ring.Buffer[float64]
	volumeHistory *ring.Buffer[float64]
}

// NewExtractor returns an extractor for the given sample rate.
func NewExtractor(sampleRate int) *Extractor {
	return &Extractor{
		sampleRate:    sampleRate,
		pitchHistory:  ring.New[float64](pitchHistorySize),
		volumeHistory: ring.New[float64](volumeHistorySize),
	}
}

// Extract computes the features for one sample window. Empty or silent
// buffers degrade to zero features.
func (e *Extractor) Extract(samples []float64) Features {
	if len(samples) == 0 {
		return Features{VolumeDb: thresholds.SilenceFloorDb}
	}

	rms := rootMeanSquare(samples)
	volumeDb := toDecibels(rms)
	energy := rms * 1000

	// Stored as dB above the silence floor so the variation statistic works
	// on positive magnitudes.
	e.volumeHistory.Push(volumeDb - thresholds.SilenceFloorDb)

	// Noise floor: median of the first readings after startup. Until it
	// settles, SNR (and therefore clarity) stays at 0.
	if !e.calibrated {
		e.noiseSamples = append(e.noiseSamples, volumeDb)
		if len(e.noiseSamples) >= thresholds.NoiseFloorSamples {
			e.noiseFloorDb = median(e.noiseSamples)
			e.calibrated = true
			e.noiseSamples = nil
		}
	}

	f := Features{
		VolumeDb:        volumeDb,
		VolumeVariation: variationScore(e.volumeHistory),
		Energy:          energy,
	}

	if volumeDb < thresholds.AudibleVolumeDb {
		return f
	}

	// Pitch and clarity wait for the noise floor; early windows produce
	// volume and energy only.
	if e.calibrated {
		snrDb := volumeDb - e.noiseFloorDb
		f.Clarity = e.clarityScore(samples, snrDb, energy)

		pitch := e.DetectPitch(samples)
		f.PitchHz = pitch
		if pitch > 0 {
			e.pitchHistory.Push(pitch)
		}
	}
	f.PitchVariation = variationScore(e.pitchHistory)

	return f
}

// Reset clears calibration and histories at session teardown.
func (e *Extractor) Reset() {
	e.noiseSamples = nil
	e.noiseFloorDb = 0
	e.calibrated = false
	e.pitchHistory.Reset()
	e.volumeHistory.Reset()
}

// =====================================================================================================================
// Pitch detection

// DetectPitch estimates the fundamental frequency with a normalized-difference
// lag search over the human voice band, refined by parabolic interpolation.
// Returns 0 when no periodicity inside the band is found.
func (e *Extractor) DetectPitch(samples []float64) float64 {
	minLag := int(float64(e.sampleRate) / thresholds.PitchMaxHz)
	maxLag := int(float64(e.sampleRate) / thresholds.PitchMinHz)
	if maxLag >= len(samples) {
		maxLag = len(samples) - 1
	}
	if minLag < 2 || maxLag <= minLag {
		return 0
	}

	diff := make([]float64, maxLag+1)
	for lag := minLag; lag <= maxLag; lag++ {
		diff[lag] = normalizedDifference(samples, lag)
	}

	// First lag under the clarity threshold wins; walk forward to the local
	// minimum so the interpolation sits on the dip.
	best := -1
	for lag := minLag; lag <= maxLag; lag++ {
		if diff[lag] < thresholds.PitchClarityThreshold {
			best = lag
			for best+1 <= maxLag && diff[best+1] < diff[best] {
				best++
			}
			break
		}
	}
	if best < 0 {
		return 0
	}

	// Octave guard: when half the winning lag is just as periodic, the true
	// fundamental is an octave up. If that octave falls above the voice band
	// the tone is rejected rather than folded into the band.
	if half := best / 2; half >= 2 && normalizedDifference(samples, half) < thresholds.PitchClarityThreshold {
		if float64(e.sampleRate)/float64(half) > thresholds.PitchMaxHz {
			return 0
		}
	}

	refined := float64(best)
	if best > minLag && best < maxLag {
		refined = parabolicMinimum(float64(best), diff[best-1], diff[best], diff[best+1])
	}
	if refined <= 0 {
		return 0
	}

	freq := float64(e.sampleRate) / refined
	if freq < thresholds.PitchMinHz || freq > thresholds.PitchMaxHz {
		return 0
	}
	return freq
}

// normalizedDifference is the YIN-style squared-difference function scaled by
// local signal energy, 0 for a perfectly periodic lag.
func normalizedDifference(samples []float64, lag int) float64 {
	var num, denom float64
	for i := 0; i+lag < len(samples); i++ {
		d := samples[i] - samples[i+lag]
		num += d * d
		denom += samples[i]*samples[i] + samples[i+lag]*samples[i+lag]
	}
	if denom == 0 {
		return 1
	}
	return 2 * num / denom
}

// parabolicMinimum fits a parabola through three neighboring difference
// values and returns the interpolated lag of its vertex.
func parabolicMinimum(lag, left, mid, right float64) float64 {
	denom := left - 2*mid + right
	if denom == 0 {
		return lag
	}
	return lag + 0.5*(left-right)/denom
}

// =====================================================================================================================
// Sub-scores

func (e *Extractor) clarityScore(samples []float64, snrDb, energy float64) float64 {
	snrScore := clamp(snrDb*4, 0, 100)

	// Voiced speech sits at a low zero-crossing rate; noise pushes it up.
	zcr := zeroCrossingRate(samples)
	zcrScore := clamp(100-zcr*400, 0, 100)

	// Speech centroids cluster in the low-mid band; score distance from it.
	centroid := e.spectralCentroid(samples)
	centroidScore := 0.0
	if centroid > 0 {
		centroidScore = clamp(100-math.Abs(centroid-1500)/30, 0, 100)
	}

	energyScore := clamp(energy/2, 0, 100)

	return clamp(snrWeight*snrScore+zcrWeight*zcrScore+
		centroidWeight*centroidScore+energyWeight*energyScore, 0, 100)
}

func zeroCrossingRate(samples []float64) float64 {
	if len(samples) < 2 {
		return 0
	}
	crossings := 0
	for i := 1; i < len(samples); i++ {
		if (samples[i-1] >= 0) != (samples[i] >= 0) {
			crossings++
		}
	}
	return float64(crossings) / float64(len(samples)-1)
}

// spectralCentroid approximates the spectral center of mass from short-frame
// magnitudes of a coarse DFT over speech-relevant bins.
func (e *Extractor) spectralCentroid(samples []float64) float64 {
	const bins = 64
	n := len(samples)
	if n == 0 {
		return 0
	}
	maxFreq := float64(e.sampleRate) / 2
	if maxFreq > 4000 {
		maxFreq = 4000
	}

	var weighted, total float64
	for b := 1; b <= bins; b++ {
		freq := maxFreq * float64(b) / float64(bins)
		omega := 2 * math.Pi * freq / float64(e.sampleRate)
		var re, im float64
		for i, s := range samples {
			re += s * math.Cos(omega*float64(i))
			im -= s * math.Sin(omega*float64(i))
		}
		mag := math.Hypot(re, im) / float64(n)
		weighted += freq * mag
		total += mag
	}
	if total == 0 {
		return 0
	}
	return weighted / total
}

// variationScore maps a history's coefficient of variation onto 0..100.
func variationScore(history *ring.Buffer[float64]) float64 {
	if history.Len() < 3 {
		return 0
	}
	return clamp(ring.CoefficientOfVariation(history)*500, 0, 100)
}

// =====================================================================================================================

func rootMeanSquare(samples []float64) float64 {
	var sum float64
	for _, s := range samples {
		sum += s * s
	}
	return math.Sqrt(sum / float64(len(samples)))
}

func toDecibels(rms float64) float64 {
	if rms <= 0 {
		return thresholds.SilenceFloorDb
	}
	db := 20 * math.Log10(rms)
	if db < thresholds.SilenceFloorDb {
		return thresholds.SilenceFloorDb
	}
	if db > 0 {
		return 0
	}
	return db
}

func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
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
