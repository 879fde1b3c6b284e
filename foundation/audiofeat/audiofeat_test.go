package audiofeat_test

import (
	"math"
	"testing"

	"github.com/persona-ai/goPersonaCoach/foundation/audiofeat"
)

const sampleRate = 44100

func sine(freq, amp float64, n int) []float64 {
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = amp * math.Sin(2*math.Pi*freq*float64(i)/sampleRate)
	}
	return samples
}

func TestDetectPitch(t *testing.T) {
	e := audiofeat.NewExtractor(sampleRate)

	t.Run("250hz tone", func(t *testing.T) {
		got := e.DetectPitch(sine(250, 0.3, 4096))
		if math.Abs(got-250) > 3 {
			t.Fatalf("pitch = %.2f Hz, want 250 +/- 3", got)
		}
	})

	t.Run("110hz tone", func(t *testing.T) {
		got := e.DetectPitch(sine(110, 0.3, 4096))
		if math.Abs(got-110) > 3 {
			t.Fatalf("pitch = %.2f Hz, want 110 +/- 3", got)
		}
	})

	t.Run("600hz tone is out of band", func(t *testing.T) {
		if got := e.DetectPitch(sine(600, 0.3, 4096)); got != 0 {
			t.Fatalf("pitch = %.2f Hz, want 0 for out-of-band tone", got)
		}
	})

	t.Run("50hz tone is out of band", func(t *testing.T) {
		if got := e.DetectPitch(sine(50, 0.3, 4096)); got != 0 {
			t.Fatalf("pitch = %.2f Hz, want 0 for out-of-band tone", got)
		}
	})

	t.Run("silence has no pitch", func(t *testing.T) {
		if got := e.DetectPitch(make([]float64, 4096)); got != 0 {
			t.Fatalf("pitch = %.2f Hz, want 0 for silence", got)
		}
	})
}

func TestExtractSilence(t *testing.T) {
	e := audiofeat.NewExtractor(sampleRate)

	f := e.Extract(nil)
	if f.PitchHz != 0 || f.Clarity != 0 || f.Energy != 0 {
		t.Fatalf("empty buffer should yield zero features, got %+v", f)
	}

	f = e.Extract(make([]float64, 2048))
	if f.VolumeDb != -60 {
		t.Fatalf("silent volume = %.1f dB, want -60", f.VolumeDb)
	}
	if f.PitchHz != 0 {
		t.Fatalf("silent pitch = %.1f, want 0", f.PitchHz)
	}
}

func TestClarityRequiresCalibration(t *testing.T) {
	e := audiofeat.NewExtractor(sampleRate)
	tone := sine(200, 0.3, 2048)

	// Before the noise floor settles, clarity and pitch stay at 0.
	f := e.Extract(tone)
	if f.Clarity != 0 {
		t.Fatalf("clarity = %.1f before calibration, want 0", f.Clarity)
	}
	if f.PitchHz != 0 {
		t.Fatalf("pitch = %.1f before calibration, want 0", f.PitchHz)
	}

	// Calibrate on quiet buffers, then a loud tone should clear 0.
	quiet := sine(200, 0.001, 2048)
	for i := 0; i < 25; i++ {
		e.Extract(quiet)
	}
	f = e.Extract(tone)
	if f.Clarity <= 0 {
		t.Fatalf("clarity = %.1f after calibration, want > 0", f.Clarity)
	}
	if f.Clarity > 100 {
		t.Fatalf("clarity = %.1f out of range", f.Clarity)
	}
}

func TestFeatureRanges(t *testing.T) {
	e := audiofeat.NewExtractor(sampleRate)

	buffers := [][]float64{
		sine(120, 0.5, 2048),
		sine(300, 0.05, 2048),
		make([]float64, 2048),
		sine(250, 1.0, 2048),
	}

	for i := 0; i < 30; i++ {
		f := e.Extract(buffers[i%len(buffers)])

		if f.PitchVariation < 0 || f.PitchVariation > 100 {
			t.Fatalf("pitch variation %.1f out of range", f.PitchVariation)
		}
		if f.VolumeVariation < 0 || f.VolumeVariation > 100 {
			t.Fatalf("volume variation %.1f out of range", f.VolumeVariation)
		}
		if f.Clarity < 0 || f.Clarity > 100 {
			t.Fatalf("clarity %.1f out of range", f.Clarity)
		}
		if f.VolumeDb > 0 || f.VolumeDb < -60 {
			t.Fatalf("volume %.1f dB out of range", f.VolumeDb)
		}
		if f.Energy < 0 {
			t.Fatalf("energy %.1f negative", f.Energy)
		}
	}
}

func TestReset(t *testing.T) {
	e := audiofeat.NewExtractor(sampleRate)
	tone := sine(150, 0.2, 2048)
	for i := 0; i < 25; i++ {
		e.Extract(tone)
	}

	e.Reset()

	// Post-reset the noise floor is gone, so clarity is back to 0.
	if f := e.Extract(tone); f.Clarity != 0 {
		t.Fatalf("clarity = %.1f after reset, want 0", f.Clarity)
	}
}
