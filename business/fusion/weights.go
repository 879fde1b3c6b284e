package fusion

import (
	"fmt"
	"math"
)

// Context names the practice scenario a session is scored for.
type Context string

const (
	ContextJobSeekers            Context = "job-seekers"
	ContextBusinessProfessionals Context = "business-professionals"
	ContextPublicSpeakers        Context = "public-speakers"
	ContextSalesService          Context = "sales-service"
	ContextRemoteWorkers         Context = "remote-workers"
	ContextStudents              Context = "students"
)

// WeightProfile assigns one non-negative weight per feature; the seven
// weights sum to 1.
type WeightProfile struct {
	Context           Context
	EyeContact        float64
	Posture           float64
	BodyLanguage      float64
	FacialExpression  float64
	VoiceQuality      float64
	SpeechClarity     float64
	ContentEngagement float64
}

var profiles = map[Context]WeightProfile{
	ContextJobSeekers: {
		Context:    ContextJobSeekers,
		EyeContact: 0.25, Posture: 0.15, BodyLanguage: 0.10,
		FacialExpression: 0.10, VoiceQuality: 0.15, SpeechClarity: 0.15,
		ContentEngagement: 0.10,
	},
	ContextBusinessProfessionals: {
		Context:    ContextBusinessProfessionals,
		EyeContact: 0.15, Posture: 0.15, BodyLanguage: 0.15,
		FacialExpression: 0.10, VoiceQuality: 0.15, SpeechClarity: 0.15,
		ContentEngagement: 0.15,
	},
	ContextPublicSpeakers: {
		Context:    ContextPublicSpeakers,
		EyeContact: 0.20, Posture: 0.10, BodyLanguage: 0.15,
		FacialExpression: 0.10, VoiceQuality: 0.20, SpeechClarity: 0.15,
		ContentEngagement: 0.10,
	},
	ContextSalesService: {
		Context:    ContextSalesService,
		EyeContact: 0.15, Posture: 0.10, BodyLanguage: 0.10,
		FacialExpression: 0.20, VoiceQuality: 0.15, SpeechClarity: 0.15,
		ContentEngagement: 0.15,
	},
	ContextRemoteWorkers: {
		Context:    ContextRemoteWorkers,
		EyeContact: 0.25, Posture: 0.05, BodyLanguage: 0.05,
		FacialExpression: 0.15, VoiceQuality: 0.20, SpeechClarity: 0.20,
		ContentEngagement: 0.10,
	},
	ContextStudents: {
		Context:    ContextStudents,
		EyeContact: 0.15, Posture: 0.10, BodyLanguage: 0.10,
		FacialExpression: 0.10, VoiceQuality: 0.15, SpeechClarity: 0.20,
		ContentEngagement: 0.20,
	},
}

// Contexts lists the built-in profile names.
func Contexts() []Context {
	return []Context{
		ContextJobSeekers, ContextBusinessProfessionals, ContextPublicSpeakers,
		ContextSalesService, ContextRemoteWorkers, ContextStudents,
	}
}

// ProfileFor returns the built-in profile for a context.
func ProfileFor(ctx Context) (WeightProfile, error) {
	p, ok := profiles[ctx]
	if !ok {
		return WeightProfile{}, fmt.Errorf("context[%s] does not exist", ctx)
	}
	return p, nil
}

// Validate checks that all weights are non-negative and sum to 1.
func (p WeightProfile) Validate() error {
	weights := []float64{
		p.EyeContact, p.Posture, p.BodyLanguage, p.FacialExpression,
		p.VoiceQuality, p.SpeechClarity, p.ContentEngagement,
	}
	var sum float64
	for _, w := range weights {
		if w < 0 {
			return fmt.Errorf("context[%s] has a negative weight", p.Context)
		}
		sum += w
	}
	if math.Abs(sum-1) > 1e-6 {
		return fmt.Errorf("context[%s] weights sum to %v, want 1", p.Context, sum)
	}
	return nil
}

// apply computes the weighted overall score for a feature set.
func (p WeightProfile) apply(f FeatureSet) float64 {
	return p.EyeContact*f.EyeContact +
		p.Posture*f.Posture +
		p.BodyLanguage*f.BodyLanguage +
		p.FacialExpression*f.FacialExpression +
		p.VoiceQuality*f.VoiceQuality +
		p.SpeechClarity*f.SpeechClarity +
		p.ContentEngagement*f.ContentEngagement
}
