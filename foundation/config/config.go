package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// GetProfile loads the profile configuration file and returns the profile
// with the given id.
func GetProfile(configPath string, profileID string) (Profile, error) {
	file, err := os.Open(configPath)
	if err != nil {
		return Profile{}, err
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Profile{}, err
	}

	var config Config

	if err := json.Unmarshal(bytes, &config); err != nil {
		return Profile{}, err
	}
	profile, exists := profileExists(config.Profiles, profileID)
	if !exists {
		return Profile{}, fmt.Errorf("profile[%s] does not exist", profileID)
	}

	return profile, nil
}

// Sum returns the total of the seven weights; callers validate it against 1.
func (w Weights) Sum() float64 {
	return w.EyeContact + w.Posture + w.BodyLanguage + w.FacialExpression +
		w.VoiceQuality + w.SpeechClarity + w.ContentEngagement
}

func profileExists(profiles []Profile, profileID string) (Profile, bool) {
	for _, p := range profiles {
		if p.ID == profileID {
			return p, true
		}
	}
	return Profile{}, false
}
