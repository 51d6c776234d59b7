package models

import (
	"fmt"
	"strings"
)

// Feature identifies one of the top-level tools of the assistant.
type Feature string

const (
	FeatureTutor      Feature = "tutor"
	FeatureDocument   Feature = "document"
	FeatureImage      Feature = "image"
	FeatureAudio      Feature = "audio"
	FeatureVideo      Feature = "video"
	FeatureQuiz       Feature = "quiz"
	FeatureConceptMap Feature = "concept_map"
)

// AllFeatures lists features in the order the UI shows them.
var AllFeatures = []Feature{
	FeatureTutor,
	FeatureDocument,
	FeatureImage,
	FeatureAudio,
	FeatureVideo,
	FeatureQuiz,
	FeatureConceptMap,
}

var featureTitles = map[Feature]string{
	FeatureTutor:      "AI Tutor",
	FeatureDocument:   "Document Analysis",
	FeatureImage:      "Visual Analysis",
	FeatureAudio:      "Audio Analysis",
	FeatureVideo:      "Video Analysis",
	FeatureQuiz:       "Quiz Generator",
	FeatureConceptMap: "Concept Map",
}

func (f Feature) Title() string {
	return featureTitles[f]
}

func (f Feature) Valid() bool {
	_, ok := featureTitles[f]
	return ok
}

// ParseFeature accepts the canonical name, with dashes or any letter case.
func ParseFeature(s string) (Feature, error) {
	f := Feature(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	if !f.Valid() {
		return "", fmt.Errorf("unknown feature %q", s)
	}
	return f, nil
}
