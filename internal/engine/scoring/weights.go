package scoring

import "fmt"

type Weights struct {
	AssessmentAlignment float64 `yaml:"assessment_alignment"`
	TopicRelevance      float64 `yaml:"topic_relevance"`
	DifficultyMatch     float64 `yaml:"difficulty_match"`
	CompletionRate      float64 `yaml:"completion_rate"`
	PeerSuccess         float64 `yaml:"peer_success"`
}

func DefaultWeights() Weights {
	return Weights{
		AssessmentAlignment: 0.30,
		TopicRelevance:      0.20,
		DifficultyMatch:     0.15,
		CompletionRate:      0.25,
		PeerSuccess:         0.10,
	}
}

func (w Weights) Validate() error {
	all := map[string]float64{
		SignalAssessment: w.AssessmentAlignment,
		SignalTopic:      w.TopicRelevance,
		SignalDifficulty: w.DifficultyMatch,
		SignalCompletion: w.CompletionRate,
		SignalPeer:       w.PeerSuccess,
	}
	var sum float64
	for name, v := range all {
		if v < 0 {
			return fmt.Errorf("scoring weight %s is negative (%v)", name, v)
		}
		sum += v
	}
	if sum <= 0 {
		return fmt.Errorf("scoring weights sum to zero")
	}
	return nil
}
