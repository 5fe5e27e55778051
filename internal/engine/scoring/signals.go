package scoring

import (
	"github.com/yungbote/neurobridge-recommender/internal/domain/learning"
)

const (
	SignalAssessment = "assessment_alignment"
	SignalTopic      = "topic_relevance"
	SignalDifficulty = "difficulty_match"
	SignalCompletion = "completion_rate"
	SignalPeer       = "peer_success"
)

// neutral peer signal when no similar learner took the course
const defaultPeerSuccess = 50.0

// Learner holds the lookups every signal needs, built once per request.
type Learner struct {
	Profile   learning.UserProfile
	preferred learning.KeySet
	skills    learning.KeySet
	scores    map[string]float64
}

func NewLearner(p learning.UserProfile) *Learner {
	scores := make(map[string]float64, len(p.AssessmentScores))
	for topic, s := range p.AssessmentScores {
		if k := learning.NormalizeKey(topic); k != "" {
			scores[k] = s
		}
	}
	return &Learner{
		Profile:   p,
		preferred: learning.NewKeySet(p.PreferredTopics),
		skills:    learning.NewKeySet(p.Skills),
		scores:    scores,
	}
}

// Input is everything a signal may look at for one course.
type Input struct {
	Learner *Learner
	Course  learning.Course
	Peers   []learning.PeerOutcome
}

// Signal scores one aspect of course fit on a 0..100 scale.
type Signal interface {
	Name() string
	Score(in Input) float64
}

// AssessmentAlignment averages the learner's assessment scores over the course topics
// they were assessed on.
type AssessmentAlignment struct{}

func (AssessmentAlignment) Name() string { return SignalAssessment }

func (AssessmentAlignment) Score(in Input) float64 {
	var sum float64
	n := 0
	for _, topic := range learning.Dedupe(in.Course.Topics) {
		if s, ok := in.Learner.scores[learning.NormalizeKey(topic)]; ok {
			sum += s
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// TopicRelevance is the share of course topics the learner prefers.
type TopicRelevance struct{}

func (TopicRelevance) Name() string { return SignalTopic }

func (TopicRelevance) Score(in Input) float64 {
	topics := learning.Dedupe(in.Course.Topics)
	if len(topics) == 0 {
		return 0
	}
	matched := in.Learner.preferred.Intersect(topics)
	return float64(len(matched)) / float64(len(topics)) * 100
}

// DifficultyMatch is 100 inside the course's band and loses 2 points per level outside.
type DifficultyMatch struct{}

func (DifficultyMatch) Name() string { return SignalDifficulty }

func (DifficultyMatch) Score(in Input) float64 {
	d := in.Course.Difficulty.Band().Distance(in.Learner.Profile.CurrentSkillLevel)
	return 100 - 2*d
}

type CompletionRate struct{}

func (CompletionRate) Name() string { return SignalCompletion }

func (CompletionRate) Score(in Input) float64 {
	return in.Course.CompletionRate * 100
}

// PeerSuccess averages progress and scaled rating of similar learners in the course.
type PeerSuccess struct{}

func (PeerSuccess) Name() string { return SignalPeer }

func (PeerSuccess) Score(in Input) float64 {
	if len(in.Peers) == 0 {
		return defaultPeerSuccess
	}
	var sum float64
	for _, o := range in.Peers {
		progress := learning.Clamp(o.Progress, 0, 100)
		rating := learning.Clamp(o.Rating, 0, 5) * 20
		sum += (progress + rating) / 2
	}
	return sum / float64(len(in.Peers))
}

// Weighted pairs a signal with its share of the total score.
type Weighted struct {
	Signal Signal
	Weight float64
}

// Aggregator combines weighted signals into a single 0..100 score.
type Aggregator []Weighted

func NewAggregator(w Weights) Aggregator {
	return Aggregator{
		{Signal: AssessmentAlignment{}, Weight: w.AssessmentAlignment},
		{Signal: TopicRelevance{}, Weight: w.TopicRelevance},
		{Signal: DifficultyMatch{}, Weight: w.DifficultyMatch},
		{Signal: CompletionRate{}, Weight: w.CompletionRate},
		{Signal: PeerSuccess{}, Weight: w.PeerSuccess},
	}
}

// Evaluate returns the clamped weighted total and each signal's clamped value.
func (a Aggregator) Evaluate(in Input) (float64, map[string]float64) {
	parts := make(map[string]float64, len(a))
	var total float64
	for _, w := range a {
		v := learning.Clamp(w.Signal.Score(in), 0, 100)
		parts[w.Signal.Name()] = v
		total += v * w.Weight
	}
	return learning.Clamp(total, 0, 100), parts
}
