package learning

const (
	DefaultSkillLevel     = 50.0
	DefaultTimeCommitment = 5.0
)

// UserProfile is a per-request snapshot of one learner. The engine never mutates it.
type UserProfile struct {
	ID                string             `json:"id"`
	CurrentSkillLevel float64            `json:"current_skill_level"`
	LearningGoals     []string           `json:"learning_goals"`
	CompletedCourses  []string           `json:"completed_courses"`
	AssessmentScores  map[string]float64 `json:"assessment_scores"`
	LearningPace      LearningPace       `json:"learning_pace"`
	PreferredTopics   []string           `json:"preferred_topics"`
	// TimeCommitment is hours per week.
	TimeCommitment float64 `json:"time_commitment"`
	// Skills already acquired by the learner.
	Skills []string `json:"skills"`
}

// WithDefaults returns a copy with missing or out-of-range fields replaced by the
// documented defaults. A nil receiver yields the default profile for id.
func (p *UserProfile) WithDefaults(id string) UserProfile {
	var out UserProfile
	if p != nil {
		out = *p
	}
	if out.ID == "" {
		out.ID = id
	}
	if p == nil {
		out.CurrentSkillLevel = DefaultSkillLevel
	}
	out.CurrentSkillLevel = Clamp(out.CurrentSkillLevel, 0, 100)
	out.LearningPace = ParsePace(string(out.LearningPace))
	if out.TimeCommitment <= 0 {
		out.TimeCommitment = DefaultTimeCommitment
	}
	out.LearningGoals = Dedupe(out.LearningGoals)
	out.PreferredTopics = Dedupe(out.PreferredTopics)
	out.CompletedCourses = dedupeIDs(out.CompletedCourses)
	out.Skills = Dedupe(out.Skills)
	scores := make(map[string]float64, len(out.AssessmentScores))
	for topic, score := range out.AssessmentScores {
		if NormalizeKey(topic) == "" {
			continue
		}
		scores[topic] = Clamp(score, 0, 100)
	}
	out.AssessmentScores = scores
	return out
}

// HasCompleted reports whether courseID is in the learner's completed set.
func (p UserProfile) HasCompleted(courseID string) bool {
	for _, id := range p.CompletedCourses {
		if id == courseID {
			return true
		}
	}
	return false
}

func dedupeIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
