package scoring

import (
	"fmt"
	"strings"

	"github.com/yungbote/neurobridge-recommender/internal/domain/learning"
)

const maxGapSkillsInReason = 3

func buildReasons(in Input, parts map[string]float64, gaps []string) []string {
	var reasons []string
	if matched := in.Learner.preferred.Intersect(in.Course.Topics); len(matched) > 0 {
		reasons = append(reasons, "Matches your interests: "+strings.Join(matched, ", "))
	}
	if len(gaps) > 0 {
		shown := gaps
		if len(shown) > maxGapSkillsInReason {
			shown = shown[:maxGapSkillsInReason]
		}
		reasons = append(reasons, "Fills skill gaps: "+strings.Join(shown, ", "))
	}
	if parts[SignalAssessment] >= 70 {
		assessed := make([]string, 0, len(in.Course.Topics))
		for _, topic := range learning.Dedupe(in.Course.Topics) {
			if _, ok := in.Learner.scores[learning.NormalizeKey(topic)]; ok {
				assessed = append(assessed, topic)
			}
		}
		reasons = append(reasons, "Builds on your assessment strengths in "+strings.Join(assessed, ", "))
	}
	if parts[SignalDifficulty] == 100 {
		reasons = append(reasons, "Matches your current skill level")
	}
	if in.Course.CompletionRate >= 0.8 {
		reasons = append(reasons, fmt.Sprintf("High completion rate (%.0f%%)", learning.Clamp(in.Course.CompletionRate, 0, 1)*100))
	}
	if len(in.Peers) > 0 && parts[SignalPeer] >= 70 {
		reasons = append(reasons, "Learners like you did well in this course")
	}
	if len(reasons) == 0 {
		reasons = append(reasons, "Broadens your learning catalog")
	}
	return reasons
}

func confidence(p learning.UserProfile, score float64) float64 {
	c := 0.5
	if len(p.CompletedCourses) > 5 {
		c += 0.2
	}
	if len(p.AssessmentScores) > 3 {
		c += 0.2
	}
	if score > 80 {
		c += 0.1
	}
	return learning.Round(learning.Clamp(c, 0, 1), 2)
}
