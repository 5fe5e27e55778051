package jobmatch

import (
	"math"
	"sort"

	"github.com/yungbote/neurobridge-recommender/internal/domain/learning"
	"github.com/yungbote/neurobridge-recommender/internal/platform/logger"
)

type Matcher struct {
	log *logger.Logger
}

func New(baseLog *logger.Logger) *Matcher {
	if baseLog == nil {
		baseLog = logger.NewNop()
	}
	return &Matcher{log: baseLog.With("service", "JobMatcher")}
}

// Match rates each active listing by the share of its required skills the learner
// already has. A listing with no required skills scores 0.
func (m *Matcher) Match(profile learning.UserProfile, userSkills []string, jobs []learning.JobListing, limit int) []learning.JobMatch {
	if limit <= 0 {
		return []learning.JobMatch{}
	}
	owned := learning.NewKeySet(userSkills, profile.Skills)
	weeksPerSkill := profile.LearningPace.WeeksPerSkill()

	out := make([]learning.JobMatch, 0, len(jobs))
	seen := make(map[string]struct{}, len(jobs))
	for _, job := range jobs {
		if !job.Active || job.ID == "" {
			continue
		}
		if _, dup := seen[job.ID]; dup {
			continue
		}
		seen[job.ID] = struct{}{}

		required := learning.Dedupe(job.RequiredSkills)
		gaps := owned.Missing(required)
		out = append(out, learning.JobMatch{
			ID:                          job.ID,
			Title:                       job.Title,
			Company:                     job.Company,
			RequiredSkills:              required,
			MatchScore:                  matchScore(len(required)-len(gaps), len(required)),
			SkillGaps:                   gaps,
			EstimatedTimeToQualifyWeeks: len(gaps) * weeksPerSkill,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].MatchScore != out[j].MatchScore {
			return out[i].MatchScore > out[j].MatchScore
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	m.log.Debug("matched jobs", "user_id", profile.ID, "listings", len(jobs), "returned", len(out))
	return out
}

func matchScore(matched, required int) int {
	if required == 0 {
		return 0
	}
	return int(math.Round(float64(matched) / float64(required) * 100))
}
