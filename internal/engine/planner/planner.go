package planner

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/neurobridge-recommender/internal/domain/learning"
	"github.com/yungbote/neurobridge-recommender/internal/engine/scoring"
	"github.com/yungbote/neurobridge-recommender/internal/platform/logger"
)

// SkillGainPerGap is the projected level gained for each skill gap a course fills.
const SkillGainPerGap = 5.0

var pathNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://neurobridge.app/learning-paths"))

type Planner struct {
	log *logger.Logger
}

func New(baseLog *logger.Logger) *Planner {
	if baseLog == nil {
		baseLog = logger.NewNop()
	}
	return &Planner{log: baseLog.With("service", "PathPlanner")}
}

type selected struct {
	rec  learning.Recommendation
	days int
}

// Plan greedily picks the best recommendations that fit in timeframeWeeks until the
// projected level reaches target, then orders them so prerequisites come first.
// Milestone weeks accumulate each course's duration rounded up to whole weeks.
func (p *Planner) Plan(profile learning.UserProfile, recs []learning.Recommendation, target float64, timeframeWeeks int, start time.Time) learning.LearningPath {
	path := learning.LearningPath{
		Name:                pathName(target, timeframeWeeks),
		Courses:             []string{},
		TargetSkillLevel:    target,
		ProjectedSkillLevel: profile.CurrentSkillLevel,
		Milestones:          []learning.Milestone{},
	}
	if timeframeWeeks <= 0 {
		path.ID = pathID(profile.ID, target, timeframeWeeks, nil)
		return path
	}

	// Courses on or behind a prerequisite cycle are excluded and the greedy pass reruns,
	// so their days and skill gain go back to the remaining candidates.
	blocked := map[string]struct{}{}
	var ordered []selected
	for {
		picked := p.pick(profile, recs, target, timeframeWeeks*7, blocked)
		var cyclic []selected
		ordered, cyclic = order(picked)
		if len(cyclic) == 0 {
			break
		}
		for _, s := range cyclic {
			blocked[s.rec.CourseID] = struct{}{}
			path.Unschedulable = append(path.Unschedulable, s.rec.CourseID)
		}
		path.Unschedulable = append(path.Unschedulable, blockDependents(profile, recs, blocked)...)
	}

	projected := profile.CurrentSkillLevel
	for _, s := range ordered {
		projected += float64(len(s.rec.SkillGapFilled)) * SkillGainPerGap
	}
	path.ProjectedSkillLevel = learning.Clamp(projected, 0, 100)

	for _, s := range ordered {
		path.Courses = append(path.Courses, s.rec.CourseID)
	}
	path.ID = pathID(profile.ID, target, timeframeWeeks, path.Courses)

	// each course occupies whole weeks after the previous milestone
	week := 0
	for _, s := range ordered {
		week += learning.CeilWeeks(s.days)
		path.Milestones = append(path.Milestones, learning.Milestone{
			ID:             uuid.NewSHA1(uuid.MustParse(path.ID), []byte(s.rec.CourseID)).String(),
			Name:           milestoneName(s.rec),
			CourseID:       s.rec.CourseID,
			Week:           week,
			TargetDate:     start.AddDate(0, 0, week*7),
			SkillsAcquired: append([]string{}, s.rec.SkillGapFilled...),
		})
	}
	path.EstimatedDurationWeeks = week

	if len(path.Unschedulable) > 0 {
		p.log.Warn("prerequisite cycle in learning path",
			"user_id", profile.ID,
			"unschedulable", path.Unschedulable,
		)
	}
	return path
}

// blockDependents adds every candidate that transitively requires a blocked course to
// blocked and returns the newly blocked ids in candidate order.
func blockDependents(profile learning.UserProfile, recs []learning.Recommendation, blocked map[string]struct{}) []string {
	candidates := append([]learning.Recommendation(nil), recs...)
	scoring.SortRecommendations(candidates)

	var added []string
	for changed := true; changed; {
		changed = false
		for _, rec := range candidates {
			if _, ok := blocked[rec.CourseID]; ok || rec.CourseID == "" || profile.HasCompleted(rec.CourseID) {
				continue
			}
			for _, pre := range rec.Prerequisites {
				if _, ok := blocked[pre]; ok {
					blocked[rec.CourseID] = struct{}{}
					added = append(added, rec.CourseID)
					changed = true
					break
				}
			}
		}
	}
	return added
}

func (p *Planner) pick(profile learning.UserProfile, recs []learning.Recommendation, target float64, budgetDays int, blocked map[string]struct{}) []selected {
	candidates := append([]learning.Recommendation(nil), recs...)
	scoring.SortRecommendations(candidates)

	seen := make(map[string]struct{}, len(candidates))
	projected := profile.CurrentSkillLevel
	used := 0
	var out []selected
	for _, rec := range candidates {
		if projected >= target {
			break
		}
		if rec.CourseID == "" || profile.HasCompleted(rec.CourseID) {
			continue
		}
		if _, dup := seen[rec.CourseID]; dup {
			continue
		}
		if _, skip := blocked[rec.CourseID]; skip {
			continue
		}
		seen[rec.CourseID] = struct{}{}
		days := rec.EstimatedCompletionDays
		if days < 1 {
			days = 1
		}
		if used+days > budgetDays {
			continue
		}
		used += days
		projected += float64(len(rec.SkillGapFilled)) * SkillGainPerGap
		out = append(out, selected{rec: rec, days: days})
	}
	return out
}

// order is Kahn's algorithm over prerequisite edges between picked courses. Ready
// courses are released in pick order. Whatever never becomes ready sits on or behind a
// cycle and is returned separately.
func order(picked []selected) ([]selected, []selected) {
	index := make(map[string]int, len(picked))
	for i, s := range picked {
		index[s.rec.CourseID] = i
	}
	indegree := make([]int, len(picked))
	dependents := make([][]int, len(picked))
	for i, s := range picked {
		seen := map[int]struct{}{}
		for _, pre := range s.rec.Prerequisites {
			// a course listing itself never becomes ready
			j, ok := index[pre]
			if !ok {
				continue
			}
			if _, dup := seen[j]; dup {
				continue
			}
			seen[j] = struct{}{}
			indegree[i]++
			dependents[j] = append(dependents[j], i)
		}
	}

	done := make([]bool, len(picked))
	ordered := make([]selected, 0, len(picked))
	for {
		next := -1
		for i := range picked {
			if !done[i] && indegree[i] == 0 {
				next = i
				break
			}
		}
		if next < 0 {
			break
		}
		done[next] = true
		ordered = append(ordered, picked[next])
		for _, d := range dependents[next] {
			indegree[d]--
		}
	}

	var cyclic []selected
	for i, s := range picked {
		if !done[i] {
			cyclic = append(cyclic, s)
		}
	}
	return ordered, cyclic
}

func pathID(userID string, target float64, weeks int, courses []string) string {
	key := fmt.Sprintf("%s|%g|%d|%s", userID, target, weeks, strings.Join(courses, ","))
	return uuid.NewSHA1(pathNamespace, []byte(key)).String()
}

func pathName(target float64, weeks int) string {
	return fmt.Sprintf("Reach skill level %.0f in %d weeks", target, weeks)
}

func milestoneName(rec learning.Recommendation) string {
	title := strings.TrimSpace(rec.Title)
	if title == "" {
		title = rec.CourseID
	}
	return "Complete " + title
}
