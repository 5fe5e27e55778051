package planner

import (
	"reflect"
	"testing"
	"time"

	"github.com/yungbote/neurobridge-recommender/internal/domain/learning"
)

var start = time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

func profileAt(level float64) learning.UserProfile {
	p := &learning.UserProfile{ID: "learner-1", CurrentSkillLevel: level}
	return p.WithDefaults(p.ID)
}

func rec(id string, score float64, days int, gaps []string, prereqs ...string) learning.Recommendation {
	return learning.Recommendation{
		CourseID:                id,
		Title:                   "Course " + id,
		Score:                   score,
		EstimatedCompletionDays: days,
		SkillGapFilled:          gaps,
		Prerequisites:           prereqs,
	}
}

func courseIDs(p learning.LearningPath) []string { return p.Courses }

func TestPlanZeroTimeframe(t *testing.T) {
	recs := []learning.Recommendation{rec("a", 90, 7, []string{"x"})}
	path := New(nil).Plan(profileAt(40), recs, 80, 0, start)
	if len(path.Courses) != 0 || len(path.Milestones) != 0 || path.EstimatedDurationWeeks != 0 {
		t.Fatalf("expected empty path, got %+v", path)
	}
	if path.ID == "" {
		t.Fatalf("empty path still needs an id")
	}
}

func TestPlanRespectsBudget(t *testing.T) {
	recs := []learning.Recommendation{
		rec("b", 80, 30, []string{"x"}),
		rec("a", 90, 14, []string{"x", "y"}),
		rec("c", 70, 7, []string{"z"}),
	}
	path := New(nil).Plan(profileAt(50), recs, 100, 4, start)
	if !reflect.DeepEqual(courseIDs(path), []string{"a", "c"}) {
		t.Fatalf("courses: %v", path.Courses)
	}
	if path.EstimatedDurationWeeks != 3 {
		t.Fatalf("duration: got %d want 3", path.EstimatedDurationWeeks)
	}
	if path.ProjectedSkillLevel != 65 {
		t.Fatalf("projected: got %v want 65", path.ProjectedSkillLevel)
	}
	weeks := []int{path.Milestones[0].Week, path.Milestones[1].Week}
	if !reflect.DeepEqual(weeks, []int{2, 3}) {
		t.Fatalf("milestone weeks: %v", weeks)
	}
	if !path.Milestones[1].TargetDate.Equal(start.AddDate(0, 0, 21)) {
		t.Fatalf("target date: %v", path.Milestones[1].TargetDate)
	}
	if path.Milestones[0].Name != "Complete Course a" {
		t.Fatalf("milestone name: %q", path.Milestones[0].Name)
	}
}

func TestPlanStopsAtTarget(t *testing.T) {
	recs := []learning.Recommendation{
		rec("a", 90, 7, []string{"x", "y"}),
		rec("b", 80, 7, []string{"z"}),
	}
	path := New(nil).Plan(profileAt(50), recs, 55, 10, start)
	if !reflect.DeepEqual(courseIDs(path), []string{"a"}) {
		t.Fatalf("courses: %v", path.Courses)
	}

	path = New(nil).Plan(profileAt(80), recs, 70, 10, start)
	if len(path.Courses) != 0 {
		t.Fatalf("learner already at target should get an empty path: %v", path.Courses)
	}
}

func TestPlanSkipsCompletedAndDuplicates(t *testing.T) {
	p := profileAt(10)
	p.CompletedCourses = []string{"done"}
	recs := []learning.Recommendation{
		rec("done", 99, 7, []string{"x"}),
		rec("a", 90, 7, []string{"x"}),
		rec("a", 90, 7, []string{"x"}),
	}
	path := New(nil).Plan(p, recs, 100, 10, start)
	if !reflect.DeepEqual(courseIDs(path), []string{"a"}) {
		t.Fatalf("courses: %v", path.Courses)
	}
}

func TestPlanOrdersPrerequisitesFirst(t *testing.T) {
	recs := []learning.Recommendation{
		rec("advanced", 95, 7, []string{"x"}, "intro"),
		rec("intro", 60, 7, []string{"y"}),
		rec("other", 70, 7, []string{"z"}, "missing-course"),
	}
	path := New(nil).Plan(profileAt(10), recs, 100, 10, start)
	if !reflect.DeepEqual(courseIDs(path), []string{"other", "intro", "advanced"}) {
		t.Fatalf("courses: %v", path.Courses)
	}
	pos := map[string]int{}
	for i, id := range path.Courses {
		pos[id] = i
	}
	if pos["intro"] > pos["advanced"] {
		t.Fatalf("prerequisite scheduled after dependent: %v", path.Courses)
	}
}

func TestPlanRejectsCycles(t *testing.T) {
	recs := []learning.Recommendation{
		rec("a", 90, 7, []string{"x"}, "b"),
		rec("b", 85, 7, []string{"y"}, "a"),
		rec("c", 80, 7, []string{"z"}),
		rec("d", 75, 7, []string{"w"}, "a"),
		rec("self", 70, 7, []string{"v"}, "self"),
	}
	path := New(nil).Plan(profileAt(10), recs, 100, 20, start)
	if !reflect.DeepEqual(courseIDs(path), []string{"c"}) {
		t.Fatalf("courses: %v", path.Courses)
	}
	if !reflect.DeepEqual(path.Unschedulable, []string{"a", "b", "d", "self"}) {
		t.Fatalf("unschedulable: %v", path.Unschedulable)
	}
	if path.ProjectedSkillLevel != 15 {
		t.Fatalf("projected should only count scheduled courses: %v", path.ProjectedSkillLevel)
	}
}

func TestPlanIsDeterministic(t *testing.T) {
	recs := []learning.Recommendation{
		rec("b", 80, 10, []string{"x"}),
		rec("a", 80, 10, []string{"y"}),
	}
	first := New(nil).Plan(profileAt(20), recs, 90, 6, start)
	second := New(nil).Plan(profileAt(20), []learning.Recommendation{recs[1], recs[0]}, 90, 6, start)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("plans differ:\n%+v\n%+v", first, second)
	}
	if !reflect.DeepEqual(first.Courses, []string{"a", "b"}) {
		t.Fatalf("tie should break by id: %v", first.Courses)
	}
	if first.Milestones[0].ID == first.Milestones[1].ID {
		t.Fatalf("milestone ids must be distinct")
	}
}

func TestPlanBudgetProperty(t *testing.T) {
	var recs []learning.Recommendation
	for i := 0; i < 20; i++ {
		id := string(rune('a' + i))
		recs = append(recs, rec(id, float64(100-i), 3+i%9, []string{"s"}))
	}
	for weeks := 1; weeks <= 8; weeks++ {
		path := New(nil).Plan(profileAt(0), recs, 100, weeks, start)
		total := 0
		for _, r := range recs {
			for _, id := range path.Courses {
				if id == r.CourseID {
					total += r.EstimatedCompletionDays
				}
			}
		}
		if total > weeks*7 {
			t.Fatalf("weeks %d: %d days exceed budget", weeks, total)
		}
	}
}

func TestPlanMilestoneWeeksRoundPerCourse(t *testing.T) {
	recs := []learning.Recommendation{
		rec("a", 90, 3, []string{"x"}),
		rec("b", 80, 3, []string{"y"}),
	}
	path := New(nil).Plan(profileAt(10), recs, 100, 4, start)
	if !reflect.DeepEqual(courseIDs(path), []string{"a", "b"}) {
		t.Fatalf("courses: %v", path.Courses)
	}
	weeks := []int{path.Milestones[0].Week, path.Milestones[1].Week}
	if !reflect.DeepEqual(weeks, []int{1, 2}) {
		t.Fatalf("milestone weeks: %v", weeks)
	}
	if path.EstimatedDurationWeeks != 2 {
		t.Fatalf("duration: got %d want 2", path.EstimatedDurationWeeks)
	}
	if !path.Milestones[1].TargetDate.Equal(start.AddDate(0, 0, 14)) {
		t.Fatalf("target date: %v", path.Milestones[1].TargetDate)
	}
}

func TestPlanRefundsBudgetOfCyclicCourses(t *testing.T) {
	recs := []learning.Recommendation{
		rec("a", 90, 14, []string{"x"}, "b"),
		rec("b", 85, 14, []string{"y"}, "a"),
		rec("c", 80, 7, []string{"z"}),
	}
	path := New(nil).Plan(profileAt(10), recs, 100, 4, start)
	if !reflect.DeepEqual(courseIDs(path), []string{"c"}) {
		t.Fatalf("courses: %v", path.Courses)
	}
	if !reflect.DeepEqual(path.Unschedulable, []string{"a", "b"}) {
		t.Fatalf("unschedulable: %v", path.Unschedulable)
	}
	if path.EstimatedDurationWeeks != 1 || path.ProjectedSkillLevel != 15 {
		t.Fatalf("duration=%d projected=%v", path.EstimatedDurationWeeks, path.ProjectedSkillLevel)
	}
}

func TestPlanBlocksLateDependentsOfCycles(t *testing.T) {
	// d only becomes a candidate once a and b are dropped, and it requires a
	recs := []learning.Recommendation{
		rec("a", 90, 14, []string{"x"}, "b"),
		rec("b", 85, 14, []string{"y"}, "a"),
		rec("d", 80, 7, []string{"w"}, "a"),
		rec("c", 70, 7, []string{"z"}),
	}
	path := New(nil).Plan(profileAt(10), recs, 100, 4, start)
	if !reflect.DeepEqual(courseIDs(path), []string{"c"}) {
		t.Fatalf("courses: %v", path.Courses)
	}
	if !reflect.DeepEqual(path.Unschedulable, []string{"a", "b", "d"}) {
		t.Fatalf("unschedulable: %v", path.Unschedulable)
	}
}
