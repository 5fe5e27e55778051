package learning

import (
	"reflect"
	"testing"
)

func TestPaceTables(t *testing.T) {
	cases := []struct {
		pace       LearningPace
		completion float64
		forecast   float64
		weeks      int
	}{
		{PaceSlow, 1.5, 1.3, 4},
		{PaceModerate, 1.0, 1.0, 3},
		{PaceFast, 0.7, 0.8, 2},
		{LearningPace("sprint"), 1.0, 1.0, 3},
		{LearningPace(" FAST "), 0.7, 0.8, 2},
	}
	for _, tc := range cases {
		if got := tc.pace.CompletionMultiplier(); got != tc.completion {
			t.Fatalf("%q completion: got %v want %v", tc.pace, got, tc.completion)
		}
		if got := tc.pace.ForecastMultiplier(); got != tc.forecast {
			t.Fatalf("%q forecast: got %v want %v", tc.pace, got, tc.forecast)
		}
		if got := tc.pace.WeeksPerSkill(); got != tc.weeks {
			t.Fatalf("%q weeks/skill: got %v want %v", tc.pace, got, tc.weeks)
		}
	}
}

func TestDifficultyBands(t *testing.T) {
	band := DifficultyIntermediate.Band()
	if band != (SkillBand{Min: 25, Max: 60}) {
		t.Fatalf("intermediate band: %+v", band)
	}
	if !band.Contains(60) || !band.Contains(25) {
		t.Fatalf("band must be inclusive")
	}
	if d := band.Distance(65); d != 5 {
		t.Fatalf("distance above: %v", d)
	}
	if d := band.Distance(10); d != 15 {
		t.Fatalf("distance below: %v", d)
	}
	if Difficulty("unknown").Band() != band {
		t.Fatalf("unknown difficulty should use the intermediate band")
	}
	if DifficultyExpert.Band() != (SkillBand{Min: 75, Max: 100}) {
		t.Fatalf("expert band wrong")
	}
}

func TestKeySet(t *testing.T) {
	owned := NewKeySet([]string{"Python", " pandas "})
	taught := []string{"python", "NumPy", "Pandas", "numpy", ""}
	if got := owned.Missing(taught); !reflect.DeepEqual(got, []string{"NumPy"}) {
		t.Fatalf("Missing: %v", got)
	}
	if got := owned.Intersect(taught); !reflect.DeepEqual(got, []string{"python", "Pandas"}) {
		t.Fatalf("Intersect: %v", got)
	}
	if !owned.Has("PYTHON") {
		t.Fatalf("Has should be case-insensitive")
	}
}

func TestProfileDefaults(t *testing.T) {
	p := (*UserProfile)(nil).WithDefaults("u1")
	if p.ID != "u1" || p.CurrentSkillLevel != 50 || p.LearningPace != PaceModerate || p.TimeCommitment != 5 {
		t.Fatalf("unexpected defaults: %+v", p)
	}
	if p.AssessmentScores == nil {
		t.Fatalf("assessment scores should be an empty map")
	}

	in := &UserProfile{
		CurrentSkillLevel: 140,
		TimeCommitment:    -3,
		CompletedCourses:  []string{"c1", "c1", ""},
		AssessmentScores:  map[string]float64{"AI": 130, " ": 20},
	}
	out := in.WithDefaults("u2")
	if out.CurrentSkillLevel != 100 || out.TimeCommitment != 5 {
		t.Fatalf("clamping failed: %+v", out)
	}
	if !reflect.DeepEqual(out.CompletedCourses, []string{"c1"}) {
		t.Fatalf("completed not deduped: %v", out.CompletedCourses)
	}
	if len(out.AssessmentScores) != 1 || out.AssessmentScores["AI"] != 100 {
		t.Fatalf("scores not sanitized: %v", out.AssessmentScores)
	}
	if len(in.CompletedCourses) != 3 {
		t.Fatalf("input profile must not be mutated")
	}
}

func TestCompletionDays(t *testing.T) {
	c := Course{EstimatedHours: 20}
	// 20h * 1.0 / 10h per week * 7 = 14 days
	if got := c.CompletionDays(PaceModerate, 10); got != 14 {
		t.Fatalf("moderate: got %d", got)
	}
	// 20 * 1.5 / 10 * 7 = 21
	if got := c.CompletionDays(PaceSlow, 10); got != 21 {
		t.Fatalf("slow: got %d", got)
	}
	// 20 * 0.7 / 10 * 7 = 9.8 -> 10
	if got := c.CompletionDays(PaceFast, 10); got != 10 {
		t.Fatalf("fast: got %d", got)
	}
}

func TestAchievementLabel(t *testing.T) {
	cases := map[float64]string{
		10: "Foundational Knowledge",
		40: "Competent User",
		59: "Competent User",
		60: "Intermediate Specialist",
		75: "Advanced Practitioner",
		90: "AI Expert — Master Level",
	}
	for level, want := range cases {
		if got := AchievementLabel(level); got != want {
			t.Fatalf("level %v: got %q want %q", level, got, want)
		}
	}
}
