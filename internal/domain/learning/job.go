package learning

type JobListing struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Company        string   `json:"company"`
	RequiredSkills []string `json:"required_skills"`
	Active         bool     `json:"active"`
}

type JobMatch struct {
	ID                          string   `json:"id"`
	Title                       string   `json:"title"`
	Company                     string   `json:"company"`
	RequiredSkills              []string `json:"required_skills"`
	MatchScore                  int      `json:"match_score"`
	SkillGaps                   []string `json:"skill_gaps"`
	EstimatedTimeToQualifyWeeks int      `json:"estimated_time_to_qualify_weeks"`
}
