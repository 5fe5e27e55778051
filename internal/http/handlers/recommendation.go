package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/neurobridge-recommender/internal/http/response"
	apperrors "github.com/yungbote/neurobridge-recommender/internal/pkg/errors"
	"github.com/yungbote/neurobridge-recommender/internal/services"
)

type RecommendationHandler struct {
	recs services.RecommendationService
}

func NewRecommendationHandler(recs services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recs: recs}
}

// GET /api/learners/:id/recommendations?limit=
func (h *RecommendationHandler) GetRecommendations(c *gin.Context) {
	limit, err := intQuery(c, "limit", services.DefaultRecommendationLimit)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}
	recs, err := h.recs.GenerateRecommendations(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"recommendations": recs})
}

type learningPathRequest struct {
	TargetSkillLevel *float64 `json:"target_skill_level"`
	TimeframeWeeks   *int     `json:"timeframe_weeks"`
}

// POST /api/learners/:id/learning-path
func (h *RecommendationHandler) CreateLearningPath(c *gin.Context) {
	var req learningPathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if req.TargetSkillLevel == nil {
		response.RespondAPIError(c, apperrors.Invalid("target_skill_level", "is required"))
		return
	}
	if req.TimeframeWeeks == nil {
		response.RespondAPIError(c, apperrors.Invalid("timeframe_weeks", "is required"))
		return
	}
	path, err := h.recs.GenerateLearningPath(c.Request.Context(), c.Param("id"), *req.TargetSkillLevel, *req.TimeframeWeeks)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"learning_path": path})
}

// GET /api/learners/:id/job-matches?limit=
func (h *RecommendationHandler) GetJobMatches(c *gin.Context) {
	limit, err := intQuery(c, "limit", services.DefaultJobMatchLimit)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}
	matches, err := h.recs.MatchJobs(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"job_matches": matches})
}

// GET /api/learners/:id/forecast?target_skill_level=
func (h *RecommendationHandler) GetForecast(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("target_skill_level"))
	if raw == "" {
		response.RespondAPIError(c, apperrors.Invalid("target_skill_level", "is required"))
		return
	}
	target, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		response.RespondAPIError(c, apperrors.Invalid("target_skill_level", "not a number: %q", raw))
		return
	}
	fc, err := h.recs.ForecastProgress(c.Request.Context(), c.Param("id"), target)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"forecast": fc})
}

func intQuery(c *gin.Context, name string, def int) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.Invalid(name, "not an integer: %q", raw)
	}
	return n, nil
}
