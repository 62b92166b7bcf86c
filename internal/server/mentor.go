package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"GeminiMentor/internal/geminiservice"
	"GeminiMentor/internal/metrics"
	"GeminiMentor/internal/utility"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

/* =================================================================================
							DTOs (Data Transfer Objects)
=================================================================================*/

// SkillRequest is the payload of POST /api/skill-recommendations.
// Profile stays loosely typed so presence can be checked per key.
type SkillRequest struct {
	Profile  map[string]any `json:"profile"`
	Language string         `json:"language,omitempty"`
}

// SkillResponse carries the single-paragraph recommendation.
type SkillResponse struct {
	Summary string `json:"summary"`
}

// NutritionRequest is the payload of POST /api/nutrition_ai.
type NutritionRequest struct {
	Question string `json:"question"`
	Language string `json:"language,omitempty"`
}

// NutritionResponse carries the nutrition advice.
type NutritionResponse struct {
	Answer string `json:"answer"`
}

var requiredProfileFields = []string{"education", "occupation", "goal"}

// skillProfile returns the validated profile, or false when a required key
// is absent or null.
func (r SkillRequest) skillProfile() (geminiservice.SkillProfile, bool) {
	values := make(map[string]string, len(requiredProfileFields))
	for _, key := range requiredProfileFields {
		v, ok := r.Profile[key]
		if !ok || v == nil {
			return geminiservice.SkillProfile{}, false
		}
		values[key] = profileValue(v)
	}

	return geminiservice.SkillProfile{
		Education:  values["education"],
		Occupation: values["occupation"],
		Goal:       values["goal"],
	}, true
}

// profileValue renders a profile value for the prompt. Non-strings keep their
// JSON form.
func profileValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

/*=================================================================================
									HANDLERS
=================================================================================*/

// skillRecommendationsHandler orchestrates: Validation -> Prompt -> Model -> Extraction -> Response.
// Every model-side failure ends in the canned summary, never in an error status.
func (s *Server) skillRecommendationsHandler(c echo.Context) error {
	logger := utility.LoggerFromContext(c)
	logger.Debug().Msg("Received request for /api/skill-recommendations")

	// 1. Parse the request body
	var req SkillRequest
	if err := decodeJSONBody(c, &req); err != nil {
		if errors.Is(err, errInvalidJSON) {
			logger.Warn().Msg("No valid JSON data received")
			return c.JSON(http.StatusBadRequest, map[string]string{"error": msgInvalidJSON})
		}
		return err
	}

	// 2. Validate the profile
	profile, ok := req.skillProfile()
	if !ok {
		logger.Warn().Msg("Missing required profile fields")
		return c.JSON(http.StatusBadRequest, map[string]string{"error": msgMissingProfile})
	}

	// 3. Build prompt and call the model
	prompt := geminiservice.BuildSkillPrompt(profile, req.Language)
	summary := s.generateText(c.Request().Context(), logger, prompt, geminiservice.SkillGeneration)

	// 4. Fall back when nothing usable came back
	if summary == "" {
		logger.Warn().Msg("Using fallback skill summary")
		metrics.AnswersTotal.WithLabelValues("skill_recommendations", metrics.SourceFallback).Inc()
		return c.JSON(http.StatusOK, SkillResponse{Summary: geminiservice.SkillFallbackSummary})
	}

	metrics.AnswersTotal.WithLabelValues("skill_recommendations", metrics.SourceModel).Inc()
	return c.JSON(http.StatusOK, SkillResponse{Summary: summary})
}

// nutritionHandler answers a free-form nutrition question.
func (s *Server) nutritionHandler(c echo.Context) error {
	logger := utility.LoggerFromContext(c)
	logger.Debug().Msg("Received request for /api/nutrition_ai")

	var req NutritionRequest
	if err := decodeJSONBody(c, &req); err != nil {
		if errors.Is(err, errInvalidJSON) {
			logger.Warn().Msg("No valid JSON data received")
			return c.JSON(http.StatusBadRequest, map[string]string{"error": msgInvalidJSON})
		}
		return err
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		logger.Warn().Msg("Question is required")
		return c.JSON(http.StatusBadRequest, map[string]string{"error": msgQuestionRequired})
	}

	prompt := geminiservice.BuildNutritionPrompt(question, req.Language)
	answer := s.generateText(c.Request().Context(), logger, prompt, geminiservice.NutritionGeneration)

	if answer == "" {
		logger.Warn().Msg("Using fallback nutrition answer")
		metrics.AnswersTotal.WithLabelValues("nutrition_ai", metrics.SourceFallback).Inc()
		return c.JSON(http.StatusOK, NutritionResponse{Answer: geminiservice.NutritionFallbackAnswer})
	}

	metrics.AnswersTotal.WithLabelValues("nutrition_ai", metrics.SourceModel).Inc()
	return c.JSON(http.StatusOK, NutritionResponse{Answer: answer})
}

// generateText runs prompt through the model and extracts its text. An empty
// result means the caller should fall back.
func (s *Server) generateText(ctx context.Context, logger *zerolog.Logger, prompt string, opts geminiservice.GenerationOptions) string {
	resp, ok := s.gemini.Generate(ctx, logger, prompt, opts)
	if !ok {
		return ""
	}
	return geminiservice.ExtractText(logger, resp)
}
