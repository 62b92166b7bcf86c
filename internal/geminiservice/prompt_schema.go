package geminiservice

import (
	"fmt"
	"strings"
)

// DefaultLanguage is used when a request does not name an output language.
const DefaultLanguage = "en"

/* =================================================================================
							GENERATION PRESETS
=================================================================================*/

// SkillGeneration is the sampling configuration for skill recommendations.
var SkillGeneration = GenerationOptions{Temperature: 0.8, MaxOutputTokens: 2000}

// NutritionGeneration is the sampling configuration for nutrition answers.
var NutritionGeneration = GenerationOptions{Temperature: 0.6, MaxOutputTokens: 2000}

/* =================================================================================
							FALLBACK RESPONSES
=================================================================================*/

// SkillFallbackSummary is returned whenever the model path yields nothing usable.
const SkillFallbackSummary = "Here’s how you can start improving your skills. Begin by exploring local training programs, then focus on building basic skills through community workshops, and finally seek guidance from career counselors to plan your next steps."

// NutritionFallbackAnswer is returned whenever the model path yields nothing usable.
const NutritionFallbackAnswer = "Eat local fruits, vegetables, dal, and rice daily. Stay hydrated by drinking plenty of water, and avoid packaged foods to boost your health naturally."

/* =================================================================================
							PROMPT TEMPLATES
=================================================================================*/

/*
SkillPromptTemplate asks for a single motivational paragraph with concrete next
steps. Placeholders: education, occupation, goal, language, word limit, language.
*/
const SkillPromptTemplate = `
You are an AI mentor guiding individuals in India with practical, actionable advice in a warm and encouraging tone.

Profile:
Education: %s
Occupation: %s
Goal: %s

Respond in %s with a single, well-structured paragraph (under %d words). Provide a motivational summary tailored to the profile, followed by 2-3 clear, actionable steps to achieve the goal. Include specific suggestions for government schemes (e.g., Skill India, Startup India) and learning resources (e.g., online courses or platforms like Skill India) without listing URLs or bullet points. Focus on practical advice, such as exploring training programs, building skills, or connecting with local support, to inspire and guide the user on their journey. Ensure the response is fully in %s.
`

// SkillWordLimit caps the length of a skill recommendation.
const SkillWordLimit = 200

/*
NutritionPromptTemplate asks for short, food-and-habit focused health advice.
Placeholders: question, language, word limit, language.
*/
const NutritionPromptTemplate = `
You are a local health mentor.
Question: %q
Reply in %s with a clear text response.
Provide practical and simple advice in a single paragraph (under %d words), including specific foods and daily habits, without listing URLs or bullet points. Focus on actionable steps to improve health, tailored to the question, in a warm and supportive tone. Ensure the response is fully in %s.
`

// NutritionWordLimit caps the length of a nutrition answer.
const NutritionWordLimit = 150

// SkillProfile carries the validated fields of a skill recommendation request.
type SkillProfile struct {
	Education  string
	Occupation string
	Goal       string
}

// BuildSkillPrompt renders the skill recommendation prompt. Inputs are
// expected to be validated by the caller.
func BuildSkillPrompt(p SkillProfile, language string) string {
	language = normalizeLanguage(language)
	return fmt.Sprintf(SkillPromptTemplate, p.Education, p.Occupation, p.Goal, language, SkillWordLimit, language)
}

// BuildNutritionPrompt renders the nutrition advice prompt.
func BuildNutritionPrompt(question, language string) string {
	language = normalizeLanguage(language)
	return fmt.Sprintf(NutritionPromptTemplate, question, language, NutritionWordLimit, language)
}

func normalizeLanguage(language string) string {
	if l := strings.TrimSpace(language); l != "" {
		return l
	}
	return DefaultLanguage
}
