package geminiservice

import (
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// ExtractText returns the trimmed text of the first text-bearing part of the
// first candidate, or "" when the response holds nothing usable.
//
// A MAX_TOKENS finish is not treated as a failure: the partial text is still
// returned, only a warning is logged. Other finish reasons are logged as-is.
func ExtractText(logger *zerolog.Logger, resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		if resp != nil && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			logger.Warn().Str("block_reason", string(resp.PromptFeedback.BlockReason)).Msg("Gemini blocked the prompt")
		}
		logger.Warn().Msg("No candidates in Gemini response")
		return ""
	}

	candidate := resp.Candidates[0]
	if candidate == nil {
		logger.Warn().Msg("First Gemini candidate is empty")
		return ""
	}

	if candidate.FinishReason == genai.FinishReasonMaxTokens {
		ev := logger.Warn()
		if resp.UsageMetadata != nil {
			ev = ev.Int32("total_tokens", resp.UsageMetadata.TotalTokenCount)
		}
		ev.Msg("Gemini response stopped due to MAX_TOKENS limit")
	}

	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		logger.Warn().Str("finish_reason", string(candidate.FinishReason)).Msg("No valid parts in Gemini response")
		return ""
	}

	for _, part := range candidate.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		if text := strings.TrimSpace(part.Text); text != "" {
			return text
		}
	}

	logger.Warn().Str("finish_reason", string(candidate.FinishReason)).Msg("No text-bearing part in Gemini response")
	return ""
}
