package geminiservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"
)

func candidate(reason genai.FinishReason, parts ...*genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:      &genai.Content{Role: genai.RoleModel, Parts: parts},
			FinishReason: reason,
		}},
	}
}

func TestExtractText(t *testing.T) {
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
		want string
	}{
		{"nil response", nil, ""},
		{"no candidates", &genai.GenerateContentResponse{}, ""},
		{
			"blocked prompt",
			&genai.GenerateContentResponse{PromptFeedback: &genai.GenerateContentResponsePromptFeedback{BlockReason: genai.BlockedReasonSafety}},
			"",
		},
		{"nil first candidate", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{nil}}, ""},
		{
			"candidate without content",
			&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}}},
			"",
		},
		{"no parts", candidate(genai.FinishReasonSafety), ""},
		{"first text-bearing part wins", candidate(genai.FinishReasonStop, &genai.Part{Text: ""}, &genai.Part{Text: "hello"}), "hello"},
		{"trims whitespace", candidate(genai.FinishReasonStop, &genai.Part{Text: "\n  hello world \t"}), "hello world"},
		{"whitespace-only part is skipped", candidate(genai.FinishReasonStop, &genai.Part{Text: "   "}, &genai.Part{Text: "next"}), "next"},
		{"nil part is skipped", candidate(genai.FinishReasonStop, nil, &genai.Part{Text: "ok"}), "ok"},
		{"thought part is skipped", candidate(genai.FinishReasonStop, &genai.Part{Text: "thinking...", Thought: true}, &genai.Part{Text: "answer"}), "answer"},
		{"no text anywhere", candidate(genai.FinishReasonStop, &genai.Part{Text: ""}), ""},
		{"truncated text is kept", candidate(genai.FinishReasonMaxTokens, &genai.Part{Text: "partial answ"}), "partial answ"},
		{
			"only first candidate is read",
			&genai.GenerateContentResponse{Candidates: []*genai.Candidate{
				{Content: &genai.Content{}},
				{Content: &genai.Content{Parts: []*genai.Part{{Text: "second"}}}},
			}},
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractText(nopLogger(), tt.resp))
		})
	}
}

func TestExtractTextMaxTokensWithUsage(t *testing.T) {
	resp := candidate(genai.FinishReasonMaxTokens, &genai.Part{Text: "cut"})
	resp.UsageMetadata = &genai.GenerateContentResponseUsageMetadata{TotalTokenCount: 2000}

	assert.Equal(t, "cut", ExtractText(nopLogger(), resp))
}
