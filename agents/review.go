package agents

import (
	"context"
	"fmt"
)

const reviewPrompt = `You are a senior software engineer performing a thorough code review. Analyze the following code for bugs, security issues, performance problems, and code quality.

Code:
"""
%s
"""

Provide your review in the following JSON format:
{
  "language": "<detected language>",
  "overallScore": <number 1-100>,
  "summary": "<2-3 sentence assessment>",
  "bugs": [
    {
      "severity": "<Critical|High|Medium|Low>",
      "line": "<approximate location>",
      "issue": "<description>",
      "fix": "<suggested fix>"
    }
  ],
  "securityIssues": ["<issue 1>"],
  "performanceTips": ["<tip 1>", "<tip 2>"],
  "cleanCodeSuggestions": ["<suggestion 1>", "<suggestion 2>"],
  "refactoredCode": "<improved version of the code>"
}

Return ONLY valid JSON, no markdown.`

type Bug struct {
	Severity string `json:"severity"`
	Line     string `json:"line"`
	Issue    string `json:"issue"`
	Fix      string `json:"fix"`
}

type ReviewResult struct {
	Language             string   `json:"language"`
	OverallScore         int      `json:"overallScore"`
	Summary              string   `json:"summary"`
	Bugs                 []Bug    `json:"bugs"`
	SecurityIssues       []string `json:"securityIssues"`
	PerformanceTips      []string `json:"performanceTips"`
	CleanCodeSuggestions []string `json:"cleanCodeSuggestions"`
	RefactoredCode       string   `json:"refactoredCode"`
}

func (r *Registry) reviewCode(ctx context.Context, input string) (any, error) {
	raw := r.generate(ctx, fmt.Sprintf(reviewPrompt, input))
	var res ReviewResult
	if err := decodeResult(raw, &res); err != nil {
		res = ReviewResult{
			Language:             "JavaScript",
			OverallScore:         70,
			Summary:              raw,
			Bugs:                 []Bug{},
			SecurityIssues:       []string{"Review for potential injection vulnerabilities"},
			PerformanceTips:      []string{"Consider caching frequently accessed data"},
			CleanCodeSuggestions: []string{"Add error handling", "Use meaningful variable names"},
			RefactoredCode:       input,
		}
	}
	return res, nil
}
