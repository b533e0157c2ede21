package catalog

// Builtin returns the stock agent definitions the marketplace ships with.
func Builtin() []Agent {
	return []Agent{
		{
			ID:   "resume-analyzer",
			Name: "Resume Analyzer",
			Description: "AI-powered resume analysis. Get detailed feedback on structure, " +
				"keywords, ATS compatibility, and improvement suggestions.",
			Icon:             "FileText",
			Category:         "Career",
			PriceSTX:         0.002,
			Token:            "STX",
			InputType:        "textarea",
			InputLabel:       "Paste your resume text",
			InputPlaceholder: "Paste the full text of your resume here...",
			SampleInput: "John Doe\nSoftware Engineer\n5 years experience in React, Node.js, Python\n" +
				"Worked at Google, Meta\nBS Computer Science from MIT",
			Tags:          []string{"resume", "career", "ATS", "job-search"},
			EstimatedTime: "~5 seconds",
		},
		{
			ID:   "smart-contract-auditor",
			Name: "Smart Contract Auditor",
			Description: "Analyze Clarity or Solidity smart contracts for vulnerabilities, " +
				"gas optimization, and best practices.",
			Icon:             "Shield",
			Category:         "Blockchain",
			PriceSTX:         0.01,
			Token:            "STX",
			InputType:        "textarea",
			InputLabel:       "Paste your smart contract code",
			InputPlaceholder: "(define-public (transfer (amount uint) (to principal)) ...)",
			SampleInput: "(define-public (transfer (amount uint) (to principal))\n" +
				"  (begin\n    (try! (stx-transfer? amount tx-sender to))\n    (ok true)))",
			Tags:          []string{"smart-contract", "audit", "security", "clarity"},
			EstimatedTime: "~8 seconds",
		},
		{
			ID:   "text-summarizer",
			Name: "Text Summarizer",
			Description: "Condense long articles, papers, or documents into concise, " +
				"actionable summaries with key takeaways.",
			Icon:             "AlignLeft",
			Category:         "Productivity",
			PriceSTX:         0.001,
			Token:            "STX",
			InputType:        "textarea",
			InputLabel:       "Paste text to summarize",
			InputPlaceholder: "Paste the article or document text you want summarized...",
			SampleInput: "Artificial intelligence has transformed virtually every industry over the past decade. " +
				"From healthcare to finance, AI systems now assist with complex decision-making, pattern recognition, " +
				"and process automation. The emergence of large language models has further accelerated this " +
				"transformation, enabling natural language understanding at unprecedented scales. However, concerns " +
				"about AI safety, bias, and job displacement remain significant challenges that society must address.",
			Tags:          []string{"summarize", "productivity", "writing", "NLP"},
			EstimatedTime: "~3 seconds",
		},
		{
			ID:   "code-reviewer",
			Name: "Code Reviewer",
			Description: "Get instant AI code reviews — find bugs, security issues, " +
				"performance improvements, and clean-code suggestions.",
			Icon:             "Code",
			Category:         "Developer Tools",
			PriceSTX:         0.005,
			Token:            "STX",
			InputType:        "textarea",
			InputLabel:       "Paste your code",
			InputPlaceholder: "function fetchData() { ... }",
			SampleInput: "async function fetchUsers() {\n  const res = await fetch(\"/api/users\");\n" +
				"  const data = res.json();\n  return data;\n}",
			Tags:          []string{"code-review", "bugs", "security", "developer"},
			EstimatedTime: "~5 seconds",
		},
		{
			ID:   "trading-signal",
			Name: "Trading Signal Analyzer",
			Description: "Analyze crypto token data and market conditions to generate " +
				"trading signals with risk assessment.",
			Icon:             "TrendingUp",
			Category:         "Finance",
			PriceSTX:         0.005,
			Token:            "STX",
			InputType:        "text",
			InputLabel:       "Enter token symbol or pair",
			InputPlaceholder: "e.g. STX/USD, BTC/USD, ETH/BTC",
			SampleInput:      "STX/USD",
			Tags:             []string{"trading", "crypto", "signals", "DeFi"},
			EstimatedTime:    "~4 seconds",
		},
		{
			ID:   "seo-optimizer",
			Name: "SEO Content Optimizer",
			Description: "Analyze web content for SEO — get keyword suggestions, meta tag " +
				"improvements, readability scores, and ranking tips.",
			Icon:             "Search",
			Category:         "Marketing",
			PriceSTX:         0.003,
			Token:            "STX",
			InputType:        "textarea",
			InputLabel:       "Paste your content or URL description",
			InputPlaceholder: "Paste the blog post or web page content to optimize...",
			SampleInput: "How to Build a DeFi Application\n\nDeFi applications are changing the financial " +
				"landscape. In this guide, we explore how to build your first decentralized finance application " +
				"using smart contracts and blockchain technology.",
			Tags:          []string{"SEO", "content", "marketing", "optimization"},
			EstimatedTime: "~5 seconds",
		},
	}
}
