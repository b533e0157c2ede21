package agents

import (
	"context"
	"fmt"
)

const tradingPrompt = `You are a crypto market analyst. Analyze the token pair "%[1]s" and provide a simulated trading signal based on typical market analysis patterns. Note: This is for educational and demonstration purposes only, not financial advice.

Provide your analysis in the following JSON format:
{
  "pair": "%[1]s",
  "signal": "<Strong Buy|Buy|Hold|Sell|Strong Sell>",
  "confidence": <number 1-100>,
  "summary": "<2-3 sentence market assessment>",
  "technicalIndicators": {
    "rsi": <number 0-100>,
    "macd": "<Bullish|Bearish|Neutral>",
    "movingAverage": "<Above|Below|At>",
    "volume": "<High|Normal|Low>"
  },
  "supportLevel": "<price level>",
  "resistanceLevel": "<price level>",
  "riskAssessment": "<Low|Medium|High|Very High>",
  "timeframe": "<Short-term|Medium-term|Long-term>",
  "keyFactors": ["<factor 1>", "<factor 2>", "<factor 3>"],
  "disclaimer": "This is a simulated analysis for demonstration purposes only. Not financial advice."
}

Return ONLY valid JSON, no markdown.`

const tradingDisclaimer = "This is a simulated analysis for demonstration purposes only. Not financial advice."

type TechnicalIndicators struct {
	RSI           int    `json:"rsi"`
	MACD          string `json:"macd"`
	MovingAverage string `json:"movingAverage"`
	Volume        string `json:"volume"`
}

type TradingResult struct {
	Pair                string              `json:"pair"`
	Signal              string              `json:"signal"`
	Confidence          int                 `json:"confidence"`
	Summary             string              `json:"summary"`
	TechnicalIndicators TechnicalIndicators `json:"technicalIndicators"`
	SupportLevel        string              `json:"supportLevel"`
	ResistanceLevel     string              `json:"resistanceLevel"`
	RiskAssessment      string              `json:"riskAssessment"`
	Timeframe           string              `json:"timeframe"`
	KeyFactors          []string            `json:"keyFactors"`
	Disclaimer          string              `json:"disclaimer"`
}

func (r *Registry) analyzeTradingSignal(ctx context.Context, input string) (any, error) {
	raw := r.generate(ctx, fmt.Sprintf(tradingPrompt, input))
	var res TradingResult
	if err := decodeResult(raw, &res); err != nil {
		res = TradingResult{
			Pair:       input,
			Signal:     "Hold",
			Confidence: 55,
			Summary:    raw,
			TechnicalIndicators: TechnicalIndicators{
				RSI:           50,
				MACD:          "Neutral",
				MovingAverage: "At",
				Volume:        "Normal",
			},
			SupportLevel:    "N/A",
			ResistanceLevel: "N/A",
			RiskAssessment:  "Medium",
			Timeframe:       "Short-term",
			KeyFactors:      []string{"Market analysis unavailable"},
			Disclaimer:      tradingDisclaimer,
		}
	}
	if res.Disclaimer == "" {
		res.Disclaimer = tradingDisclaimer
	}
	return res, nil
}
