package planner

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// CompletionConfig holds the settings for the completion endpoint.
type CompletionConfig struct {
	APIKey      string
	Model       string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

// DefaultCompletionConfig returns the settings used for plan and
// recommendation generation.
func DefaultCompletionConfig(apiKey string) CompletionConfig {
	return CompletionConfig{
		APIKey:      apiKey,
		Model:       openai.GPT4oMini,
		Temperature: 0.7,
		MaxTokens:   1000,
		Timeout:     30 * time.Second,
	}
}

// Client wraps the OpenAI chat-completion API. Every method returns an
// error instead of panicking; callers are expected to fall back to
// templated content when a call fails.
type Client struct {
	api *openai.Client
	cfg CompletionConfig
}

func NewClient(cfg CompletionConfig) *Client {
	return &Client{
		api: openai.NewClient(cfg.APIKey),
		cfg: cfg,
	}
}

// GenerateEmergencyPlan asks for a phased emergency response plan as
// free text. The caller parses it with ParsePlan.
func (c *Client) GenerateEmergencyPlan(ctx context.Context, disasterType, location string) (string, error) {
	prompt := fmt.Sprintf(`Create a detailed emergency response plan for a %s disaster in %s.
Include the following phases:
1. Preparation Phase (before the disaster)
2. Response Phase (during the disaster)
3. Recovery Phase (after the disaster)

For each phase, provide specific, actionable steps that residents should take.
Format the response as a clear, organized plan with bullet points and priorities.`, disasterType, location)

	return c.complete(ctx,
		"You are an emergency preparedness expert providing clear, actionable advice for disaster response.",
		prompt, c.cfg.MaxTokens, c.cfg.Temperature)
}

// joinList formats risk factor and history lists for prompts.
func joinList(items []string) string {
	return strings.Join(items, ", ")
}

// GenerateResilienceRecommendations asks for 3-5 climate resilience
// recommendations as free text.
func (c *Client) GenerateResilienceRecommendations(ctx context.Context, location string, riskFactors []string) (string, error) {
	prompt := fmt.Sprintf(`Based on the location %s and risk factors: %s,
provide 3-5 specific, actionable climate resilience recommendations.
Each recommendation should include:
- Title
- Description of the benefit
- Difficulty level (easy, moderate, difficult)
- Estimated cost range
- Implementation timeframe

Focus on practical, community-level solutions.`, location, joinList(riskFactors))

	return c.complete(ctx,
		"You are a climate resilience expert providing practical recommendations for community adaptation.",
		prompt, 800, c.cfg.Temperature)
}

// AnalyzeRisk asks for a free-text risk assessment used to enrich the
// statistical scorer's recommendations.
func (c *Client) AnalyzeRisk(ctx context.Context, location string, historicalData []string) (string, error) {
	prompt := fmt.Sprintf(`Analyze the disaster risk for %s based on this historical data: %s.
Provide a risk assessment that includes:
1. Overall risk level (Low, Moderate, High, Extreme)
2. Key risk factors
3. Recommended preparedness actions
4. Long-term resilience strategies

Be specific and actionable in your recommendations.`, location, joinList(historicalData))

	return c.complete(ctx,
		"You are a disaster risk analyst providing evidence-based risk assessments.",
		prompt, 600, 0.6)
}

func (c *Client) complete(ctx context.Context, system, prompt string, maxTokens int, temperature float32) (string, error) {
	apiCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(apiCtx, openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("completion request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
