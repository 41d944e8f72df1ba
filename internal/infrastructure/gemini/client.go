package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/beaconhq/beacon-backend/internal/alignment"
)

const defaultModel = "gemini-1.5-pro"

// Client scores goal alignment through the Gemini API. It implements
// alignment.Scorer; callers are expected to wrap it with
// alignment.NewDegrading so its failures never surface.
type Client struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	m := client.GenerativeModel(model)
	m.SetTemperature(0.2)

	return &Client{client: client, model: m}, nil
}

func (c *Client) Close() {
	c.client.Close()
}

type alignmentPayload struct {
	Score     float64 `json:"score"`
	Reasoning string  `json:"reasoning"`
}

func (c *Client) Score(ctx context.Context, req alignment.Request) (alignment.Result, error) {
	prompt := buildPrompt(req)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return alignment.Result{}, fmt.Errorf("generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return alignment.Result{}, fmt.Errorf("no content generated")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}

	payload, err := parsePayload(sb.String())
	if err != nil {
		return alignment.Result{}, err
	}

	score := payload.Score
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}

	return alignment.Result{
		Score:     score,
		Reasoning: strings.TrimSpace(payload.Reasoning),
	}, nil
}

func parsePayload(text string) (alignmentPayload, error) {
	text = strings.TrimSpace(text)
	// The model sometimes wraps JSON in markdown fences despite the prompt
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var payload alignmentPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return alignmentPayload{}, fmt.Errorf("failed to parse alignment response: %w", err)
	}
	return payload, nil
}

func buildPrompt(req alignment.Request) string {
	career := "n/a"
	if len(req.Mentor.CareerPath) > 0 {
		career = strings.Join(req.Mentor.CareerPath, " -> ")
	}

	return fmt.Sprintf(`You are a career matching expert. Rate how well this MENTOR can help this MENTEE achieve their goal.

MENTEE PROFILE:
Name: %s
Goal: %s
Context: %s
Current Role: %s at %s
Industry: %s
Needs Help With: %s

MENTOR PROFILE:
Name: %s
Current Role: %s at %s
Industry: %s
Can Help With: %s
Additional Context: %s
Career Path: %s

TASK:
Rate from 0.0 to 1.0 how well this mentor can help the mentee achieve their specific goal.

Consider:
1. Does the mentor have direct experience in the mentee's target role/industry?
2. Has the mentor made a similar career transition?
3. Can the mentor provide the specific help the mentee needs?
4. Does the mentor's background align with the mentee's aspirations?

Return ONLY a JSON object with this exact format (no markdown, no explanation):
{"score": 0.75, "reasoning": "Brief explanation in 1-2 sentences"}`,
		req.MenteeName,
		req.Goals,
		req.MoreInfo,
		req.MenteeRole, req.MenteeCompany,
		req.MenteeIndustry,
		strings.Join(req.NeedTags, ", "),
		req.Mentor.Name,
		req.Mentor.Role, req.Mentor.Company,
		req.Mentor.Industry,
		strings.Join(req.Mentor.HelpTags, ", "),
		req.Mentor.Details,
		career,
	)
}
