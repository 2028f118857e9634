// Package aiestimator talks to the generative AI service that produces
// narrative cost breakdowns for new projects.
package aiestimator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"text/template"

	"github.com/jengaest/estimate-api/internal/config"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	// ErrNotConfigured is returned when no API key or endpoint is set
	ErrNotConfigured = errors.New("ai estimator not configured")

	// ErrInvalidResponse is returned when the reply holds no usable JSON document
	ErrInvalidResponse = errors.New("ai estimator returned an invalid response")
)

// ProjectDetails describes the project to be estimated
type ProjectDetails struct {
	ProjectName        string
	ProjectDescription string
	BuildingType       string
	ConstructionType   string
	TotalArea          decimal.Decimal
	LocationName       string
	DataPeriod         string
}

// CostAnalysis is the only part of the reply the service interprets
type CostAnalysis struct {
	BaseCostPerSqm     decimal.NullDecimal `json:"base_cost_per_sqm"`
	LocationMultiplier decimal.NullDecimal `json:"location_multiplier"`
	AdjustedCostPerSqm decimal.NullDecimal `json:"adjusted_cost_per_sqm"`
}

// Result is a parsed reply. Everything except CostAnalysis is kept verbatim.
type Result struct {
	CostAnalysis    CostAnalysis    `json:"cost_analysis"`
	Breakdown       json.RawMessage `json:"breakdown"`
	Recommendations json.RawMessage `json:"recommendations"`
	RiskFactors     json.RawMessage `json:"risk_factors"`

	CostAnalysisRaw json.RawMessage `json:"-"`
	Raw             json.RawMessage `json:"-"`
	Model           string          `json:"-"`
}

// Client calls the generateContent endpoint of a Gemini-compatible API
type Client struct {
	httpClient *http.Client
	config     *config.AIConfig
	logger     *zap.Logger
}

// NewClient creates a client. A nil httpClient gets one with the configured timeout.
func NewClient(cfg *config.AIConfig, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.TimeoutDuration()}
	}
	return &Client{
		httpClient: httpClient,
		config:     cfg,
		logger:     logger,
	}
}

// Model returns the configured model name
func (c *Client) Model() string {
	return c.config.Model
}

var promptTemplate = template.Must(template.New("prompt").Parse(`As a construction cost estimation expert, analyze the following project details and provide a detailed cost breakdown:

Project Name: {{.ProjectName}}
Building Type: {{.BuildingType}}
Construction Type: {{.ConstructionType}}
Total Area: {{.TotalArea.StringFixed 2}} square meters
Location: {{.LocationName}}
Data Period: {{.DataPeriod}}
Project Description: {{.ProjectDescription}}

Respond with a single JSON object of this shape:
{
  "cost_analysis": {"base_cost_per_sqm": number, "location_multiplier": number, "adjusted_cost_per_sqm": number},
  "breakdown": {
    "materials": {"total": number, "details": [{"item": string, "cost": number, "percentage": number}]},
    "labor": {"total": number, "details": [{"category": string, "cost": number, "percentage": number}]},
    "equipment": {"total": number, "description": string}
  },
  "recommendations": [string],
  "risk_factors": [string]
}

Base your estimates on current Kenyan construction market rates and consider local factors.
Consider the data period ({{.DataPeriod}}) when estimating costs as material and labor prices vary by season.
`))

// BuildPrompt renders the instruction sent for a project
func BuildPrompt(details ProjectDetails) (string, error) {
	if details.DataPeriod == "" {
		details.DataPeriod = "Q1"
	}
	var buf bytes.Buffer
	if err := promptTemplate.Execute(&buf, details); err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}
	return buf.String(), nil
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Estimate asks the model for a cost breakdown of the project
func (c *Client) Estimate(ctx context.Context, details ProjectDetails) (*Result, error) {
	if c.config.APIKey == "" || c.config.Endpoint == "" {
		return nil, ErrNotConfigured
	}

	prompt, err := BuildPrompt(details)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(generateRequest{
		Contents:         []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{ResponseMimeType: "application/json"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent",
		strings.TrimRight(c.config.Endpoint, "/"), url.PathEscape(c.config.Model))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call ai estimator: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read ai estimator response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("ai estimator returned an error status",
			zap.Int("status", resp.StatusCode),
			zap.String("model", c.config.Model),
		)
		return nil, fmt.Errorf("ai estimator returned status %d", resp.StatusCode)
	}

	var generated generateResponse
	if err := json.Unmarshal(respBody, &generated); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if len(generated.Candidates) == 0 || len(generated.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("%w: no candidates", ErrInvalidResponse)
	}

	var text strings.Builder
	for _, p := range generated.Candidates[0].Content.Parts {
		text.WriteString(p.Text)
	}

	result, err := ParseResult(text.String())
	if err != nil {
		return nil, err
	}
	result.Model = c.config.Model
	return result, nil
}

// ParseResult extracts the outermost JSON object from model output, which may
// be wrapped in prose or code fences
func ParseResult(text string) (*Result, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end < start {
		return nil, fmt.Errorf("%w: no JSON object found", ErrInvalidResponse)
	}
	doc := []byte(text[start : end+1])

	var result Result
	if err := json.Unmarshal(doc, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	var sections struct {
		CostAnalysis json.RawMessage `json:"cost_analysis"`
	}
	_ = json.Unmarshal(doc, &sections)

	result.CostAnalysisRaw = sections.CostAnalysis
	result.Raw = doc
	return &result, nil
}
