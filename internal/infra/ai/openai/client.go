package openai

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "net"
    "strings"

    "github.com/sashabaranov/go-openai"

    domain "github.com/bryanwahyu/ratemycode/internal/domain/analysis"
    "github.com/bryanwahyu/ratemycode/internal/infra/ai/prompt"
)

const maxTokens = 2048

// Client adapts the OpenAI chat API to the domain Reviewer port. One
// best-effort attempt per call; no retries here.
type Client struct {
    *openai.Client
    Model   string
    Persona string
}

func NewClient(apiKey, model, persona string) *Client {
    return &Client{Client: openai.NewClient(apiKey), Model: model, Persona: persona}
}

func (c *Client) AttemptReview(ctx context.Context, source string) (*domain.RemoteReview, error) {
    model := c.Model
    if model == "" {
        model = "gpt-4o-mini"
    }
    req := openai.ChatCompletionRequest{
        Model: model,
        ResponseFormat: &openai.ChatCompletionResponseFormat{
            Type: openai.ChatCompletionResponseFormatTypeJSONObject,
        },
        Messages: []openai.ChatCompletionMessage{
            {Role: openai.ChatMessageRoleSystem, Content: prompt.GetSystemPrompt(c.Persona)},
            {Role: openai.ChatMessageRoleUser, Content: prompt.GetUserPrompt("code", source)},
        },
    }
    // For reasoning models (o1/o3/o4/gpt-5*) use MaxCompletionTokens instead of MaxTokens
    if strings.HasPrefix(model, "o1") || strings.HasPrefix(model, "o3") || strings.HasPrefix(model, "o4") || strings.HasPrefix(model, "gpt-5") {
        req.MaxCompletionTokens = maxTokens
    } else {
        req.MaxTokens = maxTokens
    }

    resp, err := c.CreateChatCompletion(ctx, req)
    if err != nil {
        return nil, classifyTransportError(err)
    }
    if len(resp.Choices) == 0 {
        return nil, &domain.ReviewError{Reason: domain.ReviewFailInvalid, Err: fmt.Errorf("empty choice list")}
    }

    return parseReviewPayload(resp.Choices[0].Message.Content)
}

// parseReviewPayload validates the model output all-or-nothing: missing
// fields, out-of-range score or malformed JSON all discard the whole payload.
func parseReviewPayload(text string) (*domain.RemoteReview, error) {
    // Clean up potential markdown code blocks if the model ignores instruction
    text = strings.ReplaceAll(text, "```json", "")
    text = strings.ReplaceAll(text, "```", "")
    text = strings.TrimSpace(text)

    var payload struct {
        Score   *int     `json:"score"`
        Summary *string  `json:"summary"`
        Issues  []string `json:"issues"`
    }
    if err := json.Unmarshal([]byte(text), &payload); err != nil {
        return nil, &domain.ReviewError{Reason: domain.ReviewFailInvalid, Err: err}
    }
    if payload.Score == nil || payload.Summary == nil {
        return nil, &domain.ReviewError{Reason: domain.ReviewFailInvalid, Err: fmt.Errorf("missing score or summary field")}
    }
    if *payload.Score < 0 || *payload.Score > 100 {
        return nil, &domain.ReviewError{Reason: domain.ReviewFailInvalid, Err: fmt.Errorf("score %d out of range", *payload.Score)}
    }
    if strings.TrimSpace(*payload.Summary) == "" {
        return nil, &domain.ReviewError{Reason: domain.ReviewFailInvalid, Err: fmt.Errorf("empty summary")}
    }

    return &domain.RemoteReview{
        Score:   *payload.Score,
        Summary: strings.TrimSpace(*payload.Summary),
        Issues:  payload.Issues,
    }, nil
}

// classifyTransportError maps SDK errors onto the review failure taxonomy.
func classifyTransportError(err error) error {
    if errors.Is(err, context.DeadlineExceeded) {
        return &domain.ReviewError{Reason: domain.ReviewFailTimeout, Err: err}
    }
    var netErr net.Error
    if errors.As(err, &netErr) && netErr.Timeout() {
        return &domain.ReviewError{Reason: domain.ReviewFailTimeout, Err: err}
    }
    var apiErr *openai.APIError
    if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == 429 {
        return &domain.ReviewError{Reason: domain.ReviewFailQuota, Err: fmt.Errorf("%w: %v", domain.ErrQuotaExceeded, err)}
    }
    return &domain.ReviewError{Reason: domain.ReviewFailNetwork, Err: err}
}
