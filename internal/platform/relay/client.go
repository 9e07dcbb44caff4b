package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrEmptyRecipe is returned when the relay answers without recipe text.
var ErrEmptyRecipe = errors.New("relay returned no recipe")

// Client talks to a generation relay that accepts {"prompt"} and answers
// with {"recipe"} or {"error"}.
type Client struct {
	client *resty.Client
	url    string
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	Recipe string `json:"recipe"`
	Error  string `json:"error"`
}

// NewClient creates a relay client posting to url.
func NewClient(url string, timeout time.Duration) *Client {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{client: client, url: url}
}

// Generate forwards prompt to the relay and returns the generated text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(generateRequest{Prompt: prompt}).
		Post(c.url)
	if err != nil {
		return "", fmt.Errorf("failed to send request to relay: %w", err)
	}

	var result generateResponse
	decodeErr := json.Unmarshal(resp.Body(), &result)

	if resp.IsError() {
		if decodeErr == nil && result.Error != "" {
			return "", fmt.Errorf("relay returned %d: %s", resp.StatusCode(), result.Error)
		}
		return "", fmt.Errorf("relay returned %d: %s", resp.StatusCode(), resp.String())
	}
	if decodeErr != nil {
		return "", fmt.Errorf("failed to parse relay response: %w", decodeErr)
	}
	if result.Recipe == "" {
		return "", ErrEmptyRecipe
	}
	return result.Recipe, nil
}
