// Package generation provides a client for the external generation subsystem that
// runs model inference and returns per-step output scores. It performs no numeric
// work of its own.
package generation

import (
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog/log"

	"github.com/relialabs/logtoku/internal/config"
)

// GenerationInterface is the interface for the generation client methods used by the
// scoring service.
type GenerationInterface interface {
	Generate(req GenerateRequest) (GenerateResponse, error)
}

type Client struct {
	cfg    *config.GenerationEnvConfig
	client *resty.Client
}

// NewClient constructs a generation client authenticated with the given bearer
// token, on top of a retrying HTTP transport.
func NewClient(cfg *config.GenerationEnvConfig, token string) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.RetryMax
	retryClient.RetryWaitMin = 500 * time.Millisecond
	retryClient.RetryWaitMax = 20 * time.Second
	retryClient.HTTPClient.Timeout = cfg.ClientTimeout
	retryClient.Logger = nil

	client := resty.NewWithClient(retryClient.StandardClient()).
		SetBaseURL(cfg.GenerationAPIUrl).
		SetJSONMarshaler(sonic.Marshal).
		SetJSONUnmarshaler(sonic.Unmarshal).
		SetAuthToken(token)

	return &Client{
		cfg:    cfg,
		client: client,
	}, nil
}

// Generate requests a completion with per-step scores.
func (c *Client) Generate(req GenerateRequest) (GenerateResponse, error) {
	req.OutputScores = true

	var out GenerateResponse
	resp, err := c.client.R().
		SetBody(req).
		SetResult(&out).
		Post("/generate")
	if err != nil {
		log.Error().Err(err).Msg("generate request failed")
		return GenerateResponse{}, fmt.Errorf("generate: %w", err)
	}
	if resp.IsError() {
		log.Error().Int("status", resp.StatusCode()).Str("body", resp.String()).Msg("generate non-2xx")
		return GenerateResponse{}, fmt.Errorf("generate status %d: %s", resp.StatusCode(), resp.String())
	}
	if !out.Success {
		return GenerateResponse{}, fmt.Errorf("generate api returned success=false: %s", out.Message)
	}
	return out, nil
}
