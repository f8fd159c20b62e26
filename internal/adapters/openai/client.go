/* Copyright (c) 2026 Manivannan Senthilrajan
 * SPDX-License-Identifier: BSD-3-Clause */
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/openai/openai-go/v2/shared"
	"github.com/rs/zerolog"

	"github.com/ManivannanSenthilrajan/issueboard/internal/config"
	"github.com/ManivannanSenthilrajan/issueboard/internal/domain"
)

type Client struct {
	key   string
	model string
	cli   openai.Client
	log   zerolog.Logger
}

func NewClient(cfg config.Config, log zerolog.Logger) *Client {
	model := cfg.OpenAIModel
	if strings.TrimSpace(model) == "" { model = "gpt-4.1-mini" }
	cli := openai.NewClient(option.WithAPIKey(cfg.OpenAIKey), option.WithRequestTimeout(cfg.OpenAITimeout))
	return &Client{key: cfg.OpenAIKey, model: model, cli: cli, log: log}
}

// Enabled reports whether an API key was configured.
func (c *Client) Enabled() bool { return strings.TrimSpace(c.key) != "" }

// DraftSprintReport asks the model to pre-fill the sprint-report sections
// from the sprint's issue list. The result is a suggestion only; nothing is
// persisted here.
func (c *Client) DraftSprintReport(ctx context.Context, sprint string, issues []domain.Issue, fields []string) (map[string]string, error) {
	if !c.Enabled() { return nil, errors.New("openai: missing key") }
	c.log.Info().Str("model", c.model).Str("sprint", sprint).Int("issues", len(issues)).Msg("openai draft call")

	payload := map[string]any{"sprint": sprint, "fields": fields, "issues": issueDigest(issues)}
	userContent := ""
	if b, err := json.Marshal(payload); err == nil { userContent = string(b) }

	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage("You are a delivery lead writing a sprint report. Given a sprint's issues (title, state, team, status), draft each requested report field in 2-3 plain sentences. Return a JSON object keyed exactly by the requested field names."),
			openai.UserMessage(userContent),
		},
	}
	resp, err := c.cli.Chat.Completions.New(ctx, params)
	if err != nil { return nil, err }
	if len(resp.Choices) == 0 { return nil, errors.New("openai: no choices") }
	var m map[string]string
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &m); err != nil { return nil, err }
	return m, nil
}

func issueDigest(issues []domain.Issue) []map[string]string {
	out := make([]map[string]string, 0, len(issues))
	for _, i := range issues {
		out = append(out, map[string]string{
			"title":  i.Title,
			"state":  i.State,
			"team":   i.Fields.Team,
			"status": i.Fields.Status,
		})
	}
	return out
}
