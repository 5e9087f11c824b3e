package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/helmcode/interview-ai/pkg/model"
)

const (
	defaultClaudeModel   = "claude-sonnet-4-20250514"
	defaultClaudeBaseURL = "https://api.anthropic.com"
	anthropicVersion     = "2023-06-01"
)

type Claude struct {
	apiKey    string
	baseURL   string
	client    *http.Client
	model     string
	maxTokens int
}

func NewClaudeWithConfig(cfg Config) *Claude {
	c := &Claude{
		apiKey:    cfg.APIKey,
		baseURL:   strings.TrimSuffix(cfg.BaseURL, "/"),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}
	if c.baseURL == "" {
		c.baseURL = defaultClaudeBaseURL
	}
	if c.model == "" {
		c.model = defaultClaudeModel
	}
	if c.maxTokens == 0 {
		c.maxTokens = defaultMaxTokens
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	c.client = &http.Client{Timeout: timeout}
	return c
}

type claudeRequest struct {
	Model       string          `json:"model"`
	Messages    []claudeMessage `json:"messages"`
	MaxTokens   int             `json:"max_tokens"`
	Temperature float64         `json:"temperature"`
	Stream      bool            `json:"stream,omitempty"`
}

type claudeMessage struct {
	Role    string          `json:"role"`
	Content []claudeContent `json:"content"`
}

type claudeContent struct {
	Type   string        `json:"type"`
	Text   string        `json:"text,omitempty"`
	Source *claudeSource `json:"source,omitempty"`
}

type claudeSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

func (c *Claude) Chat(ctx context.Context, req Request) (string, error) {
	resp, err := c.do(ctx, req, false)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	// Minimal struct to pull out the content text.
	var claudeResp struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(respBytes, &claudeResp); err != nil {
		return "", err
	}
	if claudeResp.Error.Message != "" {
		return "", fmt.Errorf("Claude API error: %s", claudeResp.Error.Message)
	}
	if len(claudeResp.Content) == 0 || claudeResp.Content[0].Text == "" {
		return "", fmt.Errorf("Claude: %w", ErrEmptyResponse)
	}
	return claudeResp.Content[0].Text, nil
}

// Stream reads the server-sent events of a streaming messages call and
// forwards every text delta.
func (c *Claude) Stream(ctx context.Context, req Request) (<-chan StreamChunk, error) {
	resp, err := c.do(ctx, req, true)
	if err != nil {
		return nil, err
	}

	chunks := make(chan StreamChunk)
	go func() {
		defer close(chunks)
		defer resp.Body.Close()

		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			data, ok := strings.CutPrefix(scanner.Text(), "data:")
			if !ok {
				continue
			}

			var event struct {
				Type  string `json:"type"`
				Delta struct {
					Type string `json:"type"`
					Text string `json:"text"`
				} `json:"delta"`
				Error struct {
					Message string `json:"message"`
				} `json:"error"`
			}
			if err := json.Unmarshal([]byte(strings.TrimSpace(data)), &event); err != nil {
				send(ctx, chunks, StreamChunk{Err: fmt.Errorf("Claude stream decode: %w", err)})
				return
			}

			switch event.Type {
			case "content_block_delta":
				if event.Delta.Text == "" {
					continue
				}
				if !send(ctx, chunks, StreamChunk{Content: event.Delta.Text}) {
					return
				}
			case "message_stop":
				send(ctx, chunks, StreamChunk{Done: true})
				return
			case "error":
				send(ctx, chunks, StreamChunk{Err: fmt.Errorf("Claude API error: %s", event.Error.Message)})
				return
			}
		}
		if err := scanner.Err(); err != nil {
			send(ctx, chunks, StreamChunk{Err: fmt.Errorf("Claude stream read: %w", err)})
			return
		}
		// Only message_stop marks a complete answer.
		send(ctx, chunks, StreamChunk{Err: fmt.Errorf("Claude stream ended before message_stop: %w", io.ErrUnexpectedEOF)})
	}()
	return chunks, nil
}

func (c *Claude) Transcribe(_ context.Context, _ model.Attachment, _ string) (string, error) {
	return "", fmt.Errorf("Claude transcription: %w", ErrUnsupported)
}

func (c *Claude) GetModel() string {
	return c.model
}

func (c *Claude) Provider() Provider {
	return ProviderClaude
}

func (c *Claude) do(ctx context.Context, req Request, stream bool) (*http.Response, error) {
	images, other := splitAttachments(req.Attachments)
	if len(other) > 0 {
		return nil, fmt.Errorf("Claude chat with %s attachment: %w", other[0].MIMEType, ErrUnsupported)
	}

	content := make([]claudeContent, 0, len(images)+1)
	for _, img := range images {
		content = append(content, claudeContent{
			Type: "image",
			Source: &claudeSource{
				Type:      "base64",
				MediaType: img.MIMEType,
				Data:      img.Base64(),
			},
		})
	}
	content = append(content, claudeContent{Type: "text", Text: req.Prompt})

	body := claudeRequest{
		Model:     resolveModel(req.Model, c.model),
		Messages:  []claudeMessage{{Role: "user", Content: content}},
		MaxTokens: c.maxTokens,
		Stream:    stream,
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)
	if stream {
		httpReq.Header.Set("Accept", "text/event-stream")
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		respBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("Claude API error (status %d): %s", resp.StatusCode, string(respBytes))
	}
	return resp, nil
}
