package llm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/helmcode/interview-ai/pkg/model"
)

const (
	defaultOpenAIModel = "gpt-4o"
	transcriptionModel = openai.Whisper1
)

type OpenAI struct {
	client    *openai.Client
	model     string
	maxTokens int
	timeout   time.Duration
	language  string
}

// NewOpenAIWithConfig builds a client from cfg, filling in defaults for any
// zero field. BaseURL points the client at an OpenAI-compatible gateway.
func NewOpenAIWithConfig(cfg Config) *OpenAI {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	o := &OpenAI{
		client:    openai.NewClientWithConfig(clientConfig),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		timeout:   cfg.Timeout,
		language:  isoLanguage(cfg.Language),
	}
	if o.model == "" {
		o.model = defaultOpenAIModel
	}
	if o.maxTokens == 0 {
		o.maxTokens = defaultMaxTokens
	}
	if o.timeout == 0 {
		o.timeout = defaultTimeout
	}
	return o
}

func (o *OpenAI) Chat(ctx context.Context, req Request) (string, error) {
	chatReq, err := o.buildRequest(req)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	resp, err := o.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("OpenAI: %w", ErrEmptyResponse)
	}
	return resp.Choices[0].Message.Content, nil
}

func (o *OpenAI) Stream(ctx context.Context, req Request) (<-chan StreamChunk, error) {
	chatReq, err := o.buildRequest(req)
	if err != nil {
		return nil, err
	}
	chatReq.Stream = true

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	stream, err := o.client.CreateChatCompletionStream(ctx, chatReq)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("OpenAI stream error: %w", err)
	}

	chunks := make(chan StreamChunk)
	go func() {
		defer cancel()
		defer close(chunks)
		defer stream.Close()

		for {
			resp, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				send(ctx, chunks, StreamChunk{Done: true})
				return
			}
			if err != nil {
				send(ctx, chunks, StreamChunk{Err: fmt.Errorf("OpenAI stream recv error: %w", err)})
				return
			}
			if len(resp.Choices) == 0 || resp.Choices[0].Delta.Content == "" {
				continue
			}
			if !send(ctx, chunks, StreamChunk{Content: resp.Choices[0].Delta.Content}) {
				return
			}
		}
	}()
	return chunks, nil
}

func (o *OpenAI) Transcribe(ctx context.Context, audio model.Attachment, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	name := audio.Name
	if name == "" {
		name = "recording.wav"
	}

	resp, err := o.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    transcriptionModel,
		FilePath: name,
		Reader:   bytes.NewReader(audio.Data),
		Prompt:   prompt,
		Language: o.language,
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI transcription error: %w", err)
	}
	return strings.TrimSpace(resp.Text), nil
}

// isoLanguage reduces a tag such as "en-US" or "pt_BR" to the ISO-639-1 code
// Whisper accepts. Anything that is not a two-letter code yields "".
func isoLanguage(tag string) string {
	code, _, _ := strings.Cut(strings.TrimSpace(tag), "-")
	code, _, _ = strings.Cut(code, "_")
	code = strings.ToLower(code)
	if len(code) != 2 || code[0] < 'a' || code[0] > 'z' || code[1] < 'a' || code[1] > 'z' {
		return ""
	}
	return code
}

// GetModel returns the model being used by this OpenAI client
func (o *OpenAI) GetModel() string {
	return o.model
}

func (o *OpenAI) Provider() Provider {
	return ProviderOpenAI
}

func (o *OpenAI) buildRequest(req Request) (openai.ChatCompletionRequest, error) {
	images, other := splitAttachments(req.Attachments)
	if len(other) > 0 {
		return openai.ChatCompletionRequest{}, fmt.Errorf("OpenAI chat with %s attachment: %w", other[0].MIMEType, ErrUnsupported)
	}

	msg := openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser}
	if len(images) == 0 {
		msg.Content = req.Prompt
	} else {
		msg.MultiContent = append(msg.MultiContent, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeText,
			Text: req.Prompt,
		})
		for _, img := range images {
			msg.MultiContent = append(msg.MultiContent, openai.ChatMessagePart{
				Type: openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{
					URL:    img.DataURL(),
					Detail: openai.ImageURLDetailAuto,
				},
			})
		}
	}

	return openai.ChatCompletionRequest{
		Model:     resolveModel(req.Model, o.model),
		Messages:  []openai.ChatCompletionMessage{msg},
		MaxTokens: o.maxTokens,
	}, nil
}
