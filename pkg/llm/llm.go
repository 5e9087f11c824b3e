package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/helmcode/interview-ai/pkg/model"
)

var (
	// ErrUnsupported is returned when a provider cannot handle a request,
	// such as Claude being asked to transcribe audio.
	ErrUnsupported = errors.New("not supported by provider")
	// ErrEmptyResponse is returned when the provider answers with no text.
	ErrEmptyResponse = errors.New("empty response")
)

// DefaultModel selects the provider's own default model.
const DefaultModel = "default"

const (
	defaultTimeout   = 60 * time.Second
	defaultMaxTokens = 4000
)

// Request is one chat call: a prompt plus zero or more attachments.
type Request struct {
	Prompt      string
	Attachments []model.Attachment
	// Model overrides the client's configured model. Empty or "default"
	// keeps the configured one.
	Model string
}

// LLM is the hosted chat service the pipelines depend on.
type LLM interface {
	// Chat resolves once with the full response text.
	Chat(ctx context.Context, req Request) (string, error)
	// Stream yields response fragments in production order. The channel is
	// closed by the producer when the response completes or fails.
	Stream(ctx context.Context, req Request) (<-chan StreamChunk, error)
	// Transcribe turns an audio attachment into text.
	Transcribe(ctx context.Context, audio model.Attachment, prompt string) (string, error)
	GetModel() string
	Provider() Provider
}

func resolveModel(requested, configured string) string {
	requested = strings.TrimSpace(requested)
	if requested == "" || requested == DefaultModel {
		return configured
	}
	return requested
}

func splitAttachments(attachments []model.Attachment) (images, other []model.Attachment) {
	for _, a := range attachments {
		if a.IsImage() {
			images = append(images, a)
		} else {
			other = append(other, a)
		}
	}
	return images, other
}
