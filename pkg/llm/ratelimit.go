package llm

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/helmcode/interview-ai/pkg/model"
)

// rateLimited gates every call of the wrapped client behind a token bucket.
type rateLimited struct {
	LLM
	limiter *rate.Limiter
}

// RateLimited wraps l so it issues at most perMinute requests per minute.
// A non-positive perMinute returns l unchanged.
func RateLimited(l LLM, perMinute int) LLM {
	if perMinute <= 0 {
		return l
	}
	return &rateLimited{
		LLM:     l,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1),
	}
}

func (r *rateLimited) wait(ctx context.Context) error {
	if err := r.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}
	return nil
}

func (r *rateLimited) Chat(ctx context.Context, req Request) (string, error) {
	if err := r.wait(ctx); err != nil {
		return "", err
	}
	return r.LLM.Chat(ctx, req)
}

func (r *rateLimited) Stream(ctx context.Context, req Request) (<-chan StreamChunk, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	return r.LLM.Stream(ctx, req)
}

func (r *rateLimited) Transcribe(ctx context.Context, audio model.Attachment, prompt string) (string, error) {
	if err := r.wait(ctx); err != nil {
		return "", err
	}
	return r.LLM.Transcribe(ctx, audio, prompt)
}
