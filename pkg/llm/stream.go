package llm

import (
	"context"
	"strings"
)

// StreamChunk is one fragment of a streamed response.
type StreamChunk struct {
	Content string
	Err     error
	Done    bool
}

// Collect drains chunks and concatenates them in arrival order. onChunk, if
// set, is called with the accumulated text after every non-empty fragment.
// The text gathered so far is returned alongside any error.
func Collect(ctx context.Context, chunks <-chan StreamChunk, onChunk func(partial string)) (string, error) {
	var sb strings.Builder
	for {
		select {
		case <-ctx.Done():
			return sb.String(), ctx.Err()
		case chunk, ok := <-chunks:
			if !ok {
				return sb.String(), nil
			}
			if chunk.Err != nil {
				return sb.String(), chunk.Err
			}
			if chunk.Content != "" {
				sb.WriteString(chunk.Content)
				if onChunk != nil {
					onChunk(sb.String())
				}
			}
			if chunk.Done {
				return sb.String(), nil
			}
		}
	}
}

// send delivers a chunk unless the consumer has gone away.
func send(ctx context.Context, chunks chan<- StreamChunk, chunk StreamChunk) bool {
	select {
	case chunks <- chunk:
		return true
	case <-ctx.Done():
		return false
	}
}
