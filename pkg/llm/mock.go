package llm

import (
	"context"
	"sync"

	"github.com/helmcode/interview-ai/pkg/model"
)

// MockCall records one request made against a MockLLM.
type MockCall struct {
	Method string
	Req    Request
	Prompt string
}

// MockLLM is a scriptable LLM for tests and offline demos.
type MockLLM struct {
	ChatResponse string
	ChatErr      error

	// StreamChunks are emitted in order. StreamErr fails the call before any
	// chunk is produced; StreamChunkErr is delivered after the last chunk.
	StreamChunks   []string
	StreamErr      error
	StreamChunkErr error

	// Transcripts and TranscribeErrs are consumed one per call.
	Transcripts    []string
	TranscribeErrs []error

	Model string

	calls []MockCall
	mu    sync.Mutex
}

func NewMockLLM() *MockLLM {
	return &MockLLM{Model: "mock"}
}

func (m *MockLLM) record(call MockCall) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
	n := 0
	for _, c := range m.calls {
		if c.Method == call.Method {
			n++
		}
	}
	return n - 1
}

func (m *MockLLM) Chat(_ context.Context, req Request) (string, error) {
	m.record(MockCall{Method: "Chat", Req: req})
	if m.ChatErr != nil {
		return "", m.ChatErr
	}
	return m.ChatResponse, nil
}

func (m *MockLLM) Stream(ctx context.Context, req Request) (<-chan StreamChunk, error) {
	m.record(MockCall{Method: "Stream", Req: req})
	if m.StreamErr != nil {
		return nil, m.StreamErr
	}

	chunks := make(chan StreamChunk)
	go func() {
		defer close(chunks)
		for _, c := range m.StreamChunks {
			if !send(ctx, chunks, StreamChunk{Content: c}) {
				return
			}
		}
		if m.StreamChunkErr != nil {
			send(ctx, chunks, StreamChunk{Err: m.StreamChunkErr})
			return
		}
		send(ctx, chunks, StreamChunk{Done: true})
	}()
	return chunks, nil
}

func (m *MockLLM) Transcribe(_ context.Context, audio model.Attachment, prompt string) (string, error) {
	i := m.record(MockCall{Method: "Transcribe", Prompt: prompt, Req: Request{Attachments: []model.Attachment{audio}}})
	if i < len(m.TranscribeErrs) && m.TranscribeErrs[i] != nil {
		return "", m.TranscribeErrs[i]
	}
	if i < len(m.Transcripts) {
		return m.Transcripts[i], nil
	}
	return "", nil
}

func (m *MockLLM) GetModel() string {
	return m.Model
}

func (m *MockLLM) Provider() Provider {
	return "mock"
}

// Calls returns a copy of every recorded call in order.
func (m *MockLLM) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MockCall(nil), m.calls...)
}

// CallCount returns how many times method was invoked.
func (m *MockLLM) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c.Method == method {
			n++
		}
	}
	return n
}
