package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/helmcode/interview-ai/pkg/capture"
	"github.com/helmcode/interview-ai/pkg/config"
	"github.com/helmcode/interview-ai/pkg/model"
)

// CacheKind selects one of the two last-response slots.
type CacheKind string

const (
	CacheResponse CacheKind = "response"
	CacheAnalysis CacheKind = "analysis"
)

// Session is the state of one interactive run. It is owned by a single
// command loop and is not safe for concurrent use.
type Session struct {
	ID        string
	StartedAt time.Time
	Mode      config.Mode
	Settings  config.AppSettings
	Images    *capture.SlotStore

	history []model.ChatMessage
	cache   map[CacheKind]string
}

// New creates a session sized by settings.MaxImages.
func New(mode config.Mode, settings config.AppSettings) *Session {
	return &Session{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
		Mode:      mode,
		Settings:  settings,
		Images:    capture.NewSlotStore(settings.MaxImages),
		cache:     make(map[CacheKind]string),
	}
}

func (s *Session) AppendMessage(role model.Role, content string) {
	s.history = append(s.history, model.ChatMessage{Role: role, Content: content})
}

// History returns a copy of the chat history in insertion order.
func (s *Session) History() []model.ChatMessage {
	out := make([]model.ChatMessage, len(s.history))
	copy(out, s.history)
	return out
}

// RecentHistory returns at most n trailing messages. n <= 0 returns all.
func (s *Session) RecentHistory(n int) []model.ChatMessage {
	h := s.History()
	if n <= 0 || n >= len(h) {
		return h
	}
	return h[len(h)-n:]
}

func (s *Session) Remember(kind CacheKind, text string) {
	s.cache[kind] = text
}

func (s *Session) LastResponse() (string, bool) {
	v, ok := s.cache[CacheResponse]
	return v, ok
}

func (s *Session) LastAnalysis() (string, bool) {
	v, ok := s.cache[CacheAnalysis]
	return v, ok
}

// SetMode switches between standard and meeting mode without touching
// history.
func (s *Session) SetMode(mode config.Mode) {
	s.Mode = mode
}

// ClearAll empties the image slots and the response cache.
func (s *Session) ClearAll() {
	s.Images.ClearAll()
	clear(s.cache)
}

// ClearHistory drops the chat transcript only.
func (s *Session) ClearHistory() {
	s.history = nil
}

// End discards everything scoped to the session.
func (s *Session) End() {
	s.ClearAll()
	s.ClearHistory()
}
