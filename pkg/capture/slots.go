package capture

import (
	"errors"
	"fmt"

	"github.com/helmcode/interview-ai/pkg/model"
)

// MaxImages is the number of screenshot slots a session offers.
const MaxImages = 7

var (
	ErrSlotsFull   = errors.New("all image slots are filled, clear an image first")
	ErrInvalidSlot = errors.New("invalid image slot")
	ErrNotImage    = errors.New("attachment is not an image")
)

// SlotStore is a fixed table of image slots numbered from 1. It is owned by
// a single session loop and does no locking.
type SlotStore struct {
	slots []*model.Attachment
}

// NewSlotStore returns a store with capacity slots, clamped to 1..MaxImages.
func NewSlotStore(capacity int) *SlotStore {
	if capacity <= 0 || capacity > MaxImages {
		capacity = MaxImages
	}
	return &SlotStore{slots: make([]*model.Attachment, capacity)}
}

// Add places img in the lowest free slot and returns its number.
func (s *SlotStore) Add(img model.Attachment) (int, error) {
	if !img.IsImage() {
		return 0, fmt.Errorf("%s: %w", img.Name, ErrNotImage)
	}
	for i, slot := range s.slots {
		if slot == nil {
			s.slots[i] = &img
			return i + 1, nil
		}
	}
	return 0, ErrSlotsFull
}

func (s *SlotStore) Get(slot int) (model.Attachment, bool) {
	if slot < 1 || slot > len(s.slots) || s.slots[slot-1] == nil {
		return model.Attachment{}, false
	}
	return *s.slots[slot-1], true
}

func (s *SlotStore) Clear(slot int) error {
	if slot < 1 || slot > len(s.slots) {
		return fmt.Errorf("slot %d: %w", slot, ErrInvalidSlot)
	}
	s.slots[slot-1] = nil
	return nil
}

func (s *SlotStore) ClearAll() {
	for i := range s.slots {
		s.slots[i] = nil
	}
}

// Filled returns the stored images in slot order, skipping empty slots.
func (s *SlotStore) Filled() []model.Attachment {
	out := make([]model.Attachment, 0, len(s.slots))
	for _, slot := range s.slots {
		if slot != nil {
			out = append(out, *slot)
		}
	}
	return out
}

func (s *SlotStore) Len() int {
	n := 0
	for _, slot := range s.slots {
		if slot != nil {
			n++
		}
	}
	return n
}

func (s *SlotStore) Cap() int {
	return len(s.slots)
}
