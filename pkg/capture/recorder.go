package capture

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/helmcode/interview-ai/pkg/model"
)

var (
	ErrAlreadyRecording = errors.New("already recording")
	ErrNotRecording     = errors.New("not recording")
	ErrNotAudio         = errors.New("recording is not audio")
)

// AudioSource produces one audio clip between Start and Stop.
type AudioSource interface {
	Start(ctx context.Context) error
	Stop() (model.Attachment, error)
}

// Recorder guards an AudioSource with a single recording flag so a second
// start or a stray stop is rejected instead of re-entering the source.
// It is not safe for concurrent use.
type Recorder struct {
	source    AudioSource
	recording bool
}

func NewRecorder(source AudioSource) *Recorder {
	return &Recorder{source: source}
}

func (r *Recorder) IsRecording() bool {
	return r.recording
}

func (r *Recorder) Start(ctx context.Context) error {
	if r.recording {
		return ErrAlreadyRecording
	}
	r.recording = true
	if err := r.source.Start(ctx); err != nil {
		r.recording = false
		return fmt.Errorf("start recording: %w", err)
	}
	return nil
}

// Stop ends the recording and returns the clip. The flag is reset even when
// the source fails.
func (r *Recorder) Stop() (model.Attachment, error) {
	if !r.recording {
		return model.Attachment{}, ErrNotRecording
	}
	r.recording = false
	clip, err := r.source.Stop()
	if err != nil {
		return model.Attachment{}, fmt.Errorf("stop recording: %w", err)
	}
	return clip, nil
}

// FileSource plays back a pre-recorded clip as if it were captured live.
// When Voice is set the clip goes through FilterSpeech on Stop.
type FileSource struct {
	Path  string
	Voice *VoiceParams
}

func (f *FileSource) Start(_ context.Context) error {
	fh, err := os.Open(f.Path)
	if err != nil {
		return sourceError(f.Path, err)
	}
	return fh.Close()
}

func (f *FileSource) Stop() (model.Attachment, error) {
	clip, err := LoadAttachment(f.Path)
	if err != nil {
		return model.Attachment{}, err
	}
	if !clip.IsAudio() {
		return model.Attachment{}, fmt.Errorf("%s (%s): %w", f.Path, clip.MIMEType, ErrNotAudio)
	}
	if f.Voice != nil {
		return FilterSpeech(clip, *f.Voice)
	}
	return clip, nil
}
