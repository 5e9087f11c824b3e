package capture

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/helmcode/interview-ai/pkg/model"
)

var (
	ErrPermissionDenied  = errors.New("permission denied")
	ErrDeviceUnavailable = errors.New("capture source unavailable")
)

// LoadAttachment reads a file and sniffs its content type.
func LoadAttachment(path string) (model.Attachment, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Attachment{}, sourceError(path, err)
	}
	defer f.Close()
	return ReadAttachment(filepath.Base(path), f)
}

// ReadAttachment reads a named blob from r, as when an image is piped on
// stdin instead of pasted.
func ReadAttachment(name string, r io.Reader) (model.Attachment, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return model.Attachment{}, fmt.Errorf("read %s: %w", name, err)
	}
	if len(data) == 0 {
		return model.Attachment{}, fmt.Errorf("read %s: %w", name, io.ErrUnexpectedEOF)
	}
	return model.Attachment{Name: name, MIMEType: detectMIME(name, data), Data: data}, nil
}

// LoadImage is LoadAttachment restricted to image content.
func LoadImage(path string) (model.Attachment, error) {
	a, err := LoadAttachment(path)
	if err != nil {
		return a, err
	}
	if !a.IsImage() {
		return model.Attachment{}, fmt.Errorf("%s (%s): %w", path, a.MIMEType, ErrNotImage)
	}
	return a, nil
}

func detectMIME(name string, data []byte) string {
	sniffed := http.DetectContentType(data)
	if i := strings.IndexByte(sniffed, ';'); i >= 0 {
		sniffed = sniffed[:i]
	}
	if sniffed != "application/octet-stream" && sniffed != "text/plain" {
		if sniffed == "audio/wave" {
			return "audio/wav"
		}
		return sniffed
	}
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); byExt != "" {
		if i := strings.IndexByte(byExt, ';'); i >= 0 {
			byExt = byExt[:i]
		}
		return byExt
	}
	return sniffed
}

func sourceError(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%s: %w", path, ErrPermissionDenied)
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%s: %w", path, ErrDeviceUnavailable)
	default:
		return fmt.Errorf("open %s: %w", path, err)
	}
}
