package model

import (
	"encoding/base64"
	"strings"
)

// Attachment is a captured blob sent alongside a prompt: a pasted
// screenshot or a recorded audio clip.
type Attachment struct {
	Name     string `json:"name" yaml:"name"`
	MIMEType string `json:"mime_type" yaml:"mime_type"`
	Data     []byte `json:"-" yaml:"-"`
}

func (a Attachment) IsImage() bool {
	return strings.HasPrefix(a.MIMEType, "image/")
}

func (a Attachment) IsAudio() bool {
	return strings.HasPrefix(a.MIMEType, "audio/") || a.MIMEType == "video/webm"
}

// Base64 returns the standard base64 encoding of the payload.
func (a Attachment) Base64() string {
	return base64.StdEncoding.EncodeToString(a.Data)
}

// DataURL returns the payload as a data: URL, the form image inputs accept.
func (a Attachment) DataURL() string {
	return "data:" + a.MIMEType + ";base64," + a.Base64()
}
