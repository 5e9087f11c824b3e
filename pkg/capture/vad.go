package capture

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"sort"

	"github.com/helmcode/interview-ai/pkg/model"
)

// ErrNoSpeech is returned when a clip holds less voiced audio than
// VoiceParams.MinSpeechMS.
var ErrNoSpeech = errors.New("no speech detected")

const vadFrameMS = 20

// VoiceParams tunes FilterSpeech.
type VoiceParams struct {
	// Sensitivity in [0, 1]. Higher values treat quieter frames as speech.
	Sensitivity float64
	// MinSpeechMS is the least voiced audio a clip must contain.
	MinSpeechMS int
	// SilenceMS is how much trailing silence is kept after the last voiced
	// frame. Zero keeps all of it.
	SilenceMS int
	// NoiseSuppression raises the speech threshold above the clip's noise
	// floor.
	NoiseSuppression bool
}

// threshold maps Sensitivity to a normalized RMS level.
func (p VoiceParams) threshold() float64 {
	s := math.Min(math.Max(p.Sensitivity, 0), 1)
	return 0.001 + 0.05*(1-s)
}

// FilterSpeech rejects clips without enough speech and trims trailing
// silence longer than SilenceMS. Only 16-bit PCM WAV is inspected; any
// other encoding is returned unchanged.
func FilterSpeech(clip model.Attachment, p VoiceParams) (model.Attachment, error) {
	w, ok := parseWAV(clip.Data)
	if !ok {
		return clip, nil
	}
	frameBytes := w.sampleRate * vadFrameMS / 1000 * w.channels * 2
	if frameBytes == 0 {
		return clip, nil
	}

	levels := frameLevels(w.data, frameBytes)
	threshold := p.threshold()
	if p.NoiseSuppression && len(levels) > 0 {
		threshold = math.Max(threshold, 2*noiseFloor(levels))
	}

	voiced, last := 0, -1
	for i, l := range levels {
		if l >= threshold {
			voiced++
			last = i
		}
	}
	if voiced == 0 || voiced*vadFrameMS < p.MinSpeechMS {
		return model.Attachment{}, ErrNoSpeech
	}

	if p.SilenceMS > 0 {
		keep := (last+1)*frameBytes + p.SilenceMS/vadFrameMS*frameBytes
		if keep < len(w.data) {
			clip.Data = w.encode(w.data[:keep])
		}
	}
	return clip, nil
}

// frameLevels returns the RMS of each frame normalized to [0, 1]. A short
// final frame is measured over the samples it has.
func frameLevels(pcm []byte, frameBytes int) []float64 {
	levels := make([]float64, 0, len(pcm)/frameBytes+1)
	for off := 0; off+1 < len(pcm); off += frameBytes {
		end := min(off+frameBytes, len(pcm))
		var sum float64
		n := 0
		for i := off; i+1 < end; i += 2 {
			v := float64(int16(binary.LittleEndian.Uint16(pcm[i:]))) / 32768
			sum += v * v
			n++
		}
		levels = append(levels, math.Sqrt(sum/float64(n)))
	}
	return levels
}

// noiseFloor is the 10th percentile frame level.
func noiseFloor(levels []float64) float64 {
	sorted := append([]float64(nil), levels...)
	sort.Float64s(sorted)
	return sorted[len(sorted)/10]
}

type wavPCM struct {
	format     []byte
	channels   int
	sampleRate int
	data       []byte
}

// parseWAV walks the RIFF chunks looking for a PCM16 fmt chunk and the data
// chunk. A data chunk whose size overruns the file is clamped, which is how
// recorders that never rewrite the header leave it.
func parseWAV(b []byte) (wavPCM, bool) {
	if len(b) < 12 || string(b[0:4]) != "RIFF" || string(b[8:12]) != "WAVE" {
		return wavPCM{}, false
	}

	var w wavPCM
	for off := 12; off+8 <= len(b); {
		id := string(b[off : off+4])
		size := int(binary.LittleEndian.Uint32(b[off+4 : off+8]))
		body := off + 8
		if size < 0 || body+size > len(b) {
			if id != "data" {
				return wavPCM{}, false
			}
			size = len(b) - body
		}

		switch id {
		case "fmt ":
			if size < 16 {
				return wavPCM{}, false
			}
			w.format = b[body : body+16]
		case "data":
			w.data = b[body : body+size]
		}
		off = body + size + size%2
	}
	if w.format == nil || w.data == nil {
		return wavPCM{}, false
	}

	audioFormat := binary.LittleEndian.Uint16(w.format[0:2])
	bits := binary.LittleEndian.Uint16(w.format[14:16])
	w.channels = int(binary.LittleEndian.Uint16(w.format[2:4]))
	w.sampleRate = int(binary.LittleEndian.Uint32(w.format[4:8]))
	if audioFormat != 1 || bits != 16 || w.channels == 0 || w.sampleRate == 0 {
		return wavPCM{}, false
	}
	return w, true
}

// encode writes a canonical 44-byte header followed by pcm.
func (w wavPCM) encode(pcm []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(44 + len(pcm))
	buf.WriteString("RIFF")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(36+len(pcm)))
	buf.WriteString("WAVEfmt ")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(16))
	buf.Write(w.format)
	buf.WriteString("data")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(len(pcm)))
	buf.Write(pcm)
	return buf.Bytes()
}
