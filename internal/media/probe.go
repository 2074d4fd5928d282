package media

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ProbeResult is the subset of ffprobe output logged during inspection
type ProbeResult struct {
	Format FormatInfo
	Video  []VideoStream
	Audio  []AudioStream
}

type FormatInfo struct {
	Name     string
	LongName string
	Duration float64
	Size     int64
	BitRate  int64
	Streams  int
}

type VideoStream struct {
	Index  int
	Codec  string
	Width  int
	Height int
	PixFmt string
}

type AudioStream struct {
	Index      int
	Codec      string
	Channels   int
	SampleRate int
	Language   string
}

// HasAudio reports whether the container carries at least one audio stream
func (p *ProbeResult) HasAudio() bool {
	return p != nil && len(p.Audio) > 0
}

// Summary is a one-line description for logs
func (p *ProbeResult) Summary() string {
	if p == nil {
		return "no probe data"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s, %.1fs", p.Format.Name, p.Format.Duration)
	for _, v := range p.Video {
		fmt.Fprintf(&b, ", video #%d %s %dx%d", v.Index, v.Codec, v.Width, v.Height)
	}
	for _, a := range p.Audio {
		fmt.Fprintf(&b, ", audio #%d %s %dHz %dch", a.Index, a.Codec, a.SampleRate, a.Channels)
	}
	return b.String()
}

// ParseProbeJSON converts raw ffprobe JSON output into a ProbeResult.
// Exported for testing without a real ffprobe binary.
func ParseProbeJSON(data []byte) (*ProbeResult, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse ffprobe JSON: %w", err)
	}

	pr := &ProbeResult{
		Format: FormatInfo{
			Name:     raw.Format.FormatName,
			LongName: raw.Format.FormatLongName,
			Duration: parseFloat(raw.Format.Duration),
			Size:     parseInt64(raw.Format.Size),
			BitRate:  parseInt64(raw.Format.BitRate),
			Streams:  raw.Format.NbStreams,
		},
	}

	for _, s := range raw.Streams {
		switch s.CodecType {
		case "video":
			pr.Video = append(pr.Video, VideoStream{
				Index:  s.Index,
				Codec:  s.CodecName,
				Width:  s.Width,
				Height: s.Height,
				PixFmt: s.PixFmt,
			})
		case "audio":
			pr.Audio = append(pr.Audio, AudioStream{
				Index:      s.Index,
				Codec:      s.CodecName,
				Channels:   s.Channels,
				SampleRate: int(parseInt64(s.SampleRate)),
				Language:   s.Tags["language"],
			})
		}
	}
	return pr, nil
}

// --- ffprobe JSON wire types ---

type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	NbStreams      int    `json:"nb_streams"`
	FormatName     string `json:"format_name"`
	FormatLongName string `json:"format_long_name"`
	Duration       string `json:"duration"`
	Size           string `json:"size"`
	BitRate        string `json:"bit_rate"`
}

type ffprobeStream struct {
	Index      int               `json:"index"`
	CodecName  string            `json:"codec_name"`
	CodecType  string            `json:"codec_type"`
	PixFmt     string            `json:"pix_fmt"`
	Width      int               `json:"width"`
	Height     int               `json:"height"`
	Channels   int               `json:"channels"`
	SampleRate string            `json:"sample_rate"`
	Tags       map[string]string `json:"tags"`
}

// ffprobe reports numbers as strings

func parseInt64(s string) int64 {
	n, _ := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}
