package transcriber

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-audio/wav"
	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
	"github.com/nguyentantai21042004/transcript-flow/pkg/executor"
	"github.com/zeozeozeo/gomplerate"
)

const targetSampleRate = 16000 // whisper.cpp requires 16kHz

var errNotPCMWav = errors.New("not a 16-bit PCM WAV file")

// pcmAudio is interleaved 16-bit PCM
type pcmAudio struct {
	samples    []int16
	sampleRate int
	channels   int
}

// sampleLoader turns an audio file into 16kHz mono float32 samples.
// 16-bit PCM WAV is decoded in process; anything else goes through ffmpeg.
type sampleLoader struct {
	ffmpeg   string
	executor executor.Executor
	logger   logger.Logger
}

func (l *sampleLoader) Load(ctx context.Context, path string) ([]float32, error) {
	if strings.EqualFold(filepath.Ext(path), ".wav") {
		samples, err := loadWAV(path)
		if err == nil {
			l.logger.Debug(ctx, "Decoded WAV in process: %d samples (%.1fs)", len(samples), float64(len(samples))/targetSampleRate)
			return samples, nil
		}
		l.logger.Debug(ctx, "In-process WAV decode failed (%v), converting with ffmpeg", err)
	}
	return l.convertWithFFmpeg(ctx, path)
}

func loadWAV(path string) ([]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open audio file: %w", err)
	}
	defer f.Close()

	pcm, err := decodeWAV(f)
	if err != nil {
		return nil, err
	}
	return toWhisperSamples(pcm)
}

// toWhisperSamples downmixes, resamples to 16kHz and normalizes to [-1, 1]
func toWhisperSamples(pcm *pcmAudio) ([]float32, error) {
	samples := toMono(pcm.samples, pcm.channels)
	samples, err := resampleInt16(samples, pcm.sampleRate, targetSampleRate)
	if err != nil {
		return nil, err
	}
	return int16ToFloat32(samples), nil
}

// decodeWAV reads a 16-bit PCM WAV stream. Any other encoding returns
// errNotPCMWav so the caller can hand the file to ffmpeg instead.
func decodeWAV(r io.ReadSeeker) (*pcmAudio, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, errNotPCMWav
	}
	// 1 = PCM, 0xFFFE = WAVE_FORMAT_EXTENSIBLE
	if (dec.WavAudioFormat != 1 && dec.WavAudioFormat != 0xFFFE) || dec.BitDepth != 16 {
		return nil, errNotPCMWav
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode wav: %w", err)
	}

	format := dec.Format()
	if format == nil || format.NumChannels == 0 || format.SampleRate == 0 {
		return nil, fmt.Errorf("invalid wav format")
	}
	if len(buf.Data) == 0 {
		return nil, fmt.Errorf("no audio samples in data chunk")
	}

	samples := make([]int16, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = int16(v) // #nosec G115 - 16-bit source
	}
	return &pcmAudio{
		samples:    samples,
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
	}, nil
}

// toMono converts multi-channel audio to mono by averaging channels.
func toMono(samples []int16, channels int) []int16 {
	if channels <= 1 {
		return samples
	}

	mono := make([]int16, len(samples)/channels)
	for i := range mono {
		var sum int32
		for ch := 0; ch < channels; ch++ {
			sum += int32(samples[i*channels+ch])
		}
		mono[i] = int16(sum / int32(channels)) // #nosec G115 - average stays in range
	}
	return mono
}

// resampleInt16 converts audio from one sample rate to another using gomplerate.
func resampleInt16(samples []int16, fromRate, toRate int) ([]int16, error) {
	if fromRate == toRate {
		return samples, nil
	}

	resampler, err := gomplerate.NewResampler(1, fromRate, toRate)
	if err != nil {
		return nil, fmt.Errorf("create resampler %d->%d: %w", fromRate, toRate, err)
	}
	return resampler.ResampleInt16(samples), nil
}

// int16ToFloat32 converts int16 samples to float32 normalized to [-1, 1].
func int16ToFloat32(samples []int16) []float32 {
	result := make([]float32, len(samples))
	for i, s := range samples {
		result[i] = float32(s) / 32768.0
	}
	return result
}

// convertWithFFmpeg asks ffmpeg for a 16kHz mono 16-bit WAV and decodes it
func (l *sampleLoader) convertWithFFmpeg(ctx context.Context, inputPath string) ([]float32, error) {
	tmpFile, err := os.CreateTemp("", "transcribe-*.wav")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	tmpFile.Close()
	defer os.Remove(tmpPath)

	args := []string{
		"-hide_banner",
		"-i", inputPath,
		"-vn",
		"-ar", strconv.Itoa(targetSampleRate),
		"-ac", "1",
		"-acodec", "pcm_s16le",
		"-f", "wav",
		"-y",
		tmpPath,
	}
	if _, err := l.executor.Execute(ctx, l.ffmpeg, args...); err != nil {
		return nil, fmt.Errorf("ffmpeg conversion failed: %w", err)
	}

	samples, err := loadWAV(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("read converted audio: %w", err)
	}
	l.logger.Debug(ctx, "Converted with ffmpeg: %d samples (%.1fs)", len(samples), float64(len(samples))/targetSampleRate)
	return samples, nil
}
