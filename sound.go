package main

import (
	"bytes"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

type SoundEvent int

const (
	SoundMenuMove SoundEvent = iota
	SoundMenuSelect
	SoundPowerOn
	SoundTheme
	SoundType
	SoundEmote
	SoundPrint
	SoundPrintDone
	SoundMove
	SoundRotate
	SoundLock
	SoundLine1
	SoundLine2
	SoundLine3
	SoundLine4
	SoundDrop
	SoundGameOver
)

type SoundEngine struct {
	enabled    bool
	sampleRate int
	ctx        *oto.Context
	volume     float64
	mu         sync.RWMutex
}

// NewSoundEngine accepts a nil context; Play is then a no-op.
func NewSoundEngine(ctx *oto.Context, enabled bool) *SoundEngine {
	return &SoundEngine{
		enabled:    enabled,
		sampleRate: audioSampleRate,
		ctx:        ctx,
		volume:     0.7,
	}
}

func (s *SoundEngine) SetEnabled(enabled bool) {
	s.mu.Lock()
	s.enabled = enabled
	s.mu.Unlock()
}

func (s *SoundEngine) SetVolume(volume float64) {
	s.mu.Lock()
	s.volume = clampVolume(volume)
	s.mu.Unlock()
}

func (s *SoundEngine) Play(event SoundEvent) {
	s.mu.RLock()
	ctx := s.ctx
	enabled := s.enabled
	volume := s.volume
	s.mu.RUnlock()
	if !enabled || ctx == nil {
		return
	}
	sequence := tonesForEvent(event)
	if len(sequence) == 0 {
		return
	}
	go func() {
		buffer := renderToneSequence(sequence, s.sampleRate, volume)
		player := ctx.NewPlayer(bytes.NewReader(buffer))
		player.Play()
		for player.IsPlaying() {
			time.Sleep(5 * time.Millisecond)
		}
		_ = player.Close()
	}()
}

type toneSpec struct {
	frequency float64
	duration  time.Duration
	volume    float64
}

func tonesForEvent(event SoundEvent) []toneSpec {
	switch event {
	case SoundMenuMove:
		return []toneSpec{{frequency: 260, duration: 24 * time.Millisecond, volume: 0.16}}
	case SoundMenuSelect:
		return []toneSpec{{frequency: 520, duration: 70 * time.Millisecond, volume: 0.2}}
	case SoundPowerOn:
		return []toneSpec{
			{frequency: 1046, duration: 60 * time.Millisecond, volume: 0.22},
			{frequency: 2093, duration: 240 * time.Millisecond, volume: 0.22},
		}
	case SoundTheme:
		return []toneSpec{
			{frequency: 660, duration: 40 * time.Millisecond, volume: 0.18},
			{frequency: 880, duration: 60 * time.Millisecond, volume: 0.18},
		}
	case SoundType:
		return []toneSpec{{frequency: 1200, duration: 8 * time.Millisecond, volume: 0.08}}
	case SoundEmote:
		return []toneSpec{
			{frequency: 784, duration: 50 * time.Millisecond, volume: 0.2},
			{frequency: 988, duration: 50 * time.Millisecond, volume: 0.2},
			{frequency: 1175, duration: 80 * time.Millisecond, volume: 0.2},
		}
	case SoundPrint:
		return []toneSpec{
			{frequency: 150, duration: 40 * time.Millisecond, volume: 0.2},
			{frequency: 170, duration: 40 * time.Millisecond, volume: 0.2},
		}
	case SoundPrintDone:
		return []toneSpec{
			{frequency: 523, duration: 70 * time.Millisecond, volume: 0.22},
			{frequency: 659, duration: 70 * time.Millisecond, volume: 0.22},
			{frequency: 784, duration: 120 * time.Millisecond, volume: 0.22},
		}
	case SoundMove:
		return []toneSpec{{frequency: 380, duration: 25 * time.Millisecond, volume: 0.18}}
	case SoundRotate:
		return []toneSpec{{frequency: 520, duration: 40 * time.Millisecond, volume: 0.25}}
	case SoundLock:
		return []toneSpec{{frequency: 220, duration: 70 * time.Millisecond, volume: 0.3}}
	case SoundLine1:
		return []toneSpec{{frequency: 440, duration: 90 * time.Millisecond, volume: 0.3}}
	case SoundLine2:
		return []toneSpec{
			{frequency: 440, duration: 70 * time.Millisecond, volume: 0.3},
			{frequency: 660, duration: 90 * time.Millisecond, volume: 0.3},
		}
	case SoundLine3:
		return []toneSpec{
			{frequency: 440, duration: 70 * time.Millisecond, volume: 0.3},
			{frequency: 660, duration: 70 * time.Millisecond, volume: 0.3},
			{frequency: 880, duration: 90 * time.Millisecond, volume: 0.3},
		}
	case SoundLine4:
		return []toneSpec{
			{frequency: 660, duration: 80 * time.Millisecond, volume: 0.3},
			{frequency: 880, duration: 80 * time.Millisecond, volume: 0.3},
			{frequency: 990, duration: 120 * time.Millisecond, volume: 0.3},
		}
	case SoundDrop:
		return []toneSpec{{frequency: 240, duration: 55 * time.Millisecond, volume: 0.22}}
	case SoundGameOver:
		return []toneSpec{
			{frequency: 392, duration: 120 * time.Millisecond, volume: 0.28},
			{frequency: 262, duration: 120 * time.Millisecond, volume: 0.28},
			{frequency: 180, duration: 240 * time.Millisecond, volume: 0.28},
		}
	default:
		return nil
	}
}

func soundEventForLock(result LockResult) (SoundEvent, bool) {
	switch {
	case !result.Locked:
		return SoundLock, false
	case result.Cleared == 0:
		return SoundLock, true
	case result.Cleared == 1:
		return SoundLine1, true
	case result.Cleared == 2:
		return SoundLine2, true
	case result.Cleared == 3:
		return SoundLine3, true
	default:
		return SoundLine4, true
	}
}

// renderToneSequence produces interleaved stereo int16 little-endian PCM with
// a 10ms gap between tones.
func renderToneSequence(sequence []toneSpec, sampleRate int, masterVolume float64) []byte {
	baseVolume := 0.3
	gap := 10 * time.Millisecond
	gapSamples := int(float64(sampleRate) * gap.Seconds())
	bytesPerSample := 4
	totalSamples := 0
	for i, spec := range sequence {
		totalSamples += int(float64(sampleRate) * spec.duration.Seconds())
		if i < len(sequence)-1 {
			totalSamples += gapSamples
		}
	}
	buffer := make([]byte, totalSamples*bytesPerSample)
	index := 0
	for i, spec := range sequence {
		volume := baseVolume
		if spec.volume > 0 {
			volume = spec.volume
		}
		volume *= clampVolume(masterVolume)
		renderTone(buffer, index, spec, sampleRate, volume)
		index += int(float64(sampleRate)*spec.duration.Seconds()) * bytesPerSample
		if i < len(sequence)-1 {
			index += gapSamples * bytesPerSample
		}
	}
	return buffer
}

func renderTone(buffer []byte, start int, spec toneSpec, sampleRate int, volume float64) {
	const maxInt16 = 1<<15 - 1
	samples := int(float64(sampleRate) * spec.duration.Seconds())
	fadeSamples := int(float64(sampleRate) * 0.003)
	for i := 0; i < samples; i++ {
		env := 1.0
		if fadeSamples > 0 {
			if i < fadeSamples {
				env = float64(i) / float64(fadeSamples)
			} else if i > samples-fadeSamples {
				env = float64(samples-i) / float64(fadeSamples)
			}
			if env < 0 {
				env = 0
			}
		}
		sample := 0.0
		if spec.frequency > 0 {
			sample = math.Sin(2 * math.Pi * spec.frequency * float64(i) / float64(sampleRate))
		}
		value := int16(sample * volume * env * maxInt16)
		buffer[start+i*4] = byte(value)
		buffer[start+i*4+1] = byte(value >> 8)
		buffer[start+i*4+2] = byte(value)
		buffer[start+i*4+3] = byte(value >> 8)
	}
}

func clampVolume(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}

func volumeFromPercent(value int) float64 {
	return float64(clampVolumePercent(value)) / 100
}

func clampVolumePercent(value int) int {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return value
}
