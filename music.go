package main

import (
	"bytes"
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"os"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/hajimehoshi/go-mp3"
)

var errSampleRate = errors.New("unsupported sample rate")

// MusicPlayer loops one track at a time. Tracks with a file are decoded from
// MP3; the rest play a short synthesized tune derived from the title.
type MusicPlayer struct {
	ctx     *oto.Context
	mu      sync.Mutex
	player  *oto.Player
	source  *countingReader
	closer  io.Closer
	paused  bool
	stop    chan struct{}
	volume  float64
	current string
}

func NewMusicPlayer(ctx *oto.Context, volume float64) *MusicPlayer {
	if ctx == nil {
		return nil
	}
	return &MusicPlayer{
		ctx:    ctx,
		volume: clampVolume(volume),
	}
}

func (m *MusicPlayer) SetVolume(volume float64) {
	m.mu.Lock()
	m.volume = clampVolume(volume)
	if m.player != nil {
		m.player.SetVolume(m.volume)
	}
	m.mu.Unlock()
}

// Play starts track from the beginning, or resumes it when it is the paused
// current track.
func (m *MusicPlayer) Play(track Track) error {
	key := track.Title + "|" + track.File
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.player != nil && m.current == key {
		m.paused = false
		m.player.Play()
		return nil
	}
	m.stopLocked()
	source, closer, err := openTrack(track)
	if err != nil {
		return err
	}
	counter := &countingReader{source: source}
	player := m.ctx.NewPlayer(counter)
	player.SetVolume(m.volume)
	player.Play()
	m.player = player
	m.source = counter
	m.closer = closer
	m.current = key
	m.paused = false
	m.stop = make(chan struct{})
	go m.loop(player, counter, m.stop)
	return nil
}

func (m *MusicPlayer) Pause() {
	m.mu.Lock()
	if m.player != nil {
		m.paused = true
		m.player.Pause()
	}
	m.mu.Unlock()
}

func (m *MusicPlayer) Stop() {
	m.mu.Lock()
	m.stopLocked()
	m.mu.Unlock()
}

// Progress reports how far into the current source playback has read.
func (m *MusicPlayer) Progress() (float64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.source == nil || m.source.Size() <= 0 {
		return 0, false
	}
	return float64(m.source.Offset()) / float64(m.source.Size()), true
}

func (m *MusicPlayer) loop(player *oto.Player, source *countingReader, stop chan struct{}) {
	ticker := time.NewTicker(120 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			m.mu.Lock()
			paused := m.paused
			m.mu.Unlock()
			if paused || player.IsPlaying() {
				continue
			}
			if _, err := source.Seek(0, io.SeekStart); err != nil {
				DebugLogf("music loop seek error: %v", err)
				return
			}
			player.Play()
		}
	}
}

func (m *MusicPlayer) stopLocked() {
	if m.stop != nil {
		close(m.stop)
		m.stop = nil
	}
	if m.player != nil {
		_ = m.player.Close()
		m.player = nil
	}
	if m.closer != nil {
		_ = m.closer.Close()
		m.closer = nil
	}
	m.source = nil
	m.current = ""
	m.paused = false
}

func openTrack(track Track) (io.ReadSeeker, io.Closer, error) {
	if track.File == "" {
		return bytes.NewReader(renderMelody(track.Title, audioSampleRate)), nil, nil
	}
	file, err := os.Open(track.File)
	if err != nil {
		return nil, nil, err
	}
	dec, err := mp3.NewDecoder(file)
	if err != nil {
		_ = file.Close()
		return nil, nil, fmt.Errorf("decode %s: %w", track.File, err)
	}
	if dec.SampleRate() != audioSampleRate {
		_ = file.Close()
		return nil, nil, fmt.Errorf("%s: %w %d", track.File, errSampleRate, dec.SampleRate())
	}
	return dec, file, nil
}

var pentatonic = []float64{262, 294, 330, 392, 440, 523, 587, 659, 784, 880}

// melodyForTitle picks sixteen notes from a pentatonic scale; the same title
// always yields the same tune.
func melodyForTitle(title string) []toneSpec {
	h := fnv.New32a()
	_, _ = h.Write([]byte(title))
	seed := h.Sum32()
	notes := make([]toneSpec, 0, 16)
	for i := 0; i < 16; i++ {
		seed = seed*1664525 + 1013904223
		frequency := pentatonic[int(seed>>16)%len(pentatonic)]
		duration := 180 * time.Millisecond
		if i%4 == 3 {
			duration = 360 * time.Millisecond
		}
		notes = append(notes, toneSpec{frequency: frequency, duration: duration, volume: 0.18})
	}
	return notes
}

func renderMelody(title string, sampleRate int) []byte {
	return renderToneSequence(melodyForTitle(title), sampleRate, 1)
}

type countingReader struct {
	mu     sync.Mutex
	source io.ReadSeeker
	offset int64
	size   int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, err := c.source.Read(p)
	c.offset += int64(n)
	return n, err
}

func (c *countingReader) Seek(offset int64, whence int) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	pos, err := c.source.Seek(offset, whence)
	if err == nil {
		c.offset = pos
	}
	return pos, err
}

func (c *countingReader) Offset() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.offset
}

// Size is the total length of the source, measured once by seeking to its end.
func (c *countingReader) Size() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.size > 0 {
		return c.size
	}
	if sized, ok := c.source.(interface{ Length() int64 }); ok {
		c.size = sized.Length()
		return c.size
	}
	end, err := c.source.Seek(0, io.SeekEnd)
	if err != nil {
		return 0
	}
	_, _ = c.source.Seek(c.offset, io.SeekStart)
	c.size = end
	return c.size
}
