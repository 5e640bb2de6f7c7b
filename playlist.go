package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const playlistTickInterval = 100 * time.Millisecond

type playlistTickMsg struct {
	gen int
}

func defaultPlaylist() []Track {
	return []Track{
		{Title: "On Bended Knee", Artist: "Boyz II Men", Duration: "5:29"},
		{Title: "Everything I Do", Artist: "Bryan Adams", Duration: "4:52"},
		{Title: "Just the Two of Us", Artist: "Bill Withers", Duration: "3:58"},
		{Title: "Nothing's Gonna Change My Love", Artist: "George Benson", Duration: "4:23"},
		{Title: "How Deep Is Your Love", Artist: "Bee Gees", Duration: "3:55"},
	}
}

// Playlist tracks the selected track and its progress in percent. Progress of
// tracks without a file is simulated by playlist ticks.
type Playlist struct {
	Tracks   []Track
	Current  int
	Playing  bool
	Progress int
	custom   bool
	gen      int
}

func NewPlaylist(custom []Track) Playlist {
	p := Playlist{Tracks: defaultPlaylist()}
	if len(custom) > 0 {
		p.Tracks = append([]Track(nil), custom...)
		p.custom = true
	}
	return p
}

func (p *Playlist) Track() Track {
	if len(p.Tracks) == 0 {
		return Track{}
	}
	return p.Tracks[p.Current]
}

func (p *Playlist) Toggle() tea.Cmd {
	p.Playing = !p.Playing
	p.gen++
	if p.Playing {
		return p.tickCmd()
	}
	return nil
}

func (p *Playlist) Next() tea.Cmd {
	if len(p.Tracks) == 0 {
		return nil
	}
	p.Current = (p.Current + 1) % len(p.Tracks)
	return p.restart()
}

func (p *Playlist) Prev() tea.Cmd {
	if len(p.Tracks) == 0 {
		return nil
	}
	if p.Current == 0 {
		p.Current = len(p.Tracks) - 1
	} else {
		p.Current--
	}
	return p.restart()
}

// Select jumps to track i, clamped to the list, and restarts its progress.
func (p *Playlist) Select(i int) tea.Cmd {
	if len(p.Tracks) == 0 {
		return nil
	}
	if i < 0 {
		i = 0
	}
	if i >= len(p.Tracks) {
		i = len(p.Tracks) - 1
	}
	p.Current = i
	return p.restart()
}

// Reset drops custom tracks and stops playback.
func (p *Playlist) Reset() {
	p.Tracks = defaultPlaylist()
	p.custom = false
	p.Current = 0
	p.Progress = 0
	p.Playing = false
	p.gen++
}

func (p *Playlist) Stop() {
	p.Playing = false
	p.gen++
}

func (p *Playlist) restart() tea.Cmd {
	p.Progress = 0
	p.gen++
	if p.Playing {
		return p.tickCmd()
	}
	return nil
}

// Update advances simulated progress, wrapping to zero after 100.
func (p *Playlist) Update(msg playlistTickMsg) tea.Cmd {
	if msg.gen != p.gen || !p.Playing {
		return nil
	}
	p.Progress++
	if p.Progress > 100 {
		p.Progress = 0
	}
	return p.tickCmd()
}

// Follow is Update for decoded tracks: progress comes from the player's
// position instead of the simulated step.
func (p *Playlist) Follow(msg playlistTickMsg, fraction float64) tea.Cmd {
	if msg.gen != p.gen || !p.Playing {
		return nil
	}
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	p.Progress = int(fraction * 100)
	return p.tickCmd()
}

func (p *Playlist) tickCmd() tea.Cmd {
	gen := p.gen
	return tea.Tick(playlistTickInterval, func(time.Time) tea.Msg { return playlistTickMsg{gen: gen} })
}

func (p *Playlist) Elapsed() time.Duration {
	total := parseTrackDuration(p.Track().Duration)
	return total * time.Duration(p.Progress) / 100
}

// parseTrackDuration reads "m:ss"; anything else is zero.
func parseTrackDuration(value string) time.Duration {
	minutes, seconds, ok := strings.Cut(strings.TrimSpace(value), ":")
	if !ok {
		return 0
	}
	m, err := strconv.Atoi(minutes)
	if err != nil || m < 0 {
		return 0
	}
	s, err := strconv.Atoi(seconds)
	if err != nil || s < 0 || s > 59 {
		return 0
	}
	return time.Duration(m)*time.Minute + time.Duration(s)*time.Second
}

func formatTrackTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
