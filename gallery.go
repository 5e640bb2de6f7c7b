package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const printInterval = 800 * time.Millisecond

type printTickMsg struct {
	gen int
}

func defaultPhotos() []Photo {
	return []Photo{
		{Caption: "Golden hour", Date: "20/04/25"},
		{Caption: "Beach walk", Date: "21/04/25"},
		{Caption: "Coffee date", Date: "22/04/25"},
		{Caption: "City lights", Date: "23/04/25"},
	}
}

// Gallery browses photos and simulates printing them one at a time.
type Gallery struct {
	Photos      []Photo
	Current     int
	Printing    bool
	Printed     []Photo
	ShowPrinted bool
	custom      []Photo
	gen         int
}

func NewGallery(custom []Photo) Gallery {
	g := Gallery{custom: append([]Photo(nil), custom...)}
	g.Photos = g.source()
	return g
}

func (g *Gallery) source() []Photo {
	if len(g.custom) > 0 {
		return append([]Photo(nil), g.custom...)
	}
	return defaultPhotos()
}

func (g *Gallery) Photo() Photo {
	if len(g.Photos) == 0 {
		return Photo{}
	}
	return g.Photos[g.Current]
}

func (g *Gallery) Next() {
	if g.Printing || len(g.Photos) == 0 {
		return
	}
	g.Current = (g.Current + 1) % len(g.Photos)
}

func (g *Gallery) Prev() {
	if g.Printing || len(g.Photos) == 0 {
		return
	}
	g.Current = (g.Current - 1 + len(g.Photos)) % len(g.Photos)
}

// Print starts a new print run over every photo. It is ignored while a run is
// in progress.
func (g *Gallery) Print() tea.Cmd {
	if g.Printing || len(g.Photos) == 0 {
		return nil
	}
	g.gen++
	g.Printing = true
	g.Printed = nil
	g.ShowPrinted = false
	return g.tickCmd()
}

// ToggleStrip shows the printed strip, or hides and clears it.
func (g *Gallery) ToggleStrip() {
	if g.Printing {
		return
	}
	if g.ShowPrinted {
		g.ShowPrinted = false
		g.Printed = nil
		return
	}
	g.ShowPrinted = true
}

// Reset drops custom photos and prints and goes back to the defaults.
func (g *Gallery) Reset() {
	g.gen++
	g.custom = nil
	g.Photos = defaultPhotos()
	g.Current = 0
	g.Printing = false
	g.Printed = nil
	g.ShowPrinted = false
}

func (g *Gallery) Cancel() {
	g.gen++
	g.Printing = false
}

// Update reports whether a photo came out of the printer.
func (g *Gallery) Update(msg printTickMsg) (tea.Cmd, bool) {
	if msg.gen != g.gen || !g.Printing {
		return nil, false
	}
	g.Printed = append(g.Printed, g.Photos[len(g.Printed)])
	if len(g.Printed) >= len(g.Photos) {
		g.Printing = false
		g.ShowPrinted = true
		return nil, true
	}
	return g.tickCmd(), true
}

func (g *Gallery) Progress() (int, int) {
	return len(g.Printed), len(g.Photos)
}

func (g *Gallery) tickCmd() tea.Cmd {
	gen := g.gen
	return tea.Tick(printInterval, func(time.Time) tea.Msg { return printTickMsg{gen: gen} })
}
