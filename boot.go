package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	bootTickInterval = 50 * time.Millisecond
	bootStep         = 2
	bootHold         = time.Second
)

type bootTickMsg struct {
	gen int
}

type bootDoneMsg struct {
	gen int
}

// Boot is the power-on splash: a progress bar that fills, a short "SMILE!"
// hold, then the menu.
type Boot struct {
	Progress int
	Ready    bool
	Done     bool
	gen      int
}

func (b *Boot) Start() tea.Cmd {
	b.gen++
	b.Progress = 0
	b.Ready = false
	b.Done = false
	return b.tickCmd()
}

func (b *Boot) Cancel() {
	b.gen++
}

// Skip jumps straight to the end of the animation.
func (b *Boot) Skip() {
	b.gen++
	b.Progress = 100
	b.Ready = true
	b.Done = true
}

func (b *Boot) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case bootTickMsg:
		if msg.gen != b.gen || b.Ready {
			return nil
		}
		b.Progress += bootStep
		if b.Progress >= 100 {
			b.Progress = 100
			b.Ready = true
			gen := b.gen
			return tea.Tick(bootHold, func(time.Time) tea.Msg { return bootDoneMsg{gen: gen} })
		}
		return b.tickCmd()
	case bootDoneMsg:
		if msg.gen != b.gen {
			return nil
		}
		b.Done = true
	}
	return nil
}

func (b *Boot) tickCmd() tea.Cmd {
	gen := b.gen
	return tea.Tick(bootTickInterval, func(time.Time) tea.Msg { return bootTickMsg{gen: gen} })
}
