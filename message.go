package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	typeDelay        = 500 * time.Millisecond
	typeInterval     = 50 * time.Millisecond
	emoteDuration    = 2 * time.Second
	defaultSignature = "Your Friend"
)

var emotes = []string{"<3", ":)", "*"}

type typeTickMsg struct {
	gen int
}

type emoteExpiredMsg struct {
	gen int
}

func defaultMessage(recipient string) string {
	return fmt.Sprintf(`Hi %s,

Happy Birthday!

Today I just want to say
happy birthday to you.

May this new year keep you
happy, healthy, and bring
every dream within reach.

Thank you for being
such an amazing friend! <3

With love,
%s`, recipient, defaultSignature)
}

// Typewriter reveals Text one rune per tick after an initial delay.
type Typewriter struct {
	Text     []rune
	Shown    int
	Complete bool
	Emote    string
	gen      int
	emoteGen int
}

func NewTypewriter(text string) Typewriter {
	return Typewriter{Text: []rune(text)}
}

func (t *Typewriter) Visible() string {
	return string(t.Text[:t.Shown])
}

// Start clears the page and schedules the first rune after the delay.
func (t *Typewriter) Start() tea.Cmd {
	t.gen++
	t.Shown = 0
	t.Complete = len(t.Text) == 0
	t.Emote = ""
	if t.Complete {
		return nil
	}
	return t.tickCmd(typeDelay)
}

func (t *Typewriter) Skip() {
	t.gen++
	t.Shown = len(t.Text)
	t.Complete = true
}

func (t *Typewriter) Cancel() {
	t.gen++
	t.emoteGen++
}

// ShowEmote is only available once the message is fully shown.
func (t *Typewriter) ShowEmote(index int) tea.Cmd {
	if !t.Complete || index < 0 || index >= len(emotes) {
		return nil
	}
	t.Emote = emotes[index]
	t.emoteGen++
	gen := t.emoteGen
	return tea.Tick(emoteDuration, func(time.Time) tea.Msg { return emoteExpiredMsg{gen: gen} })
}

// Update reports whether a rune was revealed, for the typing blip.
func (t *Typewriter) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case typeTickMsg:
		if msg.gen != t.gen || t.Complete {
			return nil, false
		}
		if t.Shown < len(t.Text) {
			t.Shown++
		}
		if t.Shown >= len(t.Text) {
			t.Complete = true
			return nil, true
		}
		return t.tickCmd(typeInterval), true
	case emoteExpiredMsg:
		if msg.gen == t.emoteGen {
			t.Emote = ""
		}
	}
	return nil, false
}

func (t *Typewriter) tickCmd(delay time.Duration) tea.Cmd {
	gen := t.gen
	return tea.Tick(delay, func(time.Time) tea.Msg { return typeTickMsg{gen: gen} })
}
