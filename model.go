package main

import (
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type Screen int

const (
	screenPowerOff Screen = iota
	screenBoot
	screenMenu
	screenMessage
	screenGallery
	screenMusic
	screenTetris
)

func (s Screen) String() string {
	switch s {
	case screenPowerOff:
		return "power-off"
	case screenBoot:
		return "boot"
	case screenMenu:
		return "menu"
	case screenMessage:
		return "message"
	case screenGallery:
		return "gallery"
	case screenMusic:
		return "music"
	case screenTetris:
		return "tetris"
	default:
		return "unknown"
	}
}

type gameTickMsg struct {
	gen int
}

type soundMsg struct{}

type noticeExpiredMsg struct {
	gen int
}

const (
	noticeDuration = 2 * time.Second
	eventDuration  = 900 * time.Millisecond
	volumeStep     = 10
)

var menuItems = []string{"MESSAGE", "GALLERY", "MUSIC", "TETRIS"}

var menuScreens = []Screen{screenMessage, screenGallery, screenMusic, screenTetris}

type Options struct {
	Config   Config
	Seed     int64
	SkipBoot bool
	Sound    *SoundEngine
	Music    *MusicPlayer
}

type Model struct {
	screen       Screen
	width        int
	height       int
	menuIndex    int
	themeIndex   int
	config       Config
	sound        *SoundEngine
	music        *MusicPlayer
	boot         Boot
	message      Typewriter
	gallery      Gallery
	playlist     Playlist
	musicBacked  bool
	game         Game
	gameGen      int
	scores       []ScoreEntry
	lastDelta    int
	lastEvent    string
	lastEventTil time.Time
	notice       string
	noticeGen    int
	skipBoot     bool
}

func NewModel(opts Options) Model {
	config := opts.Config
	index := themeIndexByName(config.Theme)
	if index < 0 {
		index = 0
		config.Theme = themes[index].Name
	}
	var rng *rand.Rand
	if opts.Seed != 0 {
		rng = rand.New(rand.NewSource(opts.Seed))
	}
	text := config.Message
	if strings.TrimSpace(text) == "" {
		text = defaultMessage(config.Recipient)
	}
	return Model{
		screen:     screenBoot,
		config:     config,
		themeIndex: index,
		sound:      opts.Sound,
		music:      opts.Music,
		message:    NewTypewriter(text),
		gallery:    NewGallery(config.Photos),
		playlist:   NewPlaylist(config.Playlist),
		game:       NewGame(rng),
		skipBoot:   opts.SkipBoot,
	}
}

func (m *Model) Init() tea.Cmd {
	if m.skipBoot {
		m.boot.Skip()
		m.screen = screenMenu
		return nil
	}
	return m.powerOn()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case soundMsg:
		return m, nil
	case bootTickMsg, bootDoneMsg:
		if m.screen != screenBoot {
			return m, nil
		}
		cmd := m.boot.Update(msg)
		if m.boot.Done {
			return m, m.setScreen(screenMenu)
		}
		return m, cmd
	case typeTickMsg, emoteExpiredMsg:
		cmd, revealed := m.message.Update(msg)
		if revealed && m.config.Sound {
			return m, tea.Batch(cmd, playSound(m.sound, SoundType))
		}
		return m, cmd
	case printTickMsg:
		cmd, printed := m.gallery.Update(msg)
		if !printed || !m.config.Sound {
			return m, cmd
		}
		if m.gallery.ShowPrinted {
			return m, tea.Batch(cmd, playSound(m.sound, SoundPrintDone))
		}
		return m, tea.Batch(cmd, playSound(m.sound, SoundPrint))
	case playlistTickMsg:
		if m.musicBacked && m.music != nil {
			if fraction, ok := m.music.Progress(); ok {
				return m, m.playlist.Follow(msg, fraction)
			}
		}
		return m, m.playlist.Update(msg)
	case gameTickMsg:
		return m, m.updateGameTick(msg)
	case noticeExpiredMsg:
		if msg.gen == m.noticeGen {
			m.notice = ""
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.shutdown()
			return m, tea.Quit
		case "o":
			return m, m.togglePower()
		}
		switch m.screen {
		case screenPowerOff:
			return m, m.updatePowerOff(msg)
		case screenBoot:
			m.boot.Skip()
			return m, m.setScreen(screenMenu)
		case screenMenu:
			return m, m.updateMenu(msg)
		case screenMessage:
			return m, m.updateMessage(msg)
		case screenGallery:
			return m, m.updateGallery(msg)
		case screenMusic:
			return m, m.updateMusic(msg)
		case screenTetris:
			return m, m.updateGame(msg)
		}
	}
	return m, nil
}

func (m *Model) View() string {
	switch m.screen {
	case screenPowerOff:
		return viewPowerOff(m)
	case screenBoot:
		return viewBoot(m)
	case screenMenu:
		return viewMenu(m)
	case screenMessage:
		return viewMessage(m)
	case screenGallery:
		return viewGallery(m)
	case screenMusic:
		return viewMusic(m)
	case screenTetris:
		return viewGame(m)
	default:
		return ""
	}
}

func playSound(engine *SoundEngine, event SoundEvent) tea.Cmd {
	return func() tea.Msg {
		if engine != nil {
			engine.Play(event)
		}
		return soundMsg{}
	}
}

func (m *Model) soundCmd(event SoundEvent) tea.Cmd {
	if !m.config.Sound {
		return nil
	}
	return playSound(m.sound, event)
}

// setScreen cancels the timers owned by the screen being left and starts the
// ones the new screen needs.
func (m *Model) setScreen(screen Screen) tea.Cmd {
	DebugLogf("screen %s -> %s", m.screen, screen)
	m.leaveScreen()
	m.screen = screen
	if screen == screenMessage {
		return m.message.Start()
	}
	return nil
}

func (m *Model) leaveScreen() {
	switch m.screen {
	case screenBoot:
		m.boot.Cancel()
	case screenMessage:
		m.message.Cancel()
	case screenGallery:
		m.gallery.Cancel()
	case screenMusic:
		m.stopMusic()
	case screenTetris:
		m.gameGen++
		m.game = NewGame(m.game.rng)
		m.lastEvent = ""
		m.lastDelta = 0
	}
}

func (m *Model) powerOn() tea.Cmd {
	m.screen = screenBoot
	return tea.Batch(m.boot.Start(), m.soundCmd(SoundPowerOn))
}

func (m *Model) togglePower() tea.Cmd {
	if m.screen == screenPowerOff {
		DebugLogf("power on")
		return m.powerOn()
	}
	DebugLogf("power off from %s", m.screen)
	m.leaveScreen()
	m.notice = ""
	m.noticeGen++
	m.screen = screenPowerOff
	return nil
}

func (m *Model) shutdown() {
	m.leaveScreen()
	if m.music != nil {
		m.music.Stop()
	}
}

func (m *Model) updatePowerOff(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "esc":
		return tea.Quit
	}
	return nil
}

func (m *Model) showNotice(text string) tea.Cmd {
	m.notice = text
	m.noticeGen++
	gen := m.noticeGen
	return tea.Tick(noticeDuration, func(time.Time) tea.Msg { return noticeExpiredMsg{gen: gen} })
}

// moveMenu walks the 2x2 menu grid the way the console's d-pad does: up and
// down swap rows, left and right swap columns.
func moveMenu(index int, direction string) int {
	switch direction {
	case "up":
		if index < 2 {
			return index + 2
		}
		return index - 2
	case "down":
		if index >= 2 {
			return index - 2
		}
		return index + 2
	case "left", "right":
		if index%2 == 0 {
			return index + 1
		}
		return index - 1
	}
	return index
}

func (m *Model) updateMenu(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		m.menuIndex = moveMenu(m.menuIndex, "up")
		return m.soundCmd(SoundMenuMove)
	case "down", "j":
		m.menuIndex = moveMenu(m.menuIndex, "down")
		return m.soundCmd(SoundMenuMove)
	case "left", "h":
		m.menuIndex = moveMenu(m.menuIndex, "left")
		return m.soundCmd(SoundMenuMove)
	case "right", "l":
		m.menuIndex = moveMenu(m.menuIndex, "right")
		return m.soundCmd(SoundMenuMove)
	case "enter":
		return tea.Batch(m.soundCmd(SoundMenuSelect), m.setScreen(menuScreens[m.menuIndex]))
	case "a", "b":
		m.cycleTheme()
		return tea.Batch(m.soundCmd(SoundTheme), m.showNotice("Theme: "+strings.ToUpper(themes[m.themeIndex].Name)))
	case "s":
		m.config.Sound = !m.config.Sound
		if m.sound != nil {
			m.sound.SetEnabled(m.config.Sound)
		}
		m.persistConfig()
		label := "SOUND OFF"
		if m.config.Sound {
			label = "SOUND ON"
		}
		return tea.Batch(m.soundCmd(SoundMenuSelect), m.showNotice(label))
	case "q", "esc":
		m.shutdown()
		return tea.Quit
	}
	return nil
}

func (m *Model) cycleTheme() {
	m.themeIndex = (m.themeIndex + 1) % len(themes)
	m.config.Theme = themes[m.themeIndex].Name
	m.persistConfig()
}

func (m *Model) persistConfig() {
	if err := saveConfig(m.config); err != nil {
		DebugLogf("config save error: %v", err)
	}
}

func (m *Model) updateMessage(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "q":
		return m.setScreen(screenMenu)
	case " ", "enter":
		if !m.message.Complete {
			m.message.Skip()
			return nil
		}
		if msg.String() == "enter" {
			return m.setScreen(screenMenu)
		}
	case "r":
		return m.message.Start()
	case "1", "2", "3":
		cmd := m.message.ShowEmote(int(msg.String()[0] - '1'))
		if cmd == nil {
			return nil
		}
		return tea.Batch(cmd, m.soundCmd(SoundEmote))
	}
	return nil
}

func (m *Model) updateGallery(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "q":
		return m.setScreen(screenMenu)
	case "left", "h":
		m.gallery.Prev()
		return m.soundCmd(SoundMenuMove)
	case "right", "l":
		m.gallery.Next()
		return m.soundCmd(SoundMenuMove)
	case "p":
		cmd := m.gallery.Print()
		if cmd == nil {
			return nil
		}
		return tea.Batch(cmd, m.soundCmd(SoundMenuSelect))
	case "enter":
		m.gallery.ToggleStrip()
	case "x":
		m.gallery.Reset()
	}
	return nil
}

func (m *Model) updateMusic(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "q":
		return m.setScreen(screenMenu)
	case " ", "enter":
		cmd := m.playlist.Toggle()
		if m.playlist.Playing {
			m.startMusic()
		} else if m.music != nil {
			m.music.Pause()
		}
		return cmd
	case "left", "h":
		cmd := m.playlist.Prev()
		m.restartMusic()
		return tea.Batch(cmd, m.soundCmd(SoundMenuMove))
	case "right", "l":
		cmd := m.playlist.Next()
		m.restartMusic()
		return tea.Batch(cmd, m.soundCmd(SoundMenuMove))
	case "up", "k":
		cmd := m.playlist.Select(m.playlist.Current - 1)
		m.restartMusic()
		return tea.Batch(cmd, m.soundCmd(SoundMenuMove))
	case "down", "j":
		cmd := m.playlist.Select(m.playlist.Current + 1)
		m.restartMusic()
		return tea.Batch(cmd, m.soundCmd(SoundMenuMove))
	case "-":
		m.changeVolume(-volumeStep)
	case "+", "=":
		m.changeVolume(volumeStep)
	case "x":
		m.stopMusic()
		m.playlist.Reset()
	}
	return nil
}

// changeVolume applies to effects and music alike and is saved with the config.
func (m *Model) changeVolume(delta int) {
	volume := clampVolumePercent(m.config.Volume + delta)
	if volume == m.config.Volume {
		return
	}
	m.config.Volume = volume
	if m.sound != nil {
		m.sound.SetVolume(volumeFromPercent(volume))
	}
	if m.music != nil {
		m.music.SetVolume(volumeFromPercent(volume))
	}
	m.persistConfig()
}

func (m *Model) startMusic() {
	m.musicBacked = false
	if m.music == nil || !m.config.Music {
		return
	}
	track := m.playlist.Track()
	if err := m.music.Play(track); err != nil {
		DebugLogf("music play error for %q: %v", track.Title, err)
		return
	}
	m.musicBacked = track.File != ""
}

func (m *Model) restartMusic() {
	if m.music != nil {
		m.music.Stop()
	}
	m.musicBacked = false
	if m.playlist.Playing {
		m.startMusic()
	}
}

func (m *Model) stopMusic() {
	m.playlist.Stop()
	m.musicBacked = false
	if m.music != nil {
		m.music.Stop()
	}
}

func (m *Model) startGame() tea.Cmd {
	m.gameGen++
	m.game.Start()
	m.lastEvent = ""
	m.lastDelta = 0
	DebugLogf("puzzle start gen=%d", m.gameGen)
	if m.game.Over {
		return m.finishGame()
	}
	return tea.Batch(m.soundCmd(SoundMenuSelect), m.gameTickCmd())
}

func (m *Model) gameTickCmd() tea.Cmd {
	gen := m.gameGen
	return tea.Tick(m.game.FallInterval(), func(time.Time) tea.Msg { return gameTickMsg{gen: gen} })
}

// updateGameTick drops ticks scheduled for an earlier session, and stops the
// chain while the game is paused or no longer running.
func (m *Model) updateGameTick(msg gameTickMsg) tea.Cmd {
	if msg.gen != m.gameGen || m.screen != screenTetris {
		return nil
	}
	if !m.game.Running || m.game.Paused {
		return nil
	}
	result := m.game.Tick()
	cmd := m.applyLock(result)
	if m.game.Over {
		return tea.Batch(cmd, m.finishGame())
	}
	return tea.Batch(cmd, m.gameTickCmd())
}

func (m *Model) applyLock(result LockResult) tea.Cmd {
	if !result.Locked {
		return nil
	}
	if result.ScoreDelta > 0 {
		m.lastDelta = result.ScoreDelta
		m.lastEvent = "LINE CLEAR"
		m.lastEventTil = time.Now().Add(eventDuration)
	}
	if event, ok := soundEventForLock(result); ok {
		return m.soundCmd(event)
	}
	return nil
}

func (m *Model) finishGame() tea.Cmd {
	m.gameGen++
	m.scores = insertScore(m.scores, ScoreEntry{
		Score: m.game.Score,
		Lines: m.game.Lines,
		Level: m.game.Level,
		When:  time.Now().Format("2006-01-02 15:04:05"),
	})
	DebugLogf("puzzle over score=%d lines=%d level=%d", m.game.Score, m.game.Lines, m.game.Level)
	return m.soundCmd(SoundGameOver)
}

func (m *Model) updateGame(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	switch key {
	case "esc", "q":
		return m.setScreen(screenMenu)
	case "enter":
		if !m.game.Running {
			return m.startGame()
		}
		return nil
	}
	if !m.game.Running {
		return nil
	}
	switch key {
	case "p":
		m.game.TogglePause()
		m.gameGen++
		if m.game.Paused {
			return nil
		}
		return m.gameTickCmd()
	case "left", "h":
		if m.game.MoveLeft() {
			return m.soundCmd(SoundMove)
		}
	case "right", "l":
		if m.game.MoveRight() {
			return m.soundCmd(SoundMove)
		}
	case "up", "x":
		if m.game.Rotate() {
			return m.soundCmd(SoundRotate)
		}
	case "down", "j":
		return m.afterDrop(m.game.MoveDown(), nil)
	case " ":
		if !m.game.active() {
			return nil
		}
		return m.afterDrop(m.game.HardDrop(), m.soundCmd(SoundDrop))
	}
	return nil
}

func (m *Model) afterDrop(result LockResult, extra tea.Cmd) tea.Cmd {
	cmd := m.applyLock(result)
	if m.game.Over {
		return tea.Batch(extra, cmd, m.finishGame())
	}
	return tea.Batch(extra, cmd)
}

func (m *Model) eventLabel() (string, int) {
	if m.lastEventTil.IsZero() || time.Now().After(m.lastEventTil) {
		return "", 0
	}
	return m.lastEvent, m.lastDelta
}
