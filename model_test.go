package main

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	config, err := loadConfig(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)
	model := NewModel(Options{Config: config, Seed: 1, SkipBoot: true})
	model.Init()
	return &model
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func press(m *Model, msg tea.KeyMsg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

func TestMoveMenuGrid(t *testing.T) {
	assert.Equal(t, 2, moveMenu(0, "up"))
	assert.Equal(t, 0, moveMenu(2, "up"))
	assert.Equal(t, 3, moveMenu(1, "down"))
	assert.Equal(t, 1, moveMenu(3, "down"))
	assert.Equal(t, 1, moveMenu(0, "left"))
	assert.Equal(t, 2, moveMenu(3, "right"))
	assert.Equal(t, 3, moveMenu(3, "sideways"))
}

func TestSkipBootStartsAtMenu(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, screenMenu, m.screen)
	assert.True(t, m.boot.Done)
}

func TestBootKeySkipsToMenu(t *testing.T) {
	config, err := loadConfig(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)
	model := NewModel(Options{Config: config, Seed: 1})
	require.NotNil(t, model.Init())
	assert.Equal(t, screenBoot, model.screen)

	press(&model, keyRune('z'))
	assert.Equal(t, screenMenu, model.screen)
}

func TestPowerToggle(t *testing.T) {
	m := newTestModel(t)
	press(m, keyRune('o'))
	assert.Equal(t, screenPowerOff, m.screen)

	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, screenPowerOff, m.screen)

	require.NotNil(t, press(m, keyRune('o')))
	assert.Equal(t, screenBoot, m.screen)
	assert.Zero(t, m.boot.Progress)
}

func TestMenuSelectsScreens(t *testing.T) {
	m := newTestModel(t)
	press(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 1, m.menuIndex)

	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, screenGallery, m.screen)

	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, screenMenu, m.screen)
}

func TestThemeCyclePersists(t *testing.T) {
	m := newTestModel(t)
	require.Equal(t, "classic", m.config.Theme)

	require.NotNil(t, press(m, keyRune('a')))
	assert.Equal(t, "dark", m.config.Theme)
	assert.Equal(t, "Theme: DARK", m.notice)

	for i := 0; i < len(themes)-1; i++ {
		press(m, keyRune('b'))
	}
	assert.Equal(t, "classic", m.config.Theme)

	press(m, keyRune('a'))
	saved, err := loadConfig(m.config.path)
	require.NoError(t, err)
	assert.Equal(t, "dark", saved.Theme)
}

func TestNoticeExpiresOnlyForLatest(t *testing.T) {
	m := newTestModel(t)
	press(m, keyRune('s'))
	assert.False(t, m.config.Sound)
	first := m.noticeGen
	press(m, keyRune('s'))
	assert.True(t, m.config.Sound)

	m.Update(noticeExpiredMsg{gen: first})
	assert.Equal(t, "SOUND ON", m.notice)
	m.Update(noticeExpiredMsg{gen: m.noticeGen})
	assert.Empty(t, m.notice)
}

func TestMessageScreenTypesAndSkips(t *testing.T) {
	m := newTestModel(t)
	m.menuIndex = 0
	require.NotNil(t, press(m, tea.KeyMsg{Type: tea.KeyEnter}))
	require.Equal(t, screenMessage, m.screen)
	assert.Contains(t, string(m.message.Text), "Hi "+m.config.Recipient)

	m.Update(typeTickMsg{gen: m.message.gen})
	assert.Equal(t, 1, m.message.Shown)

	press(m, tea.KeyMsg{Type: tea.KeySpace})
	assert.True(t, m.message.Complete)
	require.NotNil(t, press(m, keyRune('2')))
	assert.Equal(t, ":)", m.message.Emote)

	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, screenMenu, m.screen)
}

func TestLeavingMessageDropsPendingTicks(t *testing.T) {
	m := newTestModel(t)
	m.setScreen(screenMessage)
	stale := m.message.gen
	press(m, tea.KeyMsg{Type: tea.KeyEsc})

	m.Update(typeTickMsg{gen: stale})
	assert.Zero(t, m.message.Shown)
}

func TestGameStartsOnEnterAndTicks(t *testing.T) {
	m := newTestModel(t)
	m.setScreen(screenTetris)
	assert.Equal(t, PhaseIdle, m.game.Phase())

	require.NotNil(t, press(m, tea.KeyMsg{Type: tea.KeyEnter}))
	assert.Equal(t, PhaseRunning, m.game.Phase())

	y := m.game.Y
	require.NotNil(t, m.updateGameTick(gameTickMsg{gen: m.gameGen}))
	assert.Equal(t, y+1, m.game.Y)

	assert.Nil(t, m.updateGameTick(gameTickMsg{gen: m.gameGen - 1}))
	assert.Equal(t, y+1, m.game.Y)
}

func TestGamePauseStopsTicks(t *testing.T) {
	m := newTestModel(t)
	m.setScreen(screenTetris)
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	before := m.gameGen

	assert.Nil(t, press(m, keyRune('p')))
	assert.True(t, m.game.Paused)
	assert.Nil(t, m.updateGameTick(gameTickMsg{gen: m.gameGen}))
	assert.Nil(t, m.updateGameTick(gameTickMsg{gen: before}))

	x := m.game.X
	press(m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, x, m.game.X)

	require.NotNil(t, press(m, keyRune('p')))
	assert.False(t, m.game.Paused)
}

func TestLeavingGameResetsSession(t *testing.T) {
	m := newTestModel(t)
	m.setScreen(screenTetris)
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	gen := m.gameGen

	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, screenMenu, m.screen)
	assert.Equal(t, PhaseIdle, m.game.Phase())
	assert.Nil(t, m.updateGameTick(gameTickMsg{gen: gen}))
}

func TestHardDropUntilGameOverRecordsScore(t *testing.T) {
	m := newTestModel(t)
	m.setScreen(screenTetris)
	press(m, tea.KeyMsg{Type: tea.KeyEnter})

	for i := 0; i < 200 && m.game.Running; i++ {
		press(m, tea.KeyMsg{Type: tea.KeySpace})
	}
	require.Equal(t, PhaseGameOver, m.game.Phase())
	require.Len(t, m.scores, 1)
	assert.Equal(t, m.game.Score, m.scores[0].Score)
	assert.Contains(t, m.View(), "GAME OVER")
	assert.Contains(t, m.View(), consoleTitle)

	require.NotNil(t, press(m, tea.KeyMsg{Type: tea.KeyEnter}))
	assert.Equal(t, PhaseRunning, m.game.Phase())
}

func TestMusicScreenWithoutAudio(t *testing.T) {
	m := newTestModel(t)
	m.setScreen(screenMusic)

	require.NotNil(t, press(m, tea.KeyMsg{Type: tea.KeySpace}))
	assert.True(t, m.playlist.Playing)
	assert.False(t, m.musicBacked)

	m.Update(playlistTickMsg{gen: m.playlist.gen})
	assert.Equal(t, 1, m.playlist.Progress)

	press(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 1, m.playlist.Current)
	assert.Zero(t, m.playlist.Progress)

	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.playlist.Playing)
}

func TestMusicScreenSelectsTracks(t *testing.T) {
	m := newTestModel(t)
	m.setScreen(screenMusic)
	press(m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.playlist.Current)

	press(m, keyRune('j'))
	press(m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, m.playlist.Current)

	press(m, tea.KeyMsg{Type: tea.KeySpace})
	m.Update(playlistTickMsg{gen: m.playlist.gen})
	require.Equal(t, 1, m.playlist.Progress)
	press(m, keyRune('k'))
	assert.Equal(t, 1, m.playlist.Current)
	assert.Zero(t, m.playlist.Progress)
	assert.True(t, m.playlist.Playing)
}

func TestMusicScreenVolumeKeys(t *testing.T) {
	m := newTestModel(t)
	m.sound = NewSoundEngine(nil, true)
	m.setScreen(screenMusic)
	require.Equal(t, 70, m.config.Volume)

	press(m, keyRune('-'))
	assert.Equal(t, 60, m.config.Volume)
	assert.Equal(t, 0.6, m.sound.volume)
	assert.Contains(t, m.View(), "Vol 60%")

	for i := 0; i < 10; i++ {
		press(m, keyRune('+'))
	}
	assert.Equal(t, 100, m.config.Volume)

	saved, err := loadConfig(m.config.path)
	require.NoError(t, err)
	assert.Equal(t, 100, saved.Volume)
}

func TestMusicViewMarksLocalTracks(t *testing.T) {
	config, err := loadConfig(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)
	config.Playlist = []Track{{Title: "Tape", Artist: "Us", Duration: "1:00", File: "tape.mp3"}}
	model := NewModel(Options{Config: config, Seed: 1, SkipBoot: true})
	model.Init()
	model.setScreen(screenMusic)

	view := model.View()
	assert.Contains(t, view, "Custom playlist")
	assert.Contains(t, view, "♪ 1. Tape")
}

func TestViewsRenderEveryScreen(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	for _, screen := range []Screen{screenPowerOff, screenBoot, screenMenu, screenMessage, screenGallery, screenMusic, screenTetris} {
		m.screen = screen
		assert.NotEmpty(t, m.View(), screen.String())
	}
}
