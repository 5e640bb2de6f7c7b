package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBootFillsThenHolds(t *testing.T) {
	var b Boot
	require.NotNil(t, b.Start())

	ticks := 0
	for !b.Ready {
		require.NotNil(t, b.Update(bootTickMsg{gen: b.gen}))
		ticks++
	}
	assert.Equal(t, 100/bootStep, ticks)
	assert.Equal(t, 100, b.Progress)
	assert.False(t, b.Done)

	assert.Nil(t, b.Update(bootTickMsg{gen: b.gen}))
	b.Update(bootDoneMsg{gen: b.gen})
	assert.True(t, b.Done)
}

func TestBootIgnoresStaleTicks(t *testing.T) {
	var b Boot
	b.Start()
	stale := b.gen
	b.Cancel()

	assert.Nil(t, b.Update(bootTickMsg{gen: stale}))
	b.Update(bootDoneMsg{gen: stale})
	assert.Equal(t, 0, b.Progress)
	assert.False(t, b.Done)
}

func TestTypewriterRevealsOneRunePerTick(t *testing.T) {
	tw := NewTypewriter("héllo")
	require.NotNil(t, tw.Start())
	assert.Empty(t, tw.Visible())

	for i := 1; i <= 5; i++ {
		_, revealed := tw.Update(typeTickMsg{gen: tw.gen})
		assert.True(t, revealed)
		assert.Equal(t, i, tw.Shown)
	}
	assert.Equal(t, "héllo", tw.Visible())
	assert.True(t, tw.Complete)

	_, revealed := tw.Update(typeTickMsg{gen: tw.gen})
	assert.False(t, revealed)
}

func TestTypewriterSkipAndRestart(t *testing.T) {
	tw := NewTypewriter("hello")
	tw.Start()
	stale := tw.gen
	tw.Skip()
	assert.Equal(t, "hello", tw.Visible())
	assert.True(t, tw.Complete)

	_, revealed := tw.Update(typeTickMsg{gen: stale})
	assert.False(t, revealed)

	tw.Start()
	assert.Empty(t, tw.Visible())
	assert.False(t, tw.Complete)
}

func TestTypewriterEmoteOnlyWhenComplete(t *testing.T) {
	tw := NewTypewriter("hi")
	tw.Start()
	assert.Nil(t, tw.ShowEmote(0))
	assert.Empty(t, tw.Emote)

	tw.Skip()
	require.NotNil(t, tw.ShowEmote(0))
	first := tw.emoteGen
	require.NotNil(t, tw.ShowEmote(1))
	assert.Equal(t, ":)", tw.Emote)

	tw.Update(emoteExpiredMsg{gen: first})
	assert.Equal(t, ":)", tw.Emote)
	tw.Update(emoteExpiredMsg{gen: tw.emoteGen})
	assert.Empty(t, tw.Emote)

	assert.Nil(t, tw.ShowEmote(len(emotes)))
}

func TestGalleryNavigationWraps(t *testing.T) {
	g := NewGallery(nil)
	require.Len(t, g.Photos, 4)

	g.Prev()
	assert.Equal(t, 3, g.Current)
	g.Next()
	assert.Equal(t, 0, g.Current)
}

func TestGalleryPrintRun(t *testing.T) {
	g := NewGallery(nil)
	require.NotNil(t, g.Print())
	assert.Nil(t, g.Print())

	g.Next()
	assert.Equal(t, 0, g.Current)

	for i := 1; i <= len(g.Photos); i++ {
		_, printed := g.Update(printTickMsg{gen: g.gen})
		assert.True(t, printed)
		done, total := g.Progress()
		assert.Equal(t, i, done)
		assert.Equal(t, 4, total)
	}
	assert.False(t, g.Printing)
	assert.True(t, g.ShowPrinted)
	assert.Equal(t, g.Photos, g.Printed)

	g.ToggleStrip()
	assert.False(t, g.ShowPrinted)
	assert.Empty(t, g.Printed)
	g.ToggleStrip()
	assert.True(t, g.ShowPrinted)
}

func TestGalleryCancelAndReset(t *testing.T) {
	custom := []Photo{{Caption: "One", Date: "01/01/25"}, {Caption: "Two", Date: "02/01/25"}}
	g := NewGallery(custom)
	require.Len(t, g.Photos, 2)

	g.Print()
	stale := g.gen
	g.Cancel()
	_, printed := g.Update(printTickMsg{gen: stale})
	assert.False(t, printed)
	assert.False(t, g.Printing)

	g.Next()
	g.Reset()
	assert.Equal(t, defaultPhotos(), g.Photos)
	assert.Equal(t, 0, g.Current)
}

func TestPlaylistNavigationResetsProgress(t *testing.T) {
	p := NewPlaylist(nil)
	require.Len(t, p.Tracks, 5)
	p.Progress = 40

	assert.Nil(t, p.Prev())
	assert.Equal(t, 4, p.Current)
	assert.Equal(t, 0, p.Progress)

	p.Progress = 10
	p.Next()
	assert.Equal(t, 0, p.Current)
	assert.Equal(t, 0, p.Progress)
}

func TestPlaylistProgressWraps(t *testing.T) {
	p := NewPlaylist(nil)
	require.NotNil(t, p.Toggle())
	p.Progress = 100

	require.NotNil(t, p.Update(playlistTickMsg{gen: p.gen}))
	assert.Equal(t, 0, p.Progress)

	stale := p.gen
	p.Toggle()
	assert.Nil(t, p.Update(playlistTickMsg{gen: stale}))
	assert.Equal(t, 0, p.Progress)
}

func TestPlaylistFollowClampsFraction(t *testing.T) {
	p := NewPlaylist([]Track{{Title: "Local", Duration: "2:00", File: "local.mp3"}})
	p.Toggle()

	p.Follow(playlistTickMsg{gen: p.gen}, 0.5)
	assert.Equal(t, 50, p.Progress)
	assert.Equal(t, time.Minute, p.Elapsed())

	p.Follow(playlistTickMsg{gen: p.gen}, 3)
	assert.Equal(t, 100, p.Progress)
}

func TestTrackDurations(t *testing.T) {
	assert.Equal(t, 5*time.Minute+29*time.Second, parseTrackDuration("5:29"))
	assert.Zero(t, parseTrackDuration("5"))
	assert.Zero(t, parseTrackDuration("1:75"))
	assert.Zero(t, parseTrackDuration("a:10"))

	assert.Equal(t, "0:00", formatTrackTime(-time.Second))
	assert.Equal(t, "3:58", formatTrackTime(3*time.Minute+58*time.Second))
}

func TestPlaylistSelectClampsAndRestarts(t *testing.T) {
	p := NewPlaylist(nil)
	p.Progress = 30

	assert.Nil(t, p.Select(3))
	assert.Equal(t, 3, p.Current)
	assert.Zero(t, p.Progress)

	p.Select(99)
	assert.Equal(t, len(p.Tracks)-1, p.Current)
	p.Select(-4)
	assert.Equal(t, 0, p.Current)

	p.Toggle()
	stale := p.gen
	require.NotNil(t, p.Select(2))
	assert.Nil(t, p.Update(playlistTickMsg{gen: stale}))
	assert.Zero(t, p.Progress)
}
