package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Name        string
	BorderColor lipgloss.Color
	TextColor   lipgloss.Color
	AccentColor lipgloss.Color
	ScreenColor lipgloss.Color
	PieceColors []lipgloss.Color
}

var themes = []Theme{
	{
		Name:        "classic",
		BorderColor: lipgloss.Color("226"),
		TextColor:   lipgloss.Color("114"),
		AccentColor: lipgloss.Color("226"),
		ScreenColor: lipgloss.Color("22"),
		PieceColors: []lipgloss.Color{"51", "226", "141", "214", "75", "83", "203"},
	},
	{
		Name:        "dark",
		BorderColor: lipgloss.Color("241"),
		TextColor:   lipgloss.Color("255"),
		AccentColor: lipgloss.Color("75"),
		ScreenColor: lipgloss.Color("235"),
		PieceColors: []lipgloss.Color{"45", "220", "135", "208", "33", "41", "196"},
	},
	{
		Name:        "retro",
		BorderColor: lipgloss.Color("214"),
		TextColor:   lipgloss.Color("223"),
		AccentColor: lipgloss.Color("220"),
		ScreenColor: lipgloss.Color("52"),
		PieceColors: []lipgloss.Color{"220", "214", "222", "208", "215", "216", "223"},
	},
	{
		Name:        "neon",
		BorderColor: lipgloss.Color("51"),
		TextColor:   lipgloss.Color("159"),
		AccentColor: lipgloss.Color("213"),
		ScreenColor: lipgloss.Color("53"),
		PieceColors: []lipgloss.Color{"51", "201", "129", "208", "39", "46", "197"},
	},
}

const (
	consoleTitle = "HEYTML-BOY"
	screenWidth  = 36
	screenHeight = 22
)

func themeIndexByName(name string) int {
	for i, theme := range themes {
		if theme.Name == name {
			return i
		}
	}
	return -1
}

func currentTheme(m *Model) Theme {
	return themes[m.themeIndex]
}

// renderConsole draws the handheld shell around a screen's content.
func renderConsole(m *Model, content string, footer string, powered bool) string {
	theme := currentTheme(m)
	led := lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Render("o")
	if powered {
		led = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("●")
	}
	// The frame grows for content wider or taller than the handheld screen,
	// which is the case for the puzzle board.
	width, height := screenWidth, screenHeight
	if w := lipgloss.Width(content) + 2; w > width {
		width = w
	}
	if h := lipgloss.Height(content); h > height {
		height = h
	}
	header := lipgloss.JoinHorizontal(
		lipgloss.Top,
		led,
		" POWER",
		strings.Repeat(" ", width-len(" POWER")-len(consoleTitle)-1),
		lipgloss.NewStyle().Bold(true).Render(consoleTitle),
	)
	screen := lipgloss.NewStyle().
		Width(width).
		Height(height).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.BorderColor).
		Padding(0, 1)
	if powered {
		screen = screen.Foreground(theme.TextColor)
	} else {
		screen = screen.Foreground(lipgloss.Color("240"))
	}
	body := lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		screen.Render(content),
		helpStyle(theme).Render(footer),
	)
	return center(m.width, m.height, body)
}

func viewPowerOff(m *Model) string {
	content := lipgloss.JoinVertical(
		lipgloss.Center,
		"POWER OFF",
		"",
		"Press O to turn on",
	)
	content = lipgloss.Place(screenWidth-2, screenHeight, lipgloss.Center, lipgloss.Center, content)
	return renderConsole(m, content, "O: power  Q: quit", false)
}

func viewBoot(m *Model) string {
	theme := currentTheme(m)
	barWidth := screenWidth - 6
	filled := barWidth * m.boot.Progress / 100
	bar := highlightStyle(theme).Render(strings.Repeat("█", filled)) + strings.Repeat("░", barWidth-filled)
	lines := []string{
		titleStyle(theme).Render(consoleTitle),
		"",
		bar,
		fmt.Sprintf("%3d%%", m.boot.Progress),
	}
	if m.boot.Ready {
		lines = append(lines, "", highlightStyle(theme).Render("SMILE!"))
	}
	content := lipgloss.Place(screenWidth-2, screenHeight, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, lines...))
	return renderConsole(m, content, "Any key: skip", true)
}

func viewMenu(m *Model) string {
	theme := currentTheme(m)
	cells := make([]string, len(menuItems))
	for i, item := range menuItems {
		style := lipgloss.NewStyle().Width(14).Align(lipgloss.Center).Border(lipgloss.NormalBorder())
		if i == m.menuIndex {
			style = style.BorderForeground(theme.AccentColor).Foreground(theme.AccentColor).Bold(true)
		} else {
			style = style.BorderForeground(theme.BorderColor)
		}
		cells[i] = style.Render(item)
	}
	grid := lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, cells[0], cells[1]),
		lipgloss.JoinHorizontal(lipgloss.Top, cells[2], cells[3]),
	)
	lines := []string{
		titleStyle(theme).Render("Happy Birthday!"),
		highlightStyle(theme).Render("Press Start Button"),
		helpStyle(theme).Faint(true).Render("DOT MATRIX WITH STEREO SOUND"),
		"",
		grid,
	}
	if m.notice != "" {
		lines = append(lines, "", noticeStyle(theme).Render(m.notice))
	}
	content := lipgloss.Place(screenWidth-2, screenHeight, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, lines...))
	return renderConsole(m, content, "Arrows: select  Enter: start  A/B: theme  S: sound  Q: quit", true)
}

func viewMessage(m *Model) string {
	theme := currentTheme(m)
	var b strings.Builder
	b.WriteString(titleStyle(theme).Render("MESSAGE"))
	b.WriteString("\n\n")
	b.WriteString(m.message.Visible())
	if !m.message.Complete {
		b.WriteString(highlightStyle(theme).Render("▌"))
	}
	footer := "Space: skip  Esc: back"
	if m.message.Complete {
		b.WriteString("\n\n")
		emoteKeys := make([]string, len(emotes))
		for i, emote := range emotes {
			emoteKeys[i] = fmt.Sprintf("%d:%s", i+1, emote)
		}
		b.WriteString(helpStyle(theme).Render(strings.Join(emoteKeys, "  ")))
		if m.message.Emote != "" {
			b.WriteString("  ")
			b.WriteString(highlightStyle(theme).Render(strings.Repeat(m.message.Emote+" ", 3)))
		}
		footer = "1-3: emote  R: replay  Enter: next  Esc: back"
	}
	return renderConsole(m, b.String(), footer, true)
}

func viewGallery(m *Model) string {
	theme := currentTheme(m)
	var b strings.Builder
	b.WriteString(titleStyle(theme).Render("HEYTML PHOTOBOX"))
	b.WriteString("\n\n")
	if m.gallery.ShowPrinted {
		b.WriteString(highlightStyle(theme).Render("Printed photos"))
		b.WriteString("\n")
		for _, photo := range m.gallery.Printed {
			b.WriteString(renderPrint(photo, theme))
			b.WriteString("\n")
		}
		return renderConsole(m, b.String(), "Enter: back to gallery  Esc: menu", true)
	}
	photo := m.gallery.Photo()
	b.WriteString(renderFrame(photo, theme))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%d / %d", m.gallery.Current+1, len(m.gallery.Photos)))
	b.WriteString("\n\n")
	if m.gallery.Printing {
		done, total := m.gallery.Progress()
		b.WriteString(highlightStyle(theme).Render(fmt.Sprintf("Printing %d/%d...", done+1, total)))
		b.WriteString("\n")
		b.WriteString(renderProgressBar(done, total, screenWidth-6, theme))
	}
	return renderConsole(m, b.String(), "Left/Right: browse  P: print  Enter: prints  X: reset  Esc: back", true)
}

func renderFrame(photo Photo, theme Theme) string {
	art := lipgloss.NewStyle().
		Width(24).
		Height(6).
		Align(lipgloss.Center, lipgloss.Center).
		Background(theme.ScreenColor).
		Render("[ " + photo.Caption + " ]")
	label := photo.Date
	if photo.Path != "" {
		label += "  " + photo.Path
	}
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(theme.BorderColor).
		Render(lipgloss.JoinVertical(lipgloss.Center, art, label))
}

func renderPrint(photo Photo, theme Theme) string {
	return lipgloss.NewStyle().
		Foreground(theme.TextColor).
		Render(fmt.Sprintf("▣ %-20s %s", photo.Caption, photo.Date))
}

func renderProgressBar(done, total, width int, theme Theme) string {
	if total <= 0 || width <= 0 {
		return ""
	}
	filled := width * done / total
	if filled > width {
		filled = width
	}
	return highlightStyle(theme).Render(strings.Repeat("█", filled)) + strings.Repeat("░", width-filled)
}

func viewMusic(m *Model) string {
	theme := currentTheme(m)
	track := m.playlist.Track()
	var b strings.Builder
	b.WriteString(titleStyle(theme).Render("MUSIC PLAYER"))
	b.WriteString("\n")
	if m.playlist.custom {
		b.WriteString(helpStyle(theme).Render("Custom playlist"))
	}
	b.WriteString("\n")
	b.WriteString(highlightStyle(theme).Render(track.Title))
	b.WriteString("\n")
	b.WriteString(track.Artist)
	b.WriteString("\n\n")
	b.WriteString(renderProgressBar(m.playlist.Progress, 100, screenWidth-6, theme))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s / %s", formatTrackTime(m.playlist.Elapsed()), track.Duration))
	b.WriteString("\n\n")
	state := "▶ PLAY"
	if m.playlist.Playing {
		state = "❚❚ PAUSE"
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, "⏮  ", highlightStyle(theme).Render(state), "  ⏭", fmt.Sprintf("   Vol %d%%", m.config.Volume)))
	b.WriteString("\n\n")
	for i, t := range m.playlist.Tracks {
		line := fmt.Sprintf("%d. %s", i+1, t.Title)
		if t.File != "" {
			line = "♪ " + line
		}
		if len([]rune(line)) > screenWidth-4 {
			line = string([]rune(line)[:screenWidth-7]) + "..."
		}
		if i == m.playlist.Current {
			b.WriteString(highlightStyle(theme).Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
	return renderConsole(m, b.String(), "Space: play  ←/→ ↑/↓: track  -/+: vol  X: reset  Esc: back", true)
}

func viewGame(m *Model) string {
	theme := currentTheme(m)
	board := renderBoard(&m.game, theme)
	info := renderInfo(m, theme)
	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle(theme).Render("TETRIS"),
		lipgloss.JoinHorizontal(lipgloss.Top, board, " ", info),
	)
	return renderConsole(m, content, "Arrows: move  Up: rotate  Space: drop  P: pause  Esc: back", true)
}

func renderBoard(g *Game, theme Theme) string {
	border := lipgloss.NewStyle().Foreground(theme.BorderColor)
	cellText := "  "
	grid := g.Grid()
	ghost := make(map[Point]struct{})
	if g.Running {
		ghostY := g.GhostY()
		if ghostY != g.Y {
			for _, p := range shapeCells(g.Piece) {
				bx, by := g.X+p.X, ghostY+p.Y
				if by >= 0 && by < boardHeight && grid[by][bx] == 0 {
					ghost[Point{X: bx, Y: by}] = struct{}{}
				}
			}
		}
	}
	var b strings.Builder
	b.WriteString(border.Render("+" + strings.Repeat("-", boardWidth*len(cellText)) + "+"))
	b.WriteString("\n")
	for y := 0; y < boardHeight; y++ {
		b.WriteString(border.Render("|"))
		for x := 0; x < boardWidth; x++ {
			val := grid[y][x]
			if val == 0 {
				if _, ok := ghost[Point{X: x, Y: y}]; ok {
					color := theme.PieceColors[g.Kind%len(theme.PieceColors)]
					b.WriteString(lipgloss.NewStyle().Foreground(color).Faint(true).Render(".."))
					continue
				}
				b.WriteString(cellText)
				continue
			}
			color := theme.PieceColors[(val-1)%len(theme.PieceColors)]
			b.WriteString(lipgloss.NewStyle().Background(color).Render(cellText))
		}
		b.WriteString(border.Render("|"))
		b.WriteString("\n")
	}
	b.WriteString(border.Render("+" + strings.Repeat("-", boardWidth*len(cellText)) + "+"))
	return b.String()
}

func renderInfo(m *Model, theme Theme) string {
	g := &m.game
	pad := lipgloss.NewStyle().PaddingLeft(2)
	var b strings.Builder
	line := func(s string) {
		b.WriteString(pad.Render(s))
		b.WriteString("\n")
	}
	if g.Running {
		line(titleStyle(theme).Render("Next"))
		line(renderMiniPiece(g.Next, theme))
		b.WriteString("\n")
	}
	line(fmt.Sprintf("Score: %d", g.Score))
	line(fmt.Sprintf("Level: %d", g.Level))
	line(fmt.Sprintf("Lines: %d", g.Lines))
	b.WriteString("\n")
	if label, delta := m.eventLabel(); label != "" {
		line(highlightStyle(theme).Render(label))
		line(highlightStyle(theme).Render(fmt.Sprintf("+%d", delta)))
		b.WriteString("\n")
	}
	switch g.Phase() {
	case PhaseIdle:
		line(highlightStyle(theme).Render("Press Enter to start"))
	case PhaseGameOver:
		line(warningStyle(theme).Render("GAME OVER"))
		line(highlightStyle(theme).Render("Enter: play again"))
		b.WriteString("\n")
		line(titleStyle(theme).Render("Best"))
		for i, score := range m.scores {
			if i >= 5 {
				break
			}
			line(fmt.Sprintf("%d. %6d  L%d", i+1, score.Score, score.Level))
		}
	case PhaseRunning:
		if g.Paused {
			line(highlightStyle(theme).Render("Paused"))
		}
	}
	b.WriteString("\n")
	keys := []string{
		"Arrows/HJKL: move",
		"Up/X: rotate",
		"Space: drop",
		"P: pause",
		"Esc: back",
	}
	for _, k := range keys {
		line(helpStyle(theme).Render(k))
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderMiniPiece(kind int, theme Theme) string {
	color := theme.PieceColors[kind%len(theme.PieceColors)]
	filled := lipgloss.NewStyle().Background(color)
	var b strings.Builder
	for y, row := range shapeTemplates[kind] {
		if y > 0 {
			b.WriteString("\n")
		}
		for _, cell := range row {
			if cell == 0 {
				b.WriteString("  ")
				continue
			}
			b.WriteString(filled.Render("  "))
		}
	}
	return b.String()
}

func titleStyle(theme Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.AccentColor).Bold(true)
}

func highlightStyle(theme Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.AccentColor).Bold(true)
}

func helpStyle(theme Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.TextColor)
}

func noticeStyle(theme Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(theme.AccentColor).Bold(true).Padding(0, 1)
}

func warningStyle(Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
}

func center(width, height int, content string) string {
	if width == 0 || height == 0 {
		return content
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
