package main

import (
	"math/rand"
	"time"
)

const (
	boardWidth  = 10
	boardHeight = 20
)

type Point struct {
	X int
	Y int
}

// Shape is a rectangular 0/1 grid. Row 0 is the top of the piece.
type Shape [][]int

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhaseGameOver:
		return "game over"
	default:
		return "idle"
	}
}

type LockResult struct {
	Locked      bool
	Cleared     int
	ClearedRows []int
	ScoreDelta  int
}

type Game struct {
	Board   [][]int
	Piece   Shape
	Kind    int
	Next    int
	X       int
	Y       int
	Score   int
	Lines   int
	Level   int
	Running bool
	Over    bool
	Paused  bool
	rng     *rand.Rand
}

// NewGame returns an idle game. A nil rng is seeded from the clock.
func NewGame(rng *rand.Rand) Game {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return Game{
		Board: newBoard(),
		Level: 1,
		rng:   rng,
	}
}

func newBoard() [][]int {
	board := make([][]int, boardHeight)
	for i := range board {
		board[i] = make([]int, boardWidth)
	}
	return board
}

func (g *Game) Phase() Phase {
	switch {
	case g.Over:
		return PhaseGameOver
	case g.Running:
		return PhaseRunning
	default:
		return PhaseIdle
	}
}

func (g *Game) Start() {
	g.Board = newBoard()
	g.Score = 0
	g.Lines = 0
	g.Level = 1
	g.Running = true
	g.Over = false
	g.Paused = false
	g.Next = g.randomKind()
	g.spawnNext()
}

func (g *Game) TogglePause() {
	if !g.Running {
		return
	}
	g.Paused = !g.Paused
}

func (g *Game) FallInterval() time.Duration {
	interval := 1000*time.Millisecond - time.Duration(g.Level-1)*100*time.Millisecond
	if interval < 100*time.Millisecond {
		return 100 * time.Millisecond
	}
	return interval
}

func (g *Game) active() bool {
	return g.Running && !g.Paused
}

func (g *Game) MoveLeft() bool {
	return g.Move(-1)
}

func (g *Game) MoveRight() bool {
	return g.Move(1)
}

func (g *Game) Move(dx int) bool {
	if !g.active() {
		return false
	}
	if !isValidMove(g.Piece, g.X+dx, g.Y, g.Board) {
		return false
	}
	g.X += dx
	return true
}

func (g *Game) Rotate() bool {
	if !g.active() {
		return false
	}
	rotated := rotateShape(g.Piece)
	if !isValidMove(rotated, g.X, g.Y, g.Board) {
		return false
	}
	g.Piece = rotated
	return true
}

// MoveDown drops the piece one row, locking it when it cannot fall further.
func (g *Game) MoveDown() LockResult {
	if !g.active() {
		return LockResult{}
	}
	if isValidMove(g.Piece, g.X, g.Y+1, g.Board) {
		g.Y++
		return LockResult{}
	}
	return g.lockAndSpawn()
}

func (g *Game) Tick() LockResult {
	return g.MoveDown()
}

func (g *Game) HardDrop() LockResult {
	if !g.active() {
		return LockResult{}
	}
	for {
		if result := g.MoveDown(); result.Locked {
			return result
		}
	}
}

func (g *Game) GhostY() int {
	y := g.Y
	for isValidMove(g.Piece, g.X, y+1, g.Board) {
		y++
	}
	return y
}

// Grid returns a copy of the board with the active piece drawn in.
func (g *Game) Grid() [][]int {
	grid := make([][]int, boardHeight)
	for y := range grid {
		grid[y] = make([]int, boardWidth)
		copy(grid[y], g.Board[y])
	}
	if !g.Running {
		return grid
	}
	for _, p := range shapeCells(g.Piece) {
		bx := g.X + p.X
		by := g.Y + p.Y
		if by >= 0 && by < boardHeight && bx >= 0 && bx < boardWidth {
			grid[by][bx] = g.Kind + 1
		}
	}
	return grid
}

func (g *Game) lockAndSpawn() LockResult {
	g.lockPiece()
	rows := g.clearLines()
	result := LockResult{
		Locked:      true,
		Cleared:     len(rows),
		ClearedRows: rows,
	}
	if result.Cleared > 0 {
		result.ScoreDelta = result.Cleared * 100 * g.Level
		g.Score += result.ScoreDelta
		g.Lines += result.Cleared
		g.Level = g.Lines/10 + 1
	}
	g.spawnNext()
	return result
}

func (g *Game) lockPiece() {
	for _, p := range shapeCells(g.Piece) {
		bx := g.X + p.X
		by := g.Y + p.Y
		if by >= 0 && by < boardHeight && bx >= 0 && bx < boardWidth {
			g.Board[by][bx] = g.Kind + 1
		}
	}
}

func (g *Game) spawnNext() {
	kind := g.Next
	g.Next = g.randomKind()
	g.spawn(kind)
}

func (g *Game) spawn(kind int) {
	g.Kind = kind
	g.Piece = shapeTemplates[kind]
	g.X = boardWidth/2 - shapeWidth(g.Piece)/2
	g.Y = 0
	if !isValidMove(g.Piece, g.X, g.Y, g.Board) {
		g.Running = false
		g.Over = true
		g.Paused = false
	}
}

// clearLines removes full rows and reports the indices they had on the
// locked board, bottom first.
func (g *Game) clearLines() []int {
	var rows []int
	removed := 0
	for y := boardHeight - 1; y >= 0; y-- {
		full := true
		for x := 0; x < boardWidth; x++ {
			if g.Board[y][x] == 0 {
				full = false
				break
			}
		}
		if !full {
			continue
		}
		rows = append(rows, y-removed)
		removed++
		for pull := y; pull > 0; pull-- {
			copy(g.Board[pull], g.Board[pull-1])
		}
		for x := 0; x < boardWidth; x++ {
			g.Board[0][x] = 0
		}
		y++
	}
	return rows
}

func (g *Game) randomKind() int {
	return g.rng.Intn(len(shapeTemplates))
}

func isValidMove(shape Shape, x, y int, board [][]int) bool {
	for _, p := range shapeCells(shape) {
		bx := x + p.X
		by := y + p.Y
		if bx < 0 || bx >= boardWidth || by >= boardHeight {
			return false
		}
		if by >= 0 && board[by][bx] != 0 {
			return false
		}
	}
	return true
}

// rotateShape turns a shape 90 degrees clockwise.
func rotateShape(shape Shape) Shape {
	height := len(shape)
	if height == 0 {
		return Shape{}
	}
	width := len(shape[0])
	rotated := make(Shape, width)
	for i := range rotated {
		rotated[i] = make([]int, height)
		for j := 0; j < height; j++ {
			rotated[i][j] = shape[height-1-j][i]
		}
	}
	return rotated
}

func shapeWidth(shape Shape) int {
	if len(shape) == 0 {
		return 0
	}
	return len(shape[0])
}

func shapeCells(shape Shape) []Point {
	cells := make([]Point, 0, 4)
	for y, row := range shape {
		for x, cell := range row {
			if cell != 0 {
				cells = append(cells, Point{X: x, Y: y})
			}
		}
	}
	return cells
}

const (
	pieceI = iota
	pieceO
	pieceT
	pieceL
	pieceJ
	pieceS
	pieceZ
)

var shapeTemplates = [7]Shape{
	// I
	{{1, 1, 1, 1}},
	// O
	{{1, 1}, {1, 1}},
	// T
	{{0, 1, 0}, {1, 1, 1}},
	// L
	{{1, 0, 0}, {1, 1, 1}},
	// J
	{{0, 0, 1}, {1, 1, 1}},
	// S
	{{1, 1, 0}, {0, 1, 1}},
	// Z
	{{0, 1, 1}, {1, 1, 0}},
}
