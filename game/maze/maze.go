/*
Package maze provides generation and querying of perfect grid mazes.

A maze is a rectangular grid of cells, each either Wall, Open, or Exit.
Generation uses recursive backtracking: usable cells lie on odd
coordinates, corridors are carved two cells at a time through the wall
between them, and the result is a spanning tree of the interior (exactly
one path between any two open cells). A single Exit cell is placed in
the rightmost interior column and is reachable from the start by
construction.
*/
package maze

import (
	"errors"
	"math/rand"
	"strings"
)

const (
	// MinDimension is the smallest width or height that leaves room to carve.
	MinDimension = 5
)

var (
	ErrTooSmallDimension = errors.New("maze dimension must be at least 5")
)

// Maze represents a generated grid maze. It is immutable once generated;
// all mutation happens inside New.
type Maze struct {
	width  int
	height int
	grid   [][]CellState
	start  Position
	exit   Position
}

// New generates a maze of roughly the given dimensions. Even dimensions
// are bumped up to the next odd value so the carve pattern lines up.
func New(width, height int) (*Maze, error) {
	return NewWithRand(width, height, nil)
}

// NewWithRand is like New but carves with the provided random source,
// which makes generation reproducible. A nil source falls back to the
// shared global source.
func NewWithRand(width, height int, rng *rand.Rand) (*Maze, error) {
	if width < MinDimension || height < MinDimension {
		return nil, ErrTooSmallDimension
	}
	if width%2 == 0 {
		width++
	}
	if height%2 == 0 {
		height++
	}

	grid := make([][]CellState, height)
	for y := range grid {
		grid[y] = make([]CellState, width)
	}

	m := &Maze{
		width:  width,
		height: height,
		grid:   grid,
		start:  Position{X: 1, Y: 1},
	}
	m.carve(rng)
	m.placeExit(rng)
	return m, nil
}

// intn draws from rng when set, otherwise from the global source.
func intn(rng *rand.Rand, n int) int {
	if rng != nil {
		return rng.Intn(n)
	}
	return rand.Intn(n)
}

// carve runs the recursive backtracking walk from the start cell,
// opening corridors until every reachable interior cell is visited.
func (m *Maze) carve(rng *rand.Rand) {
	stack := []Position{m.start}
	m.grid[m.start.Y][m.start.X] = Open

	for len(stack) > 0 {
		cur := stack[len(stack)-1]

		var candidates []Position
		for _, d := range Directions {
			next := Position{X: cur.X + d.X*2, Y: cur.Y + d.Y*2}
			if m.inInterior(next) && m.grid[next.Y][next.X] == Wall {
				candidates = append(candidates, next)
			}
		}

		if len(candidates) == 0 {
			stack = stack[:len(stack)-1] // backtrack
			continue
		}

		next := candidates[intn(rng, len(candidates))]
		between := Position{X: (cur.X + next.X) / 2, Y: (cur.Y + next.Y) / 2}
		m.grid[between.Y][between.X] = Open
		m.grid[next.Y][next.X] = Open
		stack = append(stack, next)
	}
}

// placeExit marks an Open cell in the rightmost interior column as the
// Exit. Candidates are collected up front so the pick always terminates,
// even on grids where most of that column stayed walled.
func (m *Maze) placeExit(rng *rand.Rand) {
	col := m.width - 2
	var candidates []int
	for y := 1; y < m.height-1; y++ {
		if m.grid[y][col] == Open {
			candidates = append(candidates, y)
		}
	}
	if len(candidates) == 0 {
		// Degenerate carve; keep the exit on the start cell so the
		// invariant of a reachable exit still holds.
		m.exit = m.start
		m.grid[m.exit.Y][m.exit.X] = Exit
		return
	}
	m.exit = Position{X: col, Y: candidates[intn(rng, len(candidates))]}
	m.grid[m.exit.Y][m.exit.X] = Exit
}

// inInterior reports whether p lies strictly inside the outer wall ring.
func (m *Maze) inInterior(p Position) bool {
	return p.X >= 1 && p.X <= m.width-2 && p.Y >= 1 && p.Y <= m.height-2
}

// InBound reports whether p lies anywhere on the grid.
func (m *Maze) InBound(p Position) bool {
	return p.X >= 0 && p.X < m.width && p.Y >= 0 && p.Y < m.height
}

// Walkable reports whether p is a cell the player may occupy.
func (m *Maze) Walkable(p Position) bool {
	return m.InBound(p) && m.grid[p.Y][p.X] != Wall
}

// CellAt returns the state of the cell at p. Out-of-bound positions
// read as Wall.
func (m *Maze) CellAt(p Position) CellState {
	if !m.InBound(p) {
		return Wall
	}
	return m.grid[p.Y][p.X]
}

// Width returns the (odd) grid width.
func (m *Maze) Width() int {
	return m.width
}

// Height returns the (odd) grid height.
func (m *Maze) Height() int {
	return m.height
}

// Start returns the fixed start cell.
func (m *Maze) Start() Position {
	return m.start
}

// Exit returns the exit cell.
func (m *Maze) Exit() Position {
	return m.exit
}

// Grid returns a copy of the cell grid, safe to hand to renderers.
func (m *Maze) Grid() [][]CellState {
	grid := make([][]CellState, m.height)
	for y := range grid {
		grid[y] = make([]CellState, m.width)
		copy(grid[y], m.grid[y])
	}
	return grid
}

// String renders the maze as ASCII for debugging: '#' walls, spaces for
// corridors, 'S' start, 'E' exit.
func (m *Maze) String() string {
	var b strings.Builder
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			switch {
			case x == m.start.X && y == m.start.Y:
				b.WriteByte('S')
			case m.grid[y][x] == Exit:
				b.WriteByte('E')
			case m.grid[y][x] == Wall:
				b.WriteByte('#')
			default:
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
