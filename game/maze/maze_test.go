package maze

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

// openCells collects every non-Wall position on the grid.
func openCells(m *Maze) []Position {
	var cells []Position
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			if m.CellAt(Position{X: x, Y: y}) != Wall {
				cells = append(cells, Position{X: x, Y: y})
			}
		}
	}
	return cells
}

// reachableFromStart runs a BFS over non-Wall cells via 4-directional
// adjacency and returns the visited set.
func reachableFromStart(m *Maze) map[Position]bool {
	visited := map[Position]bool{m.Start(): true}
	queue := []Position{m.Start()}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range Directions {
			next := cur.Add(d)
			if m.Walkable(next) && !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	return visited
}

// adjacencyEdges counts edges between orthogonally adjacent non-Wall
// cells, each counted once.
func adjacencyEdges(m *Maze) int {
	edges := 0
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			p := Position{X: x, Y: y}
			if !m.Walkable(p) {
				continue
			}
			if m.Walkable(p.Add(Position{X: 1, Y: 0})) {
				edges++
			}
			if m.Walkable(p.Add(Position{X: 0, Y: 1})) {
				edges++
			}
		}
	}
	return edges
}

func TestNewDimensions(t *testing.T) {
	t.Run("rejects too small dimensions", func(t *testing.T) {
		_, err := New(3, 9)
		assert.ErrorIs(t, err, ErrTooSmallDimension)

		_, err = New(9, 4)
		assert.ErrorIs(t, err, ErrTooSmallDimension)

		_, err = New(-1, -1)
		assert.ErrorIs(t, err, ErrTooSmallDimension)
	})

	t.Run("bumps even dimensions up to odd", func(t *testing.T) {
		m, err := New(6, 8)
		assert.NoError(t, err)
		assert.Equal(t, 7, m.Width())
		assert.Equal(t, 9, m.Height())
	})

	t.Run("keeps odd dimensions", func(t *testing.T) {
		m, err := New(15, 15)
		assert.NoError(t, err)
		assert.Equal(t, 15, m.Width())
		assert.Equal(t, 15, m.Height())
	})
}

func TestGenerationProperties(t *testing.T) {
	sizes := []struct{ w, h int }{{5, 5}, {7, 11}, {15, 15}, {21, 9}}

	for _, size := range sizes {
		for seed := int64(0); seed < 20; seed++ {
			name := fmt.Sprintf("%dx%d seed %d", size.w, size.h, seed)
			t.Run(name, func(t *testing.T) {
				m, err := NewWithRand(size.w, size.h, rand.New(rand.NewSource(seed)))
				assert.NoError(t, err)

				open := openCells(m)
				reached := reachableFromStart(m)

				// One connected open region containing the start.
				assert.Equal(t, len(open), len(reached), "all open cells reachable from start")

				// Exactly one exit, and it is part of that region.
				exits := 0
				for _, p := range open {
					if m.CellAt(p) == Exit {
						exits++
					}
				}
				assert.Equal(t, 1, exits)
				assert.True(t, reached[m.Exit()], "exit reachable from start")
				assert.Equal(t, Exit, m.CellAt(m.Exit()))
				assert.Equal(t, m.Width()-2, m.Exit().X, "exit sits in rightmost interior column")

				// Spanning tree: open edges = open cells - 1.
				assert.Equal(t, len(open)-1, adjacencyEdges(m), "perfect maze has no cycles")

				// Start is carved and fixed at (1,1).
				assert.Equal(t, Position{X: 1, Y: 1}, m.Start())
				assert.Equal(t, Open, m.CellAt(m.Start()))
			})
		}
	}
}

func TestDeterministicWithSeed(t *testing.T) {
	a, err := NewWithRand(15, 15, rand.New(rand.NewSource(42)))
	assert.NoError(t, err)
	b, err := NewWithRand(15, 15, rand.New(rand.NewSource(42)))
	assert.NoError(t, err)

	assert.Equal(t, a.String(), b.String())
	assert.Equal(t, a.Exit(), b.Exit())
}

func TestGridCopyIsDetached(t *testing.T) {
	m, err := New(9, 9)
	assert.NoError(t, err)

	grid := m.Grid()
	grid[1][1] = Wall
	assert.Equal(t, Open, m.CellAt(Position{X: 1, Y: 1}), "mutating the copy must not touch the maze")
}

func TestCellAtOutOfBounds(t *testing.T) {
	m, err := New(5, 5)
	assert.NoError(t, err)

	assert.Equal(t, Wall, m.CellAt(Position{X: -1, Y: 0}))
	assert.Equal(t, Wall, m.CellAt(Position{X: 0, Y: 99}))
	assert.False(t, m.Walkable(Position{X: -1, Y: -1}))
}
