package maze

// CellState represents the state of a single grid cell.
type CellState byte

const (
	Wall CellState = iota // Solid cell, not enterable.
	Open                  // Carved corridor cell.
	Exit                  // The single goal cell of the maze.
)

// Position represents a cell location on the grid. X grows rightward
// and Y grows downward, matching the grid's row-major layout.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the position shifted by the given delta.
func (p Position) Add(d Position) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}

// Direction is one of the four canonical move directions.
type Direction string

const (
	Up    Direction = "up"
	Down  Direction = "down"
	Left  Direction = "left"
	Right Direction = "right"
)

// Directions maps each canonical direction to its unit vector.
var Directions = map[Direction]Position{
	Up:    {X: 0, Y: -1},
	Down:  {X: 0, Y: 1},
	Left:  {X: -1, Y: 0},
	Right: {X: 1, Y: 0},
}

// Valid reports whether d is one of the four canonical directions.
func (d Direction) Valid() bool {
	_, ok := Directions[d]
	return ok
}
