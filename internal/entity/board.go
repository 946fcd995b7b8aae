package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-chatbot/internal/apperror"
)

const (
	PlayerX = "X"
	PlayerO = "O"

	EmptyCell = ""
)

// runLengths - how many marks in a row win on each supported board size.
var runLengths = map[int]int{
	3: 3,
	6: 4,
	8: 5,
}

// directions - row/col steps for horizontal, vertical, ↘ and ↙ runs.
var directions = [4][2]int{
	{0, 1},
	{1, 0},
	{1, 1},
	{1, -1},
}

// SupportedSizes - board sizes a game can be started with, ascending.
func SupportedSizes() []int {
	return []int{3, 6, 8}
}

// RunLength - returns the number of contiguous marks needed to win on a board of the given size.
func RunLength(size int) (int, error) {
	needed, ok := runLengths[size]
	if !ok {
		return 0, fmt.Errorf("%w: %d", apperror.ErrUnsupportedSize, size)
	}

	return needed, nil
}

// Board is a square grid of marks. Size never changes after NewBoard.
type Board struct {
	Size  int        `json:"size"`
	Cells [][]string `json:"cells"`
}

func NewBoard(size int) *Board {
	cells := make([][]string, size)
	for row := range cells {
		cells[row] = make([]string, size)
	}

	return &Board{
		Size:  size,
		Cells: cells,
	}
}

func (that *Board) InRange(row, col int) bool {
	return row >= 0 && row < that.Size && col >= 0 && col < that.Size
}

// Place - puts mark into a single empty cell.
func (that *Board) Place(row, col int, mark string) error {
	if !that.InRange(row, col) {
		return fmt.Errorf("%w: row %d col %d on %dx%d", apperror.ErrIllegalMove, row, col, that.Size, that.Size)
	}

	if that.Cells[row][col] != EmptyCell {
		return apperror.ErrCellOccupied
	}

	that.Cells[row][col] = mark

	return nil
}

// CheckWin - reports whether mark holds runLength contiguous cells in any orientation.
func (that *Board) CheckWin(mark string, runLength int) bool {
	if runLength <= 0 || runLength > that.Size {
		return false
	}

	for row := 0; row < that.Size; row++ {
		for col := 0; col < that.Size; col++ {
			for _, dir := range directions {
				if that.hasRun(row, col, dir[0], dir[1], mark, runLength) {
					return true
				}
			}
		}
	}

	return false
}

func (that *Board) hasRun(row, col, dRow, dCol int, mark string, runLength int) bool {
	endRow, endCol := row+dRow*(runLength-1), col+dCol*(runLength-1)
	if !that.InRange(endRow, endCol) {
		return false
	}

	for i := 0; i < runLength; i++ {
		if that.Cells[row+dRow*i][col+dCol*i] != mark {
			return false
		}
	}

	return true
}

// CheckDraw - true when no empty cell remains. Check for a win first.
func (that *Board) CheckDraw() bool {
	for _, row := range that.Cells {
		for _, cell := range row {
			if cell == EmptyCell {
				return false
			}
		}
	}

	return true
}

func (that *Board) Clone() *Board {
	clone := NewBoard(that.Size)
	for row := range that.Cells {
		copy(clone.Cells[row], that.Cells[row])
	}

	return clone
}

func (that *Board) String() string {
	var sb strings.Builder

	for _, row := range that.Cells {
		for col, cell := range row {
			if col > 0 {
				sb.WriteByte(' ')
			}
			if cell == EmptyCell {
				cell = "."
			}
			sb.WriteString(cell)
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}
