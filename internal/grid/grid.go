// Package grid lays movie summaries out in fixed-column rows.
//
// Layout decides what goes where; the terminal and web shells decide how a
// cell looks. Row-major input order is kept because it encodes rank.
package grid

import (
	"fmt"
	"math"
	"strconv"

	"github.com/Swapnil-2005/movie-recommendation/internal/movies"
)

// EmptyMessage is the single notice shown instead of an empty grid.
const EmptyMessage = "No movies found."

// Cell is one card.
type Cell struct {
	Movie movies.Summary
	// Seq is the 1-based position in the input.
	Seq int
	// Key identifies the cell's open action. It is unique within one render
	// pass even when the same movie appears twice, in one grid or across
	// grids with different prefixes.
	Key string
	// Badge is the rating text, empty when the movie has no rating.
	Badge string
}

// Grid is the laid out result.
type Grid struct {
	Columns int
	Rows    [][]Cell
}

// Empty reports whether the shell should draw the placeholder instead.
func (g Grid) Empty() bool {
	return len(g.Rows) == 0
}

// Len returns the number of cells.
func (g Grid) Len() int {
	n := 0
	for _, r := range g.Rows {
		n += len(r)
	}
	return n
}

// Cells returns the cells in row-major order.
func (g Grid) Cells() []Cell {
	out := make([]Cell, 0, g.Len())
	for _, r := range g.Rows {
		out = append(out, r...)
	}
	return out
}

// Layout partitions items into rows of columns cells; the last row may be
// short. Columns below 1 are treated as 1.
func Layout(items []movies.Summary, columns int, keyPrefix string) Grid {
	if columns < 1 {
		columns = 1
	}
	g := Grid{Columns: columns}
	if len(items) == 0 {
		return g
	}

	g.Rows = make([][]Cell, 0, (len(items)+columns-1)/columns)
	for start := 0; start < len(items); start += columns {
		end := min(start+columns, len(items))
		row := make([]Cell, 0, end-start)
		for i := start; i < end; i++ {
			m := items[i]
			seq := i + 1
			row = append(row, Cell{
				Movie: m,
				Seq:   seq,
				Key:   CellKey(keyPrefix, seq, m.ID),
				Badge: Badge(m),
			})
		}
		g.Rows = append(g.Rows, row)
	}
	return g
}

// CellKey builds the action identity for a cell.
func CellKey(prefix string, seq int, id movies.ID) string {
	return fmt.Sprintf("%s_%d_%d", prefix, seq, id)
}

// Badge formats the rating rounded to one decimal, or "" without a rating.
func Badge(m movies.Summary) string {
	if !m.HasRating() {
		return ""
	}
	return "⭐ " + FormatRating(*m.Rating)
}

// FormatRating rounds half away from zero to one decimal place.
func FormatRating(r float64) string {
	return strconv.FormatFloat(math.Round(r*10)/10, 'f', 1, 64)
}
