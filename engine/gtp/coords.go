// Package gtp drives an external bot process over a GTP-style text protocol.
package gtp

import (
	"fmt"
	"strconv"
	"strings"

	"isolation-viz/types"
)

// Vertex notation:
// - Columns: A, B, C, ... skipping I to avoid confusion with 1
// - Rows: 1..height counted from the bottom of the board
// - Example: on a 7x7 board A1 is (6, 0) and G7 is (0, 6)
//
// Board coordinates:
// - Row: 0..height-1 (top to bottom)
// - Col: 0..width-1 (left to right)

// moveToVertex converts a board coordinate to vertex notation.
func moveToVertex(m types.Move, height int) string {
	col := 'A' + rune(m.Col)
	if m.Col >= 8 {
		col++ // Skip 'I'
	}
	return fmt.Sprintf("%c%d", col, height-m.Row)
}

// vertexToMove converts vertex notation to a board coordinate.
func vertexToMove(vertex string, width, height int) (types.Move, error) {
	vertex = strings.TrimSpace(strings.ToUpper(vertex))
	if len(vertex) < 2 {
		return types.NoMove, fmt.Errorf("invalid vertex: %q", vertex)
	}

	letter := vertex[0]
	if letter < 'A' || letter > 'Z' || letter == 'I' {
		return types.NoMove, fmt.Errorf("invalid column in vertex: %q", vertex)
	}
	col := int(letter - 'A')
	if letter > 'I' {
		col-- // Account for skipped 'I'
	}

	row, err := strconv.Atoi(vertex[1:])
	if err != nil {
		return types.NoMove, fmt.Errorf("invalid row in vertex: %q", vertex)
	}

	m := types.Move{Row: height - row, Col: col}
	if !m.In(width, height) {
		return types.NoMove, fmt.Errorf("vertex out of bounds: %q", vertex)
	}
	return m, nil
}

// colorOf returns the protocol color for the player who makes move number n
// (0-based). Player 1 is black and moves first.
func colorOf(n int) string {
	if n%2 == 0 {
		return "black"
	}
	return "white"
}
