package model

import (
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-gol-duel/rules"
)

const (
	// Separator frames every rendered generation
	Separator = "=========================================================="

	DefaultEmptyGlyph = "-"
)

// TextRenderer writes generations as plain text
type TextRenderer struct {
	w          io.Writer
	emptyGlyph string
}

// NewTextRenderer returns a renderer writing to w; an empty glyph falls back to "-"
func NewTextRenderer(w io.Writer, emptyGlyph string) *TextRenderer {
	if emptyGlyph == "" {
		emptyGlyph = DefaultEmptyGlyph
	}
	return &TextRenderer{w: w, emptyGlyph: emptyGlyph}
}

// Format returns the text block for one generation
func (r *TextRenderer) Format(generation int, g *Grid) string {
	var sb strings.Builder
	sb.WriteString(Separator)
	sb.WriteString("\nIteration = ")
	sb.WriteString(strconv.Itoa(generation))
	sb.WriteString("\n\n")
	for _, row := range g.Cells() {
		for _, cell := range row {
			sb.WriteByte(' ')
			if cell == rules.Empty {
				sb.WriteString(r.emptyGlyph)
			} else {
				sb.WriteString(strconv.Itoa(int(cell)))
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString(Separator)
	sb.WriteByte('\n')
	return sb.String()
}

// Display writes one generation in a single write
func (r *TextRenderer) Display(generation int, g *Grid) error {
	if _, err := io.WriteString(r.w, r.Format(generation, g)); err != nil {
		return errors.Wrapf(err, "[Display] failed to write generation %d", generation)
	}
	return nil
}
