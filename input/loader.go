package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-gol-duel/model"
	"github.com/sheikhrachel/go-gol-duel/rules"
)

var (
	// ErrFileNotFound is returned when the input file cannot be opened
	ErrFileNotFound = errors.New("unable to open input file")
	// ErrParse is returned for missing or non-integer tokens and unknown cell values
	ErrParse = errors.New("malformed input")
)

// OpenError reports a grid file that could not be opened. It matches ErrFileNotFound
// and keeps the underlying os error in the chain.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("%v '%s': %v", ErrFileNotFound, e.Path, e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}

func (e *OpenError) Is(target error) bool {
	return target == ErrFileNotFound
}

// Scenario is everything a grid file describes
type Scenario struct {
	Header      string
	Generations int
	Birth       rules.Table
	Survival    rules.Table
	Rules       rules.RuleSet
	Grid        *model.Grid
}

// LoadFile opens filename and parses it into a rows x cols scenario
func LoadFile(filename string, rows, cols int, topology model.Topology) (Scenario, error) {
	f, err := os.Open(filename)
	if err != nil {
		return Scenario{}, errors.WithStack(&OpenError{Path: filename, Err: err})
	}
	defer f.Close()

	return Parse(f, rows, cols, topology)
}

/*
Parse reads a grid file:

	<header line, ignored>
	<generations>
	B<digits>
	S<digits>
	<rows x cols cells, each 0, 1 or 2, row-major>

Everything after the header is whitespace separated; tokens after the last cell are ignored.
*/
func Parse(r io.Reader, rows, cols int, topology model.Topology) (Scenario, error) {
	var sc Scenario
	br := bufio.NewReader(r)

	header, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return sc, errors.Wrap(err, "[Parse] failed to read header")
	}
	sc.Header = strings.TrimRight(header, "\r\n")

	tokens := &tokenizer{scanner: bufio.NewScanner(br)}
	tokens.scanner.Split(bufio.ScanWords)

	if sc.Generations, err = tokens.int("generation count"); err != nil {
		return sc, err
	}

	birth, err := tokens.next("birth rule")
	if err != nil {
		return sc, err
	}
	survival, err := tokens.next("survival rule")
	if err != nil {
		return sc, err
	}
	if sc.Birth, err = rules.ParseTable(birth, rules.BirthTag); err != nil {
		return sc, errors.Wrap(err, "[Parse] birth rule")
	}
	if sc.Survival, err = rules.ParseTable(survival, rules.SurvivalTag); err != nil {
		return sc, errors.Wrap(err, "[Parse] survival rule")
	}
	sc.Rules = rules.FromTables(sc.Birth, sc.Survival)

	if rows <= 0 || cols <= 0 {
		return sc, errors.Wrapf(model.ErrDimensions, "[Parse] %dx%d", rows, cols)
	}
	cells := make([][]rules.Cell, rows)
	for r := range rows {
		cells[r] = make([]rules.Cell, cols)
		for c := range cols {
			v, err := tokens.int("cell")
			if err != nil {
				return sc, errors.Wrapf(err, "[Parse] at row %d col %d", r, c)
			}
			if v < int(rules.Empty) || v > int(rules.SpeciesB) {
				return sc, errors.Wrapf(ErrParse, "[Parse] cell value %d at row %d col %d is not 0, 1 or 2", v, r, c)
			}
			cells[r][c] = rules.Cell(v)
		}
	}

	if sc.Grid, err = model.NewGridFromCells(cells, topology); err != nil {
		return sc, errors.Wrap(err, "[Parse]")
	}
	return sc, nil
}

type tokenizer struct {
	scanner *bufio.Scanner
}

func (t *tokenizer) next(what string) (string, error) {
	if !t.scanner.Scan() {
		if err := t.scanner.Err(); err != nil {
			return "", errors.Wrapf(ErrParse, "[next] reading %s: %v", what, err)
		}
		return "", errors.Wrapf(ErrParse, "[next] unexpected end of input, expected %s", what)
	}
	return t.scanner.Text(), nil
}

func (t *tokenizer) int(what string) (int, error) {
	tok, err := t.next(what)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, errors.Wrapf(ErrParse, "[int] %s %q is not an integer", what, tok)
	}
	return v, nil
}
