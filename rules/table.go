package rules

import (
	"strings"

	"github.com/pkg/errors"
)

const (
	BirthTag    = 'B'
	SurvivalTag = 'S'
)

// ErrFormat is returned when a rule specification is malformed
var ErrFormat = errors.New("incorrect rule formatting")

// Table records which neighbor counts (0..8) appear in a rule specification
type Table [MaxNeighbors + 1]bool

/*
ParseTable decodes a specification of the form <tag><digits>, e.g. "B3" or "S23".

Every digit after the tag marks its slot in the table. Any other character after the tag
is ignored.
*/
func ParseTable(spec string, tag byte) (Table, error) {
	var t Table
	if len(spec) == 0 || spec[0] != tag {
		return t, errors.Wrapf(ErrFormat, "[ParseTable] %q does not start with %q", spec, tag)
	}
	for i := 1; i < len(spec); i++ {
		if ch := spec[i]; ch >= '0' && ch <= '9' {
			d := int(ch - '0')
			if d > MaxNeighbors {
				continue
			}
			t[d] = true
		}
	}
	return t, nil
}

// slot returns the table entry at k as 0 or 1
func (t Table) slot(k int) int {
	if t[k] {
		return 1
	}
	return 0
}

// String renders the set digits, e.g. "23"
func (t Table) String() string {
	var sb strings.Builder
	for k, set := range t {
		if set {
			sb.WriteByte(byte('0' + k))
		}
	}
	return sb.String()
}
