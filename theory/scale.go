package theory

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrConflictingAccidentals rejects tokens carrying both flats and sharps.
	ErrConflictingAccidentals = errors.New("scale degree has both flats and sharps")
	// ErrMissingDegree rejects tokens without a degree number.
	ErrMissingDegree = errors.New("scale degree number is missing")
)

// DegreeSeparator joins degree tokens in the textual shorthand.
const DegreeSeparator = ","

// Degree is one step of an abstract scale: a 1-based degree number plus a
// signed accidental count.
type Degree struct {
	Number      int
	Accidentals int
}

// String renders the degree in shorthand form, accidentals first: "b3", "#4", "5".
func (d Degree) String() string {
	symbol := sharpSymbol
	count := d.Accidentals
	if count < 0 {
		symbol = flatSymbol
		count = -count
	}
	return strings.Repeat(symbol, count) + strconv.Itoa(d.Number)
}

// Scale is an abstract interval pattern, an ordered list of degrees. It has
// no root; see Realise for the concrete counterpart. Degrees may repeat or
// run out of order, though almost every real scale climbs from 1.
type Scale struct {
	degrees []Degree
}

// NewScale copies the given degrees into a Scale.
func NewScale(degrees []Degree) Scale {
	return Scale{degrees: append([]Degree(nil), degrees...)}
}

var degreeRe = regexp.MustCompile(`^(b*)(#*)([0-9]*)$`)

func parseDegree(token string) (Degree, error) {
	m := degreeRe.FindStringSubmatch(strings.TrimSpace(token))
	if m == nil {
		return Degree{}, fmt.Errorf("%w: bad token %q", ErrMissingDegree, token)
	}
	if len(m[1]) > 0 && len(m[2]) > 0 {
		return Degree{}, fmt.Errorf("%w: %q", ErrConflictingAccidentals, token)
	}
	if len(m[3]) == 0 {
		return Degree{}, fmt.Errorf("%w: %q", ErrMissingDegree, token)
	}
	number, err := strconv.Atoi(m[3])
	if err != nil {
		return Degree{}, fmt.Errorf("%w: %q", ErrMissingDegree, token)
	}
	return Degree{Number: number, Accidentals: len(m[2]) - len(m[1])}, nil
}

// ParseScale reads the comma-separated shorthand, e.g. "1,2,b3,4,5,6,b7".
// An empty string parses as an empty scale.
func ParseScale(s string) (Scale, error) {
	if strings.TrimSpace(s) == "" {
		return Scale{}, nil
	}
	tokens := strings.Split(s, DegreeSeparator)
	degrees := make([]Degree, 0, len(tokens))
	for _, token := range tokens {
		d, err := parseDegree(token)
		if err != nil {
			return Scale{}, err
		}
		degrees = append(degrees, d)
	}
	return Scale{degrees: degrees}, nil
}

// Render is the exact inverse of ParseScale.
func (s Scale) Render() string {
	parts := make([]string, len(s.degrees))
	for i, d := range s.degrees {
		parts[i] = d.String()
	}
	return strings.Join(parts, DegreeSeparator)
}

// Len returns the number of degrees.
func (s Scale) Len() int { return len(s.degrees) }

// At returns the i'th degree; out-of-range indexes panic like any slice access.
func (s Scale) At(i int) Degree { return s.degrees[i] }

// Degrees returns a copy of the degree list.
func (s Scale) Degrees() []Degree {
	return append([]Degree(nil), s.degrees...)
}
