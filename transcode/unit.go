package transcode

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Unit selects how field offsets are counted.
type Unit int

const (
	// Runes counts Unicode code points.
	Runes Unit = iota
	// Bytes counts raw bytes of the encoded line.
	Bytes
	// Columns counts terminal display columns.
	Columns
)

func (u Unit) String() string {
	switch u {
	case Runes:
		return "runes"
	case Bytes:
		return "bytes"
	case Columns:
		return "columns"
	default:
		return fmt.Sprintf("Unit(%d)", int(u))
	}
}

// ParseUnit parses the names produced by Unit.String. "chars" is accepted
// as an alias for runes.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "runes", "chars":
		return Runes, nil
	case "bytes":
		return Bytes, nil
	case "columns":
		return Columns, nil
	default:
		return Runes, fmt.Errorf("unsupported offset unit %q (supported: runes, bytes, columns)", s)
	}
}

// view slices one line in a given unit.
type view interface {
	slice(start, length int) string
}

func newView(line string, unit Unit) view {
	switch unit {
	case Bytes:
		return byteView(line)
	case Columns:
		return newColumnView(line)
	default:
		if isASCII(line) {
			return byteView(line)
		}
		return runeView([]rune(line))
	}
}

type byteView string

func (v byteView) slice(start, length int) string {
	if start >= len(v) {
		return ""
	}
	end := min(start+length, len(v))
	return string(v[start:end])
}

type runeView []rune

func (v runeView) slice(start, length int) string {
	if start >= len(v) {
		return ""
	}
	end := min(start+length, len(v))
	return string(v[start:end])
}

// columnView maps each rune to the display column it starts at. Zero-width
// runes share the column of the rune before them so combining marks stay
// with their base character.
type columnView struct {
	runes []rune
	cols  []int
}

func newColumnView(line string) columnView {
	v := columnView{
		runes: []rune(line),
	}
	v.cols = make([]int, len(v.runes))
	col := 0
	for i, r := range v.runes {
		w := runewidth.RuneWidth(r)
		if w == 0 && i > 0 {
			v.cols[i] = v.cols[i-1]
			continue
		}
		v.cols[i] = col
		col += w
	}
	return v
}

func (v columnView) slice(start, length int) string {
	i := sort.SearchInts(v.cols, start)
	j := sort.SearchInts(v.cols, start+length)
	if i >= j {
		return ""
	}
	return string(v.runes[i:j])
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
