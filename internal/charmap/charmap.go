// Package charmap holds the fixed character substitution table the game's
// text reader expects and the transformers that apply it.
//
// The game renders Polish text through a font that only covers a Latin-1
// sized glyph range, so each diacritic is stored as an unused stand-in
// character. The table is a bijection: every source rune has exactly one
// stand-in and no two source runes share one.
package charmap

import (
	"fmt"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Pair is one entry of the substitution table.
type Pair struct {
	Source  rune
	StandIn rune
}

// table is the game's substitution table. Lower-case ł, ó and Ó are not part
// of it; the game font carries those glyphs natively.
var table = [...]Pair{
	{'ą', 'à'},
	{'Ą', 'À'},
	{'ę', 'è'},
	{'Ę', 'È'},
	{'ż', 'å'},
	{'Ż', 'Å'},
	{'ź', 'á'},
	{'Ź', 'Á'},
	{'ń', 'ñ'},
	{'Ń', 'Ñ'},
	{'ć', 'é'},
	{'Ć', 'É'},
	{'ś', 'ö'},
	{'Ś', 'Ö'},
	{'Ł', 'Г'},
}

var (
	forward = make(map[rune]rune, len(table))
	reverse = make(map[rune]rune, len(table))
)

func init() {
	if err := build(table[:]); err != nil {
		panic(err)
	}
}

// build fills the lookup maps and rejects a table that is not a bijection
// or whose stand-ins overlap its source runes.
func build(pairs []Pair) error {
	fwd := make(map[rune]rune, len(pairs))
	rev := make(map[rune]rune, len(pairs))
	for _, p := range pairs {
		if _, dup := fwd[p.Source]; dup {
			return fmt.Errorf("charmap: duplicate source rune %q", p.Source)
		}
		if _, dup := rev[p.StandIn]; dup {
			return fmt.Errorf("charmap: stand-in %q used twice", p.StandIn)
		}
		fwd[p.Source] = p.StandIn
		rev[p.StandIn] = p.Source
	}
	for src := range fwd {
		if _, clash := rev[src]; clash {
			return fmt.Errorf("charmap: rune %q is both a source and a stand-in", src)
		}
	}
	for k, v := range fwd {
		forward[k] = v
	}
	for k, v := range rev {
		reverse[k] = v
	}
	return nil
}

// Pairs returns a copy of the substitution table in its canonical order.
func Pairs() []Pair {
	out := make([]Pair, len(table))
	copy(out, table[:])
	return out
}

// StandIn returns the stand-in for r and whether r is in the table's domain.
func StandIn(r rune) (rune, bool) {
	s, ok := forward[r]
	return s, ok
}

// Source returns the source rune that s stands in for.
func Source(s rune) (rune, bool) {
	r, ok := reverse[s]
	return r, ok
}

func substituteRune(r rune) rune {
	if s, ok := forward[r]; ok {
		return s
	}
	return r
}

func restoreRune(s rune) rune {
	if r, ok := reverse[s]; ok {
		return r
	}
	return s
}

// Substituter returns a transformer replacing every source rune with its
// stand-in. Runes outside the table pass through unchanged.
func Substituter() transform.Transformer {
	return runes.Map(substituteRune)
}

// Restorer returns the inverse of Substituter.
func Restorer() transform.Transformer {
	return runes.Map(restoreRune)
}

// Substitute applies the table to UTF-8 text. The input must be valid UTF-8;
// invalid sequences are replaced with U+FFFD by the underlying transformer.
func Substitute(text []byte) ([]byte, error) {
	out, _, err := transform.Bytes(Substituter(), text)
	if err != nil {
		return nil, fmt.Errorf("charmap: substitute: %w", err)
	}
	return out, nil
}

// Restore maps stand-ins back to their source runes.
func Restore(text []byte) ([]byte, error) {
	out, _, err := transform.Bytes(Restorer(), text)
	if err != nil {
		return nil, fmt.Errorf("charmap: restore: %w", err)
	}
	return out, nil
}
