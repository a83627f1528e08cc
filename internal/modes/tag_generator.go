package modes

const (
	alphabetSize = 26

	// tagLimit is the number of distinct two-letter tags.
	tagLimit = alphabetSize * alphabetSize

	// PhaseSwitchChar moves jump mode from single-letter to two-letter tags,
	// so it is never issued as a single-letter tag.
	PhaseSwitchChar = 'f'
)

// TagGenerator issues the two-letter tags "aa" through "zz" in order.
type TagGenerator struct {
	index int
}

// Next returns the next tag, or false once all have been issued.
func (g *TagGenerator) Next() (string, bool) {
	if g.index >= tagLimit {
		return "", false
	}
	first := rune('a' + g.index/alphabetSize)
	second := rune('a' + g.index%alphabetSize)
	g.index++
	return string([]rune{first, second}), true
}

// Reset starts over from "aa".
func (g *TagGenerator) Reset() { g.index = 0 }

// SingleCharacterTagGenerator issues the letters 'a' through 'z', skipping
// PhaseSwitchChar.
type SingleCharacterTagGenerator struct {
	next rune
}

// Next returns the next letter, or false once the alphabet is used up.
func (g *SingleCharacterTagGenerator) Next() (string, bool) {
	if g.next == 0 {
		g.next = 'a'
	}
	if g.next == PhaseSwitchChar {
		g.next++
	}
	if g.next > 'z' {
		return "", false
	}
	tag := string(g.next)
	g.next++
	return tag, true
}

// Reset starts over from 'a'.
func (g *SingleCharacterTagGenerator) Reset() { g.next = 'a' }
