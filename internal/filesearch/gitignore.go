package filesearch

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

// IgnoreMatcher matches paths against gitignore-style patterns. The last
// matching pattern wins, so negations can re-include paths.
type IgnoreMatcher struct {
	patterns []*ignorePattern
}

type ignorePattern struct {
	regex    *regexp.Regexp
	negation bool
	dirOnly  bool
	anchored bool
}

// LoadIgnoreFile reads patterns from a .gitignore file. A missing file
// yields an empty matcher.
func LoadIgnoreFile(path string) (*IgnoreMatcher, error) {
	m := &IgnoreMatcher{}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return m, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	m.AddPatterns(lines...)
	return m, nil
}

// AddPatterns appends patterns; blank lines and comments are ignored.
func (m *IgnoreMatcher) AddPatterns(patterns ...string) {
	for _, line := range patterns {
		line = strings.TrimSpace(line)
		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if p := parseIgnorePattern(line); p != nil {
			m.patterns = append(m.patterns, p)
		}
	}
}

// Matches reports whether rel, a path relative to the workspace root,
// is excluded.
func (m *IgnoreMatcher) Matches(rel string, isDir bool) bool {
	if m == nil {
		return false
	}
	// Normalize path separators to forward slashes
	rel = filepath.ToSlash(rel)
	ignored := false
	for _, p := range m.patterns {
		if p.matches(rel, isDir) {
			ignored = !p.negation
		}
	}
	return ignored
}

func (p *ignorePattern) matches(rel string, isDir bool) bool {
	switch {
	case p.dirOnly && isDir:
		return p.regex.MatchString(rel)
	case p.dirOnly:
		// File within the directory
		return p.regex.MatchString(path.Dir(rel))
	case p.anchored:
		return p.regex.MatchString(rel)
	default:
		// Non-anchored patterns also match the basename
		return p.regex.MatchString(rel) || p.regex.MatchString(path.Base(rel))
	}
}

func parseIgnorePattern(pattern string) *ignorePattern {
	negation := false
	dirOnly := false
	anchored := false

	// Handle negation
	if strings.HasPrefix(pattern, "!") {
		negation = true
		pattern = pattern[1:]
	}

	// Check for anchored pattern
	if strings.HasPrefix(pattern, "/") {
		anchored = true
	}

	// Handle directory-only patterns
	if strings.HasSuffix(pattern, "/") {
		dirOnly = true
		pattern = strings.TrimSuffix(pattern, "/")
	}

	regex, err := regexp.Compile(globToRegex(pattern))
	if err != nil {
		// Invalid patterns are skipped
		return nil
	}
	return &ignorePattern{
		regex:    regex,
		negation: negation,
		dirOnly:  dirOnly,
		anchored: anchored,
	}
}

// globToRegex anchors at the root for a leading slash and at any path
// component otherwise.
func globToRegex(pattern string) string {
	var result strings.Builder

	anchored := false
	if strings.HasPrefix(pattern, "/") {
		result.WriteString("^")
		pattern = pattern[1:]
		anchored = true
	} else {
		result.WriteString("(^|/)")
	}

	for i := 0; i < len(pattern); {
		i += convertGlobChar(&result, pattern, i)
	}

	if anchored {
		result.WriteString("$")
	} else {
		result.WriteString("(/.*)?$")
	}
	return result.String()
}

// convertGlobChar writes the regex equivalent of pattern[i] into b and returns
// the number of characters consumed.
func convertGlobChar(b *strings.Builder, pattern string, i int) int {
	ch := pattern[i]
	switch ch {
	case '*':
		return convertGlobStar(b, pattern, i)
	case '?':
		b.WriteString("[^/]")
		return 1
	case '.', '+', '(', ')', '|', '^', '$', '@', '%':
		b.WriteByte('\\')
		b.WriteByte(ch)
		return 1
	case '[':
		return convertGlobCharClass(b, pattern, i)
	case '\\':
		if i+1 < len(pattern) {
			b.WriteByte('\\')
			b.WriteByte(pattern[i+1])
			return 2
		}
		b.WriteString("\\\\")
		return 1
	default:
		b.WriteByte(ch)
		return 1
	}
}

func convertGlobStar(b *strings.Builder, pattern string, i int) int {
	if i+1 < len(pattern) && pattern[i+1] == '*' {
		if i+2 < len(pattern) && pattern[i+2] == '/' {
			b.WriteString("(.*/)?")
			return 3
		}
		b.WriteString(".*")
		return 2
	}
	b.WriteString("[^/]*")
	return 1
}

func convertGlobCharClass(b *strings.Builder, pattern string, i int) int {
	j := i + 1
	for j < len(pattern) && pattern[j] != ']' {
		j++
	}
	if j < len(pattern) {
		b.WriteString(pattern[i : j+1])
		return j + 1 - i
	}
	b.WriteString("\\[")
	return 1
}
