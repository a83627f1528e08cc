package filesearch

import "testing"

func TestIgnoreMatcher(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		isDir   bool
		want    bool
	}{
		// Simple patterns
		{"*.log", "test.log", false, true},
		{"*.log", "test.txt", false, false},
		{"*.log", "logs/test.log", false, true},

		// Directory patterns
		{"node_modules/", "node_modules", true, true},
		{"node_modules/", "node_modules/package.json", false, true},
		{"node_modules/", "src/node_modules", true, true},

		// Wildcard patterns
		{"build/*", "build/output.txt", false, true},
		{"build/*", "build", true, false},
		{"build/*", "src/build/output.txt", false, true},

		// Negation patterns
		{"!important.log", "important.log", false, false},

		// Double asterisk
		{"**/temp", "temp", false, true},
		{"**/temp", "src/temp", false, true},
		{"**/temp", "src/lib/temp", false, true},

		// Leading slash (root-only)
		{"/root.txt", "root.txt", false, true},
		{"/root.txt", "src/root.txt", false, false},
	}

	for _, tt := range tests {
		m := &IgnoreMatcher{}
		m.AddPatterns(tt.pattern)
		if got := m.Matches(tt.path, tt.isDir); got != tt.want {
			t.Errorf("pattern %q, path %q (isDir=%v): got %v, want %v",
				tt.pattern, tt.path, tt.isDir, got, tt.want)
		}
	}
}

func TestIgnoreMatcherNegation(t *testing.T) {
	m := &IgnoreMatcher{}
	m.AddPatterns("# comment", "", "*.log", "!important.log")

	tests := []struct {
		path string
		want bool
	}{
		{"test.log", true},
		{"important.log", false},
		{"other.txt", false},
	}
	for _, tt := range tests {
		if got := m.Matches(tt.path, false); got != tt.want {
			t.Errorf("path %q: got %v, want %v", tt.path, got, tt.want)
		}
	}
}
