package git

import "testing"

func TestParseStatus(t *testing.T) {
	cases := []struct {
		in   string
		want Status
	}{
		{"", StatusClean},
		{"?? new.go\n", StatusUntracked},
		{" M main.go\n", StatusModified},
		{"M  main.go\n", StatusStaged},
		{"A  main.go\n", StatusStaged},
		{"MM main.go\n", StatusPartiallyStaged},
	}
	for _, tc := range cases {
		if got := ParseStatus(tc.in); got != tc.want {
			t.Errorf("ParseStatus(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestWebURL(t *testing.T) {
	cases := map[string]string{
		"git@github.com:owner/repo.git":          "https://github.com/owner/repo",
		"https://github.com/owner/repo.git":      "https://github.com/owner/repo",
		"ssh://git@gitlab.com/group/project.git": "https://gitlab.com/group/project",
	}
	for in, want := range cases {
		got, err := WebURL(in)
		if err != nil {
			t.Errorf("WebURL(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("WebURL(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := WebURL("/local/path"); err == nil {
		t.Error("expected error for local remote")
	}
}
