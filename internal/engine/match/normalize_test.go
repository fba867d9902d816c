package match

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"React", "react"},
		{" react ", "react"},
		{"REACT", "react"},
		{"  Node.js\t", "node.js"},
		{"", ""},
		{"   ", ""},
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSubstringMatcher(t *testing.T) {
	m := SubstringMatcher{}
	cases := []struct {
		a, b string
		want bool
	}{
		{"react", "react", true},
		{"js", "javascript", true},
		{"javascript", "js", true},
		// Known lossy behavior of the substring rule.
		{"java", "javascript", true},
		{"react", "vue", false},
		{"", "react", false},
		{"react", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		if got := m.Match(c.a, c.b); got != c.want {
			t.Errorf("Match(%q, %q) = %v, want %v", c.a, c.b, got, c.want)
		}
		// Symmetry is part of the contract.
		if got := m.Match(c.b, c.a); got != c.want {
			t.Errorf("Match(%q, %q) = %v, want %v", c.b, c.a, got, c.want)
		}
	}
}

func TestExactMatcher(t *testing.T) {
	m := ExactMatcher{}
	if !m.Match("react", "react") {
		t.Error("equal strings should match")
	}
	if m.Match("js", "javascript") {
		t.Error("substring must not match exactly")
	}
	if m.Match("", "") {
		t.Error("empty strings must never match")
	}
}

func TestNormalizeAll(t *testing.T) {
	got := normalizeAll([]string{"React", " react ", "Go", "", "  ", "GO", "SQL"})
	want := []string{"react", "go", "sql"}
	if len(got) != len(want) {
		t.Fatalf("normalizeAll returned %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("normalizeAll[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
