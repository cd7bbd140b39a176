package markdown

import "testing"

func TestParseInfo(t *testing.T) {
	tests := []struct {
		info     string
		lang     string
		filename string
		hints    map[string]string
	}{
		{"", "", "", nil},
		{"go", "go", "", nil},
		{"go[main.go]", "go", "main.go", nil},
		{"go[main.go] caption=setup", "go", "main.go", map[string]string{"caption": "setup"}},
		{"bash key=value other=x", "bash", "", map[string]string{"key": "value", "other": "x"}},
		{"go[cmd/app/main.go]", "go", "cmd/app/main.go", nil},
		{"go stray", "go", "", nil}, // non key=value extras are ignored
	}
	for _, tt := range tests {
		lang, filename, hints := ParseInfo(tt.info)
		if lang != tt.lang {
			t.Errorf("ParseInfo(%q) lang = %q, want %q", tt.info, lang, tt.lang)
		}
		if filename != tt.filename {
			t.Errorf("ParseInfo(%q) filename = %q, want %q", tt.info, filename, tt.filename)
		}
		if len(hints) != len(tt.hints) {
			t.Errorf("ParseInfo(%q) hints = %v, want %v", tt.info, hints, tt.hints)
			continue
		}
		for k, v := range tt.hints {
			if hints[k] != v {
				t.Errorf("ParseInfo(%q) hints[%q] = %q, want %q", tt.info, k, hints[k], v)
			}
		}
	}
}

func TestKnownTheme(t *testing.T) {
	if !KnownTheme("monokai") {
		t.Error("monokai should be a known theme")
	}
	if KnownTheme("no-such-theme-xyz") {
		t.Error("made-up theme should not be known")
	}
}

func TestAllowedIsCaseInsensitive(t *testing.T) {
	r := newCodeRenderer(Options{Theme: "monokai", Languages: []string{"Go"}})
	if !r.allowed("go") {
		t.Error("allow-list should match case-insensitively")
	}
	if r.allowed("") {
		t.Error("empty language is never allowed")
	}
}
