package banner

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/maxwellsmart84/portfolio-2025/internal/logger"
	"golang.org/x/image/font/gofont/gobold"
)

func TestRender(t *testing.T) {
	out := Render("WIN", 4)
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d rows, want 4", len(lines))
	}
	width := len([]rune(lines[0]))
	for i, l := range lines {
		if n := len([]rune(l)); n != width {
			t.Errorf("row %d width %d, want %d", i, n, width)
		}
	}
	if !strings.ContainsAny(out, "█▀▄") {
		t.Errorf("no ink in banner:\n%s", out)
	}
	if width <= 4 {
		t.Errorf("width %d too narrow for three letters", width)
	}
	if Width("WIN", 4) != width {
		t.Errorf("Width = %d, want %d", Width("WIN", 4), width)
	}
}

func TestRenderScalesWithRows(t *testing.T) {
	if Width("GO", 8) <= Width("GO", 3) {
		t.Error("taller banner should be wider")
	}
}

func TestRenderEmpty(t *testing.T) {
	tests := []struct {
		text string
		rows int
	}{
		{"", 4},
		{"hi", 0},
	}
	for _, tt := range tests {
		if got := Render(tt.text, tt.rows); got != "" {
			t.Errorf("Render(%q, %d) = %q, want empty", tt.text, tt.rows, got)
		}
	}
}

func TestRenderCached(t *testing.T) {
	a := Render("OK", 5)
	b := Render("OK", 5)
	if a != b {
		t.Error("cached render differs")
	}
}

func TestOpenFaceLogsBadFont(t *testing.T) {
	var buf bytes.Buffer
	logger.Init(logger.Options{Level: "error", Output: &buf})
	defer logger.Init(logger.Options{Level: "error", Output: io.Discard})

	if f := openFace([]byte("not a font")); f != nil {
		t.Fatal("openFace accepted garbage")
	}
	if !strings.Contains(buf.String(), "banner font") {
		t.Errorf("no log line for the bad font, got %q", buf.String())
	}

	if _, err := newFace(gobold.TTF); err != nil {
		t.Errorf("newFace(gobold) = %v", err)
	}
}
