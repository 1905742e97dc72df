package extract

import (
	"strings"
	"testing"
)

func TestVisibleText(t *testing.T) {
	page := `<!DOCTYPE html>
<html>
<head>
	<title>Report</title>
	<style>body { color: red; }</style>
	<script>console.log("hidden");</script>
</head>
<body>
	<p>Visible paragraph one.</p>
	<noscript>Enable JS</noscript>
	<div>Visible paragraph two.</div>
	<iframe src="about:blank">framed</iframe>
</body>
</html>`

	text, err := VisibleText(page)
	if err != nil {
		t.Fatalf("VisibleText: %v", err)
	}

	for _, want := range []string{"Visible paragraph one.", "Visible paragraph two.", "Report"} {
		if !strings.Contains(text, want) {
			t.Errorf("missing %q in %q", want, text)
		}
	}
	for _, hidden := range []string{"console.log", "color: red", "Enable JS", "framed"} {
		if strings.Contains(text, hidden) {
			t.Errorf("hidden content %q leaked into %q", hidden, text)
		}
	}
}

func TestVisibleTextCollapsesWhitespace(t *testing.T) {
	text, err := VisibleText("<p>  one  </p>\n\n<p>  two  </p>")
	if err != nil {
		t.Fatalf("VisibleText: %v", err)
	}
	if text != "one two" {
		t.Errorf("got %q, want %q", text, "one two")
	}
}

func TestLooksLikeHTML(t *testing.T) {
	cases := []struct {
		content string
		want    bool
	}{
		{"<!DOCTYPE html><html></html>", true},
		{"  <html lang=\"en\">", true},
		{"<HTML>", true},
		{"plain notes about the quarter", false},
		{"x < y and y > z", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := LooksLikeHTML(tc.content); got != tc.want {
			t.Errorf("LooksLikeHTML(%q) = %v, want %v", tc.content, got, tc.want)
		}
	}
}

func TestSourceTextPassthrough(t *testing.T) {
	got, err := SourceText("  plain source text  ")
	if err != nil {
		t.Fatalf("SourceText: %v", err)
	}
	if got != "plain source text" {
		t.Errorf("got %q", got)
	}
}

func TestSourceTextHTML(t *testing.T) {
	got, err := SourceText("<html><body><p>from markup</p></body></html>")
	if err != nil {
		t.Fatalf("SourceText: %v", err)
	}
	if got != "from markup" {
		t.Errorf("got %q", got)
	}
}
