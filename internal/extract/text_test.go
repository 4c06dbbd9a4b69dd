package extract

import (
	"strings"
	"testing"
)

func TestTextFromHTML_VisibleText(t *testing.T) {
	input := `<html><head><title>Anmeldung</title>
<style>body { color: red; }</style>
<script>var fee = 9999;</script>
</head><body>
<h1>Registration</h1>
<p>The fee is <strong>25</strong> EUR.</p>
<noscript>Enable JavaScript</noscript>
</body></html>`

	text, err := TextFromHTML(input)
	if err != nil {
		t.Fatalf("TextFromHTML: %v", err)
	}

	for _, want := range []string{"Anmeldung", "Registration", "The fee is", "25", "EUR."} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in extracted text, got %q", want, text)
		}
	}
	for _, banned := range []string{"9999", "color: red", "Enable JavaScript"} {
		if strings.Contains(text, banned) {
			t.Errorf("Expected %q to be stripped, got %q", banned, text)
		}
	}
}

func TestTextFromHTML_BlockElementsBreakLines(t *testing.T) {
	text, err := TextFromHTML("<p>First</p><p>Second</p>")
	if err != nil {
		t.Fatalf("TextFromHTML: %v", err)
	}
	if text != "First\nSecond" {
		t.Errorf("Expected %q, got %q", "First\nSecond", text)
	}
}

func TestTextFromHTML_InlineElementsJoinWithSpaces(t *testing.T) {
	text, err := TextFromHTML("<p>The fee is <strong>25</strong> EUR.</p>")
	if err != nil {
		t.Fatalf("TextFromHTML: %v", err)
	}
	if text != "The fee is 25 EUR." {
		t.Errorf("Expected inline text on one line, got %q", text)
	}
}

func TestTextFromHTML_ListItemsKeepLineStructure(t *testing.T) {
	// Numbered steps must land on their own lines so line-anchored
	// section markers survive HTML inputs.
	text, err := TextFromHTML("<ol><li>1. Bring your passport</li><li>2. Pay the fee</li></ol><p>The fee is 25 EUR.</p>")
	if err != nil {
		t.Fatalf("TextFromHTML: %v", err)
	}
	want := "1. Bring your passport\n2. Pay the fee\nThe fee is 25 EUR."
	if text != want {
		t.Errorf("Expected %q, got %q", want, text)
	}
}

func TestTextFromHTML_PlainTextPassesThrough(t *testing.T) {
	// html.Parse accepts non-HTML input, wrapping it as body text
	text, err := TextFromHTML("just words")
	if err != nil {
		t.Fatalf("TextFromHTML: %v", err)
	}
	if text != "just words" {
		t.Errorf("Expected %q, got %q", "just words", text)
	}
}

func TestIsHTMLPath(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"page.html", true},
		{"PAGE.HTML", true},
		{"index.htm", true},
		{"record.json", false},
		{"content.md", false},
	}
	for _, tt := range tests {
		if got := IsHTMLPath(tt.path); got != tt.want {
			t.Errorf("IsHTMLPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
