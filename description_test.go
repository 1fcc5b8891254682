package kml

import (
	"strings"
	"testing"
)

func TestDescriptionText(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{"plain", "Just text", "Just text"},
		{"inline tags", "<b>Bold</b> and <i>italic</i>", "Bold and italic"},
		{"paragraphs", "<p>Hello <b>world</b></p><p>Line<br>two</p>", "Hello world\nLine\ntwo"},
		{"script dropped", "Visible<script>alert(1)</script>", "Visible"},
		{"whitespace collapsed", "  a \t  b\n\n  c ", "a b\nc"},
		{"entities", "Caf&eacute; &amp; bar", "Café & bar"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DescriptionText(tt.in); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestSanitizeDescription(t *testing.T) {
	in := `<p>See <a href="https://example.com/info" onclick="steal()">details</a></p><script>alert(1)</script>`
	out := SanitizeDescription(in)

	for _, bad := range []string{"<script", "alert(1)", "onclick"} {
		if strings.Contains(out, bad) {
			t.Errorf("expected %q to be removed, got %q", bad, out)
		}
	}
	for _, good := range []string{"<p>", `href="https://example.com/info"`, `target="_blank"`, "details"} {
		if !strings.Contains(out, good) {
			t.Errorf("expected %q to be kept, got %q", good, out)
		}
	}
}

func TestPlacemark_DescriptionHelpers(t *testing.T) {
	pm, ok := parseOne(t, `<Placemark>
		<description><![CDATA[<h3>Title</h3><img src="x" onerror="boom()">Body]]></description>
		<Point><coordinates>1,2</coordinates></Point>
	</Placemark>`)
	if !ok {
		t.Fatal("expected placemark to be kept")
	}

	if got := pm.DescriptionText(); got != "Title\nBody" {
		t.Errorf("expected plain text, got %q", got)
	}
	if got := pm.SanitizedDescription(); strings.Contains(got, "onerror") || !strings.Contains(got, "<h3>Title</h3>") {
		t.Errorf("unexpected sanitized description %q", got)
	}
}
