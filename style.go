package kml

import (
	"log/slog"
	"strings"
)

// ConvertColor converts a KML aabbggrr color to #rrggbb.
// The alpha byte is discarded. Input that is not 8 characters long
// yields DefaultColor.
func ConvertColor(kmlColor string) string {
	if len(kmlColor) != 8 {
		return DefaultColor
	}
	return "#" + kmlColor[6:8] + kmlColor[4:6] + kmlColor[2:4]
}

// buildStyles collects every <Style> with an id, then resolves <StyleMap>
// elements to the style their "normal" pair points at.
func buildStyles(root *element, log *slog.Logger) map[string]*Style {
	styles := make(map[string]*Style)

	for _, el := range root.findAll("Style") {
		id := el.attr("id")
		if id == "" {
			continue
		}
		styles[id] = parseStyle(id, el)
	}

	for _, el := range root.findAll("StyleMap") {
		id := el.attr("id")
		if id == "" {
			continue
		}
		if _, ok := styles[id]; ok {
			continue
		}
		for _, pair := range el.findAll("Pair") {
			if trimmed(pair.child("key")) != "normal" {
				continue
			}
			ref := strings.TrimPrefix(trimmed(pair.child("styleUrl")), "#")
			if s, ok := styles[ref]; ok {
				styles[id] = s
			} else {
				log.Debug("kml: unresolved style map", "id", id, "styleUrl", ref)
			}
			break
		}
	}

	return styles
}

func parseStyle(id string, el *element) *Style {
	s := &Style{ID: id}

	if icon := el.find("IconStyle"); icon != nil {
		s.IconURL = trimmed(icon.path("Icon", "href"))
	}
	if line := el.find("LineStyle"); line != nil {
		if c := trimmed(line.find("color")); c != "" {
			s.LineColor = ConvertColor(c)
		}
	}
	if poly := el.find("PolyStyle"); poly != nil {
		if c := trimmed(poly.find("color")); c != "" {
			s.FillColor = ConvertColor(c)
		}
	}

	return s
}

// lookupStyle resolves a styleUrl value against the style table.
// Only local references (#id or a bare id) can match.
func lookupStyle(styles map[string]*Style, styleURL string) *Style {
	if styleURL == "" {
		return nil
	}
	return styles[strings.TrimPrefix(styleURL, "#")]
}

func trimmed(e *element) string {
	return strings.TrimSpace(e.text())
}
