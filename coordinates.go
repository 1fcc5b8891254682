package kml

import (
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// ParseCoordinates parses the text of a <coordinates> element.
// Tuples are "lon,lat[,alt]" separated by any whitespace; altitude is
// dropped. Tuples whose longitude or latitude is not a finite number are
// skipped without affecting the rest of the list.
func ParseCoordinates(s string) []orb.Point {
	tuples := strings.Fields(s)
	points := make([]orb.Point, 0, len(tuples))

	for _, tuple := range tuples {
		parts := strings.Split(tuple, ",")
		if len(parts) < 2 {
			continue
		}

		lon, ok := parseOrdinate(parts[0])
		if !ok {
			continue
		}
		lat, ok := parseOrdinate(parts[1])
		if !ok {
			continue
		}

		points = append(points, orb.Point{lon, lat})
	}

	return points
}

func parseOrdinate(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// CloseRing returns r with its first point appended when the first and
// last points differ. Closed and empty rings are returned unchanged.
func CloseRing(r orb.Ring) orb.Ring {
	if len(r) == 0 || r.Closed() {
		return r
	}
	closed := make(orb.Ring, len(r), len(r)+1)
	copy(closed, r)
	return append(closed, r[0])
}
