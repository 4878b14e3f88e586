package svgio

import (
	"encoding/base64"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"sync/atomic"
)

// groupInfo captures the three attributes of a <g> element that
// decide its layer assignment: id, inkscape:groupmode, and
// inkscape:label. Grounded on the Rust reader's GroupInfo struct
// (svg/inkscape_layer_preprocessor.rs), which round-trips this triple
// through a synthetic id attribute so the information survives the
// tree-rebuilding step of an intermediate SVG library. Our reader
// walks the raw XML directly, but the same encode/decode keeps every
// top-level <g> distinguishable from one a preprocessing pass
// introduced itself, and keeps the missing-id-vs-empty-id distinction
// explicit rather than implicit in string emptiness.
type groupInfo struct {
	ID        *string `json:"id"`
	Groupmode *string `json:"groupmode"`
	Label     *string `json:"label"`
}

// groupCounter supplies the <n> suffix for __vsvg_missing__ markers.
// Process-wide by default; tests swap it out via
// withFreshGroupCounter to keep marker numbering deterministic across
// runs instead of depending on test execution order.
var groupCounter atomic.Int64

// withFreshGroupCounter resets the package-wide counter to zero and
// returns a restore function, for tests that assert on exact
// __vsvg_missing__<n> values.
func withFreshGroupCounter() func() {
	prev := groupCounter.Swap(0)
	return func() { groupCounter.Store(prev) }
}

const (
	encodedPrefix = "__vsvg_encoded__"
	missingPrefix = "__vsvg_missing__"
)

// encode renders g into a synthetic id: a base64url(no padding)-JSON
// blob if any of the three attributes was present, or a unique
// __vsvg_missing__<n> marker if the group carried none of them at all
// (meaning it was not an authored top-level group).
func (g groupInfo) encode() string {
	if g.ID == nil && g.Groupmode == nil && g.Label == nil {
		n := groupCounter.Add(1) - 1
		return missingPrefix + strconv.FormatInt(n, 10)
	}
	blob, err := json.Marshal(g)
	if err != nil {
		// groupInfo is three string pointers; marshaling cannot fail.
		panic(err)
	}
	return encodedPrefix + base64.RawURLEncoding.EncodeToString(blob)
}

// decodeGroupInfo reverses encode. It also accepts a plain, unencoded
// id (for <g> elements a reader builds itself rather than parses),
// treating it as an id-only groupInfo, and returns false for an empty
// string (no group information at all).
func decodeGroupInfo(s string) (groupInfo, bool) {
	if s == "" {
		return groupInfo{}, false
	}
	if strings.HasPrefix(s, encodedPrefix) {
		raw, err := base64.RawURLEncoding.DecodeString(strings.TrimPrefix(s, encodedPrefix))
		if err == nil {
			var g groupInfo
			if json.Unmarshal(raw, &g) == nil {
				return g, true
			}
		}
	}
	if strings.HasPrefix(s, missingPrefix) {
		return groupInfo{}, true
	}
	id := s
	return groupInfo{ID: &id}, true
}

var groupTagRE = regexp.MustCompile(`<g\b[^>]*>`)
var attrRE = regexp.MustCompile(`(\w[\w:.-]*)\s*=\s*"([^"]*)"`)

// preprocessInkscapeLayers rewrites every <g ...> opening tag's id
// attribute (adding one if absent) to the synthetic encoding above,
// stripping its original id/inkscape:groupmode/inkscape:label
// attributes in the process. This lets the reader recover, from the
// id attribute alone at the point a <g> is opened, exactly the layer
// information Inkscape attached to it - without needing a second pass
// or an attribute-order-sensitive scan once parsing is underway.
func preprocessInkscapeLayers(svg string) string {
	return groupTagRE.ReplaceAllStringFunc(svg, func(tag string) string {
		var g groupInfo
		matches := attrRE.FindAllStringSubmatch(tag, -1)
		var kept strings.Builder
		kept.WriteString("<g")
		for _, m := range matches {
			key, val := m[1], m[2]
			switch key {
			case "id":
				v := val
				g.ID = &v
			case "inkscape:groupmode":
				v := val
				g.Groupmode = &v
			case "inkscape:label":
				v := val
				g.Label = &v
			default:
				kept.WriteString(" ")
				kept.WriteString(key)
				kept.WriteString(`="`)
				kept.WriteString(val)
				kept.WriteString(`"`)
			}
		}
		kept.WriteString(` id="`)
		kept.WriteString(g.encode())
		kept.WriteString(`">`)
		return kept.String()
	})
}

var digitsRE = regexp.MustCompile(`\d+`)

// layerIDFromAttribute extracts a layer ID from the first run of
// digits found in label, falling back to id, per the digit-extraction
// rule documented in reader.rs (layer_id_from_attribute): an extracted
// 0 is promoted to 1, since layer 0 is reserved for ungrouped content.
func layerIDFromAttribute(id string, label *string) (int, bool) {
	extract := func(s string) (int, bool) {
		m := digitsRE.FindString(s)
		if m == "" {
			return 0, false
		}
		n, err := strconv.Atoi(m)
		if err != nil {
			return 0, false
		}
		if n == 0 {
			n = 1
		}
		return n, true
	}
	if label != nil {
		if n, ok := extract(*label); ok {
			return n, true
		}
	}
	return extract(id)
}
