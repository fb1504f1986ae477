package ebustl

// Style is the CSS-flavored style dictionary §3 defines. Zero value
// means "unset" for every field; Style is compared by value equality
// (DESIGN NOTES §9: "represent style as a value type"). The default
// style — white on transparent, steady, normal height, no decoration —
// is never emitted; IsDefault reports it.
type Style struct {
	Color           string // "color"
	BackgroundColor string // "background-color"
	Italic          bool   // "font-style": italic
	Bold            bool   // "font-weight": bold
	Underline       bool   // "text-decoration": underline
	Flash           bool   // "visibility" driven flash
	DoubleHeight    bool   // "line-height" driven double height
}

// IsDefault reports whether s carries no non-default style bit. White
// foreground counts as default (spec.md §3: "Default style is white on
// transparent..."); a Color of "" also counts as default/unset.
func (s Style) IsDefault() bool {
	return (s.Color == "" || s.Color == "white") &&
		s.BackgroundColor == "" &&
		!s.Italic && !s.Bold && !s.Underline && !s.Flash && !s.DoubleHeight
}

// Segment is one styled text run within a multi-style Caption.
type Segment struct {
	Text  string
	Style *Style // nil when this run is fully default
}

// Layout carries the positional hints derived from a TTI block's VP/JC
// fields (§4.7). The reader sets no Layout at all when JC was 0
// ("unchanged") or outside 1..3, and never infers a page default for that
// case (§4 Open Questions).
type Layout struct {
	VerticalPosition int    // 0..23
	TextAlign        string // "left" | "center" | "right", or "" if unset
}

// Caption is the reader's structured output: timing, text, and
// optional styling/layout. At most one of Style/Segments is set per the
// invariants in §3/§8 (neither, for fully default text); Layout is nil
// when JC was 0.
type Caption struct {
	StartUs       int64
	EndUs         int64
	StartTimecode string
	EndTimecode   string
	Text          string
	Style         *Style
	Layout        *Layout
	Segments      []Segment
}
