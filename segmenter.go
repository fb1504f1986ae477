package ebustl

import "strings"

// tfEventKind is the closed set of events the TTI text-field decoder
// (decodeTF, below) emits for the segmenter to consume.
type tfEventKind uint8

const (
	tfGlyph tfEventKind = iota
	tfColor
	tfFlash
	tfSteady
	tfStartBox
	tfEndBox
	tfNormalHeight
	tfDoubleHeight
	tfBackground
	tfItalic
	tfUnderline
	tfBold
	tfLineBreak
	tfTerminator
)

// tfEvent is one decoded unit of a TTI text field: either a glyph or a
// control code classified per §4.6.
type tfEvent struct {
	kind  tfEventKind
	glyph rune
	color Color
	bg    string // for tfBackground: new background-color value ("" clears it)
	on    bool   // for tfItalic/tfUnderline/tfBold: code is the ON or OFF half of the pair
}

// segment walks the decoded control/glyph stream of one logical
// subtitle's TF field and builds Caption.Text plus, if needed,
// Caption.Segments and Caption.Style (§4.7). It is a Mealy machine:
// style is a value type compared by equality, never mutated across a
// run boundary.
func segment(events []tfEvent) (text string, style *Style, segments []Segment) {
	live := Style{Color: "white"}
	var buf strings.Builder
	type run struct {
		text  string
		style Style
	}
	var runs []run

	closeRun := func() {
		if buf.Len() > 0 {
			runs = append(runs, run{text: buf.String(), style: live})
		}
		buf.Reset()
	}

	for _, ev := range events {
		switch ev.kind {
		case tfGlyph:
			buf.WriteRune(ev.glyph)

		case tfLineBreak:
			buf.WriteByte('\n')
			closeRun()
			live.Color = "white" // Adobe Premiere / teletext convention (§4.7 step 4)

		case tfTerminator:
			closeRun()

		default:
			next := live
			switch ev.kind {
			case tfColor:
				next.Color = ev.color.String()
			case tfFlash:
				next.Flash = true
			case tfSteady:
				next.Flash = false
			case tfStartBox, tfBackground:
				if ev.kind == tfBackground {
					next.BackgroundColor = ev.bg
				} else {
					next.BackgroundColor = "black"
				}
			case tfEndBox:
				next.BackgroundColor = ""
			case tfNormalHeight:
				next.DoubleHeight = false
			case tfDoubleHeight:
				next.DoubleHeight = true
			case tfItalic:
				next.Italic = ev.on
			case tfUnderline:
				next.Underline = ev.on
			case tfBold:
				next.Bold = ev.on
			}
			if next != live {
				closeRun()
				live = next
			}
		}
	}
	closeRun()

	// Trim a trailing newline from the overall text (§4.7 post-processing);
	// keep the last segment's text consistent with the invariant that
	// text == concat(segments[*].text).
	if n := len(runs); n > 0 {
		last := runs[n-1].text
		if strings.HasSuffix(last, "\n") {
			runs[n-1].text = strings.TrimSuffix(last, "\n")
		}
	}

	distinct := map[Style]bool{}
	var fullText strings.Builder
	for _, r := range runs {
		fullText.WriteString(r.text)
		if r.text != "" {
			distinct[r.style] = true
		}
	}
	text = fullText.String()

	switch len(distinct) {
	case 0:
		return text, nil, nil
	case 1:
		for s := range distinct {
			if s.IsDefault() {
				return text, nil, nil
			}
			cp := s
			return text, &cp, nil
		}
	}

	segments = make([]Segment, 0, len(runs))
	for _, r := range runs {
		if r.text == "" {
			continue
		}
		seg := Segment{Text: r.text}
		if !r.style.IsDefault() {
			cp := r.style
			seg.Style = &cp
		}
		segments = append(segments, seg)
	}
	return text, nil, segments
}

// decodeTF classifies a TTI text field's bytes into tfEvents per §4.6.
// Decoding a block stops at the first 0x8F padding/terminator byte.
// Glyph bytes (>=0x20) are mapped through the CCT-selected table: the
// Latin CCT uses the full 0x20..0xFF Annex 1 table, the other four use
// the 0x20..0x7F national-option tables shared with teletext G0 and pass
// 0x80..0xFF through unmapped (Annex 1 defines no extended block for
// them).
func decodeTF(tf []byte, cct CharacterCodeTable, opt NationalOption) []tfEvent {
	events := make([]tfEvent, 0, len(tf))
	for _, b := range tf {
		switch {
		case b <= 0x07:
			events = append(events, tfEvent{kind: tfColor, color: Color(b)})
		case b == 0x08:
			events = append(events, tfEvent{kind: tfFlash})
		case b == 0x09:
			events = append(events, tfEvent{kind: tfSteady})
		case b == 0x0a:
			events = append(events, tfEvent{kind: tfEndBox})
		case b == 0x0b:
			events = append(events, tfEvent{kind: tfStartBox})
		case b == 0x0c:
			events = append(events, tfEvent{kind: tfNormalHeight})
		case b == 0x0d:
			events = append(events, tfEvent{kind: tfDoubleHeight})
		case b == 0x1c:
			events = append(events, tfEvent{kind: tfBackground, bg: "black"})
		case b == 0x1d:
			events = append(events, tfEvent{kind: tfBackground, bg: "current"})
		case b == 0x80:
			events = append(events, tfEvent{kind: tfItalic, on: true})
		case b == 0x81:
			events = append(events, tfEvent{kind: tfItalic, on: false})
		case b == 0x82:
			events = append(events, tfEvent{kind: tfUnderline, on: true})
		case b == 0x83:
			events = append(events, tfEvent{kind: tfUnderline, on: false})
		case b == 0x84:
			events = append(events, tfEvent{kind: tfBold, on: true})
		case b == 0x85:
			events = append(events, tfEvent{kind: tfBold, on: false})
		case b == 0x8a:
			events = append(events, tfEvent{kind: tfLineBreak})
		case b == 0x8f:
			events = append(events, tfEvent{kind: tfTerminator})
			return events
		case b < 0x20 || (b >= 0x80 && b < 0xa0):
			// UnknownControlCode: defensive no-op (§7) - also covers the
			// rest of the 0x80..0x9f control block this CCT doesn't define.
		default:
			events = append(events, tfEvent{kind: tfGlyph, glyph: decodeTFGlyph(b, cct, opt)})
		}
	}
	events = append(events, tfEvent{kind: tfTerminator})
	return events
}

// decodeTFGlyph maps one TF glyph byte (always >=0x20) through the table
// the active CCT selects.
func decodeTFGlyph(b byte, cct CharacterCodeTable, opt NationalOption) rune {
	if cct == CharacterCodeTableLatin {
		return DecodeSTLLatin(b)
	}
	if b > 0x7f {
		return rune(b)
	}
	return DecodeGlyph(cct, b, opt)
}
