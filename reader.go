package ebustl

import (
	"fmt"

	"github.com/asticode/go-astikit"
)

// Reader parses an EBU-STL byte buffer into Captions. It is lenient:
// mid-stream corruption never aborts the read, only fatal conditions
// (input too short, unrecognized frame rate) return an error (§7).
type Reader struct {
	fpsOverride float64
	l           astikit.CompleteLogger
	sink        func(Diagnostic)
}

// NewReader creates a Reader with the given options applied.
func NewReader(opts ...ReaderOption) *Reader {
	r := &Reader{l: astikit.AdaptStdLogger(nil)}
	for _, o := range opts {
		o(r)
	}
	return r
}

// blockGroup is a reassembled run of TTI blocks sharing one SN.
type blockGroup struct {
	blocks []TTIBlock
}

// Read parses buf and returns every non-comment Caption it could
// reassemble, plus any Diagnostics. It never returns a partial error for
// mid-stream corruption — only ErrInputTooShort/ErrUnrecognizedFrameRate
// are fatal.
func (r *Reader) Read(buf []byte) ([]Caption, []Diagnostic, error) {
	if len(buf) < gsiSize {
		return nil, nil, fmt.Errorf("ebustl: reading STL failed: %w", ErrInputTooShort)
	}

	gsi, err := ParseGSI(buf)
	if err != nil {
		return nil, nil, fmt.Errorf("ebustl: reading STL failed: %w", err)
	}

	fr, err := FrameRateFromDFC(gsi.DFC)
	if err != nil {
		if r.fpsOverride <= 0 {
			return nil, nil, fmt.Errorf("ebustl: reading STL failed: %w", err)
		}
		fr = FrameRate{}
	}
	if r.fpsOverride > 0 {
		fr.CustomFPS = r.fpsOverride
		if fr.Nominal == 0 {
			fr.Nominal = int(mathRound(r.fpsOverride))
		}
	}

	groups := groupTTIBlocks(buf[gsiSize:])

	var diags []Diagnostic
	if msg := validateGroups(groups, gsi.CCT); msg != "" {
		d := Diagnostic{Kind: DiagnosticStructuralWarning, Message: msg}
		diags = append(diags, d)
		if r.sink != nil {
			r.sink(d)
		}
		r.l.Error(msg)
	}

	var captions []Caption
	for _, g := range groups {
		if len(g.blocks) == 0 || g.blocks[0].IsComment() {
			continue
		}
		c, ok := decodeGroup(g, fr, gsi.CCT)
		if ok {
			captions = append(captions, c)
		}
	}

	return captions, diags, nil
}

// groupTTIBlocks scans the TTI region, grouping contiguous blocks by SN
// until a terminator (EBN=0xFF) or an SN change (§4.6). The final block
// may be truncated; it is zero-padded to ttiSize before parsing.
func groupTTIBlocks(buf []byte) []blockGroup {
	var groups []blockGroup
	var cur *blockGroup
	var curSN uint16
	haveSN := false

	for off := 0; off < len(buf); off += ttiSize {
		end := off + ttiSize
		chunk := buf[off:min(end, len(buf))]
		if len(chunk) < ttiSize {
			padded := make([]byte, ttiSize)
			copy(padded, chunk)
			chunk = padded
		}
		if len(chunk) == 0 {
			break
		}

		b, err := ParseTTIBlock(chunk)
		if err != nil {
			break
		}

		if !haveSN || b.SN != curSN {
			if cur != nil {
				groups = append(groups, *cur)
			}
			cur = &blockGroup{}
			curSN = b.SN
			haveSN = true
		}
		cur.blocks = append(cur.blocks, b)

		if b.EBN == EBNLast {
			groups = append(groups, *cur)
			cur = nil
			haveSN = false
		}
	}
	if cur != nil {
		groups = append(groups, *cur)
	}
	return groups
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// validateGroups checks the continuation-protocol invariant (§3) across
// the first 9 reassembled groups and, if any violation is found, returns
// the single summary message Read emits as a StructuralWarning. Returns
// "" when nothing is wrong.
func validateGroups(groups []blockGroup, cct CharacterCodeTable) string {
	n := len(groups)
	if n > 9 {
		n = 9
	}
	count := 0
	for _, g := range groups[:n] {
		for i, b := range g.blocks {
			if i == len(g.blocks)-1 {
				continue // terminal block, EBN is expected to be 0xFF
			}
			if b.EBN == 0 || b.EBN == EBNLast {
				count++
			} else if b.CS != 0 {
				count++
			}
		}
	}

	msg := ""
	if count > 0 {
		msg = fmt.Sprintf("%d of first %d TTI block(s) have intermediate EBN with invalid CS", count, n)
	}
	if !cct.valid() {
		if msg == "" {
			msg = fmt.Sprintf("unknown character code table value %d", uint8(cct))
		} else {
			msg += fmt.Sprintf("; unknown character code table value %d", uint8(cct))
		}
	}
	return msg
}

// decodeGroup turns one reassembled block group into a Caption.
func decodeGroup(g blockGroup, fr FrameRate, cct CharacterCodeTable) (Caption, bool) {
	if len(g.blocks) == 0 {
		return Caption{}, false
	}
	first := g.blocks[0]

	startUs, err := FramesToUs(int(first.TCI[0]), int(first.TCI[1]), int(first.TCI[2]), int(first.TCI[3]), fr)
	if err != nil {
		return Caption{}, false
	}
	endUs, err := FramesToUs(int(first.TCO[0]), int(first.TCO[1]), int(first.TCO[2]), int(first.TCO[3]), fr)
	if err != nil {
		return Caption{}, false
	}
	if endUs < startUs {
		endUs = startUs
	}

	// Each block's TF is decoded on its own, so 0x8F padding ends only
	// that block's text; the per-block terminators are dropped and one
	// terminator closes the whole group.
	var events []tfEvent
	for _, b := range g.blocks {
		evs := decodeTF(b.TF[:], cct, NationalOptionEnglish)
		events = append(events, evs[:len(evs)-1]...)
	}
	events = append(events, tfEvent{kind: tfTerminator})
	text, style, segments := segment(events)

	c := Caption{
		StartUs:       startUs,
		EndUs:         endUs,
		StartTimecode: UsToSMPTE(startUs, fr),
		EndTimecode:   UsToSMPTE(endUs, fr),
		Text:          text,
		Style:         style,
		Segments:      segments,
	}

	// JC=0 ("unchanged") omits the layout key entirely — no page-default
	// inheritance (§4.7, Open Questions).
	if first.JC >= 1 && first.JC <= 3 {
		c.Layout = &Layout{
			VerticalPosition: int(first.VP),
			TextAlign:        [...]string{"", "left", "center", "right"}[first.JC],
		}
	}

	return c, true
}
