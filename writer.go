package ebustl

import (
	"sort"

	"github.com/asticode/go-astikit"
)

// attrToSTLByte maps a teletext spacing attribute to its EBU-STL
// control code. Teletext and EBU-STL share the same code points for
// colors, flash/steady, box and height (§4.5: "Attribute events map
// one-for-one"); Conceal and the graphics/reserved codes have no STL
// equivalent and serialize as a space.
func attrToSTLByte(a Attribute) byte {
	switch a.Kind {
	case AttrForeground:
		return byte(a.Color)
	case AttrFlash:
		return ctrlFlash
	case AttrSteady:
		return ctrlSteady
	case AttrEndBox:
		return ctrlEndBox
	case AttrStartBox:
		return ctrlStartBox
	case AttrNormalHeight:
		return ctrlNormalHeight
	case AttrDoubleHeight:
		return ctrlDoubleHeight
	case AttrBlackBackground:
		return ctrlBlackBackground
	case AttrNewBackground:
		return ctrlNewBackground
	default:
		return ' '
	}
}

var stlLatinReverse = buildSTLLatinReverse()

func buildSTLLatinReverse() map[rune]byte {
	m := make(map[rune]byte, len(stlLatinTable))
	for i, r := range stlLatinTable {
		if _, exists := m[r]; !exists {
			m[r] = byte(0x20 + i)
		}
	}
	return m
}

func cellToSTLByte(c Cell) byte {
	switch c.Kind {
	case CellGlyph:
		if b, ok := stlLatinReverse[c.Glyph]; ok {
			return b
		}
		return '?'
	case CellSpacing:
		return attrToSTLByte(c.Attribute)
	default:
		return ' '
	}
}

// serializeRow converts a DisplayRow to EBU-STL bytes, trimming
// trailing blank cells (§4.5).
func serializeRow(row DisplayRow) []byte {
	out := make([]byte, len(row))
	last := -1
	for i, c := range row {
		out[i] = cellToSTLByte(c)
		if c.Kind == CellGlyph {
			last = i
		}
	}
	return out[:last+1]
}

// serializePage concatenates a page's non-empty rows in order,
// separated by CR LF (0x8A), per §4.5.
func serializePage(p *SubtitlePage) []byte {
	rowIdx := make([]int, 0, len(p.Rows))
	for i := range p.Rows {
		rowIdx = append(rowIdx, i)
	}
	sort.Ints(rowIdx)

	var out []byte
	for n, i := range rowIdx {
		if n > 0 {
			out = append(out, 0x8a)
		}
		out = append(out, serializeRow(p.Rows[i])...)
	}
	return out
}

// Extractor is the EBU-STL writer: given an ordered sequence of
// SubtitlePages, it emits a GSI block followed by one or more TTI
// blocks per page, splitting long text across continuation blocks with
// EBN/CS bookkeeping (§4.5).
type Extractor struct {
	l astikit.CompleteLogger
}

// NewExtractor creates an Extractor with the given options applied.
func NewExtractor(opts ...ExtractorOption) *Extractor {
	e := &Extractor{l: astikit.AdaptStdLogger(nil)}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Extract serializes pages to a complete EBU-STL byte buffer at the
// given frame rate (CCT is always 0/Latin on write, §4.5).
func (e *Extractor) Extract(pages []*SubtitlePage, fr FrameRate) []byte {
	sn := newSubtitleNumberCounter()
	var tti []byte
	tnb := 0

	for _, p := range pages {
		blocks := e.blocksForPage(p, fr, sn.next())
		tnb += len(blocks)
		for _, b := range blocks {
			tti = append(tti, b.Bytes()...)
		}
	}

	dfc := "STL25.01"
	if fr.Nominal == 30 {
		dfc = "STL30.01"
	}
	gsi := GSI{
		DFC: dfc,
		CCT: CharacterCodeTableLatin,
		TNB: tnb,
		TNS: len(pages),
	}

	return append(gsi.Bytes(), tti...)
}

// blocksForPage splits one page's serialized row stream into 112-byte
// TTI text fields, one TTI block per 112-byte (or shorter, final) chunk.
func (e *Extractor) blocksForPage(p *SubtitlePage, fr FrameRate, sn uint16) []TTIBlock {
	data := serializePage(p)
	if len(data) == 0 {
		return nil
	}

	tci := timecodeBytes(p.OnsetUs, fr)
	tco := timecodeBytes(p.ClearUs, fr)

	var chunks [][]byte
	for len(data) > 0 {
		n := ttiLenTF
		if n > len(data) {
			n = len(data)
		}
		chunks = append(chunks, data[:n])
		data = data[n:]
	}

	blocks := make([]TTIBlock, len(chunks))
	for i, chunk := range chunks {
		b := TTIBlock{SGN: 1, SN: sn, TCI: tci, TCO: tco}
		copy(b.TF[:], chunk)
		for j := len(chunk); j < ttiLenTF; j++ {
			b.TF[j] = 0x8f
		}
		if i == len(chunks)-1 {
			b.EBN = EBNLast
		} else {
			b.EBN = uint8(i + 1)
		}
		blocks[i] = b
	}
	return blocks
}

func timecodeBytes(us int64, fr FrameRate) [4]byte {
	hh, mm, ss, ff := usToTimecode(us, fr)
	return [4]byte{byte(hh), byte(mm), byte(ss), byte(ff)}
}
