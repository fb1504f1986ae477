package ebustl

// DisplayRow is an ordered sequence of up to 40 Cells, as decoded from a
// single teletext display-row packet.
type DisplayRow [packetPayloadSize]Cell

// SubtitlePage is an assembled subtitle page: a page number, its onset
// and clear times, and the sparse set of non-empty rows that were
// displayed between them.
type SubtitlePage struct {
	PageNumber uint8
	OnsetUs    int64
	ClearUs    int64
	Rows       map[int]DisplayRow // row_index (1..23) -> row content
}

// nonEmpty reports whether the page has at least one row carrying a
// glyph — pages with only spacing/space cells are not emitted (§4.4).
func (p *SubtitlePage) nonEmpty() bool {
	for _, row := range p.Rows {
		for _, c := range row {
			if c.Kind == CellGlyph {
				return true
			}
		}
	}
	return false
}

// Release returns the page's row storage to the shared arena pool. It
// is optional: callers that are done with a page (its rows have been
// copied into a Caption or serialized by an Extractor) may call it to
// let the next page reuse the backing map instead of allocating a new
// one. The page must not be used after calling Release.
func (p *SubtitlePage) Release() {
	if p.Rows == nil {
		return
	}
	poolOfRows.put(&rowArena{rows: p.Rows})
	p.Rows = nil
}
