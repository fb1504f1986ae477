package ebustl

import (
	"errors"
	"fmt"
)

// PacketSource feeds raw teletext packet bytes and their presentation
// timestamps (microseconds into the stream, per §6) to an Aggregator.
// Implementations wrap whatever demux output the caller owns; the core
// never invokes an external process itself.
type PacketSource interface {
	NextPacket() (buf []byte, ptsUs int64, err error)
}

// magazineState is the per-magazine open-page buffer the aggregator
// maintains, mirroring the teacher's per-PID packetAccumulator. opt is the
// national option most recently announced by a subtitle header on this
// magazine; it governs how that magazine's display rows decode until the
// next header changes it (§4.2).
type magazineState struct {
	open    *SubtitlePage
	opt     NationalOption
	haveOpt bool
}

// Aggregator assembles teletext packets belonging to subtitle pages into
// an ordered SubtitlePage stream, deriving onset/clear times from the
// page-onset/erase header transitions (§4.4).
type Aggregator struct {
	opt       NationalOption
	magazines map[uint8]*magazineState
}

// NewAggregator creates an Aggregator. opt is the fallback national
// option: Run uses it to decode display rows on a magazine that has not
// yet seen a subtitle page header.
func NewAggregator(opt NationalOption) *Aggregator {
	return &Aggregator{opt: opt, magazines: make(map[uint8]*magazineState)}
}

// HandlePacket feeds one decoded packet to the aggregator. It returns a
// SubtitlePage when that packet's header closes a previously open page;
// the caller (typically Extractor) should pass closed pages to the
// writer. A closed page with no non-empty rows is never returned (§4.4).
func (a *Aggregator) HandlePacket(pv PacketView, ptsUs int64) *SubtitlePage {
	st := a.magazines[pv.Magazine]
	if st == nil {
		st = &magazineState{}
		a.magazines[pv.Magazine] = st
	}

	if pv.IsHeader {
		if !pv.Header.Subtitle {
			return nil
		}
		st.opt = pv.Header.NationalOption
		st.haveOpt = true

		var closed *SubtitlePage
		if st.open != nil && (st.open.PageNumber != pv.Header.PageNumber || pv.Header.ErasePage) {
			st.open.ClearUs = ptsUs
			if st.open.nonEmpty() {
				closed = st.open
			}
			st.open = nil
		}

		if st.open == nil {
			st.open = &SubtitlePage{
				PageNumber: pv.Header.PageNumber,
				OnsetUs:    ptsUs,
				Rows:       poolOfRows.get().rows,
			}
		}
		return closed
	}

	if st.open != nil && pv.Row >= 1 && pv.Row <= 23 {
		st.open.Rows[int(pv.Row)] = DisplayRow(pv.Cells)
	}
	return nil
}

// Flush closes and returns the currently open page for every magazine,
// using lastUs as the clear time. Call it once the packet source is
// exhausted to avoid dropping a page that was never explicitly erased.
func (a *Aggregator) Flush(lastUs int64) []*SubtitlePage {
	var out []*SubtitlePage
	for _, st := range a.magazines {
		if st.open != nil {
			st.open.ClearUs = lastUs
			if st.open.nonEmpty() {
				out = append(out, st.open)
			}
			st.open = nil
		}
	}
	return out
}

// Run drains src, decoding each packet and feeding it to the aggregator,
// and returns every SubtitlePage it assembled. It stops cleanly on
// ErrNoMorePackets; any other error from src or ParsePacket aborts.
func (a *Aggregator) Run(src PacketSource) (pages []*SubtitlePage, err error) {
	var lastUs int64
	for {
		buf, ptsUs, serr := src.NextPacket()
		if serr != nil {
			if errors.Is(serr, ErrNoMorePackets) {
				break
			}
			return pages, fmt.Errorf("ebustl: reading packet source failed: %w", serr)
		}
		lastUs = ptsUs

		opt := a.opt
		if mag, pok := peekMagazine(buf); pok {
			if st := a.magazines[mag]; st != nil && st.haveOpt {
				opt = st.opt
			}
		}

		pv, ok, perr := ParsePacket(buf, opt)
		if perr != nil {
			return pages, fmt.Errorf("ebustl: decoding packet failed: %w", perr)
		}
		if !ok {
			continue // BitDecodeError: drop the packet, no warning surfaces (§7)
		}

		if closed := a.HandlePacket(pv, ptsUs); closed != nil {
			pages = append(pages, closed)
		}
	}

	pages = append(pages, a.Flush(lastUs)...)
	return pages, nil
}
