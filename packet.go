package ebustl

import (
	"fmt"

	"github.com/asticode/go-astikit"
)

// Packet sizes: payload is always 40 bytes, preceded by 2 Hamming-coded
// address bytes (42 bytes total, "unframed"). Captures may additionally
// prefix a 2-byte framing code (clock-run-in + start byte) that the
// core detects and skips rather than requires ("framed", 44 bytes).
const (
	packetPayloadSize  = 40
	packetFramedSize   = 44
	packetUnframedSize = 42
)

// PacketHeader is the decoded control-bit snapshot of a teletext page
// header packet (row 0), per ETSI EN 300 706 §9.3/§9.4.
type PacketHeader struct {
	Magazine       uint8 // 1..8
	PageNumber     uint8 // units+tens, BCD-ish 0x00..0x99
	Subcode        uint16
	ErasePage      bool // C4: clear previously displayed content for this page
	Newsflash      bool // C5
	Subtitle       bool // C6: identifies subtitle pages; non-subtitle pages are dropped
	NationalOption NationalOption
}

// PacketView is the decoded form of one teletext packet (2 address bytes
// plus 40 payload bytes), distinguishing a header from a display row. Packet 26 (enhancement
// data) and rows outside 1..23 decode successfully but carry no Cells
// callers need to act on; it is the aggregator's job to ignore them.
type PacketView struct {
	Magazine uint8
	Row      uint8 // 0 = header; 1..31 = display row address
	IsHeader bool
	Header   PacketHeader
	Cells    [packetPayloadSize]Cell
}

// ParsePacket decodes one 42-byte (unframed) or 44-byte (framed) teletext
// packet; any other length is an error. Uncorrectable
// Hamming errors on the address bytes drop the packet (BitDecodeError,
// §7): ok is false and no warning surfaces to the caller.
func ParsePacket(buf []byte, opt NationalOption) (pv PacketView, ok bool, err error) {
	switch len(buf) {
	case packetFramedSize:
		buf = buf[2:]
	case packetUnframedSize:
		// already unframed
	default:
		err = fmt.Errorf("ebustl: parsing packet failed: %w", ErrPacketMustStartWithSyncByte)
		return
	}

	it := astikit.NewBytesIterator(buf)

	b0, e0 := it.NextByte()
	b1, e1 := it.NextByte()
	if e0 != nil || e1 != nil {
		err = fmt.Errorf("ebustl: parsing packet address failed: %w", ErrInputTooShort)
		return
	}

	n0, bad0 := hamming84Decode(b0)
	n1, bad1 := hamming84Decode(b1)
	if bad0 || bad1 {
		return PacketView{}, false, nil
	}

	mag := n0 & 0x07
	if mag == 0 {
		mag = 8
	}
	row := uint8(n0>>3&0x01) | (n1&0x0f)<<1

	pv.Magazine = mag
	pv.Row = row
	pv.IsHeader = row == 0

	if pv.IsHeader {
		h, hok, herr := parsePacketHeader(it, opt)
		if herr != nil {
			err = fmt.Errorf("ebustl: parsing page header failed: %w", herr)
			return
		}
		if !hok {
			return PacketView{}, false, nil
		}
		h.Magazine = mag
		pv.Header = h
		ok = true
		return
	}

	rest, rerr := it.NextBytesNoCopy(it.Len() - it.Offset())
	if rerr != nil {
		err = fmt.Errorf("ebustl: reading display row payload failed: %w", rerr)
		return
	}
	for i := 0; i < packetPayloadSize && i < len(rest); i++ {
		pv.Cells[i] = decodeDisplayByte(rest[i], opt)
	}
	ok = true
	return
}

// peekMagazine decodes just a packet's magazine address, without decoding
// anything else. The aggregator uses it to look up the magazine's current
// header national option before the full decode, since ParsePacket needs
// that option to decode the display bytes and the magazine is only known
// from the packet itself (§4.2).
func peekMagazine(buf []byte) (magazine uint8, ok bool) {
	switch len(buf) {
	case packetFramedSize:
		buf = buf[2:]
	case packetUnframedSize:
		// already unframed
	default:
		return 0, false
	}
	if len(buf) == 0 {
		return 0, false
	}
	n0, bad := hamming84Decode(buf[0])
	if bad {
		return 0, false
	}
	mag := n0 & 0x07
	if mag == 0 {
		mag = 8
	}
	return mag, true
}

// decodeDisplayByte classifies one odd-parity-protected teletext display
// byte as a control code or a glyph (§4.3).
func decodeDisplayByte(b byte, opt NationalOption) Cell {
	v, _ := oddParityStrip(b) // parity violation: data bits are still used (§4.1)
	if v < 0x20 {
		return classifyControlCode(v)
	}
	return glyphCell(DecodeLatinG0(v, opt))
}

// parsePacketHeader decodes the 6 header bytes following the address:
// page number units/tens, subcode, and control bits C4..C14.
func parsePacketHeader(it *astikit.BytesIterator, fallback NationalOption) (h PacketHeader, ok bool, err error) {
	bs, berr := it.NextBytesNoCopy(6)
	if berr != nil || len(bs) < 6 {
		return PacketHeader{}, false, fmt.Errorf("ebustl: header payload too short: %w", ErrInputTooShort)
	}

	units, badU := hamming84Decode(bs[0])
	tens, badT := hamming84Decode(bs[1])
	if badU || badT {
		return PacketHeader{}, false, nil
	}
	h.PageNumber = (tens&0x0f)<<4 | (units & 0x0f)

	sc1, bad1 := hamming84Decode(bs[2])
	sc2, bad2 := hamming84Decode(bs[3])
	if bad1 || bad2 {
		return PacketHeader{}, false, nil
	}
	h.Subcode = uint16(sc1) | uint16(sc2)<<4

	c1, badC1 := hamming84Decode(bs[4])
	c2, badC2 := hamming84Decode(bs[5])
	if badC1 || badC2 {
		return PacketHeader{}, false, nil
	}

	h.ErasePage = c1&0x1 != 0 // C4
	h.Newsflash = c1&0x2 != 0 // C5
	h.Subtitle = c1&0x4 != 0  // C6
	h.NationalOption = NationalOption(c2 & 0x07)
	if h.NationalOption > NationalOptionPolishTurkish {
		h.NationalOption = fallback
	}

	return h, true, nil
}
