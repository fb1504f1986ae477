package ebustl

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/asticode/go-astikit"
)

// TTI block size and field offsets, §6.
const (
	ttiSize = 128

	ttiOffsetSGN = 0
	ttiOffsetSN  = 1
	ttiOffsetEBN = 3
	ttiOffsetCS  = 4
	ttiOffsetTCI = 5
	ttiOffsetTCO = 9
	ttiOffsetVP  = 13
	ttiOffsetJC  = 14
	ttiOffsetCF  = 15
	ttiOffsetTF  = 16
	ttiLenTF     = 112

	// EBNLast marks the terminal block of a multi-block subtitle (§3).
	EBNLast uint8 = 0xff
)

// TTIBlock is one 128-byte Text and Timing Information block (§3).
type TTIBlock struct {
	SGN uint8
	SN  uint16
	EBN uint8
	CS  uint8
	TCI [4]byte // hh, mm, ss, ff
	TCO [4]byte
	VP  uint8
	JC  uint8
	CF  uint8
	TF  [ttiLenTF]byte
}

// ParseTTIBlock decodes one 128-byte TTI block. A truncated final block
// (§4.6) is tolerated by the caller, which pads buf to ttiSize first.
func ParseTTIBlock(buf []byte) (TTIBlock, error) {
	if len(buf) < ttiSize {
		return TTIBlock{}, fmt.Errorf("ebustl: parsing TTI block failed: %w", ErrInputTooShort)
	}
	var b TTIBlock
	b.SGN = buf[ttiOffsetSGN]
	b.SN = binary.LittleEndian.Uint16(buf[ttiOffsetSN:])
	b.EBN = buf[ttiOffsetEBN]
	b.CS = buf[ttiOffsetCS]
	copy(b.TCI[:], buf[ttiOffsetTCI:ttiOffsetTCI+4])
	copy(b.TCO[:], buf[ttiOffsetTCO:ttiOffsetTCO+4])
	b.VP = buf[ttiOffsetVP]
	b.JC = buf[ttiOffsetJC]
	b.CF = buf[ttiOffsetCF]
	copy(b.TF[:], buf[ttiOffsetTF:ttiOffsetTF+ttiLenTF])
	return b, nil
}

// Bytes serializes the TTI block to its fixed 128-byte layout. The
// fields are contiguous (SGN..TF run back to back with no gaps), so
// the block is written with a single astikit.BitsWriterBatch pass,
// the way the teacher writes PSI/PES sections.
func (b TTIBlock) Bytes() []byte {
	buf := &bytes.Buffer{}
	w := astikit.NewBitsWriter(astikit.BitsWriterOptions{Writer: buf})
	bw := astikit.NewBitsWriterBatch(w)

	bw.Write(b.SGN)
	sn := make([]byte, 2)
	binary.LittleEndian.PutUint16(sn, b.SN)
	bw.Write(sn)
	bw.Write(b.EBN)
	bw.Write(b.CS)
	bw.Write(b.TCI[:])
	bw.Write(b.TCO[:])
	bw.Write(b.VP)
	bw.Write(b.JC)
	bw.Write(b.CF)
	bw.Write(b.TF[:])

	if bw.Err() != nil {
		out := make([]byte, ttiSize)
		copy(out, buf.Bytes())
		return out
	}
	return buf.Bytes()
}

// IsComment reports whether CF marks this block as a comment block,
// skipped for output per §4.6.
func (b TTIBlock) IsComment() bool { return b.CF != 0 }
