package ebustl

import (
	"fmt"
	"strconv"
	"strings"
)

// GSI block size and field offsets, EBU Tech 3264-E / §6.
const (
	gsiSize = 1024

	gsiOffsetCPN = 0
	gsiLenCPN    = 3

	gsiOffsetDFC = 3
	gsiLenDFC    = 8

	gsiOffsetDSC = 11

	gsiOffsetCCT = 12
	gsiLenCCT    = 2

	gsiOffsetLC = 14
	gsiLenLC    = 2

	// Supplemented informational fields (original_source/ebustl_utils —
	// never consulted by decode logic, read-through only; SPEC_FULL §4.1).
	gsiOffsetMNC = 118
	gsiLenMNC    = 2
	gsiOffsetMNR = 120
	gsiLenMNR    = 2
	gsiOffsetCO  = 274
	gsiLenCO     = 3
	gsiOffsetPUB = 277
	gsiLenPUB    = 32

	gsiOffsetTNB = 238
	gsiLenTNB    = 5
	gsiOffsetTNS = 243
	gsiLenTNS    = 5
)

// GSI is the General Subtitle Information header of an EBU-STL file
// (§3). Only the fields the core consumes are modeled.
type GSI struct {
	CPN string
	DFC string
	DSC byte
	CCT CharacterCodeTable
	LC  string
	TNB int
	TNS int

	MaxCharsPerRow  int
	MaxRows         int
	CountryOfOrigin string
	Publisher       string
}

// ParseGSI decodes the fixed 1024-byte GSI block. InputTooShort is
// fatal for Read (§7).
func ParseGSI(buf []byte) (GSI, error) {
	if len(buf) < gsiSize {
		return GSI{}, fmt.Errorf("ebustl: parsing GSI failed: %w", ErrInputTooShort)
	}

	g := GSI{
		CPN: asciiField(buf, gsiOffsetCPN, gsiLenCPN),
		DFC: asciiField(buf, gsiOffsetDFC, gsiLenDFC),
		DSC: buf[gsiOffsetDSC],
		LC:  asciiField(buf, gsiOffsetLC, gsiLenLC),

		MaxCharsPerRow:  asciiInt(buf, gsiOffsetMNC, gsiLenMNC),
		MaxRows:         asciiInt(buf, gsiOffsetMNR, gsiLenMNR),
		CountryOfOrigin: asciiField(buf, gsiOffsetCO, gsiLenCO),
		Publisher:       asciiField(buf, gsiOffsetPUB, gsiLenPUB),

		TNB: asciiInt(buf, gsiOffsetTNB, gsiLenTNB),
		TNS: asciiInt(buf, gsiOffsetTNS, gsiLenTNS),
	}

	cctVal, err := strconv.ParseInt(asciiField(buf, gsiOffsetCCT, gsiLenCCT), 16, 8)
	if err != nil {
		cctVal = int64(CharacterCodeTableLatin)
	}
	g.CCT = CharacterCodeTable(cctVal)

	return g, nil
}

// Bytes serializes the GSI into a fresh 1024-byte block, space-padding
// ASCII fields and filling every unmodeled byte with a space, per §6.
func (g GSI) Bytes() []byte {
	buf := make([]byte, gsiSize)
	for i := range buf {
		buf[i] = ' '
	}
	putASCIIField(buf, gsiOffsetCPN, gsiLenCPN, g.CPN)
	putASCIIField(buf, gsiOffsetDFC, gsiLenDFC, g.DFC)
	buf[gsiOffsetDSC] = g.DSC
	putASCIIField(buf, gsiOffsetCCT, gsiLenCCT, fmt.Sprintf("%02X", uint8(g.CCT)))
	putASCIIField(buf, gsiOffsetLC, gsiLenLC, g.LC)
	putASCIIField(buf, gsiOffsetMNC, gsiLenMNC, fmt.Sprintf("%0*d", gsiLenMNC, g.MaxCharsPerRow))
	putASCIIField(buf, gsiOffsetMNR, gsiLenMNR, fmt.Sprintf("%0*d", gsiLenMNR, g.MaxRows))
	putASCIIField(buf, gsiOffsetCO, gsiLenCO, g.CountryOfOrigin)
	putASCIIField(buf, gsiOffsetPUB, gsiLenPUB, g.Publisher)
	putASCIIField(buf, gsiOffsetTNB, gsiLenTNB, fmt.Sprintf("%0*d", gsiLenTNB, g.TNB))
	putASCIIField(buf, gsiOffsetTNS, gsiLenTNS, fmt.Sprintf("%0*d", gsiLenTNS, g.TNS))
	return buf
}

func asciiField(buf []byte, offset, length int) string {
	if offset+length > len(buf) {
		return ""
	}
	return strings.TrimRight(string(buf[offset:offset+length]), " \x00")
}

func asciiInt(buf []byte, offset, length int) int {
	v, err := strconv.Atoi(strings.TrimSpace(asciiField(buf, offset, length)))
	if err != nil {
		return 0
	}
	return v
}

func putASCIIField(buf []byte, offset, length int, value string) {
	if offset+length > len(buf) {
		return
	}
	for i := 0; i < length; i++ {
		buf[offset+i] = ' '
	}
	copy(buf[offset:offset+length], value)
}
