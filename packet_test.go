package ebustl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// oddParityByte sets bit 7 of v (0..0x7f) so the byte carries odd parity.
func oddParityByte(v byte) byte {
	if popcount(v)%2 == 0 {
		return v | 0x80
	}
	return v
}

func TestParsePacketHeaderUnframed(t *testing.T) {
	buf := make([]byte, packetUnframedSize)
	buf[0] = 0x02 // nibble 1: magazine=1, row address bit0=0
	buf[1] = 0x15 // nibble 0: row address bits1..4=0 -> row 0 (header)
	buf[2] = 0x02 // units=1
	buf[3] = 0x15 // tens=0 -> page number 0x01
	buf[4] = 0x15 // subcode byte 1 = 0
	buf[5] = 0x15 // subcode byte 2 = 0
	buf[6] = 0x64 // nibble 4: C4=0 C5=0 C6=1 -> Subtitle=true
	buf[7] = 0x15 // nibble 0: national option English

	pv, ok, err := ParsePacket(buf, NationalOptionEnglish)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, pv.IsHeader)
	assert.EqualValues(t, 1, pv.Magazine)
	assert.EqualValues(t, 0x01, pv.Header.PageNumber)
	assert.True(t, pv.Header.Subtitle)
	assert.False(t, pv.Header.ErasePage)
	assert.Equal(t, NationalOptionEnglish, pv.Header.NationalOption)
}

func TestParsePacketHeaderFramedStripsSyncBytes(t *testing.T) {
	buf := make([]byte, packetFramedSize)
	buf[0], buf[1] = 0x55, 0x27 // clock-run-in + framing code, ignored
	buf[2] = 0x02
	buf[3] = 0x15
	buf[4] = 0x02
	buf[5] = 0x15
	buf[6] = 0x15
	buf[7] = 0x15
	buf[8] = 0x64
	buf[9] = 0x15

	pv, ok, err := ParsePacket(buf, NationalOptionEnglish)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, pv.IsHeader)
	assert.True(t, pv.Header.Subtitle)
}

func TestParsePacketDisplayRow(t *testing.T) {
	buf := make([]byte, packetUnframedSize)
	buf[0] = 0x8c // nibble 10 (0b1010): magazine=2, row address bit0=1
	buf[1] = 0x15 // nibble 0: row address bits1..4=0 -> row 1
	buf[2] = oddParityByte('H')
	buf[3] = oddParityByte('I')

	pv, ok, err := ParsePacket(buf, NationalOptionEnglish)
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, pv.IsHeader)
	assert.EqualValues(t, 2, pv.Magazine)
	assert.EqualValues(t, 1, pv.Row)
	assert.Equal(t, CellGlyph, pv.Cells[0].Kind)
	assert.Equal(t, 'H', pv.Cells[0].Glyph)
	assert.Equal(t, 'I', pv.Cells[1].Glyph)
}

func TestParsePacketDisplayRowControlCode(t *testing.T) {
	buf := make([]byte, packetUnframedSize)
	buf[0] = 0x8c
	buf[1] = 0x15
	buf[2] = oddParityByte(ctrlAlphaRed)

	pv, ok, err := ParsePacket(buf, NationalOptionEnglish)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, CellSpacing, pv.Cells[0].Kind)
	assert.Equal(t, AttrForeground, pv.Cells[0].Attribute.Kind)
	assert.Equal(t, ColorRed, pv.Cells[0].Attribute.Color)
}

func TestParsePacketUncorrectableAddressDropsPacket(t *testing.T) {
	buf := make([]byte, packetUnframedSize)
	buf[0] = 0x16 // 0x15 with 2 bits flipped: no codeword within distance 1, uncorrectable
	buf[1] = 0x15

	_, ok, err := ParsePacket(buf, NationalOptionEnglish)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestParsePacketBadLengthIsError(t *testing.T) {
	_, _, err := ParsePacket(make([]byte, 10), NationalOptionEnglish)
	assert.ErrorIs(t, err, ErrPacketMustStartWithSyncByte)
}
