package ebustl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullRow(cells ...Cell) DisplayRow {
	var row DisplayRow
	for i := range row {
		row[i] = spaceCell()
	}
	copy(row[:], cells)
	return row
}

func TestSerializeRowTrimsTrailingBlanks(t *testing.T) {
	row := fullRow(glyphCell('H'), glyphCell('I'))
	out := serializeRow(row)
	assert.Equal(t, []byte("HI"), out)
}

func TestSerializeRowMapsAttributesToSharedControlCodes(t *testing.T) {
	row := fullRow(
		spacingCell(Attribute{Kind: AttrForeground, Color: ColorRed}),
		glyphCell('X'),
	)
	out := serializeRow(row)
	require.Len(t, out, 2)
	assert.Equal(t, byte(ctrlAlphaRed), out[0])
	assert.Equal(t, byte('X'), out[1])
}

func TestSerializePageJoinsRowsWithCRLF(t *testing.T) {
	p := &SubtitlePage{Rows: map[int]DisplayRow{
		1: fullRow(glyphCell('A')),
		2: fullRow(glyphCell('B')),
	}}
	out := serializePage(p)
	assert.Equal(t, []byte{'A', 0x8a, 'B'}, out)
}

func TestBlocksForPageSplitsLongTextAcrossTTIBlocks(t *testing.T) {
	e := NewExtractor()
	cells := make([]Cell, 0, 150)
	for i := 0; i < 150; i++ {
		cells = append(cells, glyphCell('X'))
	}
	var row DisplayRow
	copy(row[:], cells[:packetPayloadSize])

	p := &SubtitlePage{
		PageNumber: 1,
		Rows:       map[int]DisplayRow{1: row},
	}
	// pad serializePage's output past 112 bytes by using several rows.
	p.Rows[2] = row
	p.Rows[3] = row

	blocks := e.blocksForPage(p, FrameRate25, 3)
	require.True(t, len(blocks) >= 2)
	for i, b := range blocks {
		assert.EqualValues(t, 3, b.SN)
		if i < len(blocks)-1 {
			assert.EqualValues(t, i+1, b.EBN)
		} else {
			assert.Equal(t, EBNLast, b.EBN)
		}
		assert.Equal(t, uint8(0), b.CS)
	}
}

func TestSubtitleNumberCounterWrapsAt16Bit(t *testing.T) {
	c := newSubtitleNumberCounter()
	c.value = 0xfffe
	first := c.next()
	second := c.next()
	third := c.next()
	assert.EqualValues(t, 0xfffe, first)
	assert.EqualValues(t, 0xffff, second)
	assert.EqualValues(t, 0x0000, third)
}

func TestExtractAndReadRoundTrip(t *testing.T) {
	row := fullRow(
		spacingCell(Attribute{Kind: AttrForeground, Color: ColorRed}),
		glyphCell('H'),
		glyphCell('I'),
	)
	page := &SubtitlePage{
		PageNumber: 1,
		OnsetUs:    1_000_000,
		ClearUs:    2_000_000,
		Rows:       map[int]DisplayRow{1: row},
	}

	buf := NewExtractor().Extract([]*SubtitlePage{page}, FrameRate25)
	require.True(t, len(buf) >= gsiSize+ttiSize)

	captions, diags, err := NewReader().Read(buf)
	require.NoError(t, err)
	assert.Empty(t, diags)
	require.Len(t, captions, 1)

	c := captions[0]
	assert.Equal(t, "HI", c.Text)
	require.NotNil(t, c.Style)
	assert.Equal(t, "red", c.Style.Color)
	assert.Equal(t, "00:00:01:00", c.StartTimecode)
	assert.Equal(t, "00:00:02:00", c.EndTimecode)
	assert.Nil(t, c.Layout)
}
