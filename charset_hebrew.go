package ebustl

// Hebrew G0 character set (ETSI EN 300 706 §15, Hebrew national option
// sub-set).

var hebrewTable = buildFullOverrideTable(map[byte]rune{
	0x41: 'א', 0x42: 'ב', 0x43: 'ג', 0x44: 'ד', 0x45: 'ה', 0x46: 'ו', 0x47: 'ז',
	0x48: 'ח', 0x49: 'ט', 0x4a: 'י', 0x4b: 'כ', 0x4c: 'ל', 0x4d: 'מ', 0x4e: 'נ',
	0x4f: 'ס', 0x50: 'ע', 0x51: 'פ', 0x52: 'צ', 0x53: 'ק', 0x54: 'ר', 0x55: 'ש',
	0x56: 'ת',
	0x61: 'ך', 0x62: 'ם', 0x63: 'ן', 0x64: 'ף', 0x65: 'ץ',
})

// DecodeHebrew maps a 7-bit teletext Hebrew byte to its Unicode
// codepoint. Bytes outside 0x20..0x7f are not glyphs.
func DecodeHebrew(b byte) rune {
	if b < 0x20 || b > 0x7f {
		return rune(b)
	}
	return hebrewTable[b-0x20]
}
