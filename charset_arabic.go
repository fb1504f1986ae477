package ebustl

// Arabic G0 character set (ETSI EN 300 706 §15, Arabic national option
// sub-set). Presentation forms are approximated with base letterforms;
// shaping/joining is outside the scope of a subtitle decoder.

var arabicTable = buildFullOverrideTable(map[byte]rune{
	0x41: 'ا', 0x42: 'ب', 0x43: 'ت', 0x44: 'ث', 0x45: 'ج', 0x46: 'ح', 0x47: 'خ',
	0x48: 'د', 0x49: 'ذ', 0x4a: 'ر', 0x4b: 'ز', 0x4c: 'س', 0x4d: 'ش', 0x4e: 'ص',
	0x4f: 'ض', 0x50: 'ط', 0x51: 'ظ', 0x52: 'ع', 0x53: 'غ', 0x54: 'ف', 0x55: 'ق',
	0x56: 'ك', 0x57: 'ل', 0x58: 'م', 0x59: 'ن', 0x5a: 'ه',
	0x5b: 'و', 0x5c: 'ي', 0x5d: 'ء', 0x5e: 'ئ', 0x5f: 'ؤ',
	0x61: 'ى', 0x62: 'ة', 0x63: 'آ', 0x64: 'إ', 0x65: 'أ',
})

// DecodeArabic maps a 7-bit teletext Arabic byte to its Unicode
// codepoint. Bytes outside 0x20..0x7f are not glyphs.
func DecodeArabic(b byte) rune {
	if b < 0x20 || b > 0x7f {
		return rune(b)
	}
	return arabicTable[b-0x20]
}
