package ebustl

// Greek G0 character set (ETSI EN 300 706 §15, Greek national option
// sub-set).

var greekTable = buildFullOverrideTable(map[byte]rune{
	0x41: 'Α', 0x42: 'Β', 0x43: 'Γ', 0x44: 'Δ', 0x45: 'Ε', 0x46: 'Ζ', 0x47: 'Η',
	0x48: 'Θ', 0x49: 'Ι', 0x4a: 'Κ', 0x4b: 'Λ', 0x4c: 'Μ', 0x4d: 'Ν', 0x4e: 'Ξ',
	0x4f: 'Ο', 0x50: 'Π', 0x51: 'Ρ', 0x52: 'Σ', 0x53: 'Τ', 0x54: 'Υ', 0x55: 'Φ',
	0x56: 'Χ', 0x57: 'Ψ', 0x58: 'Ω',
	0x61: 'α', 0x62: 'β', 0x63: 'γ', 0x64: 'δ', 0x65: 'ε', 0x66: 'ζ', 0x67: 'η',
	0x68: 'θ', 0x69: 'ι', 0x6a: 'κ', 0x6b: 'λ', 0x6c: 'μ', 0x6d: 'ν', 0x6e: 'ξ',
	0x6f: 'ο', 0x70: 'π', 0x71: 'ρ', 0x72: 'σ', 0x73: 'τ', 0x74: 'υ', 0x75: 'φ',
	0x76: 'χ', 0x77: 'ψ', 0x78: 'ω',
})

// DecodeGreek maps a 7-bit teletext Greek byte to its Unicode codepoint.
// Bytes outside 0x20..0x7f are not glyphs.
func DecodeGreek(b byte) rune {
	if b < 0x20 || b > 0x7f {
		return rune(b)
	}
	return greekTable[b-0x20]
}
