package ebustl

// Latin G0 character set: a common base table plus per-national-option
// substitutions at a fixed set of positions, per ETSI EN 300 706 §15
// (Latin national option sub-sets). 13 languages map onto 8 national
// option selectors (the 3-bit field carried in the teletext page header);
// several languages share an identical substitution set.

// NationalOption is the 3-bit national option sub-set selector carried
// in a teletext page header's control bits.
type NationalOption uint8

const (
	NationalOptionEnglish                     NationalOption = 0
	NationalOptionFrench                      NationalOption = 1
	NationalOptionSwedishFinnishHungarian     NationalOption = 2
	NationalOptionCzechSlovak                 NationalOption = 3
	NationalOptionGerman                      NationalOption = 4
	NationalOptionSpanishPortuguese           NationalOption = 5
	NationalOptionItalian                     NationalOption = 6
	NationalOptionPolishTurkish               NationalOption = 7
)

// Language names the pack's 13 languages that select into the 8
// national option sub-sets above (several share a sub-set).
type Language string

const (
	LanguageEnglish    Language = "english"
	LanguageFrench     Language = "french"
	LanguageSwedish    Language = "swedish"
	LanguageFinnish    Language = "finnish"
	LanguageHungarian  Language = "hungarian"
	LanguageCzech      Language = "czech"
	LanguageSlovak     Language = "slovak"
	LanguageGerman     Language = "german"
	LanguageSpanish    Language = "spanish"
	LanguagePortuguese Language = "portuguese"
	LanguageItalian    Language = "italian"
	LanguagePolish     Language = "polish"
	LanguageTurkish    Language = "turkish"
)

var languageNationalOption = map[Language]NationalOption{
	LanguageEnglish:    NationalOptionEnglish,
	LanguageFrench:     NationalOptionFrench,
	LanguageSwedish:    NationalOptionSwedishFinnishHungarian,
	LanguageFinnish:    NationalOptionSwedishFinnishHungarian,
	LanguageHungarian:  NationalOptionSwedishFinnishHungarian,
	LanguageCzech:      NationalOptionCzechSlovak,
	LanguageSlovak:     NationalOptionCzechSlovak,
	LanguageGerman:     NationalOptionGerman,
	LanguageSpanish:    NationalOptionSpanishPortuguese,
	LanguagePortuguese: NationalOptionSpanishPortuguese,
	LanguageItalian:    NationalOptionItalian,
	LanguagePolish:     NationalOptionPolishTurkish,
	LanguageTurkish:    NationalOptionPolishTurkish,
}

// NationalOptionForLanguage resolves a language name to its teletext
// national option selector. ok is false for an unrecognized language.
func NationalOptionForLanguage(l Language) (opt NationalOption, ok bool) {
	opt, ok = languageNationalOption[l]
	return
}

// latinOverridePositions are the 13 byte values, within the 0x20..0x7f
// glyph range, whose glyph differs by national option.
var latinOverridePositions = [13]byte{
	0x23, 0x24, 0x40,
	0x5b, 0x5c, 0x5d, 0x5e, 0x5f,
	0x60,
	0x7b, 0x7c, 0x7d, 0x7e,
}

// latinBase is the common Latin G0 base table (positions 0x20..0x7f):
// plain ASCII at every position, including the override positions, whose
// glyphs DecodeLatinG0 takes from latinOverrides for every option,
// English included.
var latinBase = buildLatinBase()

func buildLatinBase() (t [96]rune) {
	for b := 0x20; b < 0x80; b++ {
		t[b-0x20] = rune(b)
	}
	return
}

// latinOverrides holds, per NationalOption, the 13 replacement runes for
// latinOverridePositions, in the same order.
var latinOverrides = map[NationalOption][13]rune{
	NationalOptionEnglish:                 {'£', '$', '@', '←', '½', '→', '↑', '#', '-', '¼', '‖', '¾', '÷'},
	NationalOptionFrench:                  {'é', 'ï', 'à', 'ë', 'ê', 'ù', 'î', '#', 'è', 'â', 'ô', 'û', 'ç'},
	NationalOptionSwedishFinnishHungarian: {'#', '¤', 'É', 'Ä', 'Ö', 'Å', 'Ü', '_', 'é', 'ä', 'ö', 'å', 'ü'},
	NationalOptionCzechSlovak:             {'#', 'ů', 'č', 'ť', 'ž', 'ý', 'í', 'ř', 'é', 'á', 'ě', 'ú', 'š'},
	NationalOptionGerman:                  {'#', '$', 'É', 'Ä', 'Ö', 'Ü', 'ß', 'ü', 'é', 'ä', 'ö', 'ü', 'ü'},
	NationalOptionSpanishPortuguese:       {'ç', '$', 'á', 'é', 'í', 'ó', 'ú', '¿', 'ü', 'ñ', 'è', 'à', 'ì'},
	NationalOptionItalian:                 {'£', '$', 'é', '°', 'ç', '»', '-', 'ù', 'à', 'ò', 'è', 'ì', 'ì'},
	NationalOptionPolishTurkish:           {'#', '$', 'Ğ', 'İ', 'Ş', 'Ö', 'Ü', 'ğ', 'ı', 'ş', 'ö', 'ü', 'ł'},
}

// DecodeLatinG0 maps a 7-bit teletext Latin G0 byte to its Unicode
// codepoint under the given national option. Bytes outside 0x20..0x7f
// are not glyphs; callers must classify control codes first.
func DecodeLatinG0(b byte, opt NationalOption) rune {
	if b < 0x20 || b > 0x7f {
		return rune(b)
	}
	if ov, ok := latinOverrides[opt]; ok {
		for i, p := range latinOverridePositions {
			if p == b {
				return ov[i]
			}
		}
	}
	return latinBase[b-0x20]
}
