package otquery

import (
	"github.com/npillmayer/glyphpad/core/font/opentype/ot"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/text/language"
)

// FontType returns the font type, encoded in the font header, as a string.
func FontType(otf *ot.Font) string {
	if otf.Header == nil {
		return "<empty>"
	}
	typ := otf.Header.FontType
	switch typ {
	case 0x4f54544f: // OTTO
		return "OpenType (outlines)"
	case 0x00010000: // TrueType
		return "TrueType"
	case 0x74727565: // true
		return "TrueType (Mac legacy)"
	}
	return "<unknown>"
}

// Names maps name IDs to strings per language.
type Names map[sfnt.NameID]map[language.Tag]string

// Get returns the name for id in language lang, or "" if not present.
func (n Names) Get(id sfnt.NameID, lang language.Tag) string {
	if m, ok := n[id]; ok {
		return m[lang]
	}
	return ""
}

// Languages returns the set of languages any name is given in.
func (n Names) Languages() []language.Tag {
	seen := make(map[language.Tag]bool)
	var langs []language.Tag
	for _, m := range n {
		for lang := range m {
			if !seen[lang] {
				seen[lang] = true
				langs = append(langs, lang)
			}
		}
	}
	return langs
}

// NameInfo returns every decodable string of the font's `name` table, keyed by
// name ID and language.
//
// Records are visited in table order, which is ascending by platform. If a
// name is present for a language on more than one platform, the Windows
// version wins over the Macintosh version, which wins over the Unicode one.
// Unicode platform strings carry no language and are filed under language.Und.
func NameInfo(otf *ot.Font) Names {
	names := make(Names)
	if otf.Names == nil {
		tracer().Debugf("no name table found in font")
		return names
	}
	for _, rec := range otf.Names.Records {
		lang := recordLanguage(rec)
		id := sfnt.NameID(rec.NameID)
		if names[id] == nil {
			names[id] = make(map[language.Tag]string)
		}
		names[id][lang] = rec.Value
	}
	return names
}

func recordLanguage(rec ot.NameRecord) language.Tag {
	var code string
	switch rec.PlatformID {
	case ot.PlatformWindows:
		code = windowsLanguages[rec.LanguageID]
	case ot.PlatformMacintosh:
		code = macLanguages[rec.LanguageID]
	}
	if code == "" {
		return language.Und
	}
	return language.Make(code)
}

// macLanguages maps Macintosh language IDs to BCP 47 codes.
var macLanguages = map[uint16]string{
	0: "en", 1: "fr", 2: "de", 3: "it", 4: "nl", 5: "sv", 6: "es", 7: "da",
	8: "pt", 9: "no", 10: "he", 11: "ja", 12: "ar", 13: "fi", 14: "el",
	15: "is", 16: "mt", 17: "tr", 18: "hr", 19: "zh-Hant", 20: "ur", 21: "hi",
	22: "th", 23: "ko", 24: "lt", 25: "pl", 26: "hu", 27: "et", 28: "lv",
	30: "fo", 31: "fa", 32: "ru", 33: "zh", 35: "ga", 36: "sq", 37: "ro",
	38: "cs", 39: "sk", 40: "sl", 41: "yi", 42: "sr", 43: "mk", 44: "bg",
	45: "uk", 46: "be", 47: "uz", 48: "kk",
}

// windowsLanguages maps Windows LCIDs to BCP 47 codes. The primary LCID of a
// language maps to its bare code, as font tools usually key their names by it.
var windowsLanguages = map[uint16]string{
	0x0401: "ar", 0x0402: "bg", 0x0403: "ca", 0x0404: "zh-TW", 0x0405: "cs",
	0x0406: "da", 0x0407: "de", 0x0408: "el", 0x0409: "en", 0x040A: "es",
	0x040B: "fi", 0x040C: "fr", 0x040D: "he", 0x040E: "hu", 0x040F: "is",
	0x0410: "it", 0x0411: "ja", 0x0412: "ko", 0x0413: "nl", 0x0414: "nb",
	0x0415: "pl", 0x0416: "pt", 0x0418: "ro", 0x0419: "ru", 0x041A: "hr",
	0x041B: "sk", 0x041C: "sq", 0x041D: "sv", 0x041E: "th", 0x041F: "tr",
	0x0420: "ur", 0x0421: "id", 0x0422: "uk", 0x0423: "be", 0x0424: "sl",
	0x0425: "et", 0x0426: "lv", 0x0427: "lt", 0x0429: "fa", 0x042A: "vi",
	0x0439: "hi", 0x0804: "zh", 0x0807: "de-CH", 0x0809: "en-GB",
	0x080A: "es-MX", 0x080C: "fr-BE", 0x0810: "it-CH", 0x0813: "nl-BE",
	0x0814: "nn", 0x0816: "pt-PT", 0x0C07: "de-AT", 0x0C09: "en-AU",
	0x0C0A: "es", 0x0C0C: "fr-CA", 0x1009: "en-CA", 0x100C: "fr-CH",
	0x1409: "en-NZ", 0x1809: "en-IE",
}
