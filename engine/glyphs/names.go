package glyphs

import (
	"sort"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/text/language"

	"github.com/npillmayer/glyphpad/core/font/opentype/otquery"
)

// Names are the descriptive strings of a font in one language.
type Names struct {
	Copyright      string
	Family         string
	Subfamily      string
	FullName       string
	PostScriptName string
	Trademark      string
	UniqueID       string
	Version        string
}

// Metadata holds a font's names per language.
type Metadata map[language.Tag]*Names

// MetadataFrom copies the name records of a parsed font. Records with name
// IDs other than the ones of Names are ignored.
func MetadataFrom(names otquery.Names) Metadata {
	md := make(Metadata)
	for id, byLang := range names {
		for lang, s := range byLang {
			field := md.in(lang).field(id)
			if field != nil {
				*field = s
			}
		}
	}
	return md
}

func (md Metadata) in(lang language.Tag) *Names {
	n, ok := md[lang]
	if !ok {
		n = &Names{}
		md[lang] = n
	}
	return n
}

func (n *Names) field(id sfnt.NameID) *string {
	switch id {
	case sfnt.NameIDCopyright:
		return &n.Copyright
	case sfnt.NameIDFamily:
		return &n.Family
	case sfnt.NameIDSubfamily:
		return &n.Subfamily
	case sfnt.NameIDUniqueIdentifier:
		return &n.UniqueID
	case sfnt.NameIDFull:
		return &n.FullName
	case sfnt.NameIDVersion:
		return &n.Version
	case sfnt.NameIDPostScript:
		return &n.PostScriptName
	case sfnt.NameIDTrademark:
		return &n.Trademark
	}
	return nil
}

// Languages returns the languages of md, sorted by tag.
func (md Metadata) Languages() []language.Tag {
	tags := make([]language.Tag, 0, len(md))
	for t := range md {
		tags = append(tags, t)
	}
	sort.Slice(tags, func(i, j int) bool {
		return tags[i].String() < tags[j].String()
	})
	return tags
}

// Family returns the English family name of the font. If there is none, the
// family name of the first language having one is returned, and "Untitled"
// as a last resort.
func (md Metadata) Family() string {
	return md.lookup(func(n *Names) string { return n.Family }, "Untitled")
}

// Style returns the English subfamily name of the font, with the same
// fallbacks as Family. It defaults to "Regular".
func (md Metadata) Style() string {
	return md.lookup(func(n *Names) string { return n.Subfamily }, "Regular")
}

func (md Metadata) lookup(get func(*Names) string, dflt string) string {
	if n, ok := md[language.English]; ok && get(n) != "" {
		return get(n)
	}
	for _, lang := range md.Languages() {
		if s := get(md[lang]); s != "" {
			return s
		}
	}
	return dflt
}
