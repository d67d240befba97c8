package cleaning

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/KaramelBytes/datacleaner-cli/internal/dataset"
)

var (
	titleWordRe   = regexp.MustCompile(`\w\S*`)
	specialCharRe = regexp.MustCompile(`[^\w\s]`)
)

// textNormalizer applies trimming, case folding and special-character
// removal to single values. A normalizer is not safe for concurrent use.
type textNormalizer struct {
	trim  bool
	style CaseStyle
	strip bool
	lower cases.Caser
	upper cases.Caser
}

func newTextNormalizer(o Options) *textNormalizer {
	return &textNormalizer{
		trim:  o.TrimWhitespace,
		style: o.StandardizeCase,
		strip: o.RemoveSpecialChars,
		lower: cases.Lower(language.Und),
		upper: cases.Upper(language.Und),
	}
}

func (t *textNormalizer) active() bool {
	return t.trim || (t.style != "" && t.style != CaseNone) || t.strip
}

func (t *textNormalizer) apply(v string) string {
	if t.trim {
		v = strings.TrimSpace(v)
	}
	switch t.style {
	case CaseLower:
		v = t.lower.String(v)
	case CaseUpper:
		v = t.upper.String(v)
	case CaseTitle:
		v = titleWordRe.ReplaceAllStringFunc(v, t.titleWord)
	}
	if t.strip {
		v = specialCharRe.ReplaceAllString(v, "")
	}
	return v
}

// titleWord upper-cases the first rune of a word and lower-cases the rest.
func (t *textNormalizer) titleWord(w string) string {
	_, size := utf8.DecodeRuneInString(w)
	return t.upper.String(w[:size]) + t.lower.String(w[size:])
}

func (p *pipeline) normalizeText() error {
	tn := newTextNormalizer(p.opts)
	if !tn.active() {
		return nil
	}
	cols := p.data.Columns
	err := p.eachRecord("text", func(r dataset.Record) {
		for _, c := range cols {
			r[c] = tn.apply(r[c])
		}
	})
	if err != nil {
		return err
	}
	p.log.add("Applied text normalization")
	return nil
}
