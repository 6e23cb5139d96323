package extractor

import (
	"regexp"

	"github.com/1homsi/loctree/internal/model"
)

// CSSVersion is bumped whenever this extractor's output shape changes.
const CSSVersion = 1

// css implements Extractor for stylesheets: `@import` statements (bare
// string or wrapped in url(...)) and asset references via url(...),
// reducing a CSS file to the same two regexes.
type css struct{}

// NewCSS returns the stylesheet extractor.
func NewCSS() Extractor { return &css{} }

func (c *css) Language() model.Language { return model.LangCSS }
func (c *css) Version() int             { return CSSVersion }

var (
	reCSSImport = regexp.MustCompile(`@import\s+(?:url\(\s*)?['"]([^'"]+)['"]\s*\)?`)
	reCSSURL    = regexp.MustCompile(`url\(\s*['"]?([^'")]+)['"]?\s*\)`)
)

func (c *css) Analyze(content []byte, relPath string) (model.FileAnalysis, error) {
	fa := model.FileAnalysis{}
	text := string(content)

	seen := make(map[string]bool)
	for _, m := range reCSSImport.FindAllStringSubmatchIndex(text, -1) {
		src := text[m[2]:m[3]]
		fa.Imports = append(fa.Imports, model.Import{Raw: src, Kind: model.Static, Line: lineAt(text, m[0])})
		seen[src] = true
	}

	for _, m := range reCSSURL.FindAllStringSubmatchIndex(text, -1) {
		src := text[m[2]:m[3]]
		if seen[src] {
			continue
		}
		fa.Imports = append(fa.Imports, model.Import{Raw: src, Kind: model.Static, Line: lineAt(text, m[0])})
	}

	return fa, nil
}
