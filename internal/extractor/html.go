package extractor

import (
	"regexp"

	"github.com/1homsi/loctree/internal/model"
)

// HTMLVersion is bumped whenever this extractor's output shape changes.
const HTMLVersion = 1

// html implements Extractor for markup files: `<script src="...">` and
// `<link href="...">` references (any rel, not only stylesheets), in that
// order (all script references first, then all link references), plus inline `<style>`
// blocks delegated to the css extractor so an inline @import/url(...)
// reference is found the same way it would be in a standalone stylesheet.
type html struct{}

// NewHTML returns the markup extractor.
func NewHTML() Extractor { return &html{} }

func (h *html) Language() model.Language { return model.LangHTML }
func (h *html) Version() int             { return HTMLVersion }

var (
	reHTMLScriptSrc = regexp.MustCompile(`<script\b[^>]*\bsrc\s*=\s*["']([^"']+)["'][^>]*>`)
	reHTMLLinkHref  = regexp.MustCompile(`<link\b[^>]*\bhref\s*=\s*["']([^"']+)["'][^>]*>`)
	reHTMLStyleTag  = regexp.MustCompile(`(?s)<style\b[^>]*>(.*?)</style>`)
)

func (h *html) Analyze(content []byte, relPath string) (model.FileAnalysis, error) {
	fa := model.FileAnalysis{}
	text := string(content)

	for _, m := range reHTMLScriptSrc.FindAllStringSubmatchIndex(text, -1) {
		src := text[m[2]:m[3]]
		fa.Imports = append(fa.Imports, model.Import{Raw: src, Kind: model.Static, Line: lineAt(text, m[0])})
	}

	for _, m := range reHTMLLinkHref.FindAllStringSubmatchIndex(text, -1) {
		href := text[m[2]:m[3]]
		fa.Imports = append(fa.Imports, model.Import{Raw: href, Kind: model.Static, Line: lineAt(text, m[0])})
	}

	cssExtractor := &css{}
	for _, m := range reHTMLStyleTag.FindAllStringSubmatchIndex(text, -1) {
		block := text[m[2]:m[3]]
		blockAnalysis, err := cssExtractor.Analyze([]byte(block), relPath)
		if err != nil {
			continue
		}
		base := lineAt(text, m[2]) - 1
		for _, imp := range blockAnalysis.Imports {
			imp.Line += base
			fa.Imports = append(fa.Imports, imp)
		}
	}

	return fa, nil
}
