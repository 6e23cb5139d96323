package extractor

import (
	"bufio"
	"regexp"
	"strings"

	"github.com/1homsi/loctree/internal/model"
)

// PythonVersion is bumped whenever this extractor's output shape changes.
const PythonVersion = 1

// python implements Extractor for the untyped-scripting-language tag:
// `from X import Y`, `import X`, conditional imports nested inside
// function/control bodies (flagged Dynamic by indentation depth), and
// string-keyed dynamic-dispatch patterns (recorded into the dynamic bag,
// never as hard edges, per spec §4.1).
type python struct{}

// NewPython returns the untyped-scripting-language extractor.
func NewPython() Extractor { return &python{} }

func (p *python) Language() model.Language { return model.LangPython }
func (p *python) Version() int             { return PythonVersion }

var (
	reFromImport  = regexp.MustCompile(`^(\s*)from\s+([\w.]+)\s+import\s+(.+?)\s*(?:#.*)?$`)
	rePlainImport = regexp.MustCompile(`^(\s*)import\s+([\w.]+(?:\s*,\s*[\w.]+)*)\s*(?:#.*)?$`)
	reImportAs    = regexp.MustCompile(`^([\w.]+)(?:\s+as\s+(\w+))?$`)
	reDynamicCall = regexp.MustCompile(`importlib\.import_module\(|getattr\(\s*\w+\s*,`)
	reDef         = regexp.MustCompile(`^(\s*)(?:async\s+)?def\s+(\w+)\s*\(`)
	reClass       = regexp.MustCompile(`^(\s*)class\s+(\w+)`)
)

func (p *python) Analyze(content []byte, relPath string) (model.FileAnalysis, error) {
	fa := model.FileAnalysis{}
	scanner := bufio.NewScanner(strings.NewReader(string(content)))
	scanner.Buffer(make([]byte, 1<<20), 1<<20)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		rawLine := scanner.Text()
		line := stripPyComment(rawLine)
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if m := reFromImport.FindStringSubmatch(line); m != nil {
			indent, module, namesPart := m[1], m[2], m[3]
			kind := model.Static
			if indent != "" {
				kind = model.Dynamic
			}
			if strings.TrimSpace(namesPart) == "*" {
				fa.Imports = append(fa.Imports, model.Import{
					Raw: module, Kind: kind, Line: lineNo, Wildcard: true,
				})
				continue
			}
			var names []model.ImportedName
			for _, part := range strings.Split(strings.Trim(namesPart, "()"), ",") {
				part = strings.TrimSpace(part)
				if part == "" {
					continue
				}
				if sub := reImportAs.FindStringSubmatch(part); sub != nil {
					names = append(names, model.ImportedName{Name: sub[1], Alias: sub[2]})
				}
			}
			fa.Imports = append(fa.Imports, model.Import{Raw: module, Kind: kind, Line: lineNo, Names: names})
			continue
		}

		if m := rePlainImport.FindStringSubmatch(line); m != nil {
			indent := m[1]
			kind := model.Static
			if indent != "" {
				kind = model.Dynamic
			}
			for _, mod := range strings.Split(m[2], ",") {
				mod = strings.TrimSpace(mod)
				if sub := reImportAs.FindStringSubmatch(mod); sub != nil {
					fa.Imports = append(fa.Imports, model.Import{
						Raw: sub[1], Kind: kind, Line: lineNo,
						Names: []model.ImportedName{{Name: sub[1], Alias: sub[2]}},
					})
				}
			}
			continue
		}

		if reDynamicCall.MatchString(line) {
			fa.DynamicImports = append(fa.DynamicImports, trimmed)
			continue
		}

		if m := reDef.FindStringSubmatch(rawLine); m != nil {
			if m[1] == "" && !strings.HasPrefix(m[2], "_") {
				fa.Exports = append(fa.Exports, model.Export{
					Name: m[2], Kind: model.Value, Line: lineNo, Visibility: model.Public,
				})
			}
			continue
		}
		if m := reClass.FindStringSubmatch(rawLine); m != nil {
			if m[1] == "" && !strings.HasPrefix(m[2], "_") {
				fa.Exports = append(fa.Exports, model.Export{
					Name: m[2], Kind: model.Type, Line: lineNo, Visibility: model.Public,
				})
			}
			continue
		}
	}
	return fa, scanner.Err()
}

func stripPyComment(line string) string {
	inString := byte(0)
	for i := 0; i < len(line); i++ {
		c := line[i]
		if inString != 0 {
			if c == inString && (i == 0 || line[i-1] != '\\') {
				inString = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			inString = c
		case '#':
			return line[:i]
		}
	}
	return line
}
