package extractor

import (
	"bufio"
	"regexp"
	"strings"

	"github.com/1homsi/loctree/internal/model"
)

// JSTSVersion is bumped whenever this extractor's output shape changes.
const JSTSVersion = 1

// jsts implements Extractor for the curly-brace-scripting-language tag:
// ES-module static import forms (default, named, namespace, re-export
// `export ... from`), dynamic `import(expr)`, CommonJS `require(...)`/
// `module.exports`, and frontend `invoke("name")` command-bridge call
// sites. Line-scanning, regex-bound two-pass shape: bind each line's
// import/export form first, then resolve call sites in a second pass.
type jsts struct{}

// NewJSTS returns the curly-brace-scripting-language extractor.
func NewJSTS() Extractor { return &jsts{} }

func (j *jsts) Language() model.Language { return model.LangJavaScript }
func (j *jsts) Version() int             { return JSTSVersion }

var (
	reImportDefault   = regexp.MustCompile(`^\s*import\s+(\w+)\s+from\s+['"]([^'"]+)['"]`)
	reImportNamed     = regexp.MustCompile(`^\s*import\s*\{([^}]*)\}\s*from\s+['"]([^'"]+)['"]`)
	reImportNamespace = regexp.MustCompile(`^\s*import\s*\*\s*as\s+(\w+)\s+from\s+['"]([^'"]+)['"]`)
	reImportSideEffect = regexp.MustCompile(`^\s*import\s+['"]([^'"]+)['"]\s*;?\s*$`)
	reExportFrom      = regexp.MustCompile(`^\s*export\s*\{([^}]*)\}\s*from\s+['"]([^'"]+)['"]`)
	reExportStarFrom  = regexp.MustCompile(`^\s*export\s*\*(?:\s+as\s+(\w+))?\s*from\s+['"]([^'"]+)['"]`)
	reRequire         = regexp.MustCompile(`(?:const|let|var)\s+(\w+|\{[^}]*\})\s*=\s*require\(['"]([^'"]+)['"]\)`)
	reDynamicImportLit = regexp.MustCompile(`import\(\s*['"]([^'"]+)['"]\s*\)`)
	reDynamicImportExpr = regexp.MustCompile(`import\(\s*([^'")][^)]*)\)`)
	reExportNamed     = regexp.MustCompile(`^\s*export\s+(?:default\s+)?(?:async\s+)?(function|class|const|let|var)\s+(\w+)`)
	reExportList      = regexp.MustCompile(`^\s*export\s*\{([^}]*)\}\s*;?\s*$`)
	reExportDefault   = regexp.MustCompile(`^\s*export\s+default\s+(\w+)`)
	reInvokeCall      = regexp.MustCompile(`\binvoke(?:Command)?\s*\(\s*['"]([^'"]+)['"]`)
	reModuleExportsProp = regexp.MustCompile(`^\s*(?:module\.exports|exports)\.(\w+)\s*=`)
	reModuleExportsList = regexp.MustCompile(`^\s*module\.exports\s*=\s*\{([^}]*)\}`)
	reModuleExportsName = regexp.MustCompile(`^\s*module\.exports\s*=\s*(\w+)\s*;?\s*$`)
)

func (j *jsts) Analyze(content []byte, relPath string) (model.FileAnalysis, error) {
	fa := model.FileAnalysis{}
	scanner := bufio.NewScanner(strings.NewReader(string(content)))
	scanner.Buffer(make([]byte, 1<<20), 1<<20)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "//") {
			continue
		}

		if m := reExportStarFrom.FindStringSubmatch(line); m != nil {
			fa.Imports = append(fa.Imports, model.Import{
				Raw: m[2], Kind: model.ReExport, Line: lineNo, Wildcard: true,
			})
			continue
		}
		if m := reExportFrom.FindStringSubmatch(line); m != nil {
			names := parseBraceNames(m[1])
			fa.Imports = append(fa.Imports, model.Import{
				Raw: m[2], Kind: model.ReExport, Line: lineNo, Names: names,
			})
			continue
		}
		if m := reImportDefault.FindStringSubmatch(line); m != nil {
			fa.Imports = append(fa.Imports, model.Import{
				Raw: m[2], Kind: model.Static, Line: lineNo,
				Names: []model.ImportedName{{Name: "default", Alias: m[1]}},
			})
			continue
		}
		if m := reImportNamed.FindStringSubmatch(line); m != nil {
			fa.Imports = append(fa.Imports, model.Import{
				Raw: m[2], Kind: model.Static, Line: lineNo, Names: parseBraceNames(m[1]),
			})
			continue
		}
		if m := reImportNamespace.FindStringSubmatch(line); m != nil {
			fa.Imports = append(fa.Imports, model.Import{
				Raw: m[2], Kind: model.Static, Line: lineNo, Wildcard: true,
				Names: []model.ImportedName{{Name: "*", Alias: m[1]}},
			})
			continue
		}
		if m := reImportSideEffect.FindStringSubmatch(line); m != nil {
			fa.Imports = append(fa.Imports, model.Import{Raw: m[1], Kind: model.SideEffect, Line: lineNo})
			continue
		}
		if m := reRequire.FindStringSubmatch(line); m != nil {
			names := namesFromRequireBinding(m[1])
			fa.Imports = append(fa.Imports, model.Import{Raw: m[2], Kind: model.Static, Line: lineNo, Names: names})
			continue
		}
		if m := reDynamicImportLit.FindStringSubmatch(line); m != nil {
			fa.Imports = append(fa.Imports, model.Import{Raw: m[1], Kind: model.Dynamic, Line: lineNo})
		} else if m := reDynamicImportExpr.FindStringSubmatch(line); m != nil {
			fa.DynamicImports = append(fa.DynamicImports, strings.TrimSpace(m[1]))
		}

		if m := reExportNamed.FindStringSubmatch(line); m != nil {
			kind := model.Value
			if m[1] == "class" {
				kind = model.Type
			}
			fa.Exports = append(fa.Exports, model.Export{Name: m[2], Kind: kind, Line: lineNo, Visibility: model.Public})
		}
		if m := reExportList.FindStringSubmatch(line); m != nil {
			for _, n := range parseBraceNames(m[1]) {
				name := n.Name
				if n.Alias != "" {
					name = n.Alias
				}
				fa.Exports = append(fa.Exports, model.Export{
					Name: name, LocalName: n.Name, Kind: model.Value, Line: lineNo, Visibility: model.Public,
				})
			}
		}
		if m := reExportDefault.FindStringSubmatch(line); m != nil {
			fa.Exports = append(fa.Exports, model.Export{Name: "default", LocalName: m[1], Kind: model.Value, Line: lineNo, Visibility: model.Public})
		}
		// CommonJS export forms (`module.exports.x = ...`, `exports.x = ...`,
		// `module.exports = { a, b }`, `module.exports = Name`), alongside the
		// ES-module forms above — plain .js files in a mixed CJS/ESM tree use
		// these exclusively, and without recognizing them every such file
		// would look entirely dead.
		if m := reModuleExportsProp.FindStringSubmatch(line); m != nil {
			fa.Exports = append(fa.Exports, model.Export{Name: m[1], Kind: model.Value, Line: lineNo, Visibility: model.Public})
		}
		if m := reModuleExportsList.FindStringSubmatch(line); m != nil {
			for _, n := range parseBraceNames(m[1]) {
				name, local := n.Name, n.Name
				if n.Alias != "" {
					name = n.Alias
				}
				// object-literal `key: value`: the key is the exported
				// property name, the value the local binding behind it
				if key, val, ok := strings.Cut(n.Name, ":"); ok {
					name, local = strings.TrimSpace(key), strings.TrimSpace(val)
				}
				fa.Exports = append(fa.Exports, model.Export{Name: name, LocalName: local, Kind: model.Value, Line: lineNo, Visibility: model.Public})
			}
		}
		if m := reModuleExportsName.FindStringSubmatch(line); m != nil {
			fa.Exports = append(fa.Exports, model.Export{Name: "default", LocalName: m[1], Kind: model.Value, Line: lineNo, Visibility: model.Public})
		}

		for _, m := range reInvokeCall.FindAllStringSubmatch(line, -1) {
			fa.Invocations = append(fa.Invocations, model.CommandInvocation{Name: m[1], Line: lineNo})
		}
	}
	return fa, scanner.Err()
}

// parseBraceNames parses the contents of an import/export `{ ... }` brace
// list, handling `a as b` renaming.
func parseBraceNames(raw string) []model.ImportedName {
	var names []model.ImportedName
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lower := strings.ToLower(part)
		if idx := strings.Index(lower, " as "); idx >= 0 {
			names = append(names, model.ImportedName{
				Name:  strings.TrimSpace(part[:idx]),
				Alias: strings.TrimSpace(part[idx+4:]),
			})
			continue
		}
		names = append(names, model.ImportedName{Name: part})
	}
	return names
}

func namesFromRequireBinding(binding string) []model.ImportedName {
	binding = strings.TrimSpace(binding)
	if strings.HasPrefix(binding, "{") {
		return parseBraceNames(strings.Trim(binding, "{}"))
	}
	return []model.ImportedName{{Name: "default", Alias: binding}}
}
