package extractor

import (
	"bufio"
	"regexp"
	"strings"

	"github.com/1homsi/loctree/internal/model"
)

// RustVersion is bumped whenever this extractor's output shape changes;
// a mismatch against a cached snapshot entry forces re-extraction of the
// file (spec §4.1/§4.4).
const RustVersion = 1

// rust implements Extractor for the systems-language tag: `use` paths
// (including grouped `{a, b as c}`), `mod` declarations (ModDecl edges),
// `pub use` (ReExport), and `#[command(...)]`-style attribute command
// decorations, modeled on Tauri's `#[tauri::command]` convention.
type rust struct{}

// NewRust returns the systems-language extractor.
func NewRust() Extractor { return &rust{} }

func (r *rust) Language() model.Language { return model.LangRust }
func (r *rust) Version() int             { return RustVersion }

var (
	reRustUse      = regexp.MustCompile(`^\s*(pub(?:\([^)]*\))?\s+)?use\s+([A-Za-z0-9_:]+(?:::\{[^}]*\})?|[A-Za-z0-9_:]+::\*)\s*;`)
	reRustModDecl  = regexp.MustCompile(`^\s*(pub\s+)?mod\s+(\w+)\s*;`)
	reRustFn       = regexp.MustCompile(`^\s*(pub(?:\([^)]*\))?\s+)?(?:async\s+)?fn\s+(\w+)`)
	reRustType     = regexp.MustCompile(`^\s*(pub(?:\([^)]*\))?\s+)?(struct|enum|trait|type|const|static)\s+(\w+)`)
	reRustAttrLine = regexp.MustCompile(`^\s*#\[`)
	reRustCmdAttr  = regexp.MustCompile(`command(?:\(([^)]*)\))?`)
	reRustRename   = regexp.MustCompile(`rename\s*=\s*"([^"]+)"`)
	reRustRenameAll = regexp.MustCompile(`rename_all\s*=\s*"([^"]+)"`)
)

func (r *rust) Analyze(content []byte, relPath string) (model.FileAnalysis, error) {
	fa := model.FileAnalysis{}
	scanner := bufio.NewScanner(strings.NewReader(string(content)))
	scanner.Buffer(make([]byte, 1<<20), 1<<20)

	var pendingCommand *model.CommandDecl
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "//") {
			continue
		}

		if reRustAttrLine.MatchString(line) && strings.Contains(line, "command") {
			decl := parseRustCommandAttr(line, lineNo)
			pendingCommand = &decl
			continue
		}
		if reRustAttrLine.MatchString(line) {
			continue // unrelated attribute (#[derive], #[cfg], ...); keep pendingCommand alive
		}

		if m := reRustModDecl.FindStringSubmatch(line); m != nil {
			fa.Imports = append(fa.Imports, model.Import{
				Raw:  m[2],
				Kind: model.ModDecl,
				Line: lineNo,
				Names: []model.ImportedName{{Name: m[2]}},
			})
			continue
		}

		if m := reRustUse.FindStringSubmatch(line); m != nil {
			isPub := m[1] != ""
			path := m[2]
			base, names, wildcard := splitRustUsePath(path)
			kind := model.Static
			if isPub {
				kind = model.ReExport
			}
			fa.Imports = append(fa.Imports, model.Import{
				Raw:      path,
				Kind:     kind,
				Line:     lineNo,
				Names:    names,
				Wildcard: wildcard,
			})
			_ = base
			continue
		}

		if m := reRustFn.FindStringSubmatch(line); m != nil {
			isPub := m[1] != ""
			name := m[2]
			if pendingCommand != nil {
				decl := *pendingCommand
				decl.Symbol = name
				fa.Commands = append(fa.Commands, decl)
				// Command-decorated symbols are exempt from plain dead-export
				// reasoning (spec §4.5); still record an export so query/
				// symbol-index lookups find it.
				fa.Exports = append(fa.Exports, model.Export{
					Name: name, Kind: model.Command, Line: lineNo, Visibility: model.Public,
				})
				pendingCommand = nil
				continue
			}
			if isPub {
				fa.Exports = append(fa.Exports, model.Export{
					Name: name, Kind: model.Value, Line: lineNo, Visibility: model.Public,
				})
			}
			continue
		}

		if m := reRustType.FindStringSubmatch(line); m != nil {
			isPub := m[1] != ""
			kw, name := m[2], m[3]
			pendingCommand = nil
			if !isPub {
				continue
			}
			k := model.Value
			if kw == "struct" || kw == "enum" || kw == "trait" || kw == "type" {
				k = model.Type
			}
			fa.Exports = append(fa.Exports, model.Export{Name: name, Kind: k, Line: lineNo, Visibility: model.Public})
			continue
		}

		pendingCommand = nil
	}
	return fa, scanner.Err()
}

func parseRustCommandAttr(line string, lineNo int) model.CommandDecl {
	decl := model.CommandDecl{Line: lineNo}
	m := reRustCmdAttr.FindStringSubmatch(line)
	if m == nil || m[1] == "" {
		return decl
	}
	args := m[1]
	if rm := reRustRename.FindStringSubmatch(args); rm != nil {
		decl.Rename = rm[1]
		return decl
	}
	if rm := reRustRenameAll.FindStringSubmatch(args); rm != nil {
		switch rm[1] {
		case "camelCase":
			decl.Convention = model.CamelCase
		case "PascalCase":
			decl.Convention = model.PascalCase
		case "snake_case":
			decl.Convention = model.SnakeCase
		}
	}
	return decl
}

// splitRustUsePath splits a `use` path into its base module path and the
// imported names: `a::b::{c, d as e}` -> ("a::b", [c, d(alias e)]);
// `a::b::c` -> ("a::b", [c]); `a::b::*` -> ("a::b", nil, wildcard=true).
func splitRustUsePath(path string) (base string, names []model.ImportedName, wildcard bool) {
	if strings.HasSuffix(path, "::*") {
		return strings.TrimSuffix(path, "::*"), nil, true
	}
	if idx := strings.Index(path, "::{"); idx >= 0 {
		base = path[:idx]
		inner := strings.TrimSuffix(path[idx+3:], "}")
		for _, part := range strings.Split(inner, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if name, alias, found := strings.Cut(part, " as "); found {
				names = append(names, model.ImportedName{Name: strings.TrimSpace(name), Alias: strings.TrimSpace(alias)})
			} else {
				names = append(names, model.ImportedName{Name: part})
			}
		}
		return base, names, false
	}
	idx := strings.LastIndex(path, "::")
	if idx < 0 {
		return "", []model.ImportedName{{Name: path}}, false
	}
	return path[:idx], []model.ImportedName{{Name: path[idx+2:]}}, false
}
