package extractor

import (
	"testing"

	"github.com/1homsi/loctree/internal/model"
)

// Plain testing-package, table-driven style — kept distinct from the
// testify-based tests elsewhere in this package.
func TestRustAnalyzeUseDecls(t *testing.T) {
	cases := []struct {
		name     string
		src      string
		wantRaw  string
		wantKind model.ImportKind
	}{
		{
			name:     "plain use",
			src:      "use crate::util::helper;\n",
			wantRaw:  "crate::util::helper",
			wantKind: model.Static,
		},
		{
			name:     "pub use is a re-export",
			src:      "pub use crate::util::helper;\n",
			wantRaw:  "crate::util::helper",
			wantKind: model.ReExport,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			fa, err := NewRust().Analyze([]byte(tc.src), "lib.rs")
			if err != nil {
				t.Fatalf("Analyze() error = %v", err)
			}
			if len(fa.Imports) != 1 {
				t.Fatalf("got %d imports, want 1", len(fa.Imports))
			}
			if fa.Imports[0].Kind != tc.wantKind {
				t.Errorf("kind = %v, want %v", fa.Imports[0].Kind, tc.wantKind)
			}
			if fa.Imports[0].Raw != tc.wantRaw {
				t.Errorf("raw = %q, want %q", fa.Imports[0].Raw, tc.wantRaw)
			}
		})
	}
}

func TestRustAnalyzeModDecl(t *testing.T) {
	fa, err := NewRust().Analyze([]byte("mod widgets;\n"), "lib.rs")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if len(fa.Imports) != 1 || fa.Imports[0].Kind != model.ModDecl {
		t.Fatalf("mod decl not recognized: %+v", fa.Imports)
	}
	if fa.Imports[0].Raw != "widgets" {
		t.Errorf("raw = %q, want %q", fa.Imports[0].Raw, "widgets")
	}
}

func TestRustAnalyzeCommandAttribute(t *testing.T) {
	src := "#[tauri::command]\npub fn save_user_data() {}\n"
	fa, err := NewRust().Analyze([]byte(src), "commands.rs")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if len(fa.Commands) != 1 {
		t.Fatalf("got %d commands, want 1", len(fa.Commands))
	}
	if fa.Commands[0].Symbol != "save_user_data" {
		t.Errorf("symbol = %q, want save_user_data", fa.Commands[0].Symbol)
	}
}

func TestRustAnalyzeCommandRenameAll(t *testing.T) {
	src := "#[command(rename_all = \"camelCase\")]\npub fn load_settings() {}\n"
	fa, err := NewRust().Analyze([]byte(src), "commands.rs")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if len(fa.Commands) != 1 || fa.Commands[0].Convention != model.CamelCase {
		t.Fatalf("expected camelCase convention, got %+v", fa.Commands)
	}
}

func TestRustAnalyzePublicFnExport(t *testing.T) {
	fa, err := NewRust().Analyze([]byte("pub fn helper() {}\n"), "lib.rs")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if len(fa.Exports) != 1 || fa.Exports[0].Name != "helper" {
		t.Fatalf("exports = %+v", fa.Exports)
	}
}
