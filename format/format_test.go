package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/cxxtool/cxxhdr/cxx"
)

func sampleHeader() *cxx.Header {
	return &cxx.Header{
		Includes:     []cxx.Include{{Filename: "cstdint", System: true}},
		ForwardDecls: []cxx.ForwardDecl{{Kind: cxx.ClassKindClass, Name: "Renderer", Namespace: "ui"}},
		Classes: []*cxx.ClassDecl{
			{
				Kind:      cxx.ClassKindClass,
				Name:      "Widget",
				Namespace: "ui",
				Bases:     []cxx.BaseClass{{Name: "Object", Access: cxx.AccessPublic}},
				Fields: []cxx.Field{
					{Name: "id_", Type: "uint32_t", Access: cxx.AccessPrivate},
				},
				Methods: []cxx.Method{
					{
						Name:       "draw",
						ReturnType: "void",
						Access:     cxx.AccessPublic,
						Parameters: []cxx.Parameter{{Name: "r", Type: "Renderer&"}},
					},
				},
			},
		},
		Functions: []cxx.Function{
			{Name: "widgetCount", ReturnType: "int", Namespace: "ui"},
		},
	}
}

func TestLineEncoder(t *testing.T) {
	var buf bytes.Buffer
	if err := NewLineEncoder(&buf).Encode(sampleHeader()); err != nil {
		t.Fatalf("encode: %v", err)
	}

	expected := []string{
		"include\tcstdint",
		"forward\tui::Renderer\tclass",
		"class\tui::Widget\tObject",
		"field\tui::Widget::id_\tuint32_t\tprivate",
		"method\tui::Widget::draw\tvoid\t(Renderer&)\tpublic",
		"function\tui::widgetCount\tint\t()",
	}
	got := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(got) != len(expected) {
		t.Fatalf("got %d lines %q, want %d", len(got), got, len(expected))
	}
	for i := range got {
		if got[i] != expected[i] {
			t.Errorf("line %d: got %q, want %q", i, got[i], expected[i])
		}
	}
}

func TestOutlineEncoder(t *testing.T) {
	var buf bytes.Buffer
	if err := NewOutlineEncoder(&buf).Encode(sampleHeader()); err != nil {
		t.Fatalf("encode: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"class ui::Widget",
		"  private: uint32_t id_",
		"  public: void draw(Renderer& r)",
		"int widgetCount()",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestJSONEncoder(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONEncoder(&buf).WithIndent("").Encode(sampleHeader()); err != nil {
		t.Fatalf("encode: %v", err)
	}

	var decoded cxx.Header
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded.Classes) != 1 || decoded.Classes[0].Name != "Widget" {
		t.Errorf("round trip lost the class: %+v", decoded.Classes)
	}

	compact := buf.String()
	if strings.Contains(strings.TrimSuffix(compact, "\n"), "\n") {
		t.Error("compact output should be a single line")
	}
}
