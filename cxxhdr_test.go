package cxxhdr

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cxxtool/cxxhdr/cxx"
)

const widgetHeader = `#pragma once
#include <cstdint>
#include <string>
#include "geometry.h"

#define WIDGET_API_VERSION 3

namespace ui {

class Renderer;

enum class Align : uint8_t { Left, Center, Right };

class Widget {
public:
	using Id = uint32_t;

	Widget(Id id, const std::string& name);
	virtual ~Widget() = default;

	virtual void draw(Renderer& r) const = 0;
	Id id() const noexcept { return id_; }

	static constexpr int kMaxChildren = 16;

	struct Margins {
		int top;
		int bottom;
	};

private:
	Id id_;
	std::string name_;
	mutable bool dirty_;
};

typedef Widget* WidgetPtr;

int widgetCount();

} // namespace ui

extern "C" void cxxhdr_init(void);
`

func parseString(t *testing.T, input string) *cxx.Header {
	t.Helper()
	header, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	return header
}

func TestParseHeaderModel(t *testing.T) {
	header := parseString(t, widgetHeader)

	assert.Equal(t, []string{"once"}, header.Pragmas)
	require.Len(t, header.Includes, 3)
	assert.True(t, header.Includes[0].System)
	assert.Equal(t, "cstdint", header.Includes[0].Filename)
	assert.False(t, header.Includes[2].System)
	assert.Equal(t, "geometry.h", header.Includes[2].Filename)

	require.Len(t, header.Defines, 1)
	assert.Equal(t, "WIDGET_API_VERSION 3", header.Defines[0].Content)

	require.Len(t, header.ForwardDecls, 1)
	assert.Equal(t, "Renderer", header.ForwardDecls[0].Name)
	assert.Equal(t, "ui", header.ForwardDecls[0].Namespace)

	require.Len(t, header.Enums, 1)
	align := header.Enums[0]
	assert.Equal(t, "Align", align.Name)
	assert.True(t, align.Scoped)
	assert.Equal(t, "uint8_t", align.Base)
	require.Len(t, align.Values, 3)
	assert.Equal(t, "Left", align.Values[0].Name)

	require.Len(t, header.Typedefs, 1)
	assert.Equal(t, "WidgetPtr", header.Typedefs[0].Name)
	assert.Equal(t, "Widget*", header.Typedefs[0].Type)

	require.Len(t, header.Functions, 2)
	assert.Equal(t, "widgetCount", header.Functions[0].Name)
	assert.Equal(t, "cxxhdr_init", header.Functions[1].Name)
	assert.Equal(t, "C", header.Functions[1].Linkage)
}

func TestParseClassDetails(t *testing.T) {
	header := parseString(t, widgetHeader)

	widget := header.FindClass("Widget")
	require.NotNil(t, widget)
	assert.Equal(t, cxx.ClassKindClass, widget.Kind)
	assert.Equal(t, "ui", widget.Namespace)

	require.Len(t, widget.Usings, 1)
	assert.Equal(t, "Id", widget.Usings[0].Name)
	assert.Equal(t, cxx.AccessPublic, widget.Usings[0].Access)

	require.Len(t, widget.Classes, 1)
	margins := widget.Classes[0]
	assert.Equal(t, "Margins", margins.Name)
	assert.Equal(t, cxx.ClassKindStruct, margins.Kind)
	require.Len(t, margins.Fields, 2)

	require.Len(t, widget.Methods, 4)
	ctor := widget.Methods[0]
	assert.True(t, ctor.Constructor)
	assert.Equal(t, cxx.AccessPublic, ctor.Access)
	require.Len(t, ctor.Parameters, 2)
	assert.Equal(t, "Id", ctor.Parameters[0].Type)
	assert.Equal(t, "id", ctor.Parameters[0].Name)

	dtor := widget.Methods[1]
	assert.True(t, dtor.Destructor)
	assert.True(t, dtor.Virtual)
	assert.True(t, dtor.Default)

	draw := widget.Methods[2]
	assert.True(t, draw.Pure)
	assert.True(t, draw.Const)

	id := widget.Methods[3]
	assert.True(t, id.HasBody)
	assert.True(t, id.Noexcept)
	assert.Equal(t, "Id", id.ReturnType)

	var fieldNames []string
	for _, f := range widget.Fields {
		fieldNames = append(fieldNames, f.Name)
	}
	assert.Equal(t, []string{"kMaxChildren", "id_", "name_", "dirty_"}, fieldNames)

	kMax := widget.Fields[0]
	assert.True(t, kMax.Static)
	assert.True(t, kMax.Constexpr)
	assert.Equal(t, "16", kMax.Value)
	assert.Equal(t, cxx.AccessPublic, kMax.Access)

	dirty := widget.Fields[3]
	assert.True(t, dirty.Mutable)
	assert.Equal(t, cxx.AccessPrivate, dirty.Access)
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "widget.h")
	require.NoError(t, os.WriteFile(path, []byte(widgetHeader), 0o644))

	header, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, header.File)
	assert.NotNil(t, header.FindClass("Widget"))
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "absent.h"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read header")
}

func TestParseError(t *testing.T) {
	_, err := Parse(strings.NewReader("class Broken {"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unterminated class scope")
}

func TestNestedNamespaces(t *testing.T) {
	input := `namespace a {
namespace b {
class Deep {};
}
class Shallow {};
}`
	header := parseString(t, input)

	deep := header.FindClass("Deep")
	require.NotNil(t, deep)
	assert.Equal(t, "a::b", deep.Namespace)

	shallow := header.FindClass("Shallow")
	require.NotNil(t, shallow)
	assert.Equal(t, "a", shallow.Namespace)
}
