package cxx

import "strings"

type AccessLevel string

const (
	AccessPublic    AccessLevel = "public"
	AccessProtected AccessLevel = "protected"
	AccessPrivate   AccessLevel = "private"
)

type ClassKind string

const (
	ClassKindClass  ClassKind = "class"
	ClassKindStruct ClassKind = "struct"
	ClassKindUnion  ClassKind = "union"
)

// DefaultAccess returns the member access level a class body starts with
// when no access specifier has been seen yet.
func (k ClassKind) DefaultAccess() AccessLevel {
	if k == ClassKindClass {
		return AccessPrivate
	}
	return AccessPublic
}

// NamespaceDecl holds the segments of a namespace declaration. A nested
// declaration such as `namespace a::b` produces Names == ["a", "b"]; an
// anonymous namespace produces a single empty segment.
type NamespaceDecl struct {
	Names  []string `json:"names"`
	Inline bool     `json:"inline,omitempty"`
}

func (n *NamespaceDecl) Join() string {
	return strings.Join(n.Names, "::")
}

type BaseClass struct {
	Name    string      `json:"name"`
	Access  AccessLevel `json:"access"`
	Virtual bool        `json:"virtual,omitempty"`
}

type ClassDecl struct {
	Kind           ClassKind   `json:"kind"`
	Name           string      `json:"name"`
	Namespace      string      `json:"namespace,omitempty"`
	Bases          []BaseClass `json:"bases,omitempty"`
	TemplateParams string      `json:"template_params,omitempty"`
	Access         AccessLevel `json:"access,omitempty"`
	Final          bool        `json:"final,omitempty"`

	Fields   []Field      `json:"fields,omitempty"`
	Methods  []Method     `json:"methods,omitempty"`
	Classes  []*ClassDecl `json:"classes,omitempty"`
	Enums    []EnumDecl   `json:"enums,omitempty"`
	Typedefs []Typedef    `json:"typedefs,omitempty"`
	Usings   []UsingAlias `json:"usings,omitempty"`
}

type Field struct {
	Name      string      `json:"name"`
	Type      string      `json:"type"`
	Access    AccessLevel `json:"access"`
	Static    bool        `json:"static,omitempty"`
	Mutable   bool        `json:"mutable,omitempty"`
	Constexpr bool        `json:"constexpr,omitempty"`
	Bits      string      `json:"bits,omitempty"`
	Value     string      `json:"value,omitempty"`
}

type Parameter struct {
	Name string `json:"name,omitempty"`
	Type string `json:"type"`
}

type Method struct {
	Name         string      `json:"name"`
	ReturnType   string      `json:"return_type,omitempty"`
	Parameters   []Parameter `json:"parameters,omitempty"`
	Access       AccessLevel `json:"access"`
	Static       bool        `json:"static,omitempty"`
	Inline       bool        `json:"inline,omitempty"`
	Constexpr    bool        `json:"constexpr,omitempty"`
	Virtual      bool        `json:"virtual,omitempty"`
	Explicit     bool        `json:"explicit,omitempty"`
	Override     bool        `json:"override,omitempty"`
	Final        bool        `json:"final,omitempty"`
	Const        bool        `json:"const,omitempty"`
	Pure         bool        `json:"pure,omitempty"`
	Default      bool        `json:"default,omitempty"`
	Deleted      bool        `json:"deleted,omitempty"`
	Noexcept     bool        `json:"noexcept,omitempty"`
	Constructor  bool        `json:"constructor,omitempty"`
	Destructor   bool        `json:"destructor,omitempty"`
	HasBody      bool        `json:"has_body,omitempty"`
	TemplateArgs string      `json:"template_args,omitempty"`
}

type Enumerator struct {
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
}

type EnumDecl struct {
	Name    string       `json:"name,omitempty"`
	Scoped  bool         `json:"scoped,omitempty"`
	Base    string       `json:"base,omitempty"`
	Access  AccessLevel  `json:"access,omitempty"`
	Values  []Enumerator `json:"values,omitempty"`
	Typedef bool         `json:"typedef,omitempty"`
}

type Typedef struct {
	Name   string      `json:"name"`
	Type   string      `json:"type"`
	Access AccessLevel `json:"access,omitempty"`
}

type UsingAlias struct {
	Name   string      `json:"name"`
	Type   string      `json:"type"`
	Access AccessLevel `json:"access,omitempty"`
}

type Variable struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Namespace string `json:"namespace,omitempty"`
	Linkage   string `json:"linkage,omitempty"`
	Static    bool   `json:"static,omitempty"`
	Extern    bool   `json:"extern,omitempty"`
	Constexpr bool   `json:"constexpr,omitempty"`
	Value     string `json:"value,omitempty"`
}

type Function struct {
	Name       string      `json:"name"`
	ReturnType string      `json:"return_type,omitempty"`
	Parameters []Parameter `json:"parameters,omitempty"`
	Namespace  string      `json:"namespace,omitempty"`
	Linkage    string      `json:"linkage,omitempty"`
	Static     bool        `json:"static,omitempty"`
	Inline     bool        `json:"inline,omitempty"`
	Constexpr  bool        `json:"constexpr,omitempty"`
	Noexcept   bool        `json:"noexcept,omitempty"`
	HasBody    bool        `json:"has_body,omitempty"`
}

type ForwardDecl struct {
	Kind      ClassKind `json:"kind"`
	Name      string    `json:"name"`
	Namespace string    `json:"namespace,omitempty"`
}

type Include struct {
	Filename string `json:"filename"`
	System   bool   `json:"system,omitempty"`
}

type Define struct {
	Content string `json:"content"`
}
