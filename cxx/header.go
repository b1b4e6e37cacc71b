package cxx

// Header aggregates everything declared by a single header file.
type Header struct {
	File string `json:"file,omitempty"`

	Includes        []Include     `json:"includes,omitempty"`
	Defines         []Define      `json:"defines,omitempty"`
	Pragmas         []string      `json:"pragmas,omitempty"`
	UsingNamespaces []string      `json:"using_namespaces,omitempty"`
	Classes         []*ClassDecl  `json:"classes,omitempty"`
	Enums           []EnumDecl    `json:"enums,omitempty"`
	Functions       []Function    `json:"functions,omitempty"`
	Variables       []Variable    `json:"variables,omitempty"`
	Typedefs        []Typedef     `json:"typedefs,omitempty"`
	Usings          []UsingAlias  `json:"usings,omitempty"`
	ForwardDecls    []ForwardDecl `json:"forward_decls,omitempty"`
}

// FindClass returns the first top-level class with the given name, or nil.
func (h *Header) FindClass(name string) *ClassDecl {
	for _, c := range h.Classes {
		if c.Name == name {
			return c
		}
	}
	return nil
}
