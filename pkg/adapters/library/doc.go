// Package library provides LibraryLoader adapters: an in-memory loader and a
// loader for YAML or JSON library files.
//
// A library file holds a "templates" list. Each entry is either an inline
// template definition or the path of another library file to import, relative
// to the importing file:
//
//	templates:
//	  - common.yaml
//	  - name: quote
//	    label: Quote
//	    template: <blockquote class="quote"><p ck-type="text"></p></blockquote>
//
// Later definitions shadow earlier ones with the same name.
package library
