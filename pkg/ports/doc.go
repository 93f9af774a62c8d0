/*
Package ports defines the driven ports (interfaces) for the stencil engine.

These interfaces decouple the engine from the sources of its template library.

# Key Interfaces

  - LibraryLoader: Responsible for loading Template definitions (e.g., from YAML/JSON files or memory).
*/
package ports
