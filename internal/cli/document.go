package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aretw0/stencil"
	"github.com/aretw0/stencil/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Format names a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatHTML Format = "html"
)

// FormatOf infers the document format from a file extension.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return FormatHTML
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// LoadDocument reads a document file. HTML is upcast through the engine and
// comes back converged; JSON and YAML are decoded as is.
func LoadDocument(ctx context.Context, eng *stencil.Engine, path string) (*domain.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeDocument(ctx, eng, data, FormatOf(path))
}

// DecodeDocument decodes data in the given format.
func DecodeDocument(ctx context.Context, eng *stencil.Engine, data []byte, format Format) (*domain.Document, error) {
	var d domain.NodeData
	switch format {
	case FormatHTML:
		return eng.Import(ctx, string(data))
	case FormatYAML:
		if err := yaml.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("failed to parse document YAML: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("failed to parse document JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported document format: %q", format)
	}

	n := d.Node()
	if n.Type == domain.RootType {
		return &domain.Document{Root: n}, nil
	}
	return domain.NewDocument(n), nil
}

// WriteDocument encodes doc to w. HTML goes through the engine's export.
func WriteDocument(w io.Writer, eng *stencil.Engine, doc *domain.Document, format Format) error {
	switch format {
	case FormatHTML:
		out, err := eng.Export(doc)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, out)
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc.Root.Data()); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc.Root.Data())
	}
	return fmt.Errorf("unsupported document format: %q", format)
}

// ParsePath parses a dotted child index path such as "0.2.1".
// The empty string designates the document root.
func ParsePath(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ".")
	path := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("invalid path segment %q in %q", p, s)
		}
		path[i] = v
	}
	return path, nil
}
