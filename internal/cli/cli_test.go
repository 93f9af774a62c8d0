package cli_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/stencil/internal/cli"
	"github.com/aretw0/stencil/internal/logging"
	"github.com/aretw0/stencil/pkg/domain"
	"github.com/aretw0/stencil/pkg/dsl"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const libraryYAML = `
templates:
  - name: paragraph
    template: <p class="paragraph" ck-type="text"></p>
  - name: page
    template: <div class="page" ck-type="container" ck-contains="paragraph"></div>
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestResolveLibrary(t *testing.T) {
	t.Run("File is used as is", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "custom.yaml", libraryYAML)
		got, err := cli.ResolveLibrary(path)
		require.NoError(t, err)
		assert.Equal(t, path, got)
	})

	t.Run("Directory convention order", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "templates.json", `{"templates": []}`)
		want := writeFile(t, dir, "stencil.yaml", libraryYAML)
		got, err := cli.ResolveLibrary(dir)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("Empty directory", func(t *testing.T) {
		_, err := cli.ResolveLibrary(t.TempDir())
		assert.Error(t, err)
	})

	t.Run("Missing path", func(t *testing.T) {
		_, err := cli.ResolveLibrary(filepath.Join(t.TempDir(), "nope"))
		assert.Error(t, err)
	})
}

func TestDocumentRoundTrip(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "stencil.yaml", libraryYAML)
	eng, err := cli.CreateEngine(cli.Options{Library: dir}, logging.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	htmlPath := writeFile(t, dir, "doc.html", `<div class="page"><p class="paragraph">Hi</p></div>`)
	doc, err := cli.LoadDocument(ctx, eng, htmlPath)
	require.NoError(t, err)
	page := doc.Root.Child(0)
	assert.Equal(t, []string{"ck__page__placeholder", "ck__paragraph", "ck__page__placeholder"}, dsl.Types(page.Children()))

	for _, format := range []cli.Format{cli.FormatJSON, cli.FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, cli.WriteDocument(&buf, eng, doc, format))

			back, err := cli.DecodeDocument(ctx, eng, buf.Bytes(), format)
			require.NoError(t, err)
			assert.True(t, doc.Root.Equal(back.Root))
		})
	}

	var buf bytes.Buffer
	require.NoError(t, cli.WriteDocument(&buf, eng, doc, cli.FormatHTML))
	assert.Equal(t, "<div class=\"page\"><p class=\"paragraph\">Hi</p></div>\n", buf.String())
}

func TestDecodeDocument_WrapsBareNode(t *testing.T) {
	doc, err := cli.DecodeDocument(context.Background(), nil, []byte(`{"type": "ck__page"}`), cli.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, domain.RootType, doc.Root.Type)
	assert.Equal(t, "ck__page", doc.Root.Child(0).Type)

	_, err = cli.DecodeDocument(context.Background(), nil, []byte(`{`), cli.FormatJSON)
	assert.Error(t, err)
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, cli.FormatHTML, cli.FormatOf("a/b.HTM"))
	assert.Equal(t, cli.FormatYAML, cli.FormatOf("doc.yml"))
	assert.Equal(t, cli.FormatJSON, cli.FormatOf("doc.json"))
	assert.Equal(t, cli.FormatJSON, cli.FormatOf("doc"))
}

func TestParsePath(t *testing.T) {
	path, err := cli.ParsePath("0.2.10")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 10}, path)

	path, err = cli.ParsePath("")
	require.NoError(t, err)
	assert.Empty(t, path)

	for _, bad := range []string{"a", "1..2", "-1"} {
		_, err := cli.ParsePath(bad)
		assert.Error(t, err, bad)
	}
}

func TestProfile_NonTerminal(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, cli.IsTerminal(&buf))
	assert.Equal(t, termenv.Ascii, cli.Profile(&buf))
}

func TestSignalContext(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	ctx, stop := cli.SignalContext(parent)
	defer stop()

	assert.NoError(t, ctx.Err())
	cancel()
	<-ctx.Done()
	assert.True(t, cli.Interrupted(ctx.Err()))
	assert.True(t, cli.Interrupted(fmt.Errorf("pass 2: %w", ctx.Err())))
	assert.False(t, cli.Interrupted(errors.New("boom")))
}
