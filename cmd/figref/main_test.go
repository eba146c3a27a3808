package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/figref/internal/ast"
	"git.home.luguber.info/inful/figref/internal/foundation/errors"
)

const modernInput = `{"pandoc-api-version":[1,23,1],"meta":{"title":{"t":"MetaInlines","c":[{"t":"Str","c":"Doc"}]}},"blocks":[
{"t":"Para","c":[{"t":"Image","c":[["",[],[]],[{"t":"Str","c":"First"}],["a.png",""]]},{"t":"Str","c":"{#fig:a}"}]},
{"t":"Para","c":[{"t":"Str","c":"See"},{"t":"Space"},{"t":"Link","c":[["",[],[]],[{"t":"Str","c":"here"}],["#fig:a",""]]}]}
]}`

const legacyInput = `[{"unMeta":{}},[
{"t":"Para","c":[{"t":"Image","c":[[{"t":"Str","c":"Old"}],["old.png","fig:"]]},{"t":"Str","c":"{#fig:old}"}]},
{"t":"Para","c":[{"t":"Link","c":[[{"t":"Str","c":"there"}],["#fig:old",""]]}]}
]]`

type result struct {
	stdout string
	stderr string
	err    error
}

func execute(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	s := streams{stdin: strings.NewReader(stdin), stdout: &stdout, stderr: &stderr}

	var cli CLI
	err := parse(&cli, args, s, kong.Exit(func(int) {}))
	if err == nil {
		err = cli.Run(context.Background(), s)
	}
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// rawInline returns the markup of the RawInline at blocks[i].c[j].
func rawInline(t *testing.T, doc *ast.Document, i, j int) (string, string) {
	t.Helper()
	para, ok := doc.Blocks[i].(*ast.Typed)
	require.True(t, ok)
	inlines, ok := para.Content.(ast.Sequence)
	require.True(t, ok)
	raw, ok := inlines[j].(*ast.Typed)
	require.True(t, ok)
	require.Equal(t, "RawInline", raw.Kind)
	parts := raw.Content.(ast.Sequence)
	format, _ := parts[0].(ast.Scalar).Text()
	text, _ := parts[1].(ast.Scalar).Text()
	return format, text
}

func readOutput(t *testing.T, out string) *ast.Document {
	t.Helper()
	doc, err := ast.ReadDocument(strings.NewReader(out))
	require.NoError(t, err)
	return doc
}

func TestRun_HTML(t *testing.T) {
	res := execute(t, modernInput, "html")
	require.NoError(t, res.err)

	doc := readOutput(t, res.stdout)
	assert.Equal(t, ast.LayoutModern, doc.Layout)

	format, figure := rawInline(t, doc, 0, 0)
	assert.Equal(t, "html", format)
	assert.Contains(t, figure, `<figure id="fig:a">`)
	assert.Contains(t, figure, `<figcaption>Figure 1: First</figcaption>`)

	_, ref := rawInline(t, doc, 1, 2)
	assert.Equal(t, `<a href="#fig:a">Figure 1</a>`, ref)

	assert.True(t, strings.HasPrefix(res.stdout, `{"pandoc-api-version":[1,23,1],"meta":{"title":{"t":"MetaInlines","c":[{"t":"Str","c":"Doc"}]}},"blocks":`))
	assert.True(t, strings.HasSuffix(res.stdout, "\n"))
}

func TestRun_Latex(t *testing.T) {
	res := execute(t, modernInput, "latex")
	require.NoError(t, res.err)

	doc := readOutput(t, res.stdout)
	format, figure := rawInline(t, doc, 0, 0)
	assert.Equal(t, "latex", format)
	assert.Contains(t, figure, `\label{fig:a}`)
	assert.Contains(t, figure, `\caption{First}`)

	_, ref := rawInline(t, doc, 1, 2)
	assert.Equal(t, `\autoref{fig:a}`, ref)
}

func TestRun_OtherTargetPassesThrough(t *testing.T) {
	for _, args := range [][]string{{"docx"}, {}} {
		res := execute(t, modernInput, args...)
		require.NoError(t, res.err)

		want, err := ast.ReadDocument(strings.NewReader(modernInput))
		require.NoError(t, err)
		wantJSON, err := ast.Marshal(want.Node())
		require.NoError(t, err)
		assert.JSONEq(t, string(wantJSON), res.stdout)
	}
}

func TestRun_LegacyLayout(t *testing.T) {
	res := execute(t, legacyInput, "html5")
	require.NoError(t, res.err)

	doc := readOutput(t, res.stdout)
	assert.Equal(t, ast.LayoutLegacy, doc.Layout)
	assert.True(t, strings.HasPrefix(res.stdout, `[{"unMeta":{}},[`))

	_, figure := rawInline(t, doc, 0, 0)
	assert.Contains(t, figure, "Figure 1: Old")
	_, ref := rawInline(t, doc, 1, 0)
	assert.Equal(t, `<a href="#fig:old">Figure 1</a>`, ref)
}

func TestRun_FlagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "figref.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("caption_label: Plate\n"), 0o600))

	res := execute(t, modernInput, "html", "-c", cfgPath)
	require.NoError(t, res.err)
	_, ref := rawInline(t, readOutput(t, res.stdout), 1, 2)
	assert.Equal(t, `<a href="#fig:a">Plate 1</a>`, ref)

	res = execute(t, modernInput, "html", "-c", cfgPath, "--caption-label", "Abb.")
	require.NoError(t, res.err)
	_, ref = rawInline(t, readOutput(t, res.stdout), 1, 2)
	assert.Equal(t, `<a href="#fig:a">Abb. 1</a>`, ref)
}

func TestRun_InputOutputFiles(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.json")
	out := filepath.Join(dir, "out.json")
	require.NoError(t, os.WriteFile(in, []byte(modernInput), 0o600))

	res := execute(t, "", "html", "-i", in, "-o", out)
	require.NoError(t, res.err)
	assert.Empty(t, res.stdout)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	_, ref := rawInline(t, readOutput(t, string(data)), 1, 2)
	assert.Equal(t, `<a href="#fig:a">Figure 1</a>`, ref)
}

func TestRun_MetricsTextfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "figref.prom")

	res := execute(t, modernInput, "html", "--metrics-file", path)
	require.NoError(t, res.err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, `figref_figures_total{target="html"} 1`)
	assert.Contains(t, text, `figref_references_total{result="resolved",target="html"} 1`)
	assert.Contains(t, text, `figref_run_outcomes_total{outcome="success"} 1`)
	assert.Contains(t, text, `figref_pass_duration_seconds_count{pass="number_figures"} 1`)
}

func TestRun_JSONLogs(t *testing.T) {
	res := execute(t, modernInput, "html", "--log-format", "json", "-v")
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, `"msg":"Filter run complete"`)
	assert.Contains(t, res.stderr, `"figures":1`)
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name     string
		stdin    string
		args     []string
		category errors.ErrorCategory
		exitCode int
	}{
		{"invalid json", `{"blocks": [`, []string{"html"}, errors.CategoryValidation, 2},
		{"not a document", `{"t":"Para","c":[]}`, []string{"html"}, errors.CategoryValidation, 2},
		{"unknown flag", modernInput, []string{"html", "--frobnicate"}, errors.CategoryValidation, 2},
		{"bad prefix", modernInput, []string{"html", "--prefix", "fig"}, errors.CategoryConfig, 7},
		{"missing config", modernInput, []string{"html", "-c", "/nonexistent/figref.yaml"}, errors.CategoryConfig, 7},
		{"missing input", "", []string{"html", "-i", "/nonexistent/in.json"}, errors.CategoryFileSystem, 11},
		{"unwritable output", modernInput, []string{"html", "-o", "/nonexistent/dir/out.json"}, errors.CategoryFileSystem, 11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := execute(t, tt.stdin, tt.args...)
			require.Error(t, res.err)
			classified, ok := errors.AsClassified(res.err)
			require.True(t, ok, "got %v", res.err)
			assert.Equal(t, tt.category, classified.Category())
			assert.Equal(t, tt.exitCode, errors.NewCLIErrorAdapter(false, nil).ExitCodeFor(res.err))
		})
	}
}

func TestRun_Version(t *testing.T) {
	res := execute(t, "", "--version")
	assert.Contains(t, res.stdout, "figref ")
}
