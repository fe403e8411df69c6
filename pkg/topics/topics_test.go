package topics

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"help/dry-run.txt":       {Data: []byte("Information about dry-run mode")},
		"help/architecture.md":   {Data: []byte("# Architecture\n\nDetails")},
		"help/option-verbose.md": {Data: []byte("More logs")},
		"help/notes.json":        {Data: []byte("{}")},
		"help/nested/deep.md":    {Data: []byte("deep")},
		"other/outside.md":       {Data: []byte("not under help")},
	}
}

func TestLoadReadsTextAndMarkdown(t *testing.T) {
	m, err := Load(testFS(), "help", Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"architecture", "deep", "dry-run", "option-verbose"}, m.List())

	topic, ok := m.Get("dry-run")
	require.True(t, ok)
	assert.Equal(t, ".txt", topic.Format)
	assert.Equal(t, "Information about dry-run mode", topic.Content)

	_, ok = m.Get("notes")
	assert.False(t, ok)
}

func TestGetResolvesFlagStyleNames(t *testing.T) {
	m, err := Load(testFS(), "help", Options{})
	require.NoError(t, err)

	for _, name := range []string{"--verbose", "-verbose", "verbose", "option-verbose"} {
		topic, ok := m.Get(name)
		require.True(t, ok, name)
		assert.Equal(t, "option-verbose", topic.Name)
	}
	for _, name := range []string{"--dry-run", "dry-run"} {
		_, ok := m.Get(name)
		assert.True(t, ok, name)
	}
}

func TestEmbeddedTopics(t *testing.T) {
	m, err := New(Options{})
	require.NoError(t, err)

	for _, name := range []string{"config", "folding", "ignore", "secrets", "--dry-run", "--format"} {
		_, ok := m.Get(name)
		assert.True(t, ok, name)
	}
}

func TestWriteIndexGroupsOptions(t *testing.T) {
	m, err := Load(testFS(), "help", Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	m.WriteIndex(&buf, "slinky")

	out := buf.String()
	assert.Contains(t, out, "General topics:\n  architecture\n  deep\n  dry-run\n")
	assert.Contains(t, out, "Option topics:\n  --verbose\n")
	assert.Contains(t, out, "slinky help <topic>")
}

func TestWriteIndexEmpty(t *testing.T) {
	m, err := Load(fstest.MapFS{"help/x.json": {Data: []byte("{}")}}, "help", Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	m.WriteIndex(&buf, "slinky")
	assert.Equal(t, "No help topics available.\n", buf.String())
}

type upperRenderer struct{}

func (upperRenderer) Render(content, format string) string {
	return strings.ToUpper(content)
}

func TestInstallServesTopics(t *testing.T) {
	m, err := Load(testFS(), "help", Options{Renderer: upperRenderer{}})
	require.NoError(t, err)

	root := &cobra.Command{Use: "slinky", Run: func(*cobra.Command, []string) {}}
	root.AddCommand(&cobra.Command{Use: "link", Short: "Link packages", Run: func(*cobra.Command, []string) {}})
	m.Install(root)

	run := func(args ...string) string {
		var buf bytes.Buffer
		root.SetOut(&buf)
		root.SetErr(&buf)
		root.SetArgs(args)
		require.NoError(t, root.Execute())
		return buf.String()
	}

	assert.Equal(t, "MORE LOGS", run("help", "--verbose"))
	assert.Contains(t, run("help", "topics"), "architecture")
	assert.Contains(t, run("help", "link"), "Link packages")
}

func TestGlamourRendererPassesThroughText(t *testing.T) {
	r := NewGlamourRenderer()
	assert.Equal(t, "plain", r.Render("plain", ".txt"))

	r = &GlamourRenderer{Style: "notty", Width: 40}
	out := r.Render("# Title\n\nbody", ".md")
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "body")
}
