// pkg/cobrax/topics/topics_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: fstest.MapFS
// PURPOSE: Test topic discovery and the help command

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

func testSource() fstest.MapFS {
	return fstest.MapFS{
		"layout.md":          {Data: []byte("# Layout\n\nWhere files go")},
		"option-dry-run.txt": {Data: []byte("Dry run preview")},
		"notes/config.txxt":  {Data: []byte("Configuration")},
		"ignore.json":        {Data: []byte("{}")},
	}
}

func TestScan(t *testing.T) {
	t.Run("default_extensions", func(t *testing.T) {
		tm := New(testSource())
		require.NoError(t, tm.Scan())

		assert.Equal(t, []string{"layout", "option-dry-run"}, tm.ListTopics())
		topic, ok := tm.GetTopic("layout")
		require.True(t, ok)
		assert.Equal(t, "layout.md", topic.FilePath)
		assert.Equal(t, "# Layout\n\nWhere files go", topic.Content)
	})

	t.Run("custom_extensions", func(t *testing.T) {
		tm := NewWithOptions(testSource(), Options{Extensions: []string{".txxt"}})
		require.NoError(t, tm.Scan())

		assert.Equal(t, []string{"config"}, tm.ListTopics())
	})
}

func TestGetTopic_FlagStyle(t *testing.T) {
	tm := New(testSource())
	require.NoError(t, tm.Scan())

	for _, name := range []string{"--dry-run", "dry-run", "option-dry-run"} {
		topic, ok := tm.GetTopic(name)
		require.True(t, ok, name)
		assert.Equal(t, "Dry run preview", topic.Content)
	}
	_, ok := tm.GetTopic("missing")
	assert.False(t, ok)
}

func TestGlamourRenderer_PassesThroughText(t *testing.T) {
	r := NewGlamourRenderer()
	assert.Equal(t, "plain", r.Render("plain", ".txt"))
}

func TestInitialize_HelpCommand(t *testing.T) {
	root := &cobra.Command{Use: "app", Run: func(cmd *cobra.Command, args []string) {}}
	root.AddCommand(&cobra.Command{Use: "sub", Short: "A subcommand", Run: func(cmd *cobra.Command, args []string) {}})
	require.NoError(t, Initialize(root, testSource()))

	run := func(args ...string) string {
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetArgs(args)
		require.NoError(t, root.Execute())
		return out.String()
	}

	list := run("help", "topics")
	assert.Contains(t, list, "General topics:\n  layout")
	assert.Contains(t, list, "Option topics:\n  --dry-run")
	assert.True(t, strings.HasSuffix(list, "Use 'app help <topic>' to read about a specific topic.\n"))

	assert.Equal(t, "Dry run preview", run("help", "dry-run"))
}
