package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cliEnv struct {
	t  *testing.T
	db string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Setenv("TRAILHEAD_LOG_LEVEL", "error")
	return &cliEnv{t: t, db: filepath.Join(t.TempDir(), "cli.db")}
}

func (e *cliEnv) run(args ...string) (string, error) {
	e.t.Helper()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--db", e.db}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func (e *cliEnv) mustRun(args ...string) string {
	e.t.Helper()
	out, err := e.run(args...)
	require.NoError(e.t, err, out)
	return out
}

func TestCLI_CreateAndTree(t *testing.T) {
	e := newCLIEnv(t)

	out := e.mustRun("create", "Website", "--parent", "Projects")
	assert.True(t, strings.HasPrefix(out, "Created Projects → Website\n"), out)

	e.mustRun("create", "Launch", "-p", "Website", "--temp")
	e.mustRun("create", "Scratch", "--temp")

	tree := e.mustRun("tree", "--filter", "projects")
	assert.Equal(t, "  Projects\n    Website\n      Launch\n", tree)

	temp := e.mustRun("tree", "-f", "temp")
	// only temp roots start the TEMP tree
	assert.Equal(t, "  Scratch\n", temp)

	_, err := e.run("tree", "--filter", "bogus")
	assert.Error(t, err)
}

func TestCLI_Relationships(t *testing.T) {
	e := newCLIEnv(t)
	e.mustRun("create", "A")
	e.mustRun("create", "B", "-p", "A")

	_, err := e.run("link", "B", "A")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")

	e.mustRun("create", "C")
	e.mustRun("link", "C", "B")

	show := e.mustRun("show", "B")
	assert.Contains(t, show, "A → B")
	assert.Contains(t, show, "parents:")

	e.mustRun("move", "B")
	tree := e.mustRun("tree")
	assert.Contains(t, tree, "  B\n")

	_, err = e.run("delete", "A")
	assert.NoError(t, err)
}

func TestCLI_DeleteCascade(t *testing.T) {
	e := newCLIEnv(t)
	e.mustRun("create", "Parent")
	e.mustRun("create", "Child", "-p", "Parent")

	_, err := e.run("delete", "Parent")
	require.Error(t, err)

	out := e.mustRun("delete", "Parent", "--cascade")
	assert.Equal(t, "Deleted Parent and 1 descendant(s)\n", out)
}

func TestCLI_History(t *testing.T) {
	e := newCLIEnv(t)
	e.mustRun("create", "Alpha")
	e.mustRun("create", "Beta")

	assert.Equal(t, "No current node\n", e.mustRun("where"))

	assert.Equal(t, "Now on Alpha\n", e.mustRun("visit", "Alpha"))
	e.mustRun("visit", "beta")

	where := e.mustRun("where")
	assert.Contains(t, where, "current:  Beta")
	assert.Contains(t, where, "previous: Alpha")

	assert.Equal(t, "Now on Alpha\n", e.mustRun("back"))

	history := e.mustRun("history", "-n", "2")
	lines := strings.Split(strings.TrimSpace(history), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], "Alpha"), lines[0])
	assert.True(t, strings.HasSuffix(lines[1], "Beta"), lines[1])

	e.mustRun("delete", "Alpha")
	assert.Contains(t, e.mustRun("history", "-n", "1"), "(deleted)")
}

func TestCLI_Contexts(t *testing.T) {
	e := newCLIEnv(t)
	e.mustRun("create", "Website", "-p", "Projects")

	_, err := e.run("context", "add", "Website")
	assert.Error(t, err)

	e.mustRun("context", "create", "Focus")
	assert.Equal(t, "Using context Focus\n", e.mustRun("context", "use", "Focus"))
	assert.Equal(t, "Added Website to Focus\n", e.mustRun("context", "add", "Website"))
	assert.Equal(t, "* Focus (1 nodes)\n", e.mustRun("context", "list"))

	assert.Equal(t, "*   Website\n", e.mustRun("tree", "-f", "context"))
	assert.Contains(t, e.mustRun("tree", "-f", "projects"), "*   Website\n")

	e.mustRun("context", "remove", "Website", "--context", "Focus")
	assert.Equal(t, "No nodes\n", e.mustRun("tree", "-f", "context"))

	e.mustRun("context", "clear")
	assert.Equal(t, "  Focus (0 nodes)\n", e.mustRun("context", "list"))
}

func TestCLI_Search(t *testing.T) {
	e := newCLIEnv(t)
	e.mustRun("create", "Website redesign")
	e.mustRun("create", "Groceries")

	out := e.mustRun("search", "web")
	assert.Contains(t, out, "Website redesign")
	assert.NotContains(t, out, "Groceries")

	assert.Equal(t, "No results found\n", e.mustRun("search", "zzzz"))
}
