package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/oneconcern/wit/pkg/model"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRoot = "/work/project"

var commitLine = regexp.MustCompile(`^\[(\S+) ([a-f0-9]{40})\] (.*)$`)

func setupCLI(t *testing.T) (afero.Fs, *ExitMocks) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(testRoot, 0o755))
	exitMocks := NewExitMocks()

	savedFs, savedWd := appFs, getwd
	savedFatalln, savedFatalf, savedExit := logFatalln, logFatalf, osExit
	t.Cleanup(func() {
		appFs, getwd = savedFs, savedWd
		logFatalln, logFatalf, osExit = savedFatalln, savedFatalf, savedExit
	})

	appFs = fs
	getwd = func() (string, error) { return testRoot, nil }
	logFatalln = exitMocks.Fatalln
	logFatalf = exitMocks.Fatalf
	osExit = MakeExitMock(exitMocks)
	return fs, exitMocks
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func runCmd(t *testing.T, args ...string) string {
	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append(args, "--loglevel", "none", "--no-color"))
	require.NoError(t, rootCmd.Execute(), errOut.String())
	return out.String()
}

func writeFile(t *testing.T, fs afero.Fs, rel, content string) {
	pth := filepath.Join(testRoot, rel)
	require.NoError(t, fs.MkdirAll(filepath.Dir(pth), 0o755))
	require.NoError(t, afero.WriteFile(fs, pth, []byte(content), 0o644))
}

func readFile(t *testing.T, fs afero.Fs, rel string) string {
	data, err := afero.ReadFile(fs, filepath.Join(testRoot, rel))
	require.NoError(t, err)
	return string(data)
}

// commitID runs a commit command and returns the new commit id
func commitID(t *testing.T, args ...string) string {
	out := runCmd(t, append(args, "--format", "json")...)
	var res commitResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Len(t, res.ID, model.IDLength)
	return res.ID
}

func TestInitAddCommit(t *testing.T) {
	fs, exitMocks := setupCLI(t)

	out := runCmd(t, "init")
	assert.Equal(t, "Initialized empty wit repository in /work/project/.wit\n", out)
	assert.Equal(t, "master", readFile(t, fs, ".wit/activated.txt"))

	writeFile(t, fs, "a.txt", "hello\n")
	writeFile(t, fs, "dir/b.txt", "world\n")
	runCmd(t, "add", "a.txt", "dir")

	out = runCmd(t, "status")
	assert.Contains(t, out, "on branch master, no commits yet\n")
	assert.Contains(t, out, "Changes to be committed:\nThere is no commit id yet.\n")

	out = runCmd(t, "commit", "first commit")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	m := commitLine.FindStringSubmatch(lines[0])
	require.NotNil(t, m, out)
	assert.Equal(t, "master", m[1])
	assert.Equal(t, "first commit", m[3])
	assert.Equal(t, "2 file(s), 12B", strings.TrimSpace(lines[1]))

	refs := readFile(t, fs, ".wit/references.txt")
	assert.Equal(t, "HEAD="+m[2]+"\nmaster="+m[2]+"\n", refs)

	out = runCmd(t, "status")
	assert.Equal(t, "on branch master\nChanges to be committed:\n\nChanges not staged for commit:\n\nUntracked files:\n", out)
	assert.Zero(t, exitMocks.fatalCalls())
}

func TestInitTwice(t *testing.T) {
	_, exitMocks := setupCLI(t)
	runCmd(t, "init")
	runCmd(t, "init")
	assert.Equal(t, 1, exitMocks.fatalCalls())
}

func TestInitDirectory(t *testing.T) {
	fs, exitMocks := setupCLI(t)
	out := runCmd(t, "init", "sub", "--format", "yaml")
	assert.Equal(t, "control: /work/project/sub/.wit\n", out)
	found, err := afero.DirExists(fs, "/work/project/sub/.wit/staging_area")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Zero(t, exitMocks.fatalCalls())
}

func TestNoRepository(t *testing.T) {
	_, exitMocks := setupCLI(t)
	getwd = func() (string, error) { return "/nowhere", nil }

	for _, args := range [][]string{
		{"add", "a.txt"},
		{"commit", "msg"},
		{"status"},
		{"checkout", "master"},
		{"branch"},
		{"merge", "master"},
		{"log"},
		{"graph"},
		{"diff"},
	} {
		runCmd(t, args...)
	}
	assert.Equal(t, 9, exitMocks.fatalCalls())
	for _, msg := range exitMocks.messages {
		assert.Contains(t, msg, "failed to open repository")
	}
}

func TestCommitMessage(t *testing.T) {
	fs, exitMocks := setupCLI(t)
	runCmd(t, "init")
	writeFile(t, fs, "a.txt", "a")
	runCmd(t, "add", "a.txt")

	runCmd(t, "commit")
	require.Equal(t, 1, exitMocks.fatalCalls())
	assert.Contains(t, exitMocks.messages[0], "a commit message is required")

	runCmd(t, "commit", "one", "-m", "two")
	require.Equal(t, 2, exitMocks.fatalCalls())

	out := runCmd(t, "ci", "-m", "with flag")
	assert.Contains(t, out, "] with flag\n")
	assert.Equal(t, 2, exitMocks.fatalCalls())
}

func TestBranchAndCheckout(t *testing.T) {
	fs, exitMocks := setupCLI(t)
	runCmd(t, "init")

	assert.Empty(t, runCmd(t, "branch"))

	writeFile(t, fs, "a.txt", "v1")
	runCmd(t, "add", "a.txt")
	first := commitID(t, "commit", "first")

	out := runCmd(t, "branch", "dev")
	assert.Equal(t, "Created branch dev at "+first+"\n", out)

	runCmd(t, "branch", "dev")
	assert.Equal(t, 1, exitMocks.fatalCalls())

	out = runCmd(t, "branch")
	assert.Regexp(t, `(?m)^\*\s+master\s+`+first+`$`, out)
	assert.Regexp(t, `(?m)^\s+dev\s+`+first+`$`, out)

	out = runCmd(t, "checkout", "dev")
	assert.Equal(t, "Switched to branch dev at "+first+"\n", out)
	assert.Equal(t, "dev", readFile(t, fs, ".wit/activated.txt"))

	writeFile(t, fs, "a.txt", "v2")
	runCmd(t, "add", "a.txt")
	second := commitID(t, "commit", "second")

	out = runCmd(t, "branch", "--format", "json")
	var listed branchListResult
	require.NoError(t, json.Unmarshal([]byte(out), &listed))
	require.Len(t, listed.Branches, 2)
	assert.Equal(t, "master", listed.Branches[0].Name)
	assert.Equal(t, first, listed.Branches[0].Commit)
	assert.False(t, listed.Branches[0].Active)
	assert.Equal(t, "dev", listed.Branches[1].Name)
	assert.Equal(t, second, listed.Branches[1].Commit)
	assert.True(t, listed.Branches[1].Active)

	out = runCmd(t, "checkout", first)
	assert.Equal(t, "HEAD is now detached at "+first+"\n", out)
	assert.Equal(t, "v1", readFile(t, fs, "a.txt"))
	assert.Equal(t, "", readFile(t, fs, ".wit/activated.txt"))
	assert.Contains(t, runCmd(t, "status"), "HEAD detached at "+first)

	runCmd(t, "checkout", "nope")
	assert.Equal(t, 2, exitMocks.fatalCalls())
}

func TestCheckoutUnclean(t *testing.T) {
	fs, exitMocks := setupCLI(t)
	runCmd(t, "init")
	writeFile(t, fs, "a.txt", "v1")
	runCmd(t, "add", "a.txt")
	runCmd(t, "commit", "first")
	runCmd(t, "branch", "dev")

	writeFile(t, fs, "a.txt", "changed")
	out := runCmd(t, "status")
	assert.Contains(t, out, "Changes not staged for commit:\n\ta.txt\n")

	runCmd(t, "checkout", "dev")
	require.Equal(t, 1, exitMocks.fatalCalls())
	assert.Contains(t, exitMocks.messages[0], "a.txt")
	assert.Equal(t, "master", readFile(t, fs, ".wit/activated.txt"))
	assert.Equal(t, "changed", readFile(t, fs, "a.txt"))
}

func TestMerge(t *testing.T) {
	fs, exitMocks := setupCLI(t)
	runCmd(t, "init")
	writeFile(t, fs, "a.txt", "a")
	runCmd(t, "add", "a.txt")
	first := commitID(t, "commit", "first")
	runCmd(t, "branch", "dev")
	runCmd(t, "checkout", "dev")

	writeFile(t, fs, "b.txt", "b")
	runCmd(t, "add", "b.txt")
	second := commitID(t, "commit", "second")

	runCmd(t, "checkout", "master")
	out := runCmd(t, "merge", "dev")
	m := commitLine.FindStringSubmatch(strings.SplitN(out, "\n", 2)[0])
	require.NotNil(t, m, out)
	assert.Equal(t, "master", m[1])
	assert.Equal(t, "Merge branch/commit id: dev", m[3])

	out = runCmd(t, "log", "--format", "json")
	var commits []model.Commit
	require.NoError(t, json.Unmarshal([]byte(out), &commits))
	require.Len(t, commits, 3)
	assert.Equal(t, m[2], commits[0].ID)
	assert.Equal(t, []string{first, second}, commits[0].Parents)
	assert.Equal(t, "Merge branch/commit id: dev", commits[0].Message)

	out = runCmd(t, "log", "--format", "oneline")
	assert.Equal(t, m[2]+" Merge branch/commit id: dev\n"+first+" first\n"+second+" second\n", out)
	assert.Zero(t, exitMocks.fatalCalls())
}

func TestMergeDiverged(t *testing.T) {
	fs, exitMocks := setupCLI(t)
	runCmd(t, "init")
	writeFile(t, fs, "a.txt", "a")
	runCmd(t, "add", "a.txt")
	runCmd(t, "commit", "first")
	runCmd(t, "branch", "dev")

	writeFile(t, fs, "a.txt", "staged but not committed")
	runCmd(t, "add", "a.txt")
	runCmd(t, "merge", "dev")
	require.Equal(t, 1, exitMocks.fatalCalls())
	assert.Contains(t, exitMocks.messages[0], "failed to merge dev")
}

func TestLog(t *testing.T) {
	fs, _ := setupCLI(t)
	runCmd(t, "init")
	writeFile(t, fs, "a.txt", "a")
	runCmd(t, "add", "a.txt")
	first := commitID(t, "commit", "first")
	writeFile(t, fs, "a.txt", "b")
	runCmd(t, "add", "a.txt")
	second := commitID(t, "commit", "second\nwith details")

	out := runCmd(t, "log")
	assert.Contains(t, out, "     ID: "+second+"\nParents: "+first+"\n")
	assert.Contains(t, out, "    second\n    with details\n")
	assert.Contains(t, out, "     ID: "+first+"\n   Date: ")
	assert.Less(t, strings.Index(out, second), strings.Index(out, "ID: "+first))

	out = runCmd(t, "log", first, "--format", "oneline")
	assert.Equal(t, first+" first\n", out)
}

func TestGraph(t *testing.T) {
	fs, exitMocks := setupCLI(t)
	runCmd(t, "init")
	writeFile(t, fs, "a.txt", "a")
	runCmd(t, "add", "a.txt")
	first := commitID(t, "commit", "first")

	assert.Equal(t, first+"\n", runCmd(t, "graph"))

	writeFile(t, fs, "a.txt", "b")
	runCmd(t, "add", "a.txt")
	second := commitID(t, "commit", "second")

	assert.Equal(t, second+" -> "+first+"\n", runCmd(t, "graph"))
	assert.Equal(t, first+"\n", runCmd(t, "graph", first))

	out := runCmd(t, "graph", "--format", "dot")
	assert.True(t, strings.HasPrefix(out, "digraph wit {\n"))
	assert.Contains(t, out, `"`+second+`" -> "`+first+`";`)
	assert.Contains(t, out, `"`+first+`" [label="`+first[:20]+`\n`+first[20:]+`"];`)

	out = runCmd(t, "graph", "--format", "json")
	var edges []model.Edge
	require.NoError(t, json.Unmarshal([]byte(out), &edges))
	assert.Equal(t, []model.Edge{{Child: second, Parent: first}}, edges)

	runCmd(t, "graph", "--format", "png")
	require.Equal(t, 1, exitMocks.fatalCalls())
	assert.Contains(t, exitMocks.messages[0], "dot, json, list, yaml")
}

func TestDiff(t *testing.T) {
	fs, exitMocks := setupCLI(t)
	runCmd(t, "init")
	writeFile(t, fs, "a.txt", "hello\n")
	writeFile(t, fs, "dir/b.txt", "b\n")
	runCmd(t, "add", "a.txt", "dir")

	out := runCmd(t, "diff", "--staged")
	assert.Contains(t, out, "+++ b/a.txt\n")
	assert.Contains(t, out, "+++ b/dir/b.txt\n")

	runCmd(t, "commit", "first")
	assert.Empty(t, runCmd(t, "diff"))
	assert.Empty(t, runCmd(t, "diff", "--staged"))

	writeFile(t, fs, "a.txt", "hello\nworld\n")
	writeFile(t, fs, "dir/b.txt", "c\n")
	out = runCmd(t, "diff")
	assert.Contains(t, out, "--- a/a.txt\n+++ b/a.txt\n")
	assert.Contains(t, out, " hello\n+world\n")
	assert.Contains(t, out, "-b\n+c\n")

	out = runCmd(t, "diff", "dir")
	assert.NotContains(t, out, "a.txt")
	assert.Contains(t, out, "dir/b.txt")

	assert.Equal(t, "a.txt\ndir/b.txt\n", runCmd(t, "diff", "--format", "name-only"))

	runCmd(t, "add", "a.txt")
	assert.Equal(t, "dir/b.txt\n", runCmd(t, "diff", "--format", "name-only"))
	assert.Equal(t, "a.txt\n", runCmd(t, "diff", "--staged", "--format", "name-only"))

	runCmd(t, "diff", "/elsewhere")
	require.Equal(t, 1, exitMocks.fatalCalls())
}

func TestFormatFromEnv(t *testing.T) {
	_, exitMocks := setupCLI(t)
	t.Setenv("WIT_FORMAT", "json")

	out := runCmd(t, "init")
	var res initResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "/work/project/.wit", res.Control)
	assert.Zero(t, exitMocks.fatalCalls())
}

func TestVersion(t *testing.T) {
	setupCLI(t)
	out := runCmd(t, "version")
	assert.Contains(t, out, "Version: dev\n")
}

func TestVersionFormat(t *testing.T) {
	_, exitMocks := setupCLI(t)
	out := runCmd(t, "version", "--format", "json")
	var res VersionInfo
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "dev", res.Version)
	assert.Zero(t, exitMocks.fatalCalls())
}

func TestUsage(t *testing.T) {
	_, exitMocks := setupCLI(t)
	target := filepath.Join(t.TempDir(), "docs")
	runCmd(t, "usage", "--target-dir", target)
	require.Zero(t, exitMocks.fatalCalls())

	data, err := os.ReadFile(filepath.Join(target, "wit.md"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "**Version: dev**\n\n"))

	for _, name := range []string{"wit_init.md", "wit_add.md", "wit_commit.md", "wit_merge.md"} {
		_, err = os.Stat(filepath.Join(target, name))
		assert.NoError(t, err, name)
	}
}

func TestAddFromOutside(t *testing.T) {
	fs, exitMocks := setupCLI(t)
	runCmd(t, "init")
	writeFile(t, fs, "a.txt", "hello\n")

	require.NoError(t, fs.MkdirAll("/elsewhere", 0o755))
	getwd = func() (string, error) { return "/elsewhere", nil }
	runCmd(t, "add", "/work/project/a.txt")
	require.Zero(t, exitMocks.fatalCalls(), exitMocks.messages)

	assert.Equal(t, "hello\n", readFile(t, fs, ".wit/staging_area/a.txt"))
}

func TestAddIntoNestedRepository(t *testing.T) {
	fs, exitMocks := setupCLI(t)
	runCmd(t, "init")
	runCmd(t, "init", "sub")
	writeFile(t, fs, "sub/f.txt", "nested\n")
	writeFile(t, fs, "top.txt", "top\n")

	runCmd(t, "add", "sub/f.txt", "top.txt")
	require.Zero(t, exitMocks.fatalCalls(), exitMocks.messages)

	assert.Equal(t, "nested\n", readFile(t, fs, "sub/.wit/staging_area/f.txt"))
	assert.Equal(t, "top\n", readFile(t, fs, ".wit/staging_area/top.txt"))
	found, err := afero.Exists(fs, "/work/project/.wit/staging_area/sub/f.txt")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAddMessageVerbatim(t *testing.T) {
	_, exitMocks := setupCLI(t)
	runCmd(t, "init")
	runCmd(t, "add", "a%d.txt")

	require.Equal(t, 1, exitMocks.fatalCalls())
	assert.Contains(t, exitMocks.messages[0], "failed to add a%d.txt: ")
	assert.NotContains(t, exitMocks.messages[0], "%!")
}

func TestCommitHelp(t *testing.T) {
	setupCLI(t)
	out := runCmd(t, "commit", "--help")
	assert.Contains(t, out, "A message is required: an empty one is refused.")
}
