// SPDX-License-Identifier: MIT
package command

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func execute(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var out, errOut bytes.Buffer

	root := GetRootCommand()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)

	err = root.Execute()

	return out.String(), errOut.String(), err
}

func TestTokens_text(t *testing.T) {
	stdout, _, err := execute(t, `{"a": [1, 2.5, true]}`, "tokens")
	require.NoError(t, err)

	want := `-:1:1	LBrace	"{"
-:1:2	String	"\"a\""
-:1:5	Colon	":"
-:1:7	LBracket	"["
-:1:8	Int	"1"
-:1:9	Comma	","
-:1:11	Double	"2.5"
-:1:14	Comma	","
-:1:16	True	"true"
-:1:20	RBracket	"]"
-:1:21	RBrace	"}"
`
	assert.Equal(t, want, stdout)
}

func TestTokens_json(t *testing.T) {
	stdout, _, err := execute(t, `[null, "x"]`, "tokens", "--output", "json")
	require.NoError(t, err)

	var files []fileTokens
	require.NoError(t, json.Unmarshal([]byte(stdout), &files))
	require.Len(t, files, 1)

	assert.Equal(t, "-", files[0].File)
	require.Len(t, files[0].Tokens, 5)
	assert.Equal(t, "x", files[0].Tokens[3].Value)
	assert.Contains(t, stdout, `"kind": "Null"`)
}

func TestTokens_yamlFiles(t *testing.T) {
	dir := t.TempDir()
	first, second := filepath.Join(dir, "a.json"), filepath.Join(dir, "b.json")
	require.NoError(t, os.WriteFile(first, []byte("1"), 0o644))
	require.NoError(t, os.WriteFile(second, []byte("\n  false"), 0o644))

	stdout, _, err := execute(t, "", "tokens", "-o", "yaml", first, second)
	require.NoError(t, err)

	var files []map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &files))
	require.Len(t, files, 2)

	assert.Equal(t, first, files[0]["file"])
	assert.Equal(t, second, files[1]["file"])

	tokens, ok := files[1]["tokens"].([]any)
	require.True(t, ok)
	require.Len(t, tokens, 1)
	assert.Equal(t, map[string]any{"position": "2:3", "kind": "False", "lexeme": "false", "value": false}, tokens[0])
}

func TestTokens_errors(t *testing.T) {
	stdout, stderr, err := execute(t, "[1 # 2]", "tokens")
	require.ErrorIs(t, err, ErrLexical)

	assert.Equal(t, "-:1:1\tLBracket\t\"[\"\n-:1:2\tInt\t\"1\"\n", stdout)
	assert.Contains(t, stderr, "-:1:4: unexpected character '#'\n[1 # 2]\n   ^")
}

func TestTokens_resyncConfig(t *testing.T) {
	config := filepath.Join(t.TempDir(), "fsmlex.yaml")
	require.NoError(t, os.WriteFile(config, []byte("resync: true\noutput: json\n"), 0o644))

	stdout, _, err := execute(t, "[1 # 2]", "tokens", "--config", config)
	require.ErrorIs(t, err, ErrLexical)

	var files []fileTokens
	require.NoError(t, json.Unmarshal([]byte(stdout), &files))
	require.Len(t, files, 1)
	assert.Len(t, files[0].Tokens, 4, "resynchronized after '#'")
	assert.Len(t, files[0].Errors, 1)
}

func TestTokens_env(t *testing.T) {
	t.Setenv("FSMLEX_OUTPUT", "xml")

	_, _, err := execute(t, "1", "tokens")
	assert.ErrorIs(t, err, ErrUnknownOutput)
}

func TestTokens_badConfig(t *testing.T) {
	_, _, err := execute(t, "1", "tokens", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, ErrConfig)
}

func TestGraph(t *testing.T) {
	stdout, _, err := execute(t, "", "graph")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stdout, "digraph fsm {\n"))
	assert.Contains(t, stdout, `[label="{"]`)
	assert.Contains(t, stdout, `label="1:LBrace"`)
}
