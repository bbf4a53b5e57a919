package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/fmeaskema/i18n"
)

func execute(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Cleanup(func() { i18n.SetLanguage("en") })
	var out, errOut bytes.Buffer
	root := NewRootCommand(&errOut)
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err = root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestValidateCmd_JSON(t *testing.T) {
	out, errOut, err := execute(t,
		`{"sessionId":"s1","scope":"structure_only","nodes":[{"uuid":5}],"client":"web"}`,
		"validate", "--model", "dfmea.request", "-")
	require.NoError(t, err)
	assert.Contains(t, out, `"sessionId": "s1"`)
	assert.NotContains(t, out, "client")
	assert.Contains(t, errOut, "ignored undefined fields [client]")
	assert.Contains(t, errOut, "DFMEAAnalysisRequest is valid (1 warning(s))")
}

func TestValidateCmd_Failure(t *testing.T) {
	out, _, err := execute(t,
		`{"sessionId":"s1","scope":"structure_only","nodes":[{"id":5}]}`,
		"validate", "-m", "pfmea.request")
	require.ErrorIs(t, err, ErrValidationFailed)
	assert.Contains(t, out, "PFMEAAnalysisRequest")
	assert.Contains(t, out, "MalformedFilter")
	assert.Contains(t, out, "/nodes/0")
	assert.Contains(t, out, "rule=node_filter")
}

func TestValidateCmd_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "node.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
uuid: 3
parentId: 1
nodeType: elem
description: operator
extra:
  em: 1
  shift: night
`), 0o600))

	out, _, err := execute(t, "", "validate", "-m", "pfmea.node", "-q", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	out, _, err = execute(t, "", "validate", "-m", "pfmea.node", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"nodeType": "elem"`)
	assert.Contains(t, out, `"shift"`)
	assert.Contains(t, out, `"night"`)
}

func TestValidateCmd_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "fmeaskema.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("warningsAsErrors = true\n"), 0o600))

	out, _, err := execute(t, `{"sessionId":"s1","extra":1}`, "validate", "-m", "session", "-c", cfg)
	require.ErrorIs(t, err, ErrValidationFailed)
	assert.Contains(t, out, "unknown_field")

	_, _, err = execute(t, `{}`, "validate", "-m", "session", "-c", filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidateCmd_Errors(t *testing.T) {
	_, _, err := execute(t, `{}`, "validate", "-m", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown model "nope"`)

	_, _, err = execute(t, `{}`, "validate", "-m", "session", "-f", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")

	_, _, err = execute(t, `{}`, "validate")
	require.Error(t, err)
}

func TestModelsCmd(t *testing.T) {
	out, _, err := execute(t, "", "models")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Greater(t, len(lines), 10)
	assert.True(t, strings.HasPrefix(lines[0], "analysis.request"))
	assert.Contains(t, out, "DFMEAAnalysisResponse")
}

func TestSchemaCmd(t *testing.T) {
	out, _, err := execute(t, "", "schema", "-m", "network_link")
	require.NoError(t, err)
	assert.Contains(t, out, `"title": "NetworkLink"`)
	assert.Contains(t, out, `"fromId"`)

	_, _, err = execute(t, "", "schema", "-m", "nope")
	assert.Error(t, err)
}

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		flag, path, want string
	}{
		{"", "-", formatJSON},
		{"", "doc.yml", formatYAML},
		{"", "doc.YAML", formatYAML},
		{"", "doc.json", formatJSON},
		{"YAML", "doc.json", formatYAML},
	}
	for _, tt := range tests {
		got, err := resolveFormat(tt.flag, tt.path)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s %s", tt.flag, tt.path)
	}
}

func TestLoggerContext(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, log.DebugLevel)
	ctx := withLogger(context.Background(), l)
	assert.Same(t, l, loggerFromContext(ctx))
	assert.Same(t, log.Default(), loggerFromContext(context.Background()))

	l.Debug("hello")
	assert.Contains(t, buf.String(), "hello")
}

func TestSetVersion(t *testing.T) {
	SetVersion("1.0.0", "abc123", "2024-01-01")
	defer SetVersion("", "", "")
	assert.Equal(t, "1.0.0", version)
	assert.Equal(t, "abc123", commit)
	assert.Equal(t, "2024-01-01", date)
}
