package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/docprotocol/pkg/core"
)

// run executes the root command with args and returns what it printed.
func run(t *testing.T, args ...string) string {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)
	stdout := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = stdout }()

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		done <- buf.String()
	}()

	rootCmd.SetArgs(args)
	execErr := rootCmd.Execute()
	w.Close()
	out := <-done
	require.NoError(t, execErr, out)
	return out
}

func TestCLIWorkflow(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")
	dir := t.TempDir()
	data := "--data=" + dir

	out := run(t, "init", data, "--versioned=false")
	assert.Contains(t, out, "Initialized empty protocol store")
	_, err := os.Stat(filepath.Join(dir, "protocols.yaml"))
	require.NoError(t, err)

	out = run(t, "create", data, "--title", "Contrato X", "--sender", "ACME", "--recipient", "TI", "--category", "Contrato")
	fields := strings.Fields(out)
	require.Len(t, fields, 2)
	code := fields[0]
	assert.Regexp(t, `^PRT-\d{4}-001$`, code)

	out = run(t, "status", data, code, "assinado")
	assert.Contains(t, out, code+" Assinado")

	out = run(t, "list", data, "--json", "--query", "acme")
	var listed []core.Protocol
	require.NoError(t, json.Unmarshal([]byte(out), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, core.StatusSigned, listed[0].Status)

	csvPath := filepath.Join(dir, "out.csv")
	run(t, "export", data, "--query", "", "--output", csvPath)
	f, err := os.Open(csvPath)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, code, rows[1][0])
	assert.Equal(t, "SIGNED", rows[1][4])

	out = run(t, "stats", data, "--json")
	var stats core.Stats
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.Equal(t, core.Stats{Total: 1, Signed: 1}, stats)
}

func TestCLIVersion(t *testing.T) {
	out := run(t, "version")
	assert.Contains(t, out, "docprotocol version")
}
