package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/operator-framework/basissynth/pkg/engine"
)

func runVerify(t *testing.T, path string) error {
	t.Helper()
	cmd := newVerifyCmd()
	cmd.SetArgs([]string{path})
	cmd.SetContext(context.Background())
	var out bytes.Buffer
	cmd.SetOut(&out)
	return cmd.Execute()
}

func writeTempQDIMACS(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "spec.qdimacs")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestVerifyCommandAcceptsSatisfiableDocument(t *testing.T) {
	doc := "p cnf 2 1\na 1 0\ne 2 0\n1 2 0\n"
	path := writeTempQDIMACS(t, doc)

	err := runVerify(t, path)
	require.NoError(t, err)
}

func TestVerifyCommandRejectsUnsatisfiableSpec(t *testing.T) {
	doc := "p cnf 2 2\na 2 0\ne 1 0\n1 0\n-1 0\n"
	path := writeTempQDIMACS(t, doc)

	err := runVerify(t, path)
	require.Error(t, err)
	var degenerate *engine.DegenerateSpecError
	require.ErrorAs(t, err, &degenerate)
}

func TestVerifyCommandRejectsMalformedDocument(t *testing.T) {
	path := writeTempQDIMACS(t, "not a qdimacs document\n")

	err := runVerify(t, path)
	require.Error(t, err)
}

func TestVerifyCommandRejectsMissingFile(t *testing.T) {
	err := runVerify(t, filepath.Join(t.TempDir(), "missing.qdimacs"))
	require.Error(t, err)
}
