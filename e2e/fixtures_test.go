//go:build e2e && unix

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteDoc creates a document in the workspace and returns its path
func (tf *TUITestFramework) WriteDoc(name, content string) string {
	tf.t.Helper()
	path := filepath.Join(tf.workspace, name)
	require.NoError(tf.t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(tf.t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// ReadDoc returns the current content of a workspace document
func (tf *TUITestFramework) ReadDoc(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(tf.workspace, name))
	require.NoError(t, err)
	return string(data)
}
