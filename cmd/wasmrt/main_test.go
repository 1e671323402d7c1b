package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// emptyModule is the smallest valid WebAssembly 1.0 binary: the 8-byte header with no sections.
var emptyModule = []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

func writeWasm(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.wasm")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func runMain(args []string) (exitCode int, stdOut, stdErr string) {
	outBuf, errBuf := &bytes.Buffer{}, &bytes.Buffer{}
	oldArgs := os.Args
	os.Args = append([]string{"wasmrt"}, args...)
	defer func() { os.Args = oldArgs }()
	exitCode = doMain(outBuf, errBuf)
	return exitCode, outBuf.String(), errBuf.String()
}

func TestMissingPath(t *testing.T) {
	exitCode, _, stdErr := runMain(nil)
	require.Equal(t, 1, exitCode)
	require.Contains(t, stdErr, "Usage:")
}

func TestMissingFile(t *testing.T) {
	exitCode, _, stdErr := runMain([]string{filepath.Join(t.TempDir(), "absent.wasm")})
	require.Equal(t, 1, exitCode)
	require.Contains(t, stdErr, "error reading wasm binary")
}

func TestDecodeOnly(t *testing.T) {
	path := writeWasm(t, emptyModule)
	exitCode, stdOut, stdErr := runMain([]string{path})
	require.Equal(t, 0, exitCode)
	require.Equal(t, "", stdOut)
	require.Equal(t, "", stdErr)
}

func TestStatsFlag(t *testing.T) {
	path := writeWasm(t, emptyModule)
	exitCode, stdOut, _ := runMain([]string{"-d", path})
	require.Equal(t, 0, exitCode)
	require.Contains(t, stdOut, "functions: 0")
	require.Contains(t, stdOut, "memory: none")
}

func TestInvokeMissingExport(t *testing.T) {
	path := writeWasm(t, emptyModule)
	exitCode, _, stdErr := runMain([]string{path, "answer"})
	require.Equal(t, 1, exitCode)
	require.Contains(t, stdErr, "no such export")
}

func TestBadMagic(t *testing.T) {
	path := writeWasm(t, []byte{0, 0, 0, 0})
	exitCode, _, stdErr := runMain([]string{path})
	require.Equal(t, 1, exitCode)
	require.Contains(t, stdErr, "error compiling wasm binary")
}

func TestFeaturesFromEnvironment(t *testing.T) {
	oldEnv, hadEnv := os.LookupEnv("WASMRTFEATURES")
	require.NoError(t, os.Setenv("WASMRTFEATURES", "sign-extension-ops"))
	defer func() {
		if hadEnv {
			os.Setenv("WASMRTFEATURES", oldEnv)
		} else {
			os.Unsetenv("WASMRTFEATURES")
		}
	}()

	path := writeWasm(t, emptyModule)
	exitCode, _, stdErr := runMain([]string{path})
	require.Equal(t, 0, exitCode)
	require.Equal(t, "", stdErr)
}
