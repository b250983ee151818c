package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("BIKESHARE_CONFIG", "")
	t.Setenv("BIKESHARE_DATA_DIR", "")

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCmdRunsSession(t *testing.T) {
	dir := t.TempDir()
	csv := "Start Time,End Time,Trip Duration,Start Station,End Station,User Type\n" +
		"2017-06-21 08:36:34,2017-06-21 08:44:43,489,Belmont St,K St,Subscriber\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "washington.csv"), []byte(csv), 0o644))

	out, err := runCmd(t, "washington\nall\nall\nyes\nno\nno\n", "--data-dir", dir, "--page-size", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Most common start station:     Belmont St\n")
}

func TestRootCmdFlagValidation(t *testing.T) {
	_, err := runCmd(t, "", "--page-size", "-1")
	assert.ErrorContains(t, err, "invalid configuration")

	_, err = runCmd(t, "", "--log-level", "loud")
	assert.ErrorContains(t, err, "invalid configuration")

	_, err = runCmd(t, "", "extra")
	assert.Error(t, err)
}

func TestRootCmdMissingData(t *testing.T) {
	_, err := runCmd(t, "chicago\nall\nall\n", "--data-dir", t.TempDir())
	assert.ErrorIs(t, err, os.ErrNotExist)
}
