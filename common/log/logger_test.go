package log

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileLogger(t *testing.T) {
	dir, err := ioutil.TempDir("", "cosmos-log")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "node.log")
	l, err := WithLevel(NewFileLogger(path), "info")
	require.NoError(t, err)

	InitLogger(l)
	defer InitLogger(NewConsoleLogger())

	Debug("hidden", "k", 1)
	Info("tx committed", "hash", "ABCD")
	require.NoError(t, Close())

	bz, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	content := string(bz)
	require.True(t, strings.Contains(content, "tx committed"))
	require.True(t, strings.Contains(content, "hash=ABCD"))
	require.False(t, strings.Contains(content, "hidden"))
}

func TestWithLevelRejectsUnknown(t *testing.T) {
	_, err := WithLevel(NewConsoleLogger(), "verbose")
	require.Error(t, err)
}
