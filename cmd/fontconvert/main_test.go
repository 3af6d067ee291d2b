package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/epdfont/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInterspersed(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	compress := fs.Bool("compress", false, "")
	out := fs.String("o", ".", "")
	pos, err := parseInterspersed(fs, []string{"Fira", "-o", "/tmp", "16", "a.ttf", "b.otf", "-compress"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Fira", "16", "a.ttf", "b.otf"}, pos)
	assert.True(t, *compress)
	assert.Equal(t, "/tmp", *out)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	path, err := run(context.Background(), []string{"GoMono", "9", "gomono", "-o", dir, "-intervals", "48-57"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "GoMono9pt.py"), path)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestRunUsage(t *testing.T) {
	_, err := run(context.Background(), []string{"GoMono", "9"})
	assert.Equal(t, core.EINVALID, core.Code(err))
	assert.Equal(t, core.EINVALID, exitCode(err))
	_, err = run(context.Background(), []string{"GoMono", "big", "gomono", "-o", t.TempDir()})
	assert.Equal(t, core.EINVALID, core.Code(err))
	_, err = run(context.Background(), []string{"-bogus"})
	assert.Error(t, err)
	assert.Equal(t, 1, exitCode(errors.New("plain")))
}
