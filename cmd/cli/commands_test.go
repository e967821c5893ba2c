package main

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

	"github.com/wadjakorntonsri/weblinks/pkg/core/domain"
)

func execute(t *testing.T, db string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--db", "file:" + db}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestAddListDelete(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.sqlite")

	out, err := execute(t, db, "add", "--title", "Foo", "--url", "http://x", "--author", "Ann", "--tags", "x, Y")
	require.NoError(t, err)
	assert.Equal(t, "Added #1 Foo\n", out)

	_, err = execute(t, db, "add", "--title", "Bar", "--author", "Bob")
	require.NoError(t, err)

	out, err = execute(t, db, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Foo")
	assert.Contains(t, out, "x, y")
	assert.Contains(t, out, "Bar")

	out, err = execute(t, db, "list", "--author", "Bob", "-o", "json")
	require.NoError(t, err)
	var links []domain.Link
	require.NoError(t, json.Unmarshal([]byte(out), &links))
	require.Len(t, links, 1)
	assert.Equal(t, "Bar", links[0].Title)

	out, err = execute(t, db, "values", "tags")
	require.NoError(t, err)
	assert.Equal(t, "x\ny\n", out)

	_, err = execute(t, db, "delete", "--id", "1")
	require.NoError(t, err)

	out, err = execute(t, db, "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "Foo")
}

func TestAddRequiresTitle(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.sqlite")

	_, err := execute(t, db, "add", "--url", "http://x")
	assert.ErrorIs(t, err, domain.ErrTitleRequired)
}

func TestEditReplacesLink(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.sqlite")
	_, err := execute(t, db, "add", "--title", "Foo", "--author", "Ann", "--tags", "a")
	require.NoError(t, err)

	_, err = execute(t, db, "edit", "--id", "1", "--title", "Foo 2")
	require.NoError(t, err)

	out, err := execute(t, db, "list", "-o", "yaml")
	require.NoError(t, err)
	var links []domain.Link
	require.NoError(t, yaml.Unmarshal([]byte(out), &links))
	require.Len(t, links, 1)
	assert.Equal(t, "Foo 2", links[0].Title)
	assert.Empty(t, links[0].Author)
	assert.Empty(t, links[0].Tags)
}

func TestExportImportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.sqlite")
	dst := filepath.Join(dir, "dst.sqlite")

	for _, title := range []string{"a", "b", "c"} {
		_, err := execute(t, src, "add", "--title", title, "--tags", "t")
		require.NoError(t, err)
	}

	for _, format := range []string{"json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			file := filepath.Join(dir, "links."+format)
			_, err := execute(t, src, "export", "--format", format, "--out", file)
			require.NoError(t, err)

			db := strings.TrimSuffix(dst, ".sqlite") + "_" + format + ".sqlite"
			out, err := execute(t, db, "import", "--file", file)
			require.NoError(t, err)
			assert.Equal(t, "Imported 3 of 3 links\n", out)

			out, err = execute(t, db, "values", "id")
			require.NoError(t, err)
			assert.Equal(t, "1\n2\n3\n", out)
		})
	}
}

func TestImportMissingFile(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.sqlite")
	_, err := execute(t, db, "import", "--file", filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDiscoverLimitsCount(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.sqlite")
	for _, title := range []string{"a", "b", "c", "d"} {
		_, err := execute(t, db, "add", "--title", title)
		require.NoError(t, err)
	}

	out, err := execute(t, db, "discover", "-n", "2", "-o", "json")
	require.NoError(t, err)
	var links []domain.Link
	require.NoError(t, json.Unmarshal([]byte(out), &links))
	assert.Len(t, links, 2)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	links := []domain.Link{{ID: 1, Title: "a", Tags: []string{}}}

	path := filepath.Join(dir, "links.json")
	require.NoError(t, writeFile(path, links, "json"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"title": "a"`)

	assert.Error(t, writeFile(filepath.Join(dir, "links.toml"), links, "toml"))
	assert.ErrorIs(t, writeFile(filepath.Join(dir, "missing", "links.json"), links, "json"), os.ErrNotExist)
}
