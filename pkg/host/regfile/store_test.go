// Copyright 2026 PingCAP, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// See the License for the specific language governing permissions and
// limitations under the License.

package regfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/pingcap/mru-cleaner/pkg/errors"
	"github.com/pingcap/mru-cleaner/pkg/host"
	"github.com/pingcap/mru-cleaner/pkg/mru"
	"github.com/stretchr/testify/require"
)

const otherKey = "{01235aad-8f1b-429f-9d02-61fefba9cfe7}"

func writeStore(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "mru.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestStoreResolveOrdersItems(t *testing.T) {
	t.Parallel()

	path := writeStore(t, t.TempDir(), `
[mru-items."{a9c4a31f-f9cb-47a9-abc0-49ce82d0b3ac}".items]
"10" = "/ten.sln|{guid}|false"
"2" = "/two.sln"
"1" = "/one.sln|meta"
"legacy" = "/legacy.sln"
`)
	list, err := New(path, "").ResolveList(context.Background())
	require.NoError(t, err)

	l := list.(*List)
	require.Equal(t, []string{"/one.sln", "/two.sln", "/ten.sln", "/legacy.sln"}, l.Paths())
	require.Equal(t, "/one.sln|meta", l.Records[0].Value)
}

func TestStorePruneAndFlush(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	alive := filepath.Join(dir, "alive.sln")
	touch(t, alive)
	alsoAlive := filepath.Join(dir, "also.sln")
	touch(t, alsoAlive)
	gone := filepath.Join(dir, "gone.sln")

	path := writeStore(t, dir, `
[settings]
max-items = 10

[mru-items."`+DefaultProjectsKey+`".items]
"0" = "`+alive+`|{guid}|false"
"1" = "`+gone+`|{guid}|false"
"2" = "`+alsoAlive+`"
"3" = ""

[mru-items."`+otherKey+`".items]
"0" = "`+gone+`"
`)
	store := New(path, DefaultProjectsKey)
	list, err := store.ResolveList(context.Background())
	require.NoError(t, err)

	res := mru.Prune(list, mru.FileExists)
	require.Equal(t, 2, res.Removed)

	flusher, ok := list.(host.Flusher)
	require.True(t, ok)
	require.NoError(t, flusher.Flush(context.Background()))

	var doc struct {
		Settings map[string]interface{}                   `toml:"settings"`
		Items    map[string]map[string]map[string]string `toml:"mru-items"`
	}
	_, err = toml.DecodeFile(path, &doc)
	require.NoError(t, err)
	require.Equal(t, map[string]string{
		"0": alive + "|{guid}|false",
		"1": alsoAlive,
	}, doc.Items[DefaultProjectsKey]["items"])
	require.Equal(t, map[string]string{"0": gone}, doc.Items[otherKey]["items"])
	require.EqualValues(t, 10, doc.Settings["max-items"])

	// A second pass finds nothing to remove.
	list, err = store.ResolveList(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, mru.Prune(list, mru.FileExists).Removed)
}

func TestStoreFlushWithoutRemovalKeepsFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	content := `
[mru-items."` + DefaultProjectsKey + `".items]
"5" = "/kept"
`
	path := writeStore(t, dir, content)
	list, err := New(path, "").ResolveList(context.Background())
	require.NoError(t, err)
	require.NoError(t, list.(host.Flusher).Flush(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, content, string(data))
}

func TestStoreUnavailable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testCases := []struct {
		name    string
		path    string
		content string
	}{
		{name: "missing file", path: filepath.Join(dir, "absent.toml")},
		{name: "missing root", content: "[other]\na = 1\n"},
		{name: "missing key", content: "[mru-items.\"" + otherKey + "\".items]\n\"0\" = \"/a\"\n"},
		{name: "missing items", content: "[mru-items.\"" + DefaultProjectsKey + "\"]\ncount = 1\n"},
	}
	for i, tc := range testCases {
		path := tc.path
		if path == "" {
			path = filepath.Join(dir, tc.name+".toml")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o600), i)
		}
		_, err := New(path, DefaultProjectsKey).ResolveList(context.Background())
		require.Error(t, err, tc.name)
		require.True(t, errors.IsMRUListUnavailable(err), tc.name)
	}
}

func TestStoreCorrupted(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, content := range []string{
		"not toml = = =",
		"[mru-items.\"" + DefaultProjectsKey + "\".items]\n\"0\" = 42\n",
	} {
		path := writeStore(t, dir, content)
		_, err := New(path, "").ResolveList(context.Background())
		require.Error(t, err)
		require.False(t, errors.IsMRUListUnavailable(err))
		code, ok := errors.RFCCode(err)
		require.True(t, ok)
		require.Equal(t, errors.ErrMRUStoreDecode.RFCCode(), code)
	}
}
