/*
 (c) Copyright [2026] Couchbase, Inc.
 Licensed under the Apache License, Version 2.0 (the "License");
 You may not use this file except in compliance with the License.
 You may obtain a copy of the License at

 http://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveToAbsPath(t *testing.T) {
	// positive case
	path := "/data"
	res, err := ResolveToAbsPath(path)
	assert.Nil(t, err)
	assert.Equal(t, path, res)

	// negative case
	path = "/data/~/test"
	res, err = ResolveToAbsPath(path)
	assert.NotNil(t, err)
	assert.Equal(t, "", res)
}

func TestSplitIdentifiers(t *testing.T) {
	assert.Equal(t, []string{"local", "remote"}, SplitIdentifiers("local, remote"))
	assert.Equal(t, []string{"a", "b"}, SplitIdentifiers("a,,b,"))
	assert.Nil(t, SplitIdentifiers(" "))
	assert.Nil(t, SplitIdentifiers(""))
}

func TestSplitHosts(t *testing.T) {
	// positive case
	res, err := SplitHosts("Node1, node2")
	assert.Nil(t, err)
	assert.Equal(t, []string{"node1", "node2"}, res)

	// negative case
	res, err = SplitHosts(" ")
	assert.NotNil(t, err)
	assert.Equal(t, res, []string{})
}

func TestCanWriteAccessDir(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, FileExist, CanWriteAccessDir(dir))
	assert.Equal(t, FileNotExist, CanWriteAccessDir(filepath.Join(dir, "missing")))

	assert.True(t, CheckPathExist(dir))
	assert.False(t, CheckPathExist(filepath.Join(dir, "missing")))
	_ = os.Remove(dir)
}
