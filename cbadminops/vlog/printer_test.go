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

package vlog

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tonglil/buflogr"
)

func TestMaskSensitiveArgs(t *testing.T) {
	argv := []string{"clusters", "register", "local", "--password", "secret", "--secret-key=abc", "--username", "admin"}
	masked := MaskSensitiveArgs(argv)
	assert.Equal(t, []string{"clusters", "register", "local", "--password", "******",
		"--secret-key=******", "--username", "admin"}, masked)
	// the input must be left untouched
	assert.Equal(t, "secret", argv[4])
}

func TestWithNameKeepsState(t *testing.T) {
	var logStr bytes.Buffer
	p := Printer{Log: buflogr.NewWithBuffer(&logStr), ForCli: true, LogToFileOnly: true}
	named := p.WithName("buckets update")
	assert.True(t, named.ForCli)
	assert.True(t, named.LogToFileOnly)

	named.Info("hello", "cluster", "local")
	assert.Contains(t, logStr.String(), "buckets update")
	assert.Contains(t, logStr.String(), "cluster local")
}

func TestLogArgParse(t *testing.T) {
	var logStr bytes.Buffer
	p := Printer{Log: buflogr.NewWithBuffer(&logStr)}
	argv := []string{"--password", "hunter2"}
	p.LogArgParse(&argv)
	assert.Contains(t, logStr.String(), "Called method Parse")
	assert.NotContains(t, logStr.String(), "hunter2")
}

func TestSetupWritesToFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "cbadmin.log")
	p := Printer{ForCli: true}
	p.SetupOrDie(logFile)
	assert.True(t, p.LogToFileOnly)

	p.Info("written to file", "key", "value")
	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "New log for process")
}
