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
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

func CheckPathExist(filePath string) bool {
	_, err := os.Stat(filePath)
	return !os.IsNotExist(err)
}

// convert an array to a string by joining the elements in the array
// using the given delimiter
func ArrayToString(arr []string, delimiter string) string {
	return strings.Join(arr, delimiter)
}

func ResolveToAbsPath(path string) (string, error) {
	if !strings.Contains(path, "~") {
		return filepath.Abs(path)
	}
	// needed for resolving '~' in relative paths
	usr, err := user.Current()
	if err != nil {
		return "", err
	}
	homeDir := usr.HomeDir

	if path == "~" {
		return homeDir, nil
	} else if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir, path[2:]), nil
	} else {
		return "", fmt.Errorf("invalid path")
	}
}

// SplitIdentifiers splits a delimited list of cluster identifiers. Blank
// entries are dropped, so "a,,b" and "a, b" both give [a b].
func SplitIdentifiers(raw string) []string {
	var identifiers []string
	for _, id := range strings.Split(raw, ClusterListDelimiter) {
		id = strings.TrimSpace(id)
		if id != "" {
			identifiers = append(identifiers, id)
		}
	}
	return identifiers
}

// SplitHosts splits a comma-separated host list. At least one host is required.
func SplitHosts(hosts string) ([]string, error) {
	if strings.TrimSpace(hosts) == "" {
		return []string{}, fmt.Errorf("must specify a host or host list")
	}
	splitRes := strings.Split(strings.ToLower(strings.TrimSpace(hosts)), ",")
	for i, host := range splitRes {
		splitRes[i] = strings.TrimSpace(host)
	}
	return splitRes, nil
}

const (
	FileExist    = 0
	FileNotExist = 1
	NoWritePerm  = 2
)

// Check whether the directory is write accessible
func CanWriteAccessDir(dirPath string) int {
	// check whether the path exists
	_, err := os.Stat(dirPath)
	if err != nil {
		if os.IsNotExist(err) {
			return FileNotExist
		}
	}

	if err := unix.Access(dirPath, unix.W_OK); err != nil {
		return NoWritePerm
	}

	return FileExist
}

func GetOptionalFlagMsg(message string) string {
	return message + " [Optional]"
}

func GetCapellaFlagMsg(message string) string {
	return "[Capella only] " + message
}
