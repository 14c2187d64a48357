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

package cbadminops

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/couchbaselabs/cbadmin/cbadminops/util"
)

// ResolveIdentifiers turns the value of a --clusters flag into an ordered
// list of registered identifiers. Duplicates are dropped, keeping the first
// occurrence. "*" selects every registered cluster. When raw is empty and
// allowActive is set, the active cluster is used.
//
// Every returned identifier was registered at resolution time; the registry
// may change afterwards, so callers still have to handle ClusterNotFoundError
// from Registry.Get.
func ResolveIdentifiers(registry *Registry, raw string, allowActive bool) ([]string, error) {
	requested := util.SplitIdentifiers(raw)

	if len(requested) == 0 {
		if !allowActive {
			return nil, ErrNoTargetCluster
		}
		active := registry.Active()
		if active == "" {
			return nil, ErrNoTargetCluster
		}
		requested = []string{active}
	}

	seen := mapset.NewThreadUnsafeSet[string]()
	var identifiers []string
	for _, id := range requested {
		if id == util.AllClustersWildcard {
			for _, registered := range registry.Identifiers() {
				if seen.Add(registered) {
					identifiers = append(identifiers, registered)
				}
			}
			continue
		}
		if !registry.Contains(id) {
			return nil, &ClusterNotFoundError{Identifier: id}
		}
		if seen.Add(id) {
			identifiers = append(identifiers, id)
		}
	}

	if len(identifiers) == 0 {
		return nil, ErrNoTargetCluster
	}
	return identifiers, nil
}
