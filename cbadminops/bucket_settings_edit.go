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
	"fmt"
	"strconv"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/exp/slices"
)

// BucketEditInput is the raw input of a bucket update command. A nil field
// means the option was not supplied.
type BucketEditInput struct {
	RAMQuotaMB    *int64
	NumReplicas   *int64
	FlushEnabled  *bool
	Durability    *string
	ExpirySeconds *int64
}

// BucketSettingsEdit is a sparse set of field overrides. Only non-nil fields
// are applied, so "not requested" is distinct from any explicit value.
type BucketSettingsEdit struct {
	RAMQuotaMB   *uint64
	NumReplicas  *uint32
	FlushEnabled *bool
	Durability   *DurabilityLevel
	MaxExpiry    *time.Duration
}

const (
	editFieldRAM        = "ram"
	editFieldReplicas   = "replicas"
	editFieldFlush      = "flush"
	editFieldDurability = "durability"
	editFieldExpiry     = "expiry"
)

// fields the hosted Capella tier does not let users change
var hostedRestrictedFields = mapset.NewSet(editFieldFlush, editFieldDurability, editFieldExpiry)

// MakeBucketSettingsEdit validates the command input and converts it into an
// edit set. Negative numbers and unknown durability levels are rejected.
func MakeBucketSettingsEdit(input BucketEditInput) (BucketSettingsEdit, error) {
	edit := BucketSettingsEdit{}

	if input.RAMQuotaMB != nil {
		if err := checkRange(editFieldRAM, *input.RAMQuotaMB, maxRAMQuotaMB); err != nil {
			return edit, err
		}
		ram := uint64(*input.RAMQuotaMB)
		edit.RAMQuotaMB = &ram
	}
	if input.NumReplicas != nil {
		if err := checkRange(editFieldReplicas, *input.NumReplicas, maxReplicas); err != nil {
			return edit, err
		}
		replicas := uint32(*input.NumReplicas)
		edit.NumReplicas = &replicas
	}
	if input.FlushEnabled != nil {
		flush := *input.FlushEnabled
		edit.FlushEnabled = &flush
	}
	if input.Durability != nil {
		level, err := ParseDurabilityLevel(*input.Durability)
		if err != nil {
			return edit, err
		}
		edit.Durability = &level
	}
	if input.ExpirySeconds != nil {
		if err := checkRange(editFieldExpiry, *input.ExpirySeconds, maxExpirySeconds); err != nil {
			return edit, err
		}
		expiry := time.Duration(*input.ExpirySeconds) * time.Second
		edit.MaxExpiry = &expiry
	}

	return edit, nil
}

// checkRange rejects values outside [0, upper] with a ParseError naming the
// bound of that field
func checkRange(field string, value, upper int64) error {
	if value >= 0 && value <= upper {
		return nil
	}
	return &ParseError{
		Field:   field,
		Value:   strconv.FormatInt(value, 10),
		Allowed: []string{fmt.Sprintf("an integer from 0 to %d", upper)},
	}
}

// Apply sets every requested field on settings and leaves the others alone
func (e *BucketSettingsEdit) Apply(settings *BucketSettings) {
	if e.RAMQuotaMB != nil {
		settings.RAMQuotaMB = *e.RAMQuotaMB
	}
	if e.NumReplicas != nil {
		settings.NumReplicas = *e.NumReplicas
	}
	if e.FlushEnabled != nil {
		settings.FlushEnabled = *e.FlushEnabled
	}
	if e.Durability != nil {
		settings.MinimumDurabilityLevel = *e.Durability
	}
	if e.MaxExpiry != nil {
		settings.MaxExpiry = *e.MaxExpiry
	}
}

// requestedFields lists the names of the fields present in the edit
func (e *BucketSettingsEdit) requestedFields() mapset.Set[string] {
	fields := mapset.NewThreadUnsafeSet[string]()
	if e.RAMQuotaMB != nil {
		fields.Add(editFieldRAM)
	}
	if e.NumReplicas != nil {
		fields.Add(editFieldReplicas)
	}
	if e.FlushEnabled != nil {
		fields.Add(editFieldFlush)
	}
	if e.Durability != nil {
		fields.Add(editFieldDurability)
	}
	if e.MaxExpiry != nil {
		fields.Add(editFieldExpiry)
	}
	return fields
}

func (e *BucketSettingsEdit) IsEmpty() bool {
	return e.requestedFields().Cardinality() == 0
}

// HostedRestrictedFields returns the requested fields that the hosted tier
// does not expose, sorted.
func (e *BucketSettingsEdit) HostedRestrictedFields() []string {
	requested := e.requestedFields()
	var restricted []string
	for _, field := range hostedRestrictedFields.ToSlice() {
		if requested.Contains(field) {
			restricted = append(restricted, field)
		}
	}
	slices.Sort(restricted)
	return restricted
}

// checkHostedCapability fails with a CapabilityConflictError when the edit
// touches fields the hosted tier does not expose.
func (e *BucketSettingsEdit) checkHostedCapability(identifier string) error {
	restricted := e.HostedRestrictedFields()
	if len(restricted) == 0 {
		return nil
	}
	return &CapabilityConflictError{
		Reason: fmt.Sprintf("cluster %s is a hosted capella cluster, %v cannot be changed", identifier, restricted),
	}
}
