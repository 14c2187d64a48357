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
	"math"
	"time"
)

type BucketType int

const (
	CouchbaseBucket BucketType = iota
	MemcachedBucket
	EphemeralBucket
)

func (t BucketType) String() string {
	switch t {
	case MemcachedBucket:
		return "memcached"
	case EphemeralBucket:
		return "ephemeral"
	}
	return "couchbase"
}

// ParseBucketType accepts the user facing names plus "membase", which the
// management API uses for couchbase buckets.
func ParseBucketType(bucketType string) (BucketType, error) {
	switch bucketType {
	case "couchbase", "membase":
		return CouchbaseBucket, nil
	case "memcached":
		return MemcachedBucket, nil
	case "ephemeral":
		return EphemeralBucket, nil
	}
	return CouchbaseBucket, &ParseError{
		Field:   "bucket type",
		Value:   bucketType,
		Allowed: []string{"couchbase", "memcached", "ephemeral"},
	}
}

type DurabilityLevel int

const (
	DurabilityNone DurabilityLevel = iota
	DurabilityMajority
	DurabilityMajorityAndPersistActive
	DurabilityPersistToMajority
)

// durabilityAllowedValues are the values accepted from user input
var durabilityAllowedValues = []string{"one", "majority", "majorityAndPersistActive", "persistToMajority"}

// String returns the wire spelling of the level
func (d DurabilityLevel) String() string {
	switch d {
	case DurabilityMajority:
		return "majority"
	case DurabilityMajorityAndPersistActive:
		return "majorityAndPersistActive"
	case DurabilityPersistToMajority:
		return "persistToMajority"
	}
	return "none"
}

// ParseDurabilityLevel parses a durability level. Matching is case
// sensitive. "none", the spelling used on the wire, is accepted as an alias
// of "one".
func ParseDurabilityLevel(level string) (DurabilityLevel, error) {
	switch level {
	case "one", "none":
		return DurabilityNone, nil
	case "majority":
		return DurabilityMajority, nil
	case "majorityAndPersistActive":
		return DurabilityMajorityAndPersistActive, nil
	case "persistToMajority":
		return DurabilityPersistToMajority, nil
	}
	return DurabilityNone, &ParseError{
		Field:   "durability",
		Value:   level,
		Allowed: append([]string(nil), durabilityAllowedValues...),
	}
}

// BucketSettings is the canonical form of a bucket's configuration. Both the
// on-prem and the Capella wire formats convert to and from it.
type BucketSettings struct {
	Name                   string
	BucketType             BucketType
	NumReplicas            uint32
	RAMQuotaMB             uint64
	FlushEnabled           bool
	MinimumDurabilityLevel DurabilityLevel
	MaxExpiry              time.Duration
	Status                 *string
}

func (s *BucketSettings) validate() error {
	if s.Name == "" {
		return &DeserializeError{Detail: "bucket name cannot be empty"}
	}
	return nil
}

// StatusString returns the status or "" when the server did not report one
func (s *BucketSettings) StatusString() string {
	if s.Status == nil {
		return ""
	}
	return *s.Status
}

const (
	// maxExpirySeconds is the largest expiry a time.Duration can hold
	maxExpirySeconds = int64(math.MaxInt64 / int64(time.Second))
	// maxRAMQuotaMB is the largest quota whose byte count fits the signed
	// on-prem wire integer
	maxRAMQuotaMB = int64(math.MaxInt64 / bytesPerMB)
	// maxReplicas is the largest replica count BucketSettings can hold
	maxReplicas = int64(math.MaxUint32)
)

// secondsToDuration converts a wire expiry into a duration. Values beyond
// the range of time.Duration are rejected instead of wrapping.
func secondsToDuration(field string, seconds uint64) (time.Duration, error) {
	if seconds > uint64(maxExpirySeconds) {
		return 0, &DeserializeError{Detail: fmt.Sprintf("%s is out of range: %d", field, seconds)}
	}
	return time.Duration(seconds) * time.Second, nil
}

// toUnsigned converts a signed wire integer into an unsigned field value
func toUnsigned(field string, value int64) (uint64, error) {
	if value < 0 {
		return 0, &DeserializeError{Detail: fmt.Sprintf("%s must not be negative, got %d", field, value)}
	}
	return uint64(value), nil
}

func toUint32(field string, value int64) (uint32, error) {
	v, err := toUnsigned(field, value)
	if err != nil {
		return 0, err
	}
	if v > uint64(^uint32(0)) {
		return 0, &DeserializeError{Detail: fmt.Sprintf("%s is out of range: %d", field, value)}
	}
	return uint32(v), nil
}
