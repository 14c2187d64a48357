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
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/go-querystring/query"
)

const (
	bytesPerMB = 1024 * 1024
	// the management API calls couchbase buckets "membase"
	onPremCouchbaseBucketType = "membase"
)

// onPremBucketJSON is the bucket document returned by the on-prem
// management API
type onPremBucketJSON struct {
	Name          string `json:"name"`
	BucketType    string `json:"bucketType"`
	ReplicaNumber int64  `json:"replicaNumber"`
	Quota         struct {
		RawRAM int64 `json:"rawRAM"`
	} `json:"quota"`
	Controllers struct {
		Flush string `json:"flush,omitempty"`
	} `json:"controllers"`
	DurabilityMinLevel string                 `json:"durabilityMinLevel,omitempty"`
	MaxTTL             int64                  `json:"maxTTL"`
	Nodes              []onPremBucketNodeJSON `json:"nodes,omitempty"`
}

type onPremBucketNodeJSON struct {
	Status string `json:"status"`
}

// onPremBucketForm is the form-encoded body of a bucket update. Name, type
// and status cannot be changed through it.
type onPremBucketForm struct {
	RAMQuotaMB         uint64  `url:"ramQuotaMB"`
	ReplicaNumber      *uint32 `url:"replicaNumber,omitempty"`
	FlushEnabled       int     `url:"flushEnabled"`
	DurabilityMinLevel string  `url:"durabilityMinLevel,omitempty"`
	MaxTTL             *int64  `url:"maxTTL,omitempty"`
}

func (b *onPremBucketJSON) toBucketSettings() (BucketSettings, error) {
	settings := BucketSettings{Name: b.Name}
	if err := settings.validate(); err != nil {
		return settings, err
	}

	bucketType, err := ParseBucketType(b.BucketType)
	if err != nil {
		return settings, &DeserializeError{Detail: err.Error()}
	}
	settings.BucketType = bucketType

	settings.NumReplicas, err = toUint32("replicaNumber", b.ReplicaNumber)
	if err != nil {
		return settings, err
	}
	rawRAM, err := toUnsigned("quota.rawRAM", b.Quota.RawRAM)
	if err != nil {
		return settings, err
	}
	settings.RAMQuotaMB = rawRAM / bytesPerMB

	settings.FlushEnabled = b.Controllers.Flush != ""

	// memcached buckets do not report a durability level
	if b.DurabilityMinLevel != "" {
		settings.MinimumDurabilityLevel, err = ParseDurabilityLevel(b.DurabilityMinLevel)
		if err != nil {
			return settings, &DeserializeError{Detail: err.Error()}
		}
	}

	maxTTL, err := toUnsigned("maxTTL", b.MaxTTL)
	if err != nil {
		return settings, err
	}
	settings.MaxExpiry, err = secondsToDuration("maxTTL", maxTTL)
	if err != nil {
		return settings, err
	}

	if len(b.Nodes) > 0 && b.Nodes[0].Status != "" {
		status := b.Nodes[0].Status
		settings.Status = &status
	}
	return settings, nil
}

func makeOnPremBucketJSON(settings *BucketSettings) onPremBucketJSON {
	b := onPremBucketJSON{
		Name:          settings.Name,
		BucketType:    settings.BucketType.String(),
		ReplicaNumber: int64(settings.NumReplicas),
		MaxTTL:        int64(settings.MaxExpiry / time.Second),
	}
	if settings.BucketType == CouchbaseBucket {
		b.BucketType = onPremCouchbaseBucketType
	}
	b.Quota.RawRAM = int64(settings.RAMQuotaMB * bytesPerMB)
	if settings.FlushEnabled {
		b.Controllers.Flush = fmt.Sprintf("/pools/default/buckets/%s/controller/doFlush", settings.Name)
	}
	if settings.BucketType != MemcachedBucket {
		b.DurabilityMinLevel = settings.MinimumDurabilityLevel.String()
	}
	if settings.Status != nil {
		b.Nodes = []onPremBucketNodeJSON{{Status: *settings.Status}}
	}
	return b
}

// decodeOnPremBucket parses a single bucket document
func decodeOnPremBucket(content string) (BucketSettings, error) {
	var b onPremBucketJSON
	if err := json.Unmarshal([]byte(content), &b); err != nil {
		return BucketSettings{}, &DeserializeError{Detail: err.Error()}
	}
	return b.toBucketSettings()
}

// decodeOnPremBuckets parses the bucket list document
func decodeOnPremBuckets(content string) ([]BucketSettings, error) {
	var buckets []onPremBucketJSON
	if err := json.Unmarshal([]byte(content), &buckets); err != nil {
		return nil, &DeserializeError{Detail: err.Error()}
	}
	settings := make([]BucketSettings, 0, len(buckets))
	for i := range buckets {
		s, err := buckets[i].toBucketSettings()
		if err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, nil
}

// encodeOnPremBucket renders settings as the management API's JSON document
func encodeOnPremBucket(settings *BucketSettings) (string, error) {
	content, err := json.Marshal(makeOnPremBucketJSON(settings))
	if err != nil {
		return "", &SerializeError{Detail: err.Error()}
	}
	return string(content), nil
}

// encodeOnPremBucketForm renders the full settings as an update form
func encodeOnPremBucketForm(settings *BucketSettings) (string, error) {
	form := onPremBucketForm{
		RAMQuotaMB: settings.RAMQuotaMB,
	}
	if settings.FlushEnabled {
		form.FlushEnabled = 1
	}
	// memcached buckets reject replica, durability and ttl settings
	if settings.BucketType != MemcachedBucket {
		replicas := settings.NumReplicas
		form.ReplicaNumber = &replicas
		form.DurabilityMinLevel = settings.MinimumDurabilityLevel.String()
		maxTTL := int64(settings.MaxExpiry / time.Second)
		form.MaxTTL = &maxTTL
	}

	values, err := query.Values(form)
	if err != nil {
		return "", &SerializeError{Detail: err.Error()}
	}
	return values.Encode(), nil
}
