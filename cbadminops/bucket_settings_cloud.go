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
	"time"

	"golang.org/x/exp/slices"
)

// cloudBucketJSON is one element of the Capella bucket collection
type cloudBucketJSON struct {
	Name                 string `json:"name"`
	BucketType           string `json:"bucketType"`
	MemoryAllocationInMb int64  `json:"memoryAllocationInMb"`
	Replicas             int64  `json:"replicas"`
	Flush                bool   `json:"flush"`
	DurabilityLevel      string `json:"durabilityLevel"`
	TimeToLiveInSeconds  int64  `json:"timeToLiveInSeconds"`
	Status               string `json:"status,omitempty"`
}

func (b *cloudBucketJSON) toBucketSettings() (BucketSettings, error) {
	settings := BucketSettings{Name: b.Name, FlushEnabled: b.Flush}
	if err := settings.validate(); err != nil {
		return settings, err
	}

	var err error
	if b.BucketType != "" {
		settings.BucketType, err = ParseBucketType(b.BucketType)
		if err != nil {
			return settings, &DeserializeError{Detail: err.Error()}
		}
	}
	settings.RAMQuotaMB, err = toUnsigned("memoryAllocationInMb", b.MemoryAllocationInMb)
	if err != nil {
		return settings, err
	}
	settings.NumReplicas, err = toUint32("replicas", b.Replicas)
	if err != nil {
		return settings, err
	}
	if b.DurabilityLevel != "" {
		settings.MinimumDurabilityLevel, err = ParseDurabilityLevel(b.DurabilityLevel)
		if err != nil {
			return settings, &DeserializeError{Detail: err.Error()}
		}
	}
	ttl, err := toUnsigned("timeToLiveInSeconds", b.TimeToLiveInSeconds)
	if err != nil {
		return settings, err
	}
	settings.MaxExpiry, err = secondsToDuration("timeToLiveInSeconds", ttl)
	if err != nil {
		return settings, err
	}
	if b.Status != "" {
		status := b.Status
		settings.Status = &status
	}
	return settings, nil
}

func makeCloudBucketJSON(settings *BucketSettings) cloudBucketJSON {
	b := cloudBucketJSON{
		Name:                 settings.Name,
		BucketType:           settings.BucketType.String(),
		MemoryAllocationInMb: int64(settings.RAMQuotaMB),
		Replicas:             int64(settings.NumReplicas),
		Flush:                settings.FlushEnabled,
		DurabilityLevel:      settings.MinimumDurabilityLevel.String(),
		TimeToLiveInSeconds:  int64(settings.MaxExpiry / time.Second),
	}
	if settings.Status != nil {
		b.Status = *settings.Status
	}
	return b
}

// cloudBucketCollection is the Capella bucket collection of one cluster.
// Elements are kept raw so buckets that are not edited are written back
// unchanged, including fields this client does not model.
type cloudBucketCollection []json.RawMessage

func decodeCloudBucketCollection(content string) (cloudBucketCollection, error) {
	var collection cloudBucketCollection
	if err := json.Unmarshal([]byte(content), &collection); err != nil {
		return nil, &DeserializeError{Detail: err.Error()}
	}
	if collection == nil {
		collection = cloudBucketCollection{}
	}
	return collection, nil
}

// settings decodes every element of the collection
func (c cloudBucketCollection) settings() ([]BucketSettings, error) {
	all := make([]BucketSettings, 0, len(c))
	for _, raw := range c {
		var b cloudBucketJSON
		if err := json.Unmarshal(raw, &b); err != nil {
			return nil, &DeserializeError{Detail: err.Error()}
		}
		s, err := b.toBucketSettings()
		if err != nil {
			return nil, err
		}
		all = append(all, s)
	}
	return all, nil
}

// indexOf returns the position of the bucket with exactly the given name
func (c cloudBucketCollection) indexOf(name string) (int, error) {
	var decodeErr error
	idx := slices.IndexFunc(c, func(raw json.RawMessage) bool {
		var b struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(raw, &b); err != nil {
			decodeErr = err
			return false
		}
		return b.Name == name
	})
	if idx < 0 {
		if decodeErr != nil {
			return idx, &DeserializeError{Detail: decodeErr.Error()}
		}
		return idx, &BucketNotFoundError{Name: name}
	}
	return idx, nil
}

// replaceBucket removes the named bucket, applies the edit to it and appends
// the result to the end of the collection. The remaining buckets keep their
// relative order. The edited settings are returned together with the new
// collection; c itself is left untouched.
func (c cloudBucketCollection) replaceBucket(name string, edit *BucketSettingsEdit) (cloudBucketCollection, BucketSettings, error) {
	idx, err := c.indexOf(name)
	if err != nil {
		return nil, BucketSettings{}, err
	}

	var b cloudBucketJSON
	if err = json.Unmarshal(c[idx], &b); err != nil {
		return nil, BucketSettings{}, &DeserializeError{Detail: err.Error()}
	}
	settings, err := b.toBucketSettings()
	if err != nil {
		return nil, settings, err
	}
	edit.Apply(&settings)

	updated, err := mergeCloudBucket(c[idx], &settings)
	if err != nil {
		return nil, settings, err
	}

	result := slices.Clone(c)
	result = slices.Delete(result, idx, idx+1)
	result = append(result, updated)
	return result, settings, nil
}

// mergeCloudBucket writes the modelled fields of settings over the original
// element, keeping every other field as it was.
func mergeCloudBucket(original json.RawMessage, settings *BucketSettings) (json.RawMessage, error) {
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(original, &fields); err != nil {
		return nil, &DeserializeError{Detail: err.Error()}
	}

	modelled, err := json.Marshal(makeCloudBucketJSON(settings))
	if err != nil {
		return nil, &SerializeError{Detail: err.Error()}
	}
	overrides := map[string]json.RawMessage{}
	if err = json.Unmarshal(modelled, &overrides); err != nil {
		return nil, &SerializeError{Detail: err.Error()}
	}
	for k, v := range overrides {
		fields[k] = v
	}

	merged, err := json.Marshal(fields)
	if err != nil {
		return nil, &SerializeError{Detail: err.Error()}
	}
	return merged, nil
}

func (c cloudBucketCollection) encode() (string, error) {
	content, err := json.Marshal(c)
	if err != nil {
		return "", &SerializeError{Detail: err.Error()}
	}
	return string(content), nil
}
