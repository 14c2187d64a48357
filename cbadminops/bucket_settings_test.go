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
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }

func boolPtr(b bool) *bool { return &b }

func sampleSettings() BucketSettings {
	return BucketSettings{
		Name:                   "travel-sample",
		BucketType:             CouchbaseBucket,
		NumReplicas:            2,
		RAMQuotaMB:             256,
		FlushEnabled:           true,
		MinimumDurabilityLevel: DurabilityMajorityAndPersistActive,
		MaxExpiry:              3600 * time.Second,
		Status:                 strPtr("healthy"),
	}
}

func TestParseDurabilityLevel(t *testing.T) {
	cases := map[string]DurabilityLevel{
		"one":                      DurabilityNone,
		"none":                     DurabilityNone,
		"majority":                 DurabilityMajority,
		"majorityAndPersistActive": DurabilityMajorityAndPersistActive,
		"persistToMajority":        DurabilityPersistToMajority,
	}
	for input, expected := range cases {
		level, err := ParseDurabilityLevel(input)
		assert.NoError(t, err, input)
		assert.Equal(t, expected, level, input)
	}

	// matching is case sensitive
	for _, input := range []string{"Majority", "MAJORITY", "two", ""} {
		_, err := ParseDurabilityLevel(input)
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr, input)
		assert.Equal(t, "durability", parseErr.Field)
		assert.Equal(t, input, parseErr.Value)
		assert.Equal(t, []string{"one", "majority", "majorityAndPersistActive", "persistToMajority"}, parseErr.Allowed)
	}
}

func TestParseBucketType(t *testing.T) {
	bucketType, err := ParseBucketType("membase")
	assert.NoError(t, err)
	assert.Equal(t, CouchbaseBucket, bucketType)

	bucketType, err = ParseBucketType("ephemeral")
	assert.NoError(t, err)
	assert.Equal(t, EphemeralBucket, bucketType)

	_, err = ParseBucketType("magma")
	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestOnPremRoundTrip(t *testing.T) {
	settings := []BucketSettings{
		sampleSettings(),
		{Name: "cache", BucketType: MemcachedBucket, RAMQuotaMB: 100},
		{Name: "sessions", BucketType: EphemeralBucket, NumReplicas: 1, RAMQuotaMB: 512,
			MinimumDurabilityLevel: DurabilityMajority},
	}
	for i := range settings {
		content, err := encodeOnPremBucket(&settings[i])
		require.NoError(t, err)
		decoded, err := decodeOnPremBucket(content)
		require.NoError(t, err)
		assert.Equal(t, settings[i], decoded)
	}
}

func TestCloudRoundTrip(t *testing.T) {
	settings := []BucketSettings{
		sampleSettings(),
		{Name: "cache", BucketType: EphemeralBucket, RAMQuotaMB: 100, MinimumDurabilityLevel: DurabilityPersistToMajority},
	}
	for i := range settings {
		content, err := json.Marshal(makeCloudBucketJSON(&settings[i]))
		require.NoError(t, err)
		var b cloudBucketJSON
		require.NoError(t, json.Unmarshal(content, &b))
		decoded, err := b.toBucketSettings()
		require.NoError(t, err)
		assert.Equal(t, settings[i], decoded)
	}
}

func TestDecodeOnPremBucket(t *testing.T) {
	content := `{
		"name": "travel-sample",
		"bucketType": "membase",
		"replicaNumber": 1,
		"quota": {"ram": 209715200, "rawRAM": 209715200},
		"controllers": {"compactAll": "/pools/default/buckets/travel-sample/controller/compactBucket"},
		"durabilityMinLevel": "majority",
		"maxTTL": 60,
		"nodes": [{"status": "warmup"}, {"status": "healthy"}]
	}`
	settings, err := decodeOnPremBucket(content)
	require.NoError(t, err)
	assert.Equal(t, "travel-sample", settings.Name)
	assert.Equal(t, CouchbaseBucket, settings.BucketType)
	assert.Equal(t, uint32(1), settings.NumReplicas)
	assert.Equal(t, uint64(200), settings.RAMQuotaMB)
	assert.False(t, settings.FlushEnabled)
	assert.Equal(t, DurabilityMajority, settings.MinimumDurabilityLevel)
	assert.Equal(t, time.Minute, settings.MaxExpiry)
	assert.Equal(t, "warmup", settings.StatusString())
}

func TestDecodeRejectsNegativeValues(t *testing.T) {
	var deserializeErr *DeserializeError

	_, err := decodeOnPremBucket(`{"name":"b","bucketType":"membase","replicaNumber":-1,"quota":{"rawRAM":1}}`)
	assert.ErrorAs(t, err, &deserializeErr)

	_, err = decodeOnPremBucket(`{"name":"b","bucketType":"membase","quota":{"rawRAM":-5}}`)
	assert.ErrorAs(t, err, &deserializeErr)

	collection, err := decodeCloudBucketCollection(`[{"name":"b","memoryAllocationInMb":100,"timeToLiveInSeconds":-1}]`)
	require.NoError(t, err)
	_, err = collection.settings()
	assert.ErrorAs(t, err, &deserializeErr)

	_, err = decodeOnPremBucket(`{"bucketType":"membase"}`)
	assert.ErrorAs(t, err, &deserializeErr)

	_, err = decodeOnPremBucket(`not json`)
	assert.ErrorAs(t, err, &deserializeErr)
}

func TestEncodeOnPremBucketForm(t *testing.T) {
	settings := sampleSettings()
	body, err := encodeOnPremBucketForm(&settings)
	require.NoError(t, err)
	values, err := url.ParseQuery(body)
	require.NoError(t, err)
	assert.Equal(t, "256", values.Get("ramQuotaMB"))
	assert.Equal(t, "2", values.Get("replicaNumber"))
	assert.Equal(t, "1", values.Get("flushEnabled"))
	assert.Equal(t, "majorityAndPersistActive", values.Get("durabilityMinLevel"))
	assert.Equal(t, "3600", values.Get("maxTTL"))
	// the form cannot rename or retype a bucket
	assert.False(t, values.Has("name"))
	assert.False(t, values.Has("bucketType"))

	memcached := BucketSettings{Name: "cache", BucketType: MemcachedBucket, RAMQuotaMB: 100}
	body, err = encodeOnPremBucketForm(&memcached)
	require.NoError(t, err)
	values, err = url.ParseQuery(body)
	require.NoError(t, err)
	assert.Equal(t, "100", values.Get("ramQuotaMB"))
	assert.Equal(t, "0", values.Get("flushEnabled"))
	assert.False(t, values.Has("replicaNumber"))
	assert.False(t, values.Has("durabilityMinLevel"))
	assert.False(t, values.Has("maxTTL"))
}

func TestMakeBucketSettingsEdit(t *testing.T) {
	edit, err := MakeBucketSettingsEdit(BucketEditInput{
		RAMQuotaMB:    int64Ptr(1024),
		FlushEnabled:  boolPtr(false),
		Durability:    strPtr("persistToMajority"),
		ExpirySeconds: int64Ptr(90),
	})
	require.NoError(t, err)
	assert.False(t, edit.IsEmpty())
	assert.Nil(t, edit.NumReplicas)

	settings := sampleSettings()
	edit.Apply(&settings)
	assert.Equal(t, uint64(1024), settings.RAMQuotaMB)
	assert.Equal(t, uint32(2), settings.NumReplicas)
	assert.False(t, settings.FlushEnabled)
	assert.Equal(t, DurabilityPersistToMajority, settings.MinimumDurabilityLevel)
	assert.Equal(t, 90*time.Second, settings.MaxExpiry)
	assert.Equal(t, []string{"durability", "expiry", "flush"}, edit.HostedRestrictedFields())

	var parseErr *ParseError
	_, err = MakeBucketSettingsEdit(BucketEditInput{NumReplicas: int64Ptr(-1)})
	assert.ErrorAs(t, err, &parseErr)
	_, err = MakeBucketSettingsEdit(BucketEditInput{ExpirySeconds: int64Ptr(-10)})
	assert.ErrorAs(t, err, &parseErr)
	_, err = MakeBucketSettingsEdit(BucketEditInput{Durability: strPtr("all")})
	assert.ErrorAs(t, err, &parseErr)
}

func TestEditRejectsOutOfRangeValues(t *testing.T) {
	tests := []struct {
		name    string
		input   BucketEditInput
		field   string
		allowed string
	}{
		{"negative ram", BucketEditInput{RAMQuotaMB: int64Ptr(-1)}, "ram",
			fmt.Sprintf("an integer from 0 to %d", maxRAMQuotaMB)},
		{"ram beyond the byte count", BucketEditInput{RAMQuotaMB: int64Ptr(maxRAMQuotaMB + 1)}, "ram",
			fmt.Sprintf("an integer from 0 to %d", maxRAMQuotaMB)},
		{"negative replicas", BucketEditInput{NumReplicas: int64Ptr(-1)}, "replicas",
			"an integer from 0 to 4294967295"},
		{"too many replicas", BucketEditInput{NumReplicas: int64Ptr(1 << 32)}, "replicas",
			"an integer from 0 to 4294967295"},
		{"negative expiry", BucketEditInput{ExpirySeconds: int64Ptr(-10)}, "expiry",
			fmt.Sprintf("an integer from 0 to %d", maxExpirySeconds)},
		{"expiry beyond a duration", BucketEditInput{ExpirySeconds: int64Ptr(10_000_000_000)}, "expiry",
			fmt.Sprintf("an integer from 0 to %d", maxExpirySeconds)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MakeBucketSettingsEdit(tt.input)
			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tt.field, parseErr.Field)
			assert.Equal(t, []string{tt.allowed}, parseErr.Allowed)
		})
	}
}

func TestEditAcceptsUpperBounds(t *testing.T) {
	edit, err := MakeBucketSettingsEdit(BucketEditInput{
		RAMQuotaMB:    int64Ptr(maxRAMQuotaMB),
		ExpirySeconds: int64Ptr(maxExpirySeconds),
	})
	require.NoError(t, err)

	settings := sampleSettings()
	edit.Apply(&settings)
	assert.Positive(t, settings.MaxExpiry)

	// the largest values still survive both wire formats
	content, err := encodeOnPremBucket(&settings)
	require.NoError(t, err)
	decoded, err := decodeOnPremBucket(content)
	require.NoError(t, err)
	assert.Equal(t, settings, decoded)

	raw, err := json.Marshal(makeCloudBucketJSON(&settings))
	require.NoError(t, err)
	collection, err := decodeCloudBucketCollection("[" + string(raw) + "]")
	require.NoError(t, err)
	cloudSettings, err := collection.settings()
	require.NoError(t, err)
	assert.Equal(t, []BucketSettings{settings}, cloudSettings)
}

func TestDecodeRejectsOutOfRangeExpiry(t *testing.T) {
	var deserializeErr *DeserializeError

	_, err := decodeOnPremBucket(`{"name":"b","bucketType":"membase","quota":{"rawRAM":1},"maxTTL":10000000000}`)
	assert.ErrorAs(t, err, &deserializeErr)

	collection, err := decodeCloudBucketCollection(`[{"name":"b","memoryAllocationInMb":100,"timeToLiveInSeconds":10000000000}]`)
	require.NoError(t, err)
	_, err = collection.settings()
	assert.ErrorAs(t, err, &deserializeErr)

	settings, err := decodeOnPremBucket(fmt.Sprintf(
		`{"name":"b","bucketType":"membase","quota":{"rawRAM":1},"maxTTL":%d}`, maxExpirySeconds))
	require.NoError(t, err)
	assert.Equal(t, time.Duration(maxExpirySeconds)*time.Second, settings.MaxExpiry)
}

func TestEmptyEditIsIdentity(t *testing.T) {
	edit, err := MakeBucketSettingsEdit(BucketEditInput{})
	require.NoError(t, err)
	assert.True(t, edit.IsEmpty())
	assert.Empty(t, edit.HostedRestrictedFields())
	assert.NoError(t, edit.checkHostedCapability("hosted"))

	settings := sampleSettings()
	edit.Apply(&settings)
	assert.Equal(t, sampleSettings(), settings)
}

func TestHostedCapability(t *testing.T) {
	edit, err := MakeBucketSettingsEdit(BucketEditInput{RAMQuotaMB: int64Ptr(512), NumReplicas: int64Ptr(1)})
	require.NoError(t, err)
	assert.NoError(t, edit.checkHostedCapability("c1"))

	edit, err = MakeBucketSettingsEdit(BucketEditInput{FlushEnabled: boolPtr(true)})
	require.NoError(t, err)
	var conflict *CapabilityConflictError
	require.ErrorAs(t, edit.checkHostedCapability("c1"), &conflict)
	assert.Contains(t, conflict.Reason, "flush")
}

func TestReplaceCloudBucket(t *testing.T) {
	content := `[
		{"name":"A","bucketType":"couchbase","memoryAllocationInMb":100,"replicas":1,"flush":false,"durabilityLevel":"none","timeToLiveInSeconds":0,"status":"healthy"},
		{"name":"B","bucketType":"couchbase","memoryAllocationInMb":200,"replicas":1,"flush":false,"durabilityLevel":"none","timeToLiveInSeconds":0,"storageBackend":"magma"},
		{"name":"C","bucketType":"ephemeral","memoryAllocationInMb":300,"replicas":0,"flush":true,"durabilityLevel":"majority","timeToLiveInSeconds":10}
	]`
	collection, err := decodeCloudBucketCollection(content)
	require.NoError(t, err)

	edit, err := MakeBucketSettingsEdit(BucketEditInput{RAMQuotaMB: int64Ptr(1024)})
	require.NoError(t, err)
	updated, settings, err := collection.replaceBucket("B", &edit)
	require.NoError(t, err)
	assert.Equal(t, uint64(1024), settings.RAMQuotaMB)

	// the input collection is left untouched
	original, err := collection.settings()
	require.NoError(t, err)
	assert.Equal(t, uint64(200), original[1].RAMQuotaMB)

	all, err := updated.settings()
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "A", all[0].Name)
	assert.Equal(t, "C", all[1].Name)
	assert.Equal(t, "B", all[2].Name)
	assert.Equal(t, uint64(1024), all[2].RAMQuotaMB)
	assert.Equal(t, original[0], all[0])
	assert.Equal(t, original[2], all[1])

	// fields the client does not model survive the edit
	var fields map[string]any
	require.NoError(t, json.Unmarshal(updated[2], &fields))
	assert.Equal(t, "magma", fields["storageBackend"])

	_, _, err = collection.replaceBucket("b", &edit)
	var notFound *BucketNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "b", notFound.Name)
}
