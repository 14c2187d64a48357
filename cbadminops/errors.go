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
	"errors"
	"fmt"
	"strings"
)

// Errors returned by the cbadminops library. Each type carries enough detail
// (identifier, bucket name, field, status code, body) for a caller to render
// a precise message without re-deriving context.

var (
	// ErrCancelled is returned when the caller's context was cancelled while a
	// request was pending.
	ErrCancelled = errors.New("operation cancelled")
	// ErrNoTargetCluster is returned when a command names no cluster and no
	// active cluster is set.
	ErrNoTargetCluster = errors.New("no cluster identifier given and no active cluster set")
)

type ClusterNotFoundError struct {
	Identifier string
}

func (e *ClusterNotFoundError) Error() string {
	return fmt.Sprintf("cluster %q not found", e.Identifier)
}

type BucketNotFoundError struct {
	Name string
}

func (e *BucketNotFoundError) Error() string {
	return fmt.Sprintf("bucket %q not found", e.Name)
}

// CapabilityConflictError is returned before any request is sent when the
// requested change is not supported by the target cluster.
type CapabilityConflictError struct {
	Reason string
}

func (e *CapabilityConflictError) Error() string {
	return "capability conflict: " + e.Reason
}

type ParseError struct {
	Field   string
	Value   string
	Allowed []string
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("failed to parse %s %q", e.Field, e.Value)
	if len(e.Allowed) > 0 {
		msg += fmt.Sprintf(", allowed values for %s are %s", e.Field, strings.Join(e.Allowed, ", "))
	}
	return msg
}

type DeserializeError struct {
	Detail string
}

func (e *DeserializeError) Error() string {
	return "failed to deserialize response: " + e.Detail
}

type SerializeError struct {
	Detail string
}

func (e *SerializeError) Error() string {
	return "failed to serialize request: " + e.Detail
}

// UnexpectedStatusCodeError carries the response status code and body
// verbatim.
type UnexpectedStatusCodeError struct {
	Code int
	Body string
}

func (e *UnexpectedStatusCodeError) Error() string {
	return fmt.Sprintf("unexpected status code %d, body: %s", e.Code, e.Body)
}

// TransportError covers network failures and exceeded deadlines.
type TransportError struct {
	Detail string
	Err    error
}

func (e *TransportError) Error() string {
	return "transport error: " + e.Detail
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ClusterOpError records which cluster and which operation an error
// belongs to. Multi-cluster commands return the first one they hit.
type ClusterOpError struct {
	Identifier string
	Operation  string
	Err        error
}

func (e *ClusterOpError) Error() string {
	return fmt.Sprintf("[%s] cluster %s: %v", e.Operation, e.Identifier, e.Err)
}

func (e *ClusterOpError) Unwrap() error {
	return e.Err
}
