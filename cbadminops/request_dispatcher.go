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
	"context"
	"net/http"

	"github.com/couchbaselabs/cbadmin/cbadminops/vlog"
)

// requestDispatcher sends management requests. It computes a fresh deadline
// for every request and never retries.
type requestDispatcher struct {
	logger vlog.Printer
	pool   adapterPool
}

func makeHTTPRequestDispatcher(logger vlog.Printer) requestDispatcher {
	return requestDispatcher{
		logger: logger.WithName("HTTPRequestDispatcher"),
		pool:   makeAdapterPool(logger),
	}
}

func (dispatcher *requestDispatcher) sendRequest(ctx context.Context, request *hostHTTPRequest) hostHTTPResult {
	reqCtx := ctx
	if request.Timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, request.Timeout)
		defer cancel()
	}

	adapter := dispatcher.pool.getAdapter(request)
	result := adapter.sendRequest(ctx, reqCtx, request)
	dispatcher.logger.V(1).Info("Request done", "request", request.String(),
		"status", result.status.getStatusString(), "statusCode", result.statusCode)
	return result
}

// adapterPool keeps one adapter per http client so connections are reused
// across requests to the same kind of endpoint
type adapterPool struct {
	logger   vlog.Printer
	adapters map[*http.Client]*httpAdapter
	verified *http.Client
	insecure *http.Client
}

func makeAdapterPool(logger vlog.Printer) adapterPool {
	return adapterPool{
		logger:   logger,
		adapters: make(map[*http.Client]*httpAdapter),
		verified: makeDefaultHTTPClient(false),
		insecure: makeDefaultHTTPClient(true),
	}
}

func (pool *adapterPool) getAdapter(request *hostHTTPRequest) *httpAdapter {
	client := request.Client
	if client == nil {
		client = pool.verified
		if request.TLSAcceptAllCerts {
			client = pool.insecure
		}
	}
	adapter, ok := pool.adapters[client]
	if !ok {
		a := makeHTTPAdapter(client, pool.logger)
		adapter = &a
		pool.adapters[client] = adapter
	}
	return adapter
}
