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
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/couchbaselabs/cbadmin/cbadminops/vlog"
)

// httpAdapter sends a request with one http client and classifies the
// response
type httpAdapter struct {
	client *http.Client
	logger vlog.Printer
}

func makeHTTPAdapter(client *http.Client, logger vlog.Printer) httpAdapter {
	return httpAdapter{client: client, logger: logger}
}

func makeDefaultHTTPClient(acceptAllCerts bool) *http.Client {
	if !acceptAllCerts {
		return &http.Client{}
	}
	// self-signed cluster certificates are common on-prem
	//nolint:gosec
	return &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: true,
			},
		},
	}
}

// sendRequest performs exactly one HTTP call. parent is the caller's
// context; reqCtx is parent bounded by the request deadline. Comparing the
// two tells a cancellation from a timeout.
func (adapter *httpAdapter) sendRequest(parent, reqCtx context.Context, request *hostHTTPRequest) hostHTTPResult {
	if parent.Err() != nil {
		return adapter.makeExceptionResult(ErrCancelled)
	}

	requestURL := request.buildURL()
	adapter.logger.Info("Request URL", "method", request.Method, "url", requestURL)

	var requestBody io.Reader
	if request.RequestData == "" {
		requestBody = http.NoBody
	} else {
		requestBody = bytes.NewBufferString(request.RequestData)
	}

	req, err := http.NewRequestWithContext(reqCtx, request.Method, requestURL, requestBody)
	if err != nil {
		return adapter.makeExceptionResult(&TransportError{
			Detail: fmt.Sprintf("fail to build request %s, details %s", request, err.Error()),
			Err:    err,
		})
	}
	if request.ContentType != "" {
		req.Header.Set("Content-Type", request.ContentType)
	}
	for key, value := range request.Headers {
		req.Header.Set(key, value)
	}
	if request.Password != nil {
		req.SetBasicAuth(request.Username, *request.Password)
	}

	resp, err := adapter.client.Do(req)
	if err != nil {
		return adapter.makeExceptionResult(adapter.classifyTransportError(parent, reqCtx, request, err))
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return adapter.makeExceptionResult(adapter.classifyTransportError(parent, reqCtx, request, err))
	}

	return adapter.processResult(resp.StatusCode, string(bodyBytes))
}

func (adapter *httpAdapter) classifyTransportError(parent, reqCtx context.Context,
	request *hostHTTPRequest, err error) error {
	if errors.Is(parent.Err(), context.Canceled) {
		return ErrCancelled
	}
	if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
		return &TransportError{
			Detail: fmt.Sprintf("request %s did not complete within %s", request, request.Timeout),
			Err:    err,
		}
	}
	return &TransportError{
		Detail: fmt.Sprintf("fail to send request %s, details %s", request, err.Error()),
		Err:    err,
	}
}

// processResult treats 200, 201 and 202 as success and everything else as
// an unexpected status code
func (adapter *httpAdapter) processResult(statusCode int, body string) hostHTTPResult {
	if isSuccessStatusCode(statusCode) {
		return adapter.makeSuccessResult(body, statusCode)
	}
	return adapter.makeFailResult(body, statusCode)
}

func isSuccessStatusCode(statusCode int) bool {
	switch statusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted:
		return true
	}
	return false
}

func (adapter *httpAdapter) makeSuccessResult(content string, statusCode int) hostHTTPResult {
	return hostHTTPResult{
		status:     SUCCESS,
		statusCode: statusCode,
		content:    content,
	}
}

func (adapter *httpAdapter) makeExceptionResult(err error) hostHTTPResult {
	return hostHTTPResult{
		status: EXCEPTION,
		err:    err,
	}
}

func (adapter *httpAdapter) makeFailResult(content string, statusCode int) hostHTTPResult {
	return hostHTTPResult{
		status:     FAILURE,
		statusCode: statusCode,
		content:    content,
		err:        &UnexpectedStatusCodeError{Code: statusCode, Body: content},
	}
}
