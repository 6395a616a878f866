package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/RjRDRG/sd2021-tp1/service"
)

// Remote call timeouts. Connect establishment gets a little longer than the
// reply wait; calls are single-shot over REST.
const (
	ConnectTimeout = 1000 * time.Millisecond
	ReplyTimeout   = 600 * time.Millisecond
)

// newHTTPClient builds the http.Client shared by the REST clients.
func newHTTPClient() *http.Client {
	dialer := &net.Dialer{Timeout: ConnectTimeout}
	return &http.Client{
		Transport: &http.Transport{
			DialContext:           dialer.DialContext,
			ResponseHeaderTimeout: ReplyTimeout,
		},
	}
}

// restClient is the piece shared by the users and spreadsheets REST clients:
// a base endpoint URI (".../rest") and JSON request/response plumbing that
// converts remote failures into the service error taxonomy.
type restClient struct {
	base string
	hc   *http.Client
}

func newRESTClient(endpointURI string) restClient {
	return restClient{base: endpointURI, hc: newHTTPClient()}
}

// call performs one HTTP exchange. A nil in skips the request body; a nil
// out discards the response body. Transport failures come back as
// remote_unavailable; error payloads are decoded back into ServiceError.
func (rc restClient) call(ctx context.Context, method, path string, query url.Values, in, out any) error {
	u := rc.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return service.NewInternalServerError("cannot encode request body", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return service.NewInternalServerError("cannot build request", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := rc.hc.Do(req)
	if err != nil {
		return service.NewRemoteUnavailableError("remote call failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return service.NewInternalServerError("cannot decode response body", err)
		}
		return nil
	}

	return decodeErrorResponse(resp)
}

// decodeErrorResponse rebuilds the ServiceError a remote handler emitted.
// Unparseable bodies fall back to a status-code based classification so
// callers still get a taxonomy code.
func decodeErrorResponse(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	var er service.ErrResponse
	if err := json.Unmarshal(raw, &er); err == nil && er.Error != nil && service.KnownErrorCode(er.Error.Code) {
		return er.Error
	}

	msg := fmt.Sprintf("remote returned status %d", resp.StatusCode)
	switch resp.StatusCode {
	case http.StatusBadRequest:
		return service.NewBadParameterError(msg, nil)
	case http.StatusNotFound:
		return service.NewEntityNotFoundError(msg, nil)
	case http.StatusForbidden:
		return service.NewForbiddenError(msg, nil)
	case http.StatusConflict:
		return service.NewConflictError(msg, nil)
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return service.NewRemoteUnavailableError(msg, nil)
	default:
		return service.NewInternalServerError(msg, nil)
	}
}
