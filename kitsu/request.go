package kitsu

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// APIURL is the root of the Kitsu edge API
const APIURL = "https://kitsu.io/api/edge"

// defaultChunkSize is the read size used by the asynchronous backend
const defaultChunkSize = 32 * 1024

// target joins base, path and an encoded query into an absolute URL.
// The "?" separator is only added for a non-empty query.
func target(base, path, rawQuery string) (*url.URL, error) {
	raw := base + path
	if rawQuery != "" {
		raw += "?" + rawQuery
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, invalidURLError(raw, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, invalidURLError(raw, fmt.Errorf("not an absolute url"))
	}

	return u, nil
}

// newRequest creates the GET request for u. No headers are added.
// A nil ctx is treated as context.Background().
func newRequest(ctx context.Context, u *url.URL) (*http.Request, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, invalidURLError(u.String(), err)
	}
	return req, nil
}

// readAll buffers the whole body in a single blocking call.
// Like readChunks it gives up before reading once ctx is done.
func readAll(ctx context.Context, resp *http.Response) (*RawResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return newRawResponse(resp, body), nil
}

// readChunks assembles the body chunk by chunk, checking ctx between reads
func readChunks(ctx context.Context, resp *http.Response, chunkSize int) (*RawResponse, error) {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}

	var body []byte
	if resp.ContentLength > 0 {
		body = make([]byte, 0, resp.ContentLength)
	}

	chunk := make([]byte, chunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		n, err := resp.Body.Read(chunk)
		body = append(body, chunk[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read response body: %w", err)
		}
	}

	return newRawResponse(resp, body), nil
}

func newRawResponse(resp *http.Response, body []byte) *RawResponse {
	if body == nil {
		body = []byte{}
	}
	return &RawResponse{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header,
		Body:       body,
	}
}

// envelope is the undecoded top-level document
type envelope struct {
	Data     json.RawMessage `json:"data"`
	Included []Included      `json:"included"`
	Links    Links           `json:"links"`
	Meta     Meta            `json:"meta"`
}

func parseEnvelope(body []byte) (*envelope, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, err
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, fmt.Errorf("document is missing required field %q", "data")
	}
	return &env, nil
}

// decodeOne decodes a single-resource document
func decodeOne[T resource](body []byte) (*Response[T], error) {
	env, err := parseEnvelope(body)
	if err != nil {
		return nil, err
	}

	var data T
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, err
	}
	if err := data.validate(); err != nil {
		return nil, err
	}

	return &Response[T]{Data: data, Included: env.Included, Links: env.Links, Meta: env.Meta}, nil
}

// decodeMany decodes a collection document, keeping the order of the array
func decodeMany[T resource](body []byte) (*Response[[]T], error) {
	env, err := parseEnvelope(body)
	if err != nil {
		return nil, err
	}

	var data []T
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, err
	}
	if data == nil {
		data = []T{}
	}
	for i, item := range data {
		if err := item.validate(); err != nil {
			return nil, fmt.Errorf("data[%d]: %w", i, err)
		}
	}

	return &Response[[]T]{Data: data, Included: env.Included, Links: env.Links, Meta: env.Meta}, nil
}

// call describes one logical operation: where to send it and how to decode it
type call[T any] struct {
	path   string
	query  string
	decode func([]byte) (*T, error)
}

func getCall[T resource](family Family, id uint64) call[Response[T]] {
	return call[Response[T]]{path: family.ItemPath(id), decode: decodeOne[T]}
}

func searchCall[T resource](family Family, configure SearchFunc) call[Response[[]T]] {
	return call[Response[[]T]]{path: family.Path(), query: configure.apply(), decode: decodeMany[T]}
}

// finish classifies a read response and decodes it on success
func finish[T any](c call[T], u string, raw *RawResponse) (*T, error) {
	if err := classifyStatus(u, raw); err != nil {
		return nil, err
	}

	out, err := c.decode(raw.Body)
	if err != nil {
		return nil, decodeError(u, err)
	}
	return out, nil
}
