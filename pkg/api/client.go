package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"

	"github.com/questx-lab/questkit/pkg/errorx"
	"github.com/questx-lab/questkit/pkg/xcontext"
)

type Client interface {
	Header(name, value string) Client
	Query(query Parameter) Client
	Body(body Body) Client
	POST(ctx context.Context, opts ...Opt) (*Response, error)
	GET(ctx context.Context, opts ...Opt) (*Response, error)
	PUT(ctx context.Context, opts ...Opt) (*Response, error)
}

type Generator interface {
	New(path string, args ...any) Client
}

type defaultGenerator struct {
	domains []string
	opts    []Opt
}

// NewGenerator returns a generator of clients which call the domains in a
// random order until one of them responds. The options are applied to every
// request.
func NewGenerator(domains []string, opts ...Opt) *defaultGenerator {
	return &defaultGenerator{domains: domains, opts: opts}
}

func (g *defaultGenerator) New(path string, args ...any) Client {
	return &defaultClient{
		domains: g.domains,
		opts:    g.opts,
		path:    fmt.Sprintf(path, args...),
		headers: make(http.Header),
	}
}

type Body interface {
	ToReader() (io.Reader, string, error)
}

type Opt interface {
	Do(defaultClient, *http.Request)
}

type defaultClient struct {
	domains []string
	opts    []Opt
	method  string
	path    string
	headers http.Header
	query   Parameter
	body    Body
}

func (c *defaultClient) Header(name, value string) Client {
	c.headers[name] = []string{value}
	return c
}

func (c *defaultClient) Query(query Parameter) Client {
	c.query = query
	return c
}

func (c *defaultClient) Body(body Body) Client {
	c.body = body
	return c
}

func (c *defaultClient) POST(ctx context.Context, opts ...Opt) (*Response, error) {
	c.method = http.MethodPost
	return c.call(ctx, opts...)
}

func (c *defaultClient) GET(ctx context.Context, opts ...Opt) (*Response, error) {
	c.method = http.MethodGet
	return c.call(ctx, opts...)
}

func (c *defaultClient) PUT(ctx context.Context, opts ...Opt) (*Response, error) {
	c.method = http.MethodPut
	return c.call(ctx, opts...)
}

// call sends the request to the domains in a random order. A domain which
// cannot be reached or responds with a server error is skipped; any other
// response is returned as is.
func (c *defaultClient) call(ctx context.Context, opts ...Opt) (*Response, error) {
	var payload []byte
	var contentType string
	if c.body != nil {
		reader, ct, err := c.body.ToReader()
		if err != nil {
			return nil, err
		}

		payload, err = io.ReadAll(reader)
		if err != nil {
			return nil, err
		}
		contentType = ct
	}

	var lastResponse *Response
	perm := rand.Perm(len(c.domains))
	for _, index := range perm {
		url := c.domains[index] + c.path
		if c.query != nil {
			url = url + "?" + c.query.Encode()
		}

		req, err := http.NewRequestWithContext(ctx, c.method, url, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}

		if contentType != "" {
			req.Header.Add("Content-type", contentType)
		}
		for h, values := range c.headers {
			for _, v := range values {
				req.Header.Add(h, v)
			}
		}

		for _, opt := range c.opts {
			opt.Do(*c, req)
		}
		for _, opt := range opts {
			opt.Do(*c, req)
		}

		result, err := xcontext.HTTPClient(ctx).Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}

			xcontext.Logger(ctx).Warnf("An error occured when calling to %s: %v", url, err)
			continue
		}

		body, err := io.ReadAll(result.Body)
		result.Body.Close()
		if err != nil {
			xcontext.Logger(ctx).Warnf("An error occured when reading body of %s: %v", url, err)
			continue
		}

		response := &Response{
			Code:    result.StatusCode,
			Header:  result.Header,
			RawBody: body,
		}

		if len(body) == 0 {
			response.Body = JSON{}
		} else if b, err := bytesToJSON(body); err == nil {
			response.Body = b
		} else if b, err := bytesToArray(body); err == nil {
			response.Body = b
		}

		if result.StatusCode >= http.StatusInternalServerError {
			xcontext.Logger(ctx).Warnf("Server error when calling to %s: %d", url, result.StatusCode)
			lastResponse = response
			continue
		}

		return response, nil
	}

	if lastResponse != nil {
		return lastResponse, nil
	}

	return nil, errorx.New(errorx.Unavailable, "All endpoints got errors")
}
