/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gregjones/httpcache"
	"github.com/mikeb26/pgnstandings/s3cache"
)

// NewCachedHttpClient returns an http.Client that caches via S3-backed
// httpcache. If the S3 cache cannot be initialized it falls back to an
// in-memory cache. An empty bucket selects the in-memory cache directly.
// It also enforces a client-side TTL by rewriting origin cache headers.
func NewCachedHttpClient(ctx context.Context, bucket string,
	maxAge time.Duration) *http.Client {

	var cache httpcache.Cache
	if bucket != "" {
		s3c := s3cache.New(ctx, bucket, s3cache.WithGzip(true),
			s3cache.WithKeyPrefix("rounds"))
		if err := s3c.Init(); err != nil {
			log.Printf("httpcache: warning failed to init S3 cache: %v; falling back to in-memory cache",
				err)
		} else {
			cache = s3c
		}
	}
	if cache == nil {
		cache = httpcache.NewMemoryCache()
	}

	hc := httpcache.NewTransport(cache)
	// we have to inject our own header overrides here in order to override
	// server responses that might indicate caching shouldn't be done
	hc.Transport = &HeaderOverrideTransport{
		wrappedRT: http.DefaultTransport,
		Request: func(req *http.Request) {
			if req.Header.Get("User-Agent") == "" {
				req.Header.Set("User-Agent", UserAgent)
			}
		},
		Response: func(resp *http.Response) error {
			// only successful responses are worth keeping around; a 404
			// for a round that has not been uploaded yet must not stick
			if resp.StatusCode != http.StatusOK {
				resp.Header.Set("Cache-Control", "no-store")
				return nil
			}
			resp.Header.Del("Pragma")
			resp.Header.Del("Expires")
			resp.Header.Del("Cache-Control")
			resp.Header.Set("Cache-Control",
				fmt.Sprintf("public, max-age=%d", int(maxAge/time.Second)))
			return nil
		},
	}

	return &http.Client{Transport: hc}
}

type HeaderOverrideTransport struct {
	Request  func(req *http.Request)
	Response func(resp *http.Response) error

	// Underlying RoundTripper (e.g. default transport or another decorator)
	wrappedRT http.RoundTripper
}

// RoundTrip applies Request and Response hooks around the underlying transport.
func (t *HeaderOverrideTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// clone so we don’t stomp on the caller’s original
	req2 := req.Clone(req.Context())
	if t.Request != nil {
		t.Request(req2)
	}

	rt := t.wrappedRT
	if rt == nil {
		rt = http.DefaultTransport
	}
	resp, err := rt.RoundTrip(req2)
	if err != nil {
		return nil, err
	}

	if t.Response != nil {
		if err := t.Response(resp); err != nil {
			resp.Body.Close()
			return nil, err
		}
	}
	return resp, nil
}
