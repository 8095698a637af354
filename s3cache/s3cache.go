/* Copyright (c) 2013 The s3cache AUTHORS. All rights reserved.
 * Copyright (c) 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file in the current directory for license terms
 *
 * Package s3cache provides an implementation of httpcache.Cache that stores and
 * retrieves data using Amazon S3. It is based on the original
 * github.com/sourcegraph/s3cache but updated to use the more modern
 * aws-sdk-go-v2 and golang standard library functions
 */
package s3cache

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

const rootPrefix = "s3cache"

// Cache objects store and retrieve data using Amazon S3.
type Cache struct {
	// Config is the Amazon S3 configuration.
	Config aws.Config

	// Client is the s3 client the cache should used when interacting with S3.
	// By default this is initialized in Init() with the default Config, but
	// callers can optionally override this with their own s3 client if desired.
	Client *s3.Client

	bucketName string

	// keyPrefix namespaces entries beneath /s3cache/ so several caches can
	// share one bucket
	keyPrefix string

	// gzip indicates whether cache entries should be gzipped in Set and
	// gunzipped in Get. If true, cache entry keys will have the suffix ".gz"
	// appended.
	gzip bool

	logErrors bool

	ctx context.Context
}

// Option customizes a Cache returned by New.
type Option func(*Cache)

// WithGzip controls whether entries are stored gzip compressed.
func WithGzip(enabled bool) Option {
	return func(c *Cache) { c.gzip = enabled }
}

// WithKeyPrefix places entries under /s3cache/<prefix>/.
func WithKeyPrefix(prefix string) Option {
	return func(c *Cache) { c.keyPrefix = prefix }
}

// WithErrorLogging controls whether S3 failures are logged. Cache misses are
// never logged.
func WithErrorLogging(enabled bool) Option {
	return func(c *Cache) { c.logErrors = enabled }
}

// New returns a new Cache with underlying storage in the specified Amazon S3
// bucket. Error logging is enabled by default. Callers should take care to
// invoke Init() on the returned Cache object before use.
func New(ctx context.Context, bucketName string, opts ...Option) *Cache {
	c := &Cache{
		ctx:        ctx,
		bucketName: bucketName,
		logErrors:  true,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Cache) Get(key string) ([]byte, bool) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(c.cacheKeyToObjectKey(key)),
	}

	resp, err := c.Client.GetObject(c.ctx, input)
	if err != nil {
		var apiErr smithy.APIError
		// no such key just indicates a cache miss
		if !(errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey") {
			c.logf("s3cache.get: failed to get object %v%v: %v", *input.Bucket,
				*input.Key, err)
		}
		return nil, false
	}
	defer resp.Body.Close()

	rdr := resp.Body
	if c.gzip {
		rdr, err = gzip.NewReader(rdr)
		if err != nil {
			c.logf("s3cache.get: failed to open compressed object %v%v: %v",
				*input.Bucket, *input.Key, err)
			return nil, false
		}
		defer rdr.Close()
	}
	data, err := io.ReadAll(rdr)
	if err != nil {
		c.logf("s3cache.get: failed to read object %v%v: %v", *input.Bucket,
			*input.Key, err)
		return nil, false
	}

	return data, true
}

// Set stores the provided data in the cache under the given key.
func (c *Cache) Set(key string, data []byte) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(c.cacheKeyToObjectKey(key)),
		Body:   bytes.NewReader(data),
	}

	if c.gzip {
		body, err := compress(data)
		if err != nil {
			c.logf("s3cache.set: failed to gzip data for %v%v: %v",
				*input.Bucket, *input.Key, err)
			return
		}
		input.Body = body
		input.ContentEncoding = aws.String("gzip")
	}

	if _, err := c.Client.PutObject(c.ctx, input); err != nil {
		c.logf("s3cache.set: put failed for %v%v: %v", *input.Bucket,
			*input.Key, err)
	}
}

func (c *Cache) Delete(key string) {
	input := &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(c.cacheKeyToObjectKey(key)),
	}

	if _, err := c.Client.DeleteObject(c.ctx, input); err != nil {
		c.logf("s3cache.delete: delete failed for %v%v: %v", *input.Bucket,
			*input.Key, err)
	}
}

// Init loads the default AWS configuration and verifies the bucket is
// reachable. The default configuration sources are:
// * Environment Variables (e.g. AWS_ACCESS_KEY_ID and AWS_SECRET_KEY)
// * Shared Configuration and Shared Credentials files.
// To use different credentials, modify the returned Cache object's
// Config and Client fields.
func (c *Cache) Init() error {
	var err error
	c.Config, err = config.LoadDefaultConfig(c.ctx)
	if err != nil {
		return fmt.Errorf("s3cache.init: failed to load AWS config: %w", err)
	}
	c.Client = s3.NewFromConfig(c.Config)

	if _, err = c.Client.HeadBucket(c.ctx, &s3.HeadBucketInput{
		Bucket: aws.String(c.bucketName),
	}); err != nil {
		return fmt.Errorf("s3cache.init: head bucket failed for %s: %w",
			c.bucketName, err)
	}

	if _, err = c.Client.ListObjectsV2(c.ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(c.bucketName),
		Prefix:  aws.String(c.objectPrefix()),
		MaxKeys: aws.Int32(1),
	}); err != nil {
		return fmt.Errorf("s3cache.init: list objects failed for %s: %w",
			c.bucketName, err)
	}

	return nil
}

func (c *Cache) objectPrefix() string {
	return path.Join(rootPrefix, c.keyPrefix) + "/"
}

func (c *Cache) cacheKeyToObjectKey(key string) string {
	h := md5.New()
	io.WriteString(h, key)
	objKey := c.objectPrefix() + hex.EncodeToString(h.Sum(nil))
	if c.gzip {
		objKey += ".gz"
	}

	return objKey
}

func (c *Cache) logf(format string, args ...any) {
	if c.logErrors {
		log.Printf(format, args...)
	}
}

func compress(data []byte) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	if _, err := gw.Write(data); err != nil {
		return nil, err
	}
	if err := gw.Close(); err != nil {
		return nil, err
	}

	return &buf, nil
}
