/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"github.com/mikeb26/pgnstandings/tournament"
)

// ObjectGetter is the subset of *s3.Client used by S3.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput,
		optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3 fetches round files stored as objects under Prefix in Bucket.
type S3 struct {
	Bucket string
	Prefix string
	Client ObjectGetter
}

// NewS3 returns an S3 source using the default AWS configuration.
func NewS3(ctx context.Context, bucket, prefix string) (*S3, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("source.s3: failed to load AWS config: %w", err)
	}

	return &S3{
		Bucket: bucket,
		Prefix: prefix,
		Client: s3.NewFromConfig(awsCfg),
	}, nil
}

func (src *S3) FetchRound(ctx context.Context,
	filename string) (string, error) {

	key := path.Join(src.Prefix, filename)
	resp, err := src.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(src.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey" {
			return "", fmt.Errorf("source.s3: %v/%v: %w", src.Bucket, key,
				tournament.ErrRoundUnavailable)
		}
		return "", fmt.Errorf("source.s3: get %v/%v failed: %w", src.Bucket,
			key, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("source.s3: reading %v/%v: %w", src.Bucket, key,
			err)
	}

	return string(data), nil
}
