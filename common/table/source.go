// Copyright (C) MongoDB, Inc. 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package table

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
)

const s3Scheme = "s3://"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// bomDiscardingReader wraps an io.Reader, discarding a leading UTF-8 BOM.
type bomDiscardingReader struct {
	buf     *bufio.Reader
	didRead bool
}

func (bd *bomDiscardingReader) Read(p []byte) (int, error) {
	if !bd.didRead {
		bom, err := bd.buf.Peek(len(utf8BOM))
		if err == nil && bytes.Equal(bom, utf8BOM) {
			_, _ = bd.buf.Discard(len(utf8BOM))
		}
		bd.didRead = true
	}
	return bd.buf.Read(p)
}

func newBomDiscardingReader(r io.Reader) *bomDiscardingReader {
	return &bomDiscardingReader{buf: bufio.NewReader(r)}
}

// parseS3Path splits an s3://bucket/key location. ok is false for anything
// that is not an S3 location.
func parseS3Path(path string) (bucket, key string, ok bool) {
	rest, found := strings.CutPrefix(path, s3Scheme)
	if !found {
		return "", "", false
	}
	bucket, key, _ = strings.Cut(rest, "/")
	return bucket, key, true
}

// Open returns a reader over the source at path, which is either a local
// file or an s3://bucket/key object. S3 credentials and region come from the
// default AWS configuration chain.
func Open(ctx context.Context, path string) (io.ReadCloser, error) {
	bucket, key, isS3 := parseS3Path(path)
	if !isS3 {
		return os.Open(path)
	}
	if bucket == "" || key == "" {
		return nil, errors.Errorf("invalid S3 location %#q, expected s3://bucket/key", path)
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create AWS config")
	}
	data, err := downloadObject(ctx, s3.NewFromConfig(cfg), bucket, key)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func downloadObject(ctx context.Context, client manager.DownloadAPIClient, bucket, key string) ([]byte, error) {
	downloader := manager.NewDownloader(client)

	input := &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}

	buff := &manager.WriteAtBuffer{}
	if _, err := downloader.Download(ctx, buff, input); err != nil {
		return nil, errors.Wrapf(err, "failed to download s3://%v/%v", bucket, key)
	}
	return buff.Bytes(), nil
}
