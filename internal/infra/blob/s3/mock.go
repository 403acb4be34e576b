package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// NewMockForTests builds a *Store whose SDK client talks to an in-process
// fake transport instead of the network. The fake answers just the S3 calls
// the blob Store interface issues: HeadObject, PutObject, GetObject,
// DeleteObject, and ListObjectsV2.
func NewMockForTests() *Store {
	transport := &fakeTransport{objects: make(map[string]storedObject)}
	cfg, _ := config.LoadDefaultConfig(context.Background(),
		config.WithRegion("us-east-1"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("AKIA", "SECRET", "")),
	)
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.HTTPClient = &http.Client{Transport: transport}
		o.UsePathStyle = true
		o.BaseEndpoint = aws.String("https://mock.s3.local")
	})
	return &Store{client: client, bucket: "mock-bucket", presign: s3.NewPresignClient(client)}
}

type storedObject struct {
	body        []byte
	contentType string
}

type fakeTransport struct{ objects map[string]storedObject }

func (f *fakeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Path style requests look like /<bucket>/<key>.
	segments := strings.SplitN(strings.TrimPrefix(req.URL.Path, "/"), "/", 2)
	key := ""
	if len(segments) == 2 {
		key = segments[1]
	}

	if req.Method == http.MethodGet && strings.Contains(req.URL.RawQuery, "list-type=2") {
		return f.handleList(req.URL.Query().Get("prefix")), nil
	}
	switch req.Method {
	case http.MethodHead:
		return f.handleHead(key), nil
	case http.MethodPut:
		return f.handlePut(key, req), nil
	case http.MethodGet:
		return f.handleGet(key), nil
	case http.MethodDelete:
		delete(f.objects, key)
		return reply(http.StatusNoContent, nil, nil), nil
	}
	return reply(http.StatusNotImplemented, nil, nil), nil
}

func (f *fakeTransport) handleList(prefix string) *http.Response {
	var keys []string
	for k := range f.objects {
		if prefix == "" || strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\"?><ListBucketResult><IsTruncated>false</IsTruncated>")
	for _, k := range keys {
		obj := f.objects[k]
		fmt.Fprintf(&b, "<Contents><Key>%s</Key><Size>%d</Size><LastModified>2024-01-01T00:00:00Z</LastModified></Contents>", k, len(obj.body))
	}
	b.WriteString("</ListBucketResult>")
	return reply(http.StatusOK, []byte(b.String()), http.Header{"Content-Type": {"application/xml"}})
}

func (f *fakeTransport) handleHead(key string) *http.Response {
	obj, ok := f.objects[key]
	if !ok {
		return reply(http.StatusNotFound, nil, nil)
	}
	return reply(http.StatusOK, nil, http.Header{
		"Content-Length": {strconv.Itoa(len(obj.body))},
		"Content-Type":   {obj.contentType},
		"ETag":           {"\"etag123\""},
		"Last-Modified":  {time.Now().UTC().Format(http.TimeFormat)},
	})
}

func (f *fakeTransport) handlePut(key string, req *http.Request) *http.Response {
	body, _ := io.ReadAll(req.Body)
	if decoded, ok := stripAWSChunked(body); ok {
		body = decoded
	}
	// First writer wins, matching the store's create-only contract.
	if _, exists := f.objects[key]; !exists {
		f.objects[key] = storedObject{body: body, contentType: req.Header.Get("Content-Type")}
	}
	return reply(http.StatusOK, nil, http.Header{"ETag": {"\"etag\""}})
}

func (f *fakeTransport) handleGet(key string) *http.Response {
	obj, ok := f.objects[key]
	if !ok {
		return reply(http.StatusNotFound, nil, nil)
	}
	return reply(http.StatusOK, obj.body, http.Header{
		"Content-Length": {strconv.Itoa(len(obj.body))},
		"Content-Type":   {obj.contentType},
		"Last-Modified":  {time.Now().UTC().Format(http.TimeFormat)},
		"ETag":           {"\"etag\""},
	})
}

func reply(status int, body []byte, header http.Header) *http.Response {
	if header == nil {
		header = http.Header{}
	}
	return &http.Response{StatusCode: status, Body: io.NopCloser(bytes.NewReader(body)), Header: header}
}

// stripAWSChunked unwraps the single-chunk aws-chunked framing the SDK uses
// for streaming uploads: a hex length line, the payload, then a zero chunk.
func stripAWSChunked(b []byte) ([]byte, bool) {
	lines := strings.Split(string(b), "\r\n")
	if len(lines) < 3 {
		return nil, false
	}
	size, err := strconv.ParseInt(lines[0], 16, 64)
	if err != nil || int64(len(lines[1])) != size || lines[2] != "0" {
		return nil, false
	}
	return []byte(lines[1]), true
}
