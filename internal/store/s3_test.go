package store

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/debemdeboas/the-notebook/internal/util/compression"
)

type fakeS3 struct {
	objects  map[string][]byte
	metadata map[string]map[string]string
	putErr   error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}, metadata: map[string]map[string]string{}}
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	key := aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key)
	data, ok := f.objects[key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{
		Body:     io.NopCloser(bytes.NewReader(data)),
		Metadata: f.metadata[key],
	}, nil
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	key := aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key)
	f.objects[key] = data
	f.metadata[key] = in.Metadata
	return &s3.PutObjectOutput{}, nil
}

func TestS3KV(t *testing.T) {
	client := newFakeS3()
	kv := NewS3KV(client, S3Options{Bucket: "notes", Prefix: "user/"}, compression.GzipCompressor{})

	if _, ok, err := kv.Get("docs"); ok || err != nil {
		t.Fatalf("Expected absent object, got ok=%v err=%v", ok, err)
	}

	if err := kv.Set("docs", "[]"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if _, stored := client.objects["notes/user/docs"]; !stored {
		t.Fatal("Expected object under the prefixed key")
	}
	if codec := client.metadata["notes/user/docs"][s3CodecMetadata]; codec != compression.NameGzip {
		t.Errorf("Expected codec metadata %q, got %q", compression.NameGzip, codec)
	}

	value, ok, err := kv.Get("docs")
	if err != nil || !ok || value != "[]" {
		t.Errorf("Get(docs) = %q, %v, %v", value, ok, err)
	}
}

func TestS3KVPutFailure(t *testing.T) {
	client := newFakeS3()
	client.putErr = errors.New("access denied")

	err := NewS3KV(client, S3Options{Bucket: "notes"}, nil).Set("docs", "[]")
	if !errors.Is(err, client.putErr) {
		t.Errorf("Expected wrapped put error, got %v", err)
	}
}
