package seed

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 serves objects from memory.
type fakeS3 struct {
	objects map[string][]byte
	calls   []string
}

func (f *fakeS3) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	key := aws.ToString(params.Bucket) + "/" + aws.ToString(params.Key)
	f.calls = append(f.calls, key)

	data, ok := f.objects[key]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

// mockLoader is a mock implementation of the Loader interface for testing.
type mockLoader struct {
	loadFunc func(ctx context.Context, filePath string) ([]Record, error)
}

func (m *mockLoader) Load(ctx context.Context, filePath string) ([]Record, error) {
	if m.loadFunc != nil {
		return m.loadFunc(ctx, filePath)
	}
	return nil, errors.New("not implemented")
}

func TestS3Loader_Load(t *testing.T) {
	client := &fakeS3{objects: map[string][]byte{
		"catalog/seed/products.jsonl.gz": gzipLines(t, []string{
			`{"name":"Pen","price":1.5}`,
			`{"name":"Cup","price":4}`,
		}),
	}}
	loader := newS3Loader(client, "catalog", zerolog.Nop())

	records, err := loader.Load(context.Background(), "seed/products.jsonl.gz")

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, `{"name":"Cup","price":4}`, string(records[1].Data))
	assert.Equal(t, []string{"catalog/seed/products.jsonl.gz"}, client.calls)
}

func TestS3Loader_Load_MissingObject(t *testing.T) {
	loader := newS3Loader(&fakeS3{}, "catalog", zerolog.Nop())

	records, err := loader.Load(context.Background(), "seed/missing.gz")

	require.Error(t, err)
	assert.Nil(t, records)
	assert.Contains(t, err.Error(), "bucket=catalog, key=seed/missing.gz")
}

func TestS3Loader_Load_NotGzipped(t *testing.T) {
	client := &fakeS3{objects: map[string][]byte{
		"catalog/seed/plain.jsonl": []byte(`{"name":"Pen","price":1}`),
	}}
	loader := newS3Loader(client, "catalog", zerolog.Nop())

	records, err := loader.Load(context.Background(), "seed/plain.jsonl")

	require.Error(t, err)
	assert.Nil(t, records)
	assert.Contains(t, err.Error(), "failed to create gzip reader")
}

func TestFallbackLoader_S3Success(t *testing.T) {
	s3Records := []Record{{Line: 1, Data: []byte(`{"name":"S3","price":1}`)}}
	s3Loader := &mockLoader{
		loadFunc: func(ctx context.Context, filePath string) ([]Record, error) {
			assert.Equal(t, "seed/products.gz", filePath, "S3 key should have prefix")
			return s3Records, nil
		},
	}
	fileLoader := &mockLoader{
		loadFunc: func(ctx context.Context, filePath string) ([]Record, error) {
			t.Error("file loader should not be called when S3 succeeds")
			return nil, errors.New("should not be called")
		},
	}

	fallback := NewFallbackLoader(s3Loader, fileLoader, "seed/", true, zerolog.Nop())

	records, err := fallback.Load(context.Background(), "products.gz")
	require.NoError(t, err)
	assert.Equal(t, s3Records, records)
}

func TestFallbackLoader_S3FailsFallsBackToLocal(t *testing.T) {
	localRecords := []Record{{Line: 1, Data: []byte(`{"name":"Local","price":1}`)}}
	s3Loader := &mockLoader{
		loadFunc: func(ctx context.Context, filePath string) ([]Record, error) {
			return nil, errors.New("S3 connection failed")
		},
	}
	fileLoader := &mockLoader{
		loadFunc: func(ctx context.Context, filePath string) ([]Record, error) {
			assert.Equal(t, "products.gz", filePath, "local file path should not have prefix")
			return localRecords, nil
		},
	}

	fallback := NewFallbackLoader(s3Loader, fileLoader, "seed/", true, zerolog.Nop())

	records, err := fallback.Load(context.Background(), "products.gz")
	require.NoError(t, err)
	assert.Equal(t, localRecords, records)
}

func TestFallbackLoader_S3DisabledOrNil(t *testing.T) {
	tests := []struct {
		name      string
		s3Loader  Loader
		s3Enabled bool
	}{
		{
			name: "S3 disabled",
			s3Loader: &mockLoader{
				loadFunc: func(ctx context.Context, filePath string) ([]Record, error) {
					t.Error("S3 loader should not be called when S3 is disabled")
					return nil, errors.New("should not be called")
				},
			},
			s3Enabled: false,
		},
		{
			name:      "S3 loader nil",
			s3Loader:  nil,
			s3Enabled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fileLoader := &mockLoader{
				loadFunc: func(ctx context.Context, filePath string) ([]Record, error) {
					assert.Equal(t, "products.gz", filePath)
					return []Record{{Line: 1}}, nil
				},
			}

			fallback := NewFallbackLoader(tt.s3Loader, fileLoader, "seed/", tt.s3Enabled, zerolog.Nop())

			records, err := fallback.Load(context.Background(), "products.gz")
			require.NoError(t, err)
			assert.Len(t, records, 1)
		})
	}
}

func TestFallbackLoader_BothFail(t *testing.T) {
	s3Loader := &mockLoader{
		loadFunc: func(ctx context.Context, filePath string) ([]Record, error) {
			return nil, errors.New("S3 error")
		},
	}
	fileLoader := &mockLoader{
		loadFunc: func(ctx context.Context, filePath string) ([]Record, error) {
			return nil, errors.New("file not found")
		},
	}

	fallback := NewFallbackLoader(s3Loader, fileLoader, "seed/", true, zerolog.Nop())

	records, err := fallback.Load(context.Background(), "products.gz")
	require.Error(t, err)
	assert.Nil(t, records)
	assert.Contains(t, err.Error(), "file not found")
}

func TestObjectKey(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		filePath string
		expected string
		prefixed bool
	}{
		{name: "prefix with trailing slash", prefix: "seed/", filePath: "products.gz", expected: "seed/products.gz"},
		{name: "prefix without trailing slash", prefix: "seed", filePath: "products.gz", expected: "seed/products.gz"},
		{name: "empty prefix", prefix: "", filePath: "products.gz", expected: "products.gz"},
		{name: "nested prefix", prefix: "data/catalog/prod/", filePath: "products.gz", expected: "data/catalog/prod/products.gz"},
		{name: "relative path", prefix: "seed/", filePath: "./data/products.gz", expected: "seed/data/products.gz"},
		{name: "absolute path", prefix: "seed/", filePath: "/var/lib/products.gz", expected: "seed/var/lib/products.gz"},
		{name: "path already prefixed", prefix: "seed/", filePath: "seed/products.gz", expected: "seed/products.gz", prefixed: true},
		{name: "path already prefixed, prefix without slash", prefix: "seed", filePath: "seed/products.gz", expected: "seed/products.gz", prefixed: true},
		{name: "name shares the prefix text", prefix: "seed", filePath: "seedling.gz", expected: "seed/seedling.gz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, prefixed := objectKey(tt.prefix, tt.filePath)
			assert.Equal(t, tt.expected, key)
			assert.Equal(t, tt.prefixed, prefixed)
		})
	}
}

func TestFallbackLoader_PrefixedPathIsNotDoubled(t *testing.T) {
	s3Loader := &mockLoader{
		loadFunc: func(ctx context.Context, filePath string) ([]Record, error) {
			assert.Equal(t, "seed/products.gz", filePath)
			return []Record{{Line: 1}}, nil
		},
	}
	fileLoader := &mockLoader{}

	fallback := NewFallbackLoader(s3Loader, fileLoader, "seed/", true, zerolog.Nop())

	records, err := fallback.Load(context.Background(), "seed/products.gz")
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
