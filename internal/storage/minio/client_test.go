package minio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	objects      map[string][]byte
	bucketExists bool
	madeBucket   bool
	failPut      error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{objects: map[string][]byte{}, bucketExists: true}
}

func (f *fakeAPI) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	return f.bucketExists, nil
}

func (f *fakeAPI) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	f.madeBucket = true
	f.bucketExists = true
	return nil
}

func (f *fakeAPI) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if f.failPut != nil {
		return minio.UploadInfo{}, f.failPut
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	f.objects[objectName] = data
	return minio.UploadInfo{Key: objectName, Size: int64(len(data))}, nil
}

func (f *fakeAPI) GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	data, ok := f.objects[objectName]
	if !ok {
		return nil, errors.New("object not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeAPI) RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
	delete(f.objects, objectName)
	return nil
}

func (f *fakeAPI) StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
	if _, ok := f.objects[objectName]; !ok {
		return minio.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchKey"}
	}
	return minio.ObjectInfo{Key: objectName}, nil
}

func TestNewClientWithAPI_CreatesMissingBucket(t *testing.T) {
	api := newFakeAPI()
	api.bucketExists = false

	_, err := NewClientWithAPI(context.Background(), api, "clinic-xrays")
	require.NoError(t, err)
	assert.True(t, api.madeBucket)
}

func TestClient_UploadDownloadRoundtrip(t *testing.T) {
	api := newFakeAPI()
	c, err := NewClientWithAPI(context.Background(), api, "clinic-xrays")
	require.NoError(t, err)

	key := "odontograms/abc/xray-1"
	require.NoError(t, c.Upload(context.Background(), key, strings.NewReader("image-bytes")))

	reader, err := c.Download(context.Background(), key)
	require.NoError(t, err)
	defer reader.Close()

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(data))
}

func TestClient_UploadError(t *testing.T) {
	api := newFakeAPI()
	api.failPut = errors.New("disk full")
	c, err := NewClientWithAPI(context.Background(), api, "clinic-xrays")
	require.NoError(t, err)

	err = c.Upload(context.Background(), "key", strings.NewReader("x"))
	require.Error(t, err)
}

func TestClient_Delete(t *testing.T) {
	api := newFakeAPI()
	c, err := NewClientWithAPI(context.Background(), api, "clinic-xrays")
	require.NoError(t, err)

	key := "odontograms/abc/xray-1"
	require.NoError(t, c.Upload(context.Background(), key, strings.NewReader("x")))
	require.NoError(t, c.Delete(context.Background(), key))

	exists, err := c.Exists(context.Background(), key)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestClient_Exists(t *testing.T) {
	api := newFakeAPI()
	c, err := NewClientWithAPI(context.Background(), api, "clinic-xrays")
	require.NoError(t, err)

	exists, err := c.Exists(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, c.Upload(context.Background(), "present", strings.NewReader("x")))
	exists, err = c.Exists(context.Background(), "present")
	require.NoError(t, err)
	assert.True(t, exists)
}
