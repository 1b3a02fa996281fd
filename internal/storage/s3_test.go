package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjects struct {
	objects map[string][]byte
	putErr  error
}

func (f *fakeObjects) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeObjects) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func TestS3Store(t *testing.T) {
	exerciseStore(t, newS3Store(&fakeObjects{objects: map[string][]byte{}}, "menus", "restaurant/"))
}

func TestS3Store_UsesPrefix(t *testing.T) {
	fake := &fakeObjects{objects: map[string][]byte{}}
	s := newS3Store(fake, "menus", "restaurant/")

	require.NoError(t, s.Write(context.Background(), "menu.json", []byte(`{}`)))
	_, ok := fake.objects["menus/restaurant/menu.json"]
	assert.True(t, ok, "expected object under prefixed key, have %v", fake.objects)
}

func TestS3Store_PutError(t *testing.T) {
	fake := &fakeObjects{objects: map[string][]byte{}, putErr: errors.New("access denied")}
	s := newS3Store(fake, "menus", "")

	err := s.Write(context.Background(), "menu.json", []byte(`{}`))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
