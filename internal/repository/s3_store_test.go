package repository

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"codebind/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 keeps objects in memory, keyed by bucket/key.
type fakeS3 struct {
	objects      map[string][]byte
	contentTypes map[string]string
	getErr       error
	putErr       error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{
		objects:      map[string][]byte{},
		contentTypes: map[string]string{},
	}
}

func (f *fakeS3) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	data, ok := f.objects[aws.ToString(params.Bucket)+"/"+aws.ToString(params.Key)]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("The specified key does not exist.")}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	key := aws.ToString(params.Bucket) + "/" + aws.ToString(params.Key)
	f.objects[key] = data
	f.contentTypes[key] = aws.ToString(params.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func TestS3Store_LoadMissing(t *testing.T) {
	store := NewS3Store(newFakeS3(), "bucket", "codebind/codes.json", zerolog.Nop())

	doc, err := store.Load(context.Background())

	assert.ErrorIs(t, err, ErrDocumentNotFound)
	assert.Nil(t, doc)
}

func TestS3Store_RoundTrip(t *testing.T) {
	client := newFakeS3()
	store := NewS3Store(client, "bucket", "codebind/codes.json", zerolog.Nop())
	ctx := context.Background()

	doc := &model.Document{
		Codes:    []string{"AB12"},
		Bindings: map[string]string{"CD34": "Chess"},
	}
	require.NoError(t, store.Save(ctx, doc))
	assert.Equal(t, "application/json", client.contentTypes["bucket/codebind/codes.json"])

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, doc, loaded)
}

func TestS3Store_LoadCorrupt(t *testing.T) {
	client := newFakeS3()
	client.objects["bucket/codes.json"] = []byte("not json")
	store := NewS3Store(client, "bucket", "codes.json", zerolog.Nop())

	doc, err := store.Load(context.Background())

	assert.ErrorIs(t, err, ErrDocumentCorrupt)
	assert.Nil(t, doc)
}

func TestS3Store_Errors(t *testing.T) {
	client := newFakeS3()
	client.getErr = errors.New("access denied")
	client.putErr = errors.New("slow down")
	store := NewS3Store(client, "bucket", "codes.json", zerolog.Nop())
	ctx := context.Background()

	_, err := store.Load(ctx)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDocumentNotFound)
	assert.Contains(t, err.Error(), "access denied")

	err = store.Save(ctx, model.NewDocument())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "slow down")
}
