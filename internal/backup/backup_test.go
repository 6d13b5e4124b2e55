package backup

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/garage-booking/internal/db/dbtest"
	"github.com/BruksfildServices01/garage-booking/internal/models"
)

type memoryStore struct {
	objects map[string][]byte
	err     error
}

func (m *memoryStore) Put(_ context.Context, key string, body []byte) error {
	if m.err != nil {
		return m.err
	}
	m.objects[key] = body
	return nil
}

func TestRunUploadsSnapshot(t *testing.T) {
	gdb := dbtest.New(t)
	require.NoError(t, gdb.Create(&models.Booking{Name: "Jan", Email: "jan@example.com", Date: "2025-06-01", Time: "10:00", Status: "confirmed"}).Error)
	require.NoError(t, gdb.Create(&models.Service{Name: "Diagnose", DurationMin: 30, Active: true}).Error)

	store := &memoryStore{objects: map[string][]byte{}}
	at := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

	key, err := New(gdb, store, func() time.Time { return at }).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "garage-20250601-093000.json", key)

	var snap Snapshot
	require.NoError(t, json.Unmarshal(store.objects[key], &snap))
	require.Len(t, snap.Bookings, 1)
	require.Len(t, snap.Services, 1)
	assert.Equal(t, "10:00", snap.Bookings[0].Time)
}

func TestRunErrors(t *testing.T) {
	gdb := dbtest.New(t)

	_, err := New(gdb, nil, time.Now).Run(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)

	store := &memoryStore{objects: map[string][]byte{}, err: errors.New("access denied")}
	_, err = New(gdb, store, time.Now).Run(context.Background())
	assert.ErrorContains(t, err, "access denied")
}

type fakeS3 struct {
	in *s3.PutObjectInput
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	return &s3.PutObjectOutput{}, nil
}

func TestS3StorePut(t *testing.T) {
	api := &fakeS3{}
	store := newS3Store(api, "garage-backups", "nightly")

	require.NoError(t, store.Put(context.Background(), "a.json", []byte(`{}`)))
	assert.Equal(t, "garage-backups", *api.in.Bucket)
	assert.Equal(t, "nightly/a.json", *api.in.Key)
	assert.Equal(t, "application/json", *api.in.ContentType)

	body, err := io.ReadAll(api.in.Body)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(body))
}

func TestNewS3StoreNeedsBucket(t *testing.T) {
	_, err := NewS3Store(S3Config{})
	assert.ErrorIs(t, err, ErrNotConfigured)

	s, err := NewS3Store(S3Config{Bucket: "b", Region: "eu-west-1", Endpoint: "http://localhost:9000", AccessKey: "k", SecretKey: "s"})
	require.NoError(t, err)
	assert.Equal(t, "b", s.bucket)
}
