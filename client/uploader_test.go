package client

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chunkedBlobStore consumes the reader in small chunks so intermediate
// progress values are observable.
type chunkedBlobStore struct {
	chunkSize int
	failAfter int64 // bytes after which the upload fails; 0 means never
	url       string
}

func (s *chunkedBlobStore) UploadStream(ctx context.Context, fileName string, r io.Reader, size int64) (string, error) {
	buf := make([]byte, s.chunkSize)
	var total int64
	for {
		n, err := r.Read(buf)
		total += int64(n)
		if s.failAfter > 0 && total >= s.failAfter {
			return "", errors.New("connection reset")
		}
		if err == io.EOF {
			return s.url, nil
		}
		if err != nil {
			return "", err
		}
	}
}

func collect(up *Upload) ([]int, UploadResult) {
	var progress []int
	for pct := range up.Progress {
		progress = append(progress, pct)
	}
	return progress, <-up.Done
}

func TestUploader_ProgressMonotonicEndsAtHundred(t *testing.T) {
	store := &chunkedBlobStore{chunkSize: 10, url: "http://storage/avatar.png"}
	uploader := NewUploader(store)

	data := strings.Repeat("x", 100)
	up := uploader.Start(context.Background(), "avatar.png", strings.NewReader(data), int64(len(data)))

	progress, res := collect(up)
	require.NoError(t, res.Err)
	assert.Equal(t, "http://storage/avatar.png", res.URL)

	require.NotEmpty(t, progress)
	for i := 1; i < len(progress); i++ {
		assert.GreaterOrEqual(t, progress[i], progress[i-1])
	}
	assert.Equal(t, 100, progress[len(progress)-1])
}

func TestUploader_HundredOnlyOnSuccess(t *testing.T) {
	store := &chunkedBlobStore{chunkSize: 10, failAfter: 50}
	uploader := NewUploader(store)

	data := strings.Repeat("x", 100)
	up := uploader.Start(context.Background(), "avatar.png", strings.NewReader(data), int64(len(data)))

	progress, res := collect(up)
	require.Error(t, res.Err)
	assert.Empty(t, res.URL)
	for _, pct := range progress {
		assert.Less(t, pct, 100)
	}
}

func TestUploader_Cancel(t *testing.T) {
	store := &chunkedBlobStore{chunkSize: 1, url: "http://storage/avatar.png"}
	uploader := NewUploader(store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	data := strings.Repeat("x", 100)
	up := uploader.Start(ctx, "avatar.png", strings.NewReader(data), int64(len(data)))

	_, res := collect(up)
	require.Error(t, res.Err)
	assert.ErrorIs(t, res.Err, context.Canceled)
}

func TestProfileView_UploadStoresURLAfterCompletion(t *testing.T) {
	store := &chunkedBlobStore{chunkSize: 7, url: "http://storage/avatar.png"}
	view := NewProfileView(nil, NewUploader(store), NewStore())

	data := strings.Repeat("x", 100)
	err := view.UploadAvatar(context.Background(), "avatar.png", strings.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	assert.Equal(t, 100, view.FilePerc())
	assert.Equal(t, "http://storage/avatar.png", view.Form().Avatar)
}

func TestProfileView_UploadFailureLeavesFormUntouched(t *testing.T) {
	store := &chunkedBlobStore{chunkSize: 7, failAfter: 30}
	view := NewProfileView(nil, NewUploader(store), NewStore())

	data := strings.Repeat("x", 100)
	err := view.UploadAvatar(context.Background(), "avatar.png", strings.NewReader(data), int64(len(data)))
	require.Error(t, err)

	assert.Empty(t, view.Form().Avatar)
	assert.Less(t, view.FilePerc(), 100)
}
