package client

import (
	"context"
	"io"
)

// BlobStore is the object-storage collaborator the uploader writes to.
type BlobStore interface {
	UploadStream(ctx context.Context, fileName string, r io.Reader, size int64) (string, error)
}

type UploadResult struct {
	URL string
	Err error
}

// Upload exposes one in-flight upload: a finite stream of percentages
// followed by a single result. Progress values are monotonically
// non-decreasing; 100 is emitted only when the upload succeeded, and always
// before the result is delivered.
type Upload struct {
	Progress <-chan int
	Done     <-chan UploadResult
}

type Uploader struct {
	store BlobStore
}

func NewUploader(store BlobStore) *Uploader {
	return &Uploader{store: store}
}

// Start begins an upload and returns immediately. Cancelling ctx aborts the
// transfer; the error surfaces on Done.
func (u *Uploader) Start(ctx context.Context, fileName string, r io.Reader, size int64) *Upload {
	// Capacity covers every distinct percentage, so the reporting reader
	// never blocks on a slow consumer.
	progress := make(chan int, 101)
	done := make(chan UploadResult, 1)

	pr := &progressReader{ctx: ctx, r: r, total: size, ch: progress}

	go func() {
		url, err := u.store.UploadStream(ctx, fileName, pr, size)
		if err == nil {
			pr.complete()
		}
		close(progress)
		done <- UploadResult{URL: url, Err: err}
		close(done)
	}()

	return &Upload{Progress: progress, Done: done}
}

// progressReader reports rising percentages as bytes are consumed. It holds
// back 100 until complete is called, so the terminal value always means the
// object is actually stored.
type progressReader struct {
	ctx   context.Context
	r     io.Reader
	total int64
	read  int64
	last  int
	ch    chan int
}

func (p *progressReader) Read(b []byte) (int, error) {
	if err := p.ctx.Err(); err != nil {
		return 0, err
	}

	n, err := p.r.Read(b)
	p.read += int64(n)

	pct := 0
	if p.total > 0 {
		pct = int(p.read * 100 / p.total)
	}
	if pct > 99 {
		pct = 99
	}
	if pct > p.last {
		p.last = pct
		p.ch <- pct
	}
	return n, err
}

func (p *progressReader) complete() {
	if p.last < 100 {
		p.last = 100
		p.ch <- 100
	}
}
