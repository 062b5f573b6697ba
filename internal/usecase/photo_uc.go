package usecase

import (
	"context"
)

// Storage is the object-storage collaborator holding listing images.
type Storage interface {
	Upload(ctx context.Context, fileName string, data []byte) (string, error)
}

type PhotoUsecase struct {
	storage Storage
}

func NewPhotoUsecase(storage Storage) *PhotoUsecase {
	return &PhotoUsecase{storage: storage}
}

// UploadImage stores an image and returns its URL. The caller attaches the
// URL to a listing via the create/update flow.
func (uc *PhotoUsecase) UploadImage(ctx context.Context, fileName string, data []byte) (string, error) {
	return uc.storage.Upload(ctx, fileName, data)
}
