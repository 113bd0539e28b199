package storage

import (
	"context"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
)

// StorageService uploads media assets and hands back their delivery URLs.
// Profile pictures, certificates and article covers all go through here.
type StorageService interface {
	Upload(ctx context.Context, file io.Reader, destFolder string) (*UploadedAsset, error)
	Delete(ctx context.Context, publicID string) error
}

// UploadedAsset identifies a stored file.
type UploadedAsset struct {
	PublicID  string `json:"publicId"`
	SecureURL string `json:"secureUrl"`
}

// CloudinaryStorageService implements StorageService on Cloudinary.
type CloudinaryStorageService struct {
	cld *cloudinary.Cloudinary
}
