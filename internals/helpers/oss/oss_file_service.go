package helper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"ecoquest_backend/internals/configs"
	helper "ecoquest_backend/internals/helpers"
)

/*
BlobService adalah facade upload/hapus yang seragam untuk controller & service.
Upload selalu re-encode ke WebP.
*/

type UploadedObject struct {
	URL         string
	Key         string
	ContentType string
	Size        int64
}

type BlobService interface {
	UploadImage(ctx context.Context, data []byte, filename string) (UploadedObject, error)
	DeleteByPublicURL(ctx context.Context, publicURL string) error
	DeleteManyByPublicURL(ctx context.Context, publicURLs []string) (int, error)
	IsStoredImageURL(publicURL string) bool
}

func MaxUploadBytes() int64 {
	return int64(configs.GetEnvInt("IMAGE_MAX_UPLOAD_MB", 5)) * 1024 * 1024
}

// ReadFormImage membuka file multipart dengan guard ukuran.
func ReadFormImage(fh *multipart.FileHeader) ([]byte, error) {
	if fh == nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "File tidak ditemukan")
	}
	limit := MaxUploadBytes()
	if fh.Size > limit {
		return nil, fiber.NewError(fiber.StatusRequestEntityTooLarge, fmt.Sprintf("Ukuran gambar maksimal %dMB", limit/1024/1024))
	}
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer src.Close()
	return io.ReadAll(io.LimitReader(src, limit+1))
}

// --------------------------------------------------
// Implementasi berbasis Aliyun OSS (OSSService)
// --------------------------------------------------

type OSSBlobService struct {
	svc  *OSSService
	opts WebPOptions
	now  func() time.Time
}

func NewOSSBlobServiceFromEnv(prefix string) (*OSSBlobService, error) {
	s, err := NewOSSServiceFromEnv(prefix)
	if err != nil {
		return nil, err
	}
	return &OSSBlobService{svc: s, opts: DefaultWebPOptionsFromEnv(), now: time.Now}, nil
}

func (b *OSSBlobService) UploadImage(ctx context.Context, data []byte, filename string) (UploadedObject, error) {
	webpData, err := ConvertToWebP(data, b.opts)
	if err != nil {
		if errors.Is(err, ErrUnsupportedImage) {
			return UploadedObject{}, fiber.NewError(fiber.StatusUnsupportedMediaType, "Unsupported image format (pakai jpg/png/webp)")
		}
		return UploadedObject{}, fmt.Errorf("%w: encode webp: %v", helper.ErrValidation, err)
	}

	key := BuildObjectKey(b.svc.Prefix, filename, b.now().UTC())
	if err := b.svc.PutObject(ctx, key, webpData, "image/webp"); err != nil {
		return UploadedObject{}, fmt.Errorf("%w: upload ke OSS: %v", helper.ErrUpstream, err)
	}
	return UploadedObject{
		URL:         b.svc.PublicURL(key),
		Key:         key,
		ContentType: "image/webp",
		Size:        int64(len(webpData)),
	}, nil
}

func (b *OSSBlobService) DeleteByPublicURL(ctx context.Context, publicURL string) error {
	key, err := b.svc.KeyFromPublicURL(strings.TrimSpace(publicURL))
	if err != nil {
		return fmt.Errorf("%w: %v", helper.ErrValidation, err)
	}
	if err := b.svc.DeleteObject(ctx, key); err != nil {
		return fmt.Errorf("%w: hapus object: %v", helper.ErrUpstream, err)
	}
	return nil
}

// DeleteManyByPublicURL: URL asing di-skip, sisanya dihapus batch. Return jumlah key yang dikirim.
func (b *OSSBlobService) DeleteManyByPublicURL(ctx context.Context, publicURLs []string) (int, error) {
	keys := make([]string, 0, len(publicURLs))
	for _, u := range publicURLs {
		if key, err := b.svc.KeyFromPublicURL(strings.TrimSpace(u)); err == nil {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return 0, nil
	}
	if err := b.svc.DeleteObjects(ctx, keys); err != nil {
		return 0, fmt.Errorf("%w: hapus object batch: %v", helper.ErrUpstream, err)
	}
	return len(keys), nil
}

func (b *OSSBlobService) IsStoredImageURL(publicURL string) bool {
	return b.svc.IsStoredURL(publicURL)
}

// --------------------------------------------------
// Helper kecil untuk controller
// --------------------------------------------------

// IsMultipart menilai request multipart/form-data
func IsMultipart(c *fiber.Ctx) bool {
	ct := strings.ToLower(strings.TrimSpace(c.Get(fiber.HeaderContentType)))
	return strings.HasPrefix(ct, "multipart/form-data")
}

var defaultImageFields = []string{"image", "file", "photo", "evidence"}

// GetImageFile mencari file dari beberapa kemungkinan field form.
// Jika tidak ada file, kembalikan (nil, nil) supaya controller bisa fallback.
func GetImageFile(c *fiber.Ctx, fieldNames ...string) (*multipart.FileHeader, error) {
	if !IsMultipart(c) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Gunakan multipart/form-data")
	}
	names := fieldNames
	if len(names) == 0 {
		names = defaultImageFields
	}
	for _, fn := range names {
		if fh, err := c.FormFile(fn); err == nil && fh != nil {
			return fh, nil
		}
	}
	return nil, nil
}

// --------------------------------------------------
// Mock untuk unit test
// --------------------------------------------------

type MockBlobService struct {
	UploadImageFn           func(ctx context.Context, data []byte, filename string) (UploadedObject, error)
	DeleteByPublicURLFn     func(ctx context.Context, publicURL string) error
	DeleteManyByPublicURLFn func(ctx context.Context, publicURLs []string) (int, error)
	IsStoredImageURLFn      func(publicURL string) bool
}

func (m *MockBlobService) UploadImage(ctx context.Context, data []byte, filename string) (UploadedObject, error) {
	if m.UploadImageFn == nil {
		return UploadedObject{}, errors.New("not implemented")
	}
	return m.UploadImageFn(ctx, data, filename)
}

func (m *MockBlobService) DeleteByPublicURL(ctx context.Context, publicURL string) error {
	if m.DeleteByPublicURLFn == nil {
		return errors.New("not implemented")
	}
	return m.DeleteByPublicURLFn(ctx, publicURL)
}

func (m *MockBlobService) DeleteManyByPublicURL(ctx context.Context, publicURLs []string) (int, error) {
	if m.DeleteManyByPublicURLFn == nil {
		return 0, errors.New("not implemented")
	}
	return m.DeleteManyByPublicURLFn(ctx, publicURLs)
}

func (m *MockBlobService) IsStoredImageURL(publicURL string) bool {
	if m.IsStoredImageURLFn == nil {
		return false
	}
	return m.IsStoredImageURLFn(publicURL)
}
