package helper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"

	"ecoquest_backend/internals/configs"
	helper "ecoquest_backend/internals/helpers"
)

// Folder default untuk evidence submission
const TaskImagesDir = "task-images"

/* =======================================================================
   OSS Service
======================================================================= */

type OSSService struct {
	Client     *oss.Client
	Bucket     *oss.Bucket
	Endpoint   string
	BucketName string
	Prefix     string // optional: "uploads"
	PublicBase string // optional: ALI_OSS_PUBLIC_BASE (CDN)
}

func NewOSSServiceFromEnv(prefix string) (*OSSService, error) {
	endpoint := configs.GetEnv("ALI_OSS_ENDPOINT")
	ak := configs.GetEnv("ALI_OSS_ACCESS_KEY")
	sk := configs.GetEnv("ALI_OSS_SECRET_KEY")
	sts := configs.GetEnv("ALI_OSS_SECURITY_TOKEN")
	bucketName := configs.GetEnv("ALI_OSS_BUCKET")
	if endpoint == "" || ak == "" || sk == "" || bucketName == "" {
		return nil, fmt.Errorf("missing env: ALI_OSS_ENDPOINT/ACCESS_KEY/SECRET_KEY/BUCKET")
	}

	opts := []oss.ClientOption{oss.Timeout(10, 60)}
	if sts != "" {
		opts = append(opts, oss.SecurityToken(sts))
	}
	client, err := oss.New(endpoint, ak, sk, opts...)
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}

	bkt, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	// Verifikasi ringan lokasi bucket
	if loc, err := client.GetBucketLocation(bucketName); err != nil {
		var se oss.ServiceError
		if errors.As(err, &se) && se.StatusCode == 403 {
			log.Printf("[OSS] warn: skip location check due to AccessDenied (bucket=%s). Continuing.", bucketName)
		} else {
			return nil, fmt.Errorf("verify bucket: %w", err)
		}
	} else {
		log.Printf("[OSS] bucket %s location: %s", bucketName, loc)
	}

	return &OSSService{
		Client:     client,
		Bucket:     bkt,
		Endpoint:   endpoint,
		BucketName: bucketName,
		Prefix:     strings.Trim(prefix, "/"),
		PublicBase: configs.GetEnv("ALI_OSS_PUBLIC_BASE"),
	}, nil
}

func (s *OSSService) PutObject(ctx context.Context, key string, data []byte, contentType string) error {
	if key == "" {
		return fmt.Errorf("empty key")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return s.Bucket.PutObject(key, bytes.NewReader(data),
		oss.WithContext(ctx),
		oss.ContentType(contentType),
		oss.ContentDisposition("inline"),
		oss.CacheControl("public, max-age=31536000, immutable"),
	)
}

func (s *OSSService) DeleteObject(ctx context.Context, key string) error {
	return s.Bucket.DeleteObject(key, oss.WithContext(ctx))
}

// DeleteObjects: batch (maks 1000 key per panggilan OSS)
func (s *OSSService) DeleteObjects(ctx context.Context, keys []string) error {
	const maxChunk = 1000
	for start := 0; start < len(keys); start += maxChunk {
		end := min(start+maxChunk, len(keys))
		if _, err := s.Bucket.DeleteObjects(keys[start:end], oss.WithContext(ctx), oss.DeleteObjectsQuiet(true)); err != nil {
			return err
		}
	}
	return nil
}

/* =======================================================================
   Public URL & Key utils
======================================================================= */

// PublicURL: https://<host>/<bucket>/<key>, atau <PublicBase>/<key> kalau di-set
func (s *OSSService) PublicURL(key string) string {
	return BuildPublicURL(s.PublicBase, s.Endpoint, s.BucketName, key)
}

func (s *OSSService) urlBase() string {
	return BuildPublicURL(s.PublicBase, s.Endpoint, s.BucketName, "")
}

// KeyFromPublicURL: kebalikan dari PublicURL. Error kalau URL bukan milik bucket ini.
func (s *OSSService) KeyFromPublicURL(publicURL string) (string, error) {
	base := s.urlBase()
	if base == "" || !strings.HasPrefix(publicURL, base) {
		return "", fmt.Errorf("url bukan object bucket %s: %s", s.BucketName, publicURL)
	}
	key := strings.TrimPrefix(publicURL, base)
	if i := strings.IndexAny(key, "?#"); i >= 0 {
		key = key[:i]
	}
	if key == "" {
		return "", fmt.Errorf("cannot extract key from url: %s", publicURL)
	}
	return key, nil
}

func (s *OSSService) IsStoredURL(publicURL string) bool {
	_, err := s.KeyFromPublicURL(strings.TrimSpace(publicURL))
	return err == nil
}

func BuildPublicURL(publicBase, endpoint, bucket, key string) string {
	if base := strings.TrimSpace(publicBase); base != "" {
		return strings.TrimRight(base, "/") + "/" + key
	}
	if endpoint == "" || bucket == "" {
		return ""
	}
	host := strings.TrimPrefix(strings.TrimPrefix(endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s/%s/%s", strings.TrimRight(host, "/"), bucket, key)
}

// BuildObjectKey: [prefix/]task-images/<epoch-ms>-<slug>.webp
func BuildObjectKey(prefix, filename string, now time.Time) string {
	ext := filepath.Ext(filename)
	base := helper.Slugify(strings.TrimSuffix(filename, ext), 80)

	key := TaskImagesDir + "/" + strconv.FormatInt(now.UnixMilli(), 10) + "-" + base + ".webp"
	if p := strings.Trim(prefix, "/"); p != "" {
		key = p + "/" + key
	}
	return key
}
