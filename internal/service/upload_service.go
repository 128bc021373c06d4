package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/jpeg"
	"io"
	"language_center_backend/internal/model"
	"language_center_backend/internal/repository"
	"language_center_backend/internal/util"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const thumbnailMaxEdge = 320

type UploadService struct {
	Repo    *repository.UploadRepository
	Storage *StorageService
}

func NewUploadService(repo *repository.UploadRepository, storage *StorageService) *UploadService {
	return &UploadService{Repo: repo, Storage: storage}
}

// Save stores an upload under a date-partitioned key. Images additionally get
// a jpeg thumbnail next to the original.
func (s *UploadService) Save(ctx context.Context, uploaderID uint, fileName string, reader io.Reader, size int64) (*model.UploadedFile, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if !allowedExtension(ext) {
		return nil, fmt.Errorf("file extension %q not allowed", ext)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	contentType, err := util.ValidateMimeType(bytes.NewReader(data), []string{
		util.MimeImage, util.MimeAudio, util.MimePDF, util.MimeOctetStream,
		"application/msword", "application/vnd.openxmlformats-officedocument", "application/vnd.ms-powerpoint",
	})
	if err != nil {
		return nil, err
	}

	objectKey := fmt.Sprintf("%s/%s%s", time.Now().Format("2006/01/02"), uuid.New().String(), ext)
	url, err := s.Storage.Upload(ctx, objectKey, bytes.NewReader(data), int64(len(data)), contentType)
	if err != nil {
		return nil, err
	}

	record := &model.UploadedFile{
		UploaderID:  uploaderID,
		FileName:    fileName,
		ObjectKey:   objectKey,
		URL:         url,
		ContentType: contentType,
		SizeBytes:   int64(len(data)),
	}

	if util.IsImage(contentType) {
		if thumbURL, err := s.uploadThumbnail(ctx, objectKey, data); err == nil {
			record.ThumbnailURL = thumbURL
		}
	}

	if err := s.Repo.Create(record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *UploadService) uploadThumbnail(ctx context.Context, objectKey string, data []byte) (string, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", err
	}

	thumb := imaging.Fit(img, thumbnailMaxEdge, thumbnailMaxEdge, imaging.Lanczos)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: 80}); err != nil {
		return "", err
	}

	thumbKey := thumbKeyFor(objectKey)
	return s.Storage.Upload(ctx, thumbKey, &buf, int64(buf.Len()), "image/jpeg")
}

func thumbKeyFor(objectKey string) string {
	ext := filepath.Ext(objectKey)
	return strings.TrimSuffix(objectKey, ext) + "_thumb.jpg"
}

func (s *UploadService) Get(id uint) (*model.UploadedFile, error) {
	file, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrFileNotFound
		}
		return nil, err
	}
	return file, nil
}

func (s *UploadService) Delete(ctx context.Context, id uint) error {
	file, err := s.Get(id)
	if err != nil {
		return err
	}

	if err := s.Storage.Delete(ctx, file.ObjectKey); err != nil {
		return err
	}
	if file.ThumbnailURL != "" {
		// Thumbnail removal is best effort.
		s.Storage.Delete(ctx, thumbKeyFor(file.ObjectKey))
	}
	return s.Repo.Delete(id)
}

func (s *UploadService) ListByUploader(uploaderID uint, page, limit int) ([]model.UploadedFile, int64, error) {
	return s.Repo.ListByUploader(uploaderID, page, limit)
}

func allowedExtension(ext string) bool {
	for _, allowed := range util.AllowedMaterialExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
