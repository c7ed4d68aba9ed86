package service

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"tryout_prep_backend/internal/model"
	"tryout_prep_backend/internal/repository"
	"tryout_prep_backend/internal/util"
	"tryout_prep_backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var videoExtensions = map[string]bool{
	".mp4": true, ".mkv": true, ".mov": true, ".webm": true, ".avi": true,
}

type MaterialService struct {
	Repo    *repository.MaterialRepository
	Storage *StorageService
}

func NewMaterialService(repo *repository.MaterialRepository, storage *StorageService) *MaterialService {
	return &MaterialService{Repo: repo, Storage: storage}
}

type MaterialUploadRequest struct {
	Title       string
	Description string
	UploaderID  uint
}

// Upload stages the multipart file on disk, probes videos for duration, then
// hands the file to the configured storage provider.
func (s *MaterialService) Upload(ctx context.Context, req MaterialUploadRequest, file *multipart.FileHeader) (*model.Material, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	objectName := uuid.New().String() + ext

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "material-*"+ext)
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		return nil, err
	}
	tmp.Close()

	material := &model.Material{
		Title:       req.Title,
		Description: req.Description,
		Type:        model.MaterialDocument,
		ObjectName:  objectName,
		Size:        file.Size,
		UploaderID:  req.UploaderID,
	}

	if videoExtensions[ext] {
		material.Type = model.MaterialVideo
		if info, err := util.GetVideoInfo(tmp.Name()); err != nil {
			logger.Log.Warn("video probe failed, storing without duration",
				zap.String("file", file.Filename), zap.Error(err))
		} else {
			material.Duration = info.Duration
		}
	}

	contentType := file.Header.Get("Content-Type")
	url, err := s.Storage.Provider.UploadFile(ctx, objectName, tmp.Name(), contentType)
	if err != nil {
		return nil, err
	}
	material.URL = url

	if err := s.Repo.Create(material); err != nil {
		return nil, err
	}
	return material, nil
}

func (s *MaterialService) Get(id uint) (*model.Material, error) {
	m, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrMaterialNotFound
		}
		return nil, err
	}
	return m, nil
}

func (s *MaterialService) List(page, limit int) ([]model.Material, int64, error) {
	return s.Repo.List(page, limit)
}

func (s *MaterialService) Delete(ctx context.Context, id uint) error {
	m, err := s.Get(id)
	if err != nil {
		return err
	}

	if err := s.Storage.Provider.Delete(ctx, m.ObjectName); err != nil {
		logger.Log.Warn("failed to delete stored object",
			zap.String("object", m.ObjectName), zap.Error(err))
	}

	return s.Repo.Delete(id)
}
