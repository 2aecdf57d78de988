package checkpoint

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/orc/backend/internal/domain/checkpoint"
	"github.com/orc/backend/internal/domain/shared"
)

// AllowedPlateImageContentTypes whitelists the formats weighbridge cameras
// produce. Everything else is rejected before a presigned URL is issued.
var AllowedPlateImageContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// ObjectStorageService defines the interface for object storage operations
// This interface will be implemented by the infrastructure layer (S3, MinIO, etc.)
type ObjectStorageService interface {
	// GenerateUploadURL generates a presigned URL for uploading a file
	// Returns the upload URL and expiration time
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL generates a presigned URL for downloading a file
	// Returns the download URL and expiration time
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject deletes an object from storage
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists checks if an object exists in storage
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// PlateImageServiceConfig holds configuration for the plate image service
type PlateImageServiceConfig struct {
	// UploadURLExpiry is the duration for which upload URLs are valid
	UploadURLExpiry time.Duration
	// DownloadURLExpiry is the duration for which download URLs are valid
	DownloadURLExpiry time.Duration
}

// DefaultPlateImageServiceConfig returns the default configuration
func DefaultPlateImageServiceConfig() PlateImageServiceConfig {
	return PlateImageServiceConfig{
		UploadURLExpiry:   15 * time.Minute,
		DownloadURLExpiry: 1 * time.Hour,
	}
}

// PlateImageUploadRequest asks for a presigned URL so a weighbridge camera
// can push its plate snapshot before submitting the reading.
type PlateImageUploadRequest struct {
	MachineNumber string `json:"machine_number" binding:"required"`
	FileName      string `json:"file_name" binding:"required"`
	ContentType   string `json:"content_type" binding:"required"`
}

// PlateImageUploadResponse carries the storage key the device must echo
// back in its reading, plus the URL to upload the snapshot to.
type PlateImageUploadResponse struct {
	StorageKey string    `json:"storage_key"`
	UploadURL  string    `json:"upload_url"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// PlateImageURLResponse carries a presigned download URL for a checkin's
// plate snapshot.
type PlateImageURLResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// PlateImageService manages plate snapshot uploads and retrieval.
// Devices upload the snapshot first, then reference its storage key in the
// weighbridge reading; the key is attached to the checkin on ingest.
type PlateImageService struct {
	stationRepo    checkpoint.StationRepository
	checkinRepo    checkpoint.CheckinRepository
	storageService ObjectStorageService
	config         PlateImageServiceConfig
}

// NewPlateImageService creates a new PlateImageService
func NewPlateImageService(
	stationRepo checkpoint.StationRepository,
	checkinRepo checkpoint.CheckinRepository,
	storageService ObjectStorageService,
) *PlateImageService {
	return &PlateImageService{
		stationRepo:    stationRepo,
		checkinRepo:    checkinRepo,
		storageService: storageService,
		config:         DefaultPlateImageServiceConfig(),
	}
}

// SetConfig sets the service configuration
func (s *PlateImageService) SetConfig(config PlateImageServiceConfig) {
	s.config = config
}

// InitiateUpload validates the requesting device and returns a presigned
// upload URL together with the storage key the reading must carry.
func (s *PlateImageService) InitiateUpload(ctx context.Context, req PlateImageUploadRequest) (*PlateImageUploadResponse, error) {
	station, err := s.stationRepo.FindByMachineNumber(ctx, req.MachineNumber)
	if err != nil {
		return nil, fmt.Errorf("resolving station for machine %s: %w", req.MachineNumber, err)
	}

	if !AllowedPlateImageContentTypes[strings.ToLower(req.ContentType)] {
		return nil, shared.NewDomainError("DISALLOWED_CONTENT_TYPE",
			fmt.Sprintf("Content type '%s' is not allowed for plate snapshots", req.ContentType))
	}

	storageKey := s.generateStorageKey(station.ID, req.FileName)

	uploadURL, expiresAt, err := s.storageService.GenerateUploadURL(ctx, storageKey, req.ContentType, s.config.UploadURLExpiry)
	if err != nil {
		return nil, shared.NewDomainError("UPLOAD_URL_FAILED", "Failed to generate upload URL")
	}

	return &PlateImageUploadResponse{
		StorageKey: storageKey,
		UploadURL:  uploadURL,
		ExpiresAt:  expiresAt,
	}, nil
}

// GetDownloadURL returns a presigned download URL for the plate snapshot
// attached to a checkin.
func (s *PlateImageService) GetDownloadURL(ctx context.Context, checkinID uuid.UUID) (*PlateImageURLResponse, error) {
	chk, err := s.checkinRepo.FindByID(ctx, checkinID)
	if err != nil {
		return nil, err
	}

	if chk.PlateImageKey == "" {
		return nil, shared.NewDomainError("NO_PLATE_IMAGE", "Checkin has no plate snapshot attached")
	}

	url, expiresAt, err := s.storageService.GenerateDownloadURL(ctx, chk.PlateImageKey, s.config.DownloadURLExpiry)
	if err != nil {
		return nil, shared.NewDomainError("DOWNLOAD_URL_FAILED", "Failed to generate download URL")
	}

	return &PlateImageURLResponse{
		URL:       url,
		ExpiresAt: expiresAt,
	}, nil
}

// DeleteOrphanedUpload removes an uploaded snapshot that was never attached
// to a checkin, e.g. when the reading it belonged to was rejected.
func (s *PlateImageService) DeleteOrphanedUpload(ctx context.Context, storageKey string) error {
	if !strings.HasPrefix(storageKey, "plates/") {
		return shared.NewDomainError("INVALID_STORAGE_KEY", "Storage key is not a plate snapshot")
	}

	exists, err := s.storageService.ObjectExists(ctx, storageKey)
	if err != nil {
		return shared.NewDomainError("STORAGE_CHECK_FAILED", "Failed to check snapshot existence")
	}
	if !exists {
		return shared.ErrNotFound
	}

	return s.storageService.DeleteObject(ctx, storageKey)
}

// generateStorageKey builds a collision-free key partitioned by station and day
func (s *PlateImageService) generateStorageKey(stationID uuid.UUID, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	now := time.Now().UTC()
	return fmt.Sprintf("plates/%s/%s/%s%s", stationID.String(), now.Format("2006/01/02"), uuid.New().String(), ext)
}
