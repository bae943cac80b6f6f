package services

import (
	"context"
	"strings"
	"time"

	"github.com/agenciadecir/gympro/models"
	"github.com/agenciadecir/gympro/utils"

	"gorm.io/gorm"
)

// ProgressService tracks body-measurement snapshots. Photos arriving as
// base64 data URLs are pushed to S3 and stored as public URLs; already-hosted
// URLs pass through untouched.
type ProgressService struct {
	db       *gorm.DB
	uploader *utils.S3Uploader
	hub      *RealtimeHub
}

func NewProgressService(db *gorm.DB, uploader *utils.S3Uploader, hub *RealtimeHub) *ProgressService {
	return &ProgressService{db: db, uploader: uploader, hub: hub}
}

type ProgressInput struct {
	Date                *time.Time `json:"date"`
	BodyWeight          float64    `json:"bodyWeight"`
	BackMeasurement     float64    `json:"backMeasurement"`
	ChestMeasurement    float64    `json:"chestMeasurement"`
	LeftArmMeasurement  float64    `json:"leftArmMeasurement"`
	RightArmMeasurement float64    `json:"rightArmMeasurement"`
	AbdomenMeasurement  float64    `json:"abdomenMeasurement"`
	GlutesMeasurement   float64    `json:"glutesMeasurement"`
	LeftLegMeasurement  float64    `json:"leftLegMeasurement"`
	RightLegMeasurement float64    `json:"rightLegMeasurement"`
	FrontPhoto          string     `json:"frontPhoto"`
	SidePhoto           string     `json:"sidePhoto"`
	BackPhoto           string     `json:"backPhoto"`
	ExtraPhoto          string     `json:"extraPhoto"`
	Notes               string     `json:"notes"`
}

func (s *ProgressService) resolvePhoto(ctx context.Context, photo string) (string, error) {
	if photo == "" || !strings.HasPrefix(photo, "data:") {
		return photo, nil
	}
	if s.uploader == nil {
		// Upload disabled; drop the raw payload rather than store megabytes
		// of base64 in the row.
		return "", nil
	}
	return s.uploader.UploadBase64Image(ctx, photo, "progress-photos")
}

func (s *ProgressService) ListProgress(userID uint) ([]models.PhysicalProgress, error) {
	var records []models.PhysicalProgress
	err := s.db.Where("user_id = ?", userID).Order("date DESC").Find(&records).Error
	return records, err
}

func (s *ProgressService) CreateProgress(ctx context.Context, userID uint, in ProgressInput) (*models.PhysicalProgress, error) {
	record := models.PhysicalProgress{
		UserID:              userID,
		Date:                time.Now(),
		BodyWeight:          in.BodyWeight,
		BackMeasurement:     in.BackMeasurement,
		ChestMeasurement:    in.ChestMeasurement,
		LeftArmMeasurement:  in.LeftArmMeasurement,
		RightArmMeasurement: in.RightArmMeasurement,
		AbdomenMeasurement:  in.AbdomenMeasurement,
		GlutesMeasurement:   in.GlutesMeasurement,
		LeftLegMeasurement:  in.LeftLegMeasurement,
		RightLegMeasurement: in.RightLegMeasurement,
		Notes:               in.Notes,
	}
	if in.Date != nil {
		record.Date = *in.Date
	}

	var err error
	if record.FrontPhoto, err = s.resolvePhoto(ctx, in.FrontPhoto); err != nil {
		return nil, err
	}
	if record.SidePhoto, err = s.resolvePhoto(ctx, in.SidePhoto); err != nil {
		return nil, err
	}
	if record.BackPhoto, err = s.resolvePhoto(ctx, in.BackPhoto); err != nil {
		return nil, err
	}
	if record.ExtraPhoto, err = s.resolvePhoto(ctx, in.ExtraPhoto); err != nil {
		return nil, err
	}

	if err := s.db.Create(&record).Error; err != nil {
		return nil, err
	}

	s.hub.Broadcast(userID, "progress.created", &record)
	return &record, nil
}

func (s *ProgressService) UpdateProgress(ctx context.Context, userID, progressID uint, in ProgressInput) (*models.PhysicalProgress, error) {
	var record models.PhysicalProgress
	if err := s.db.Where("id = ? AND user_id = ?", progressID, userID).First(&record).Error; err != nil {
		return nil, notFoundOr(err)
	}

	if in.Date != nil {
		record.Date = *in.Date
	}
	record.BodyWeight = in.BodyWeight
	record.BackMeasurement = in.BackMeasurement
	record.ChestMeasurement = in.ChestMeasurement
	record.LeftArmMeasurement = in.LeftArmMeasurement
	record.RightArmMeasurement = in.RightArmMeasurement
	record.AbdomenMeasurement = in.AbdomenMeasurement
	record.GlutesMeasurement = in.GlutesMeasurement
	record.LeftLegMeasurement = in.LeftLegMeasurement
	record.RightLegMeasurement = in.RightLegMeasurement
	record.Notes = in.Notes

	var err error
	if in.FrontPhoto != "" {
		if record.FrontPhoto, err = s.resolvePhoto(ctx, in.FrontPhoto); err != nil {
			return nil, err
		}
	}
	if in.SidePhoto != "" {
		if record.SidePhoto, err = s.resolvePhoto(ctx, in.SidePhoto); err != nil {
			return nil, err
		}
	}
	if in.BackPhoto != "" {
		if record.BackPhoto, err = s.resolvePhoto(ctx, in.BackPhoto); err != nil {
			return nil, err
		}
	}
	if in.ExtraPhoto != "" {
		if record.ExtraPhoto, err = s.resolvePhoto(ctx, in.ExtraPhoto); err != nil {
			return nil, err
		}
	}

	if err := s.db.Save(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *ProgressService) DeleteProgress(userID, progressID uint) error {
	res := s.db.Where("id = ? AND user_id = ?", progressID, userID).Delete(&models.PhysicalProgress{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
