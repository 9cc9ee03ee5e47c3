package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/fstr/pereval/internal/app/models"
	"github.com/fstr/pereval/internal/app/models/dto"
	"github.com/fstr/pereval/internal/pkg/apperrors"
	"github.com/fstr/pereval/internal/pkg/validation"
)

const requiredMessage = "field is required"

// PerevalStore is the persistence surface the service depends on.
type PerevalStore interface {
	Create(ctx context.Context, pereval *models.Pereval) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Pereval, error)
	GetByEmail(ctx context.Context, email string) ([]*models.Pereval, error)
	Update(ctx context.Context, id int64, patch *models.PerevalPatch) error
}

// PerevalService defines the interface for pass registry operations
type PerevalService interface {
	Submit(ctx context.Context, req *dto.SubmitPerevalRequest) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Pereval, error)
	GetByEmail(ctx context.Context, email string) ([]*models.Pereval, error)
	Update(ctx context.Context, id int64, req *dto.UpdatePerevalRequest) error
}

// perevalServiceImpl implements the PerevalService interface
type perevalServiceImpl struct {
	store    PerevalStore
	validate *validator.Validate
}

// NewPerevalService creates a new pereval service instance
func NewPerevalService(store PerevalStore) PerevalService {
	return &perevalServiceImpl{
		store:    store,
		validate: validator.New(),
	}
}

// Submit validates a submission and persists it. The record always enters
// the registry with status "new"; any client-supplied status is ignored.
func (s *perevalServiceImpl) Submit(ctx context.Context, req *dto.SubmitPerevalRequest) (int64, error) {
	pereval, err := s.buildPereval(req)
	if err != nil {
		return 0, err
	}

	id, err := s.store.Create(ctx, pereval)
	if err != nil {
		return 0, fmt.Errorf("error creating pereval: %w", err)
	}
	return id, nil
}

// GetByID retrieves a pass by ID
func (s *perevalServiceImpl) GetByID(ctx context.Context, id int64) (*models.Pereval, error) {
	if id <= 0 {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "pereval ID must be a positive number")
	}

	pereval, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return pereval, nil
}

// GetByEmail retrieves all passes submitted under the given email. An email
// with no submissions is not an error.
func (s *perevalServiceImpl) GetByEmail(ctx context.Context, email string) ([]*models.Pereval, error) {
	if email == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "user email is required")
	}

	perevals, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error retrieving perevals by email: %w", err)
	}
	return perevals, nil
}

// Update applies a merge patch to a pass still in "new" status. The status
// gate itself is enforced by the store inside the update transaction.
func (s *perevalServiceImpl) Update(ctx context.Context, id int64, req *dto.UpdatePerevalRequest) error {
	if id <= 0 {
		return apperrors.NewCustomError(apperrors.ErrValidationFailed, "pereval ID must be a positive number")
	}

	patch, err := s.buildPatch(req)
	if err != nil {
		return err
	}

	return s.store.Update(ctx, id, patch)
}

// buildPereval checks required fields and shapes, then maps the request to a
// domain record. Validation failures carry a field -> message map.
func (s *perevalServiceImpl) buildPereval(req *dto.SubmitPerevalRequest) (*models.Pereval, error) {
	fields := map[string]interface{}{}

	if req.Title == nil || *req.Title == "" {
		fields["title"] = requiredMessage
	}
	if req.AddTime == nil || *req.AddTime == "" {
		fields["add_time"] = requiredMessage
	}

	if req.User == nil {
		fields["user"] = requiredMessage
	} else {
		if req.User.Email == nil || *req.User.Email == "" {
			fields["user.email"] = requiredMessage
		}
		if req.User.Phone == nil || *req.User.Phone == "" {
			fields["user.phone"] = requiredMessage
		}
		if req.User.Fam == nil || *req.User.Fam == "" {
			fields["user.fam"] = requiredMessage
		}
		if req.User.Name == nil || *req.User.Name == "" {
			fields["user.name"] = requiredMessage
		}
		if req.User.Otc == nil || *req.User.Otc == "" {
			fields["user.otc"] = requiredMessage
		}
	}

	if req.Coords == nil {
		fields["coords"] = requiredMessage
	} else {
		if req.Coords.Latitude == nil {
			fields["coords.latitude"] = requiredMessage
		}
		if req.Coords.Longitude == nil {
			fields["coords.longitude"] = requiredMessage
		}
		if req.Coords.Height == nil {
			fields["coords.height"] = requiredMessage
		}
	}

	if len(fields) > 0 {
		return nil, apperrors.NewValidationError("required fields are missing", fields)
	}

	if err := s.validate.Var(*req.User.Email, "email"); err != nil {
		fields["user.email"] = "invalid email address"
	}
	if !validation.ValidLatitude(*req.Coords.Latitude) {
		fields["coords.latitude"] = "latitude must be between -90 and 90"
	}
	if !validation.ValidLongitude(*req.Coords.Longitude) {
		fields["coords.longitude"] = "longitude must be between -180 and 180"
	}
	if !validation.ValidHeight(*req.Coords.Height) {
		fields["coords.height"] = "height must not be negative"
	}

	addTime, err := validation.ParseAddTime(*req.AddTime)
	if err != nil {
		fields["add_time"] = "must be a valid timestamp"
	}

	if len(fields) > 0 {
		return nil, apperrors.NewValidationError("invalid field values", fields)
	}

	pereval := &models.Pereval{
		BeautyTitle: req.BeautyTitle,
		Title:       *req.Title,
		OtherTitles: req.OtherTitles,
		Connect:     req.Connect,
		AddTime:     addTime,
		Status:      models.StatusNew,
		User: &models.User{
			Email: *req.User.Email,
			Phone: *req.User.Phone,
			Fam:   *req.User.Fam,
			Name:  *req.User.Name,
			Otc:   *req.User.Otc,
		},
		Coords: models.Coords{
			Latitude:  *req.Coords.Latitude,
			Longitude: *req.Coords.Longitude,
			Height:    *req.Coords.Height,
		},
	}

	if req.Level != nil {
		pereval.Level = models.Level{
			Winter: req.Level.Winter,
			Summer: req.Level.Summer,
			Autumn: req.Level.Autumn,
			Spring: req.Level.Spring,
		}
	}

	for _, img := range req.Images {
		pereval.Images = append(pereval.Images, models.PerevalImage{
			Title: img.Title,
			Img:   img.Data,
		})
	}

	return pereval, nil
}

// buildPatch maps a sparse update request to a domain patch. Shape checks
// only; a patch may narrow or widen fields that were required at creation.
func (s *perevalServiceImpl) buildPatch(req *dto.UpdatePerevalRequest) (*models.PerevalPatch, error) {
	if req.IsEmpty() && req.User == nil {
		return nil, apperrors.ErrNothingToUpdate
	}

	patch := &models.PerevalPatch{
		BeautyTitle: req.BeautyTitle,
		Title:       req.Title,
		OtherTitles: req.OtherTitles,
		Connect:     req.Connect,
	}

	if req.AddTime != nil {
		parsed, err := validation.ParseAddTime(*req.AddTime)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid field values",
				map[string]interface{}{"add_time": "must be a valid timestamp"})
		}
		patch.AddTime = timePtr(parsed)
	}

	if req.Coords != nil {
		fields := map[string]interface{}{}
		if req.Coords.Latitude != nil && !validation.ValidLatitude(*req.Coords.Latitude) {
			fields["coords.latitude"] = "latitude must be between -90 and 90"
		}
		if req.Coords.Longitude != nil && !validation.ValidLongitude(*req.Coords.Longitude) {
			fields["coords.longitude"] = "longitude must be between -180 and 180"
		}
		if req.Coords.Height != nil && !validation.ValidHeight(*req.Coords.Height) {
			fields["coords.height"] = "height must not be negative"
		}
		if len(fields) > 0 {
			return nil, apperrors.NewValidationError("invalid field values", fields)
		}
		patch.Latitude = req.Coords.Latitude
		patch.Longitude = req.Coords.Longitude
		patch.Height = req.Coords.Height
	}

	if req.Level != nil {
		patch.Winter = req.Level.Winter
		patch.Summer = req.Level.Summer
		patch.Autumn = req.Level.Autumn
		patch.Spring = req.Level.Spring
	}

	if req.User != nil {
		patch.User = &models.User{}
		if req.User.Email != nil {
			patch.User.Email = *req.User.Email
		}
		if req.User.Phone != nil {
			patch.User.Phone = *req.User.Phone
		}
		if req.User.Fam != nil {
			patch.User.Fam = *req.User.Fam
		}
		if req.User.Name != nil {
			patch.User.Name = *req.User.Name
		}
		if req.User.Otc != nil {
			patch.User.Otc = *req.User.Otc
		}
	}

	return patch, nil
}

func timePtr(t time.Time) *time.Time {
	return &t
}
