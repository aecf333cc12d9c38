package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/lab-portal-api/internal/dto"
	"github.com/noah-isme/lab-portal-api/internal/models"
	"github.com/noah-isme/lab-portal-api/internal/repository"
	appErrors "github.com/noah-isme/lab-portal-api/pkg/errors"
	applog "github.com/noah-isme/lab-portal-api/pkg/logger"
	"github.com/noah-isme/lab-portal-api/pkg/validation"
)

type labRepository interface {
	List(ctx context.Context, filter models.LabFilter) ([]models.Lab, error)
	FindByID(ctx context.Context, id string) (*models.Lab, error)
	Create(ctx context.Context, lab *models.Lab) error
	Update(ctx context.Context, lab *models.Lab) error
	Delete(ctx context.Context, id string) error
}

type labTimetableChecker interface {
	ExistsForLab(ctx context.Context, labID string) (bool, error)
}

// LabService manages the lab registry.
type LabService struct {
	repo       labRepository
	timetables labTimetableChecker
	cache      *CacheService
	exporter   *ExportService
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewLabService constructs a LabService. Cache and exporter are optional.
func NewLabService(repo labRepository, timetables labTimetableChecker, cache *CacheService, exporter *ExportService, validate *validator.Validate, logger *zap.Logger) *LabService {
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if exporter == nil {
		exporter = NewExportService()
	}
	return &LabService{repo: repo, timetables: timetables, cache: cache, exporter: exporter, validator: validate, logger: logger}
}

// List returns every lab, newest first.
func (s *LabService) List(ctx context.Context) ([]models.Lab, error) {
	return s.list(ctx, models.LabFilter{})
}

// ListByType returns labs of one type, newest first.
func (s *LabService) ListByType(ctx context.Context, labType string) ([]models.Lab, error) {
	return s.list(ctx, models.LabFilter{LabType: labType})
}

func (s *LabService) list(ctx context.Context, filter models.LabFilter) ([]models.Lab, error) {
	key := labListKey(filter.LabType)
	var cached []models.Lab
	if s.cache.Lookup(ctx, key, &cached) {
		return cached, nil
	}

	labs, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list labs")
	}
	s.cache.Store(ctx, key, labs)
	return labs, nil
}

// Get returns one lab.
func (s *LabService) Get(ctx context.Context, id string) (*models.Lab, error) {
	if err := s.validateID(id, "lab"); err != nil {
		return nil, err
	}
	lab, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "lab not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load lab")
	}
	return lab, nil
}

// Create registers a lab.
func (s *LabService) Create(ctx context.Context, req dto.CreateLabRequest) (*models.Lab, error) {
	req.Normalize()
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid lab payload")
	}
	lab := req.ToModel()
	if err := s.repo.Create(ctx, &lab); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create lab")
	}
	s.cache.Invalidate(ctx, ScopeLabs)
	applog.FromContext(ctx, s.logger).Info("lab created", zap.String("lab_id", lab.ID), zap.String("lab_type", lab.LabType))
	return &lab, nil
}

// Update merges the patch into the stored lab and re-validates the result.
func (s *LabService) Update(ctx context.Context, id string, req dto.UpdateLabRequest) (*models.Lab, error) {
	lab, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	req.Apply(lab)
	if err := s.validator.Struct(lab); err != nil {
		return nil, validationError(err, "invalid lab payload")
	}
	if err := s.repo.Update(ctx, lab); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "lab not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update lab")
	}
	s.cache.Invalidate(ctx, ScopeLabs, ScopeTimetables)
	return lab, nil
}

// Delete removes a lab unless a timetable still references it.
func (s *LabService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	exists, err := s.timetables.ExistsForLab(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check timetables")
	}
	if exists {
		return appErrors.Clone(appErrors.ErrHasDependents, "Cannot delete lab with existing timetable. Delete timetable first.")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return appErrors.Clone(appErrors.ErrNotFound, "lab not found")
		case repository.IsForeignKeyViolation(err):
			return appErrors.Clone(appErrors.ErrHasDependents, "Cannot delete lab with existing timetable. Delete timetable first.")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete lab")
	}
	s.cache.Invalidate(ctx, ScopeLabs)
	applog.FromContext(ctx, s.logger).Info("lab deleted", zap.String("lab_id", id))
	return nil
}

// Export renders the lab inventory.
func (s *LabService) Export(ctx context.Context, format dto.ExportFormat) (*ExportFile, error) {
	labs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.exporter.Labs(labs, format)
}

func (s *LabService) validateID(id, name string) error {
	if err := s.validator.Var(id, "required,uuid"); err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "invalid "+name+" id")
	}
	return nil
}
