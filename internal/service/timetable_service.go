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

type timetableRepository interface {
	List(ctx context.Context) ([]models.TimetableWithLab, error)
	FindByLabID(ctx context.Context, labID string) (*models.TimetableWithLab, error)
	FindByID(ctx context.Context, id string) (*models.Timetable, error)
	ExistsForLab(ctx context.Context, labID string) (bool, error)
	Create(ctx context.Context, item *models.Timetable) error
	Update(ctx context.Context, item *models.Timetable) error
	Delete(ctx context.Context, id string) error
}

type labFinder interface {
	FindByID(ctx context.Context, id string) (*models.Lab, error)
}

// TimetableService manages the weekly schedule attached to each lab.
type TimetableService struct {
	repo      timetableRepository
	labs      labFinder
	cache     *CacheService
	exporter  *ExportService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTimetableService constructs a TimetableService. Cache and exporter are optional.
func NewTimetableService(repo timetableRepository, labs labFinder, cache *CacheService, exporter *ExportService, validate *validator.Validate, logger *zap.Logger) *TimetableService {
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if exporter == nil {
		exporter = NewExportService()
	}
	return &TimetableService{repo: repo, labs: labs, cache: cache, exporter: exporter, validator: validate, logger: logger}
}

// List returns all timetables with their labs, newest first.
func (s *TimetableService) List(ctx context.Context) ([]models.TimetableWithLab, error) {
	key := timetableListKey()
	var cached []models.TimetableWithLab
	if s.cache.Lookup(ctx, key, &cached) {
		return cached, nil
	}
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list timetables")
	}
	s.cache.Store(ctx, key, items)
	return items, nil
}

// GetByLab returns the lab's timetable. A lab without one yields an empty
// placeholder rather than an error.
func (s *TimetableService) GetByLab(ctx context.Context, labID string) (models.LabTimetable, error) {
	if err := s.validator.Var(labID, "required,uuid"); err != nil {
		return models.LabTimetable{}, appErrors.Clone(appErrors.ErrValidation, "invalid lab id")
	}
	key := timetableLabKey(labID)
	var cached models.TimetableWithLab
	if s.cache.Lookup(ctx, key, &cached) {
		return models.LabTimetable{LabID: labID, Timetable: &cached}, nil
	}

	item, err := s.repo.FindByLabID(ctx, labID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.LabTimetable{LabID: labID}, nil
		}
		return models.LabTimetable{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable")
	}
	s.cache.Store(ctx, key, item)
	return models.LabTimetable{LabID: labID, Timetable: item}, nil
}

// Create attaches a timetable to a lab that has none yet.
func (s *TimetableService) Create(ctx context.Context, req dto.CreateTimetableRequest) (*models.Timetable, error) {
	req.Normalize()
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid timetable payload")
	}

	if _, err := s.labs.FindByID(ctx, req.LabID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "lab not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load lab")
	}

	exists, err := s.repo.ExistsForLab(ctx, req.LabID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check timetable")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "Timetable already exists for this lab")
	}

	item := &models.Timetable{LabID: req.LabID, LabName: req.LabName, Schedule: req.Schedule}
	if err := s.repo.Create(ctx, item); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "Timetable already exists for this lab")
		}
		if repository.IsForeignKeyViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "lab not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create timetable")
	}
	s.cache.Invalidate(ctx, ScopeTimetables)
	applog.FromContext(ctx, s.logger).Info("timetable created", zap.String("timetable_id", item.ID), zap.String("lab_id", item.LabID))
	return item, nil
}

// Update replaces the lab name and/or schedule of a timetable.
func (s *TimetableService) Update(ctx context.Context, id string, req dto.UpdateTimetableRequest) (*models.Timetable, error) {
	if err := s.validator.Var(id, "required,uuid"); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid timetable id")
	}
	req.Normalize()
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid timetable payload")
	}

	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Timetable not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable")
	}
	if req.LabName != nil {
		item.LabName = *req.LabName
	}
	if req.Schedule != nil {
		item.Schedule = req.Schedule
	}

	if err := s.repo.Update(ctx, item); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Timetable not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update timetable")
	}
	s.cache.Invalidate(ctx, ScopeTimetables)
	return item, nil
}

// Delete removes a timetable. Its lab is left in place.
func (s *TimetableService) Delete(ctx context.Context, id string) error {
	if err := s.validator.Var(id, "required,uuid"); err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "invalid timetable id")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "Timetable not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete timetable")
	}
	s.cache.Invalidate(ctx, ScopeTimetables)
	applog.FromContext(ctx, s.logger).Info("timetable deleted", zap.String("timetable_id", id))
	return nil
}

// Export renders one lab's timetable grid.
func (s *TimetableService) Export(ctx context.Context, labID string, format dto.ExportFormat) (*ExportFile, error) {
	lt, err := s.GetByLab(ctx, labID)
	if err != nil {
		return nil, err
	}
	if !lt.Exists() {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "Timetable not found")
	}
	return s.exporter.Timetable(lt.Timetable, format)
}
