package service

import (
	"context"
	"database/sql"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/noah-isme/lab-portal-api/internal/models"
)

type fakeUserStore struct {
	mu      sync.Mutex
	byID    map[string]*models.User
	calls   int
	findErr error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byID: map[string]*models.User{}}
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, u := range f.byID {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUserStore) FindByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	u, ok := f.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	f.byID[user.ID] = &cp
	return nil
}

func (f *fakeUserStore) List(_ context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.User, 0, len(f.byID))
	for _, u := range f.byID {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserStore) UpdateStatus(_ context.Context, id string, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return sql.ErrNoRows
	}
	u.IsActive = active
	return nil
}

func (f *fakeUserStore) UpdateProfile(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[user.ID]; !ok {
		return sql.ErrNoRows
	}
	for id, u := range f.byID {
		if id != user.ID && strings.EqualFold(u.Email, user.Email) {
			return &pq.Error{Code: "23505"}
		}
	}
	cp := *user
	f.byID[user.ID] = &cp
	return nil
}

func (f *fakeUserStore) Count(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byID), nil
}

func (f *fakeUserStore) remove(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byID, id)
}

type fakeAdminStore struct {
	mu    sync.Mutex
	byID  map[string]*models.Admin
	calls int
}

func newFakeAdminStore() *fakeAdminStore {
	return &fakeAdminStore{byID: map[string]*models.Admin{}}
}

func (f *fakeAdminStore) FindByEmail(_ context.Context, email string) (*models.Admin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	for _, a := range f.byID {
		if strings.EqualFold(a.Email, email) {
			cp := *a
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeAdminStore) FindByID(_ context.Context, id string) (*models.Admin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	a, ok := f.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAdminStore) Create(_ context.Context, admin *models.Admin) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if admin.ID == "" {
		admin.ID = uuid.NewString()
	}
	cp := *admin
	f.byID[admin.ID] = &cp
	return nil
}

type fakeLabStore struct {
	labs      map[string]*models.Lab
	order     []string
	deleteErr error
}

func newFakeLabStore() *fakeLabStore {
	return &fakeLabStore{labs: map[string]*models.Lab{}}
}

func (f *fakeLabStore) List(_ context.Context, filter models.LabFilter) ([]models.Lab, error) {
	out := []models.Lab{}
	for i := len(f.order) - 1; i >= 0; i-- {
		lab := f.labs[f.order[i]]
		if lab == nil {
			continue
		}
		if filter.LabType != "" && lab.LabType != filter.LabType {
			continue
		}
		out = append(out, *lab)
	}
	return out, nil
}

func (f *fakeLabStore) FindByID(_ context.Context, id string) (*models.Lab, error) {
	lab, ok := f.labs[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *lab
	return &cp, nil
}

func (f *fakeLabStore) Create(_ context.Context, lab *models.Lab) error {
	lab.ID = uuid.NewString()
	lab.CreatedAt = time.Now().UTC()
	cp := *lab
	f.labs[lab.ID] = &cp
	f.order = append(f.order, lab.ID)
	return nil
}

func (f *fakeLabStore) Update(_ context.Context, lab *models.Lab) error {
	if _, ok := f.labs[lab.ID]; !ok {
		return sql.ErrNoRows
	}
	cp := *lab
	f.labs[lab.ID] = &cp
	return nil
}

func (f *fakeLabStore) Delete(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.labs[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.labs, id)
	return nil
}

func (f *fakeLabStore) Count(_ context.Context) (int, error) {
	return len(f.labs), nil
}

type fakeTimetableStore struct {
	labs      *fakeLabStore
	items     map[string]*models.Timetable
	order     []string
	createErr error
	booked    map[models.Weekday]int
}

func newFakeTimetableStore(labs *fakeLabStore) *fakeTimetableStore {
	return &fakeTimetableStore{labs: labs, items: map[string]*models.Timetable{}, booked: map[models.Weekday]int{}}
}

func (f *fakeTimetableStore) withLab(t *models.Timetable) models.TimetableWithLab {
	out := models.TimetableWithLab{Timetable: *t}
	if lab, ok := f.labs.labs[t.LabID]; ok {
		out.Lab = *lab
	}
	return out
}

func (f *fakeTimetableStore) List(_ context.Context) ([]models.TimetableWithLab, error) {
	out := []models.TimetableWithLab{}
	for i := len(f.order) - 1; i >= 0; i-- {
		if t, ok := f.items[f.order[i]]; ok {
			out = append(out, f.withLab(t))
		}
	}
	return out, nil
}

func (f *fakeTimetableStore) FindByLabID(_ context.Context, labID string) (*models.TimetableWithLab, error) {
	for _, t := range f.items {
		if t.LabID == labID {
			out := f.withLab(t)
			return &out, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeTimetableStore) FindByID(_ context.Context, id string) (*models.Timetable, error) {
	t, ok := f.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTimetableStore) ExistsForLab(_ context.Context, labID string) (bool, error) {
	for _, t := range f.items {
		if t.LabID == labID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTimetableStore) Create(_ context.Context, item *models.Timetable) error {
	if f.createErr != nil {
		return f.createErr
	}
	item.ID = uuid.NewString()
	if item.Schedule == nil {
		item.Schedule = models.Schedule{}
	}
	cp := *item
	f.items[item.ID] = &cp
	f.order = append(f.order, item.ID)
	return nil
}

func (f *fakeTimetableStore) Update(_ context.Context, item *models.Timetable) error {
	if _, ok := f.items[item.ID]; !ok {
		return sql.ErrNoRows
	}
	cp := *item
	f.items[item.ID] = &cp
	return nil
}

func (f *fakeTimetableStore) Delete(_ context.Context, id string) error {
	if _, ok := f.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.items, id)
	return nil
}

func (f *fakeTimetableStore) Count(_ context.Context) (int, error) {
	return len(f.items), nil
}

func (f *fakeTimetableStore) CountUnavailableSlots(_ context.Context, day models.Weekday) (int, error) {
	return f.booked[day], nil
}
