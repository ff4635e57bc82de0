// Package memory keeps every entity in process memory. It backs
// STORE_DRIVER=memory and the HTTP tests, and mirrors the MongoDB store's
// ordering, search and ownership rules.
package memory

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hingaguru/farmdesk/internal/domain/models"
	"github.com/hingaguru/farmdesk/internal/repository"
)

var _ repository.Store = (*Store)(nil)

// Store is a mutex guarded in-memory implementation of repository.Store.
type Store struct {
	mu           sync.RWMutex
	farmlands    map[primitive.ObjectID]models.Farmland
	employees    map[primitive.ObjectID]models.Employee
	transactions map[primitive.ObjectID]models.Transaction
	crops        map[primitive.ObjectID]models.Crop
	tasks        map[primitive.ObjectID]models.Task
	users        map[primitive.ObjectID]models.User
	snapshots    map[primitive.ObjectID]models.SummarySnapshot
	now          func() time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		farmlands:    make(map[primitive.ObjectID]models.Farmland),
		employees:    make(map[primitive.ObjectID]models.Employee),
		transactions: make(map[primitive.ObjectID]models.Transaction),
		crops:        make(map[primitive.ObjectID]models.Crop),
		tasks:        make(map[primitive.ObjectID]models.Task),
		users:        make(map[primitive.ObjectID]models.User),
		snapshots:    make(map[primitive.ObjectID]models.SummarySnapshot),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the clock used for createdAt/updatedAt stamps.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) Close(context.Context) error { return nil }

func (s *Store) stamp(id *primitive.ObjectID, createdAt, updatedAt *time.Time) {
	if id.IsZero() {
		*id = primitive.NewObjectID()
	}
	now := s.now()
	if createdAt.IsZero() {
		*createdAt = now
	}
	*updatedAt = now
}

// matches reports whether any value contains search, ignoring case.
func matches(search string, values ...string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	return false
}

func applyDate(target **time.Time, patch models.DatePatch) {
	if !patch.Set {
		return
	}
	if patch.Value == nil {
		*target = nil
		return
	}
	v := *patch.Value
	*target = &v
}

// newestFirst orders by createdAt desc, falling back to id desc.
func newestFirst(a, b time.Time, idA, idB primitive.ObjectID) bool {
	if !a.Equal(b) {
		return a.After(b)
	}
	return idA.Hex() > idB.Hex()
}

// Farmlands

func (s *Store) ListFarmlands(_ context.Context, ownerID primitive.ObjectID, search string) ([]models.Farmland, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Farmland{}
	for _, f := range s.farmlands {
		if f.OwnerID != ownerID {
			continue
		}
		values := append([]string{f.Name, f.Area}, f.Crops...)
		if !matches(search, values...) {
			continue
		}
		out = append(out, cloneFarmland(f))
	}
	sort.Slice(out, func(i, j int) bool {
		return newestFirst(out[i].CreatedAt, out[j].CreatedAt, out[i].ID, out[j].ID)
	})
	return out, nil
}

func (s *Store) GetFarmland(_ context.Context, ownerID, id primitive.ObjectID) (*models.Farmland, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.farmlands[id]
	if !ok || f.OwnerID != ownerID {
		return nil, models.NotFoundError("Farmland")
	}
	f = cloneFarmland(f)
	return &f, nil
}

func (s *Store) CreateFarmland(_ context.Context, farmland *models.Farmland) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stamp(&farmland.ID, &farmland.CreatedAt, &farmland.UpdatedAt)
	s.farmlands[farmland.ID] = cloneFarmland(*farmland)
	return nil
}

func (s *Store) UpdateFarmland(_ context.Context, ownerID, id primitive.ObjectID, patch models.FarmlandPatch) (*models.Farmland, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.farmlands[id]
	if !ok || f.OwnerID != ownerID {
		return nil, models.NotFoundError("Farmland")
	}
	if patch.Name != nil {
		f.Name = *patch.Name
	}
	if patch.Area != nil {
		f.Area = *patch.Area
	}
	if patch.Crops != nil {
		f.Crops = slices.Clone(*patch.Crops)
	}
	if patch.Status != nil {
		f.Status = *patch.Status
	}
	if patch.ImageURL != nil {
		f.ImageURL = *patch.ImageURL
	}
	applyDate(&f.NextIrrigationDate, patch.NextIrrigationDate)
	applyDate(&f.NextFertilizingDate, patch.NextFertilizingDate)
	applyDate(&f.PlannedPlantingDate, patch.PlannedPlantingDate)
	f.UpdatedAt = s.now()

	s.farmlands[id] = f
	f = cloneFarmland(f)
	return &f, nil
}

func (s *Store) DeleteFarmland(_ context.Context, ownerID, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.farmlands[id]
	if !ok || f.OwnerID != ownerID {
		return models.NotFoundError("Farmland")
	}
	delete(s.farmlands, id)
	return nil
}

func cloneFarmland(f models.Farmland) models.Farmland {
	f.Crops = slices.Clone(f.Crops)
	if f.Crops == nil {
		f.Crops = []string{}
	}
	return f
}

// Employees

func (s *Store) ListEmployees(_ context.Context, ownerID primitive.ObjectID, search string) ([]models.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Employee{}
	for _, e := range s.employees {
		if e.OwnerID == ownerID && matches(search, e.FullName, e.Role, e.Phone) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return newestFirst(out[i].CreatedAt, out[j].CreatedAt, out[i].ID, out[j].ID)
	})
	return out, nil
}

func (s *Store) GetEmployee(_ context.Context, ownerID, id primitive.ObjectID) (*models.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.employees[id]
	if !ok || e.OwnerID != ownerID {
		return nil, models.NotFoundError("Employee")
	}
	return &e, nil
}

func (s *Store) CreateEmployee(_ context.Context, employee *models.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stamp(&employee.ID, &employee.CreatedAt, &employee.UpdatedAt)
	s.employees[employee.ID] = *employee
	return nil
}

func (s *Store) UpdateEmployee(_ context.Context, ownerID, id primitive.ObjectID, patch models.EmployeePatch) (*models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.employees[id]
	if !ok || e.OwnerID != ownerID {
		return nil, models.NotFoundError("Employee")
	}
	if patch.FullName != nil {
		e.FullName = *patch.FullName
	}
	if patch.Role != nil {
		e.Role = *patch.Role
	}
	if patch.Phone != nil {
		e.Phone = *patch.Phone
	}
	if patch.Status != nil {
		e.Status = *patch.Status
	}
	e.UpdatedAt = s.now()
	s.employees[id] = e
	return &e, nil
}

func (s *Store) DeleteEmployee(_ context.Context, ownerID, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.employees[id]
	if !ok || e.OwnerID != ownerID {
		return models.NotFoundError("Employee")
	}
	delete(s.employees, id)
	return nil
}

// Transactions

func (s *Store) ListTransactions(_ context.Context, ownerID primitive.ObjectID, f models.TransactionFilter) ([]models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Transaction{}
	for _, tx := range s.transactions {
		if tx.OwnerID == ownerID && transactionMatches(tx, f) {
			out = append(out, tx)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return newestFirst(out[i].Date, out[j].Date, out[i].ID, out[j].ID)
	})
	if f.Limit > 0 && int64(len(out)) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func transactionMatches(tx models.Transaction, f models.TransactionFilter) bool {
	switch {
	case f.Type != "" && tx.Type != f.Type:
		return false
	case f.Category != "" && tx.Category != f.Category:
		return false
	case f.FarmlandID != nil && (tx.FarmlandID == nil || *tx.FarmlandID != *f.FarmlandID):
		return false
	case f.EmployeeID != nil && (tx.EmployeeID == nil || *tx.EmployeeID != *f.EmployeeID):
		return false
	case f.From != nil && tx.Date.Before(*f.From):
		return false
	case f.To != nil && tx.Date.After(*f.To):
		return false
	}
	return true
}

func (s *Store) GetTransaction(_ context.Context, ownerID, id primitive.ObjectID) (*models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tx, ok := s.transactions[id]
	if !ok || tx.OwnerID != ownerID {
		return nil, models.NotFoundError("Transaction")
	}
	return &tx, nil
}

func (s *Store) CreateTransaction(_ context.Context, tx *models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stamp(&tx.ID, &tx.CreatedAt, &tx.UpdatedAt)
	s.transactions[tx.ID] = *tx
	return nil
}

func (s *Store) DeleteTransaction(_ context.Context, ownerID, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, ok := s.transactions[id]
	if !ok || tx.OwnerID != ownerID {
		return models.NotFoundError("Transaction")
	}
	delete(s.transactions, id)
	return nil
}

// Crops

func (s *Store) ListCrops(_ context.Context, search string) ([]models.Crop, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Crop{}
	for _, c := range s.crops {
		values := []string{c.Name, c.ScientificName}
		for _, d := range c.Diseases {
			values = append(values, d.Name)
		}
		values = append(values, c.Tips...)
		if matches(search, values...) {
			out = append(out, cloneCrop(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) GetCrop(_ context.Context, id primitive.ObjectID) (*models.Crop, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.crops[id]
	if !ok {
		return nil, models.NotFoundError("Crop")
	}
	c = cloneCrop(c)
	return &c, nil
}

func (s *Store) CountCrops(context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.crops)), nil
}

func (s *Store) CreateCrop(_ context.Context, crop *models.Crop) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stamp(&crop.ID, &crop.CreatedAt, &crop.UpdatedAt)
	s.crops[crop.ID] = cloneCrop(*crop)
	return nil
}

func (s *Store) CreateCrops(_ context.Context, crops []models.Crop) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range crops {
		s.stamp(&crops[i].ID, &crops[i].CreatedAt, &crops[i].UpdatedAt)
		s.crops[crops[i].ID] = cloneCrop(crops[i])
	}
	return nil
}

func (s *Store) UpdateCrop(_ context.Context, ownerID, id primitive.ObjectID, patch models.CropPatch) (*models.Crop, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.crops[id]
	if !ok || c.OwnerID == nil || *c.OwnerID != ownerID {
		return nil, models.NotFoundError("Crop")
	}
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.ScientificName != nil {
		c.ScientificName = *patch.ScientificName
	}
	if patch.Description != nil {
		c.Description = *patch.Description
	}
	if patch.OptimalTemp != nil {
		c.OptimalTemp = *patch.OptimalTemp
	}
	if patch.Soil != nil {
		c.Soil = *patch.Soil
	}
	if patch.Water != nil {
		c.Water = *patch.Water
	}
	if patch.Tips != nil {
		c.Tips = slices.Clone(*patch.Tips)
	}
	if patch.Diseases != nil {
		c.Diseases = slices.Clone(*patch.Diseases)
	}
	if patch.Market != nil {
		c.Market = *patch.Market
	}
	c.UpdatedAt = s.now()
	s.crops[id] = c
	c = cloneCrop(c)
	return &c, nil
}

func (s *Store) DeleteCrop(_ context.Context, ownerID, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.crops[id]
	if !ok || c.OwnerID == nil || *c.OwnerID != ownerID {
		return models.NotFoundError("Crop")
	}
	delete(s.crops, id)
	return nil
}

func cloneCrop(c models.Crop) models.Crop {
	c.OptimalSoilPH = slices.Clone(c.OptimalSoilPH)
	c.CommonPests = slices.Clone(c.CommonPests)
	c.Diseases = slices.Clone(c.Diseases)
	c.Tips = slices.Clone(c.Tips)
	return c
}

// Tasks

func (s *Store) ListTasks(_ context.Context, ownerID primitive.ObjectID, search string) ([]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Task{}
	for _, t := range s.tasks {
		if t.OwnerID == ownerID && matches(search, t.Title, t.Note) {
			out = append(out, t)
		}
	}
	// Undated tasks sort first, as MongoDB orders missing fields before values.
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].DueDate, out[j].DueDate
		switch {
		case a == nil && b != nil:
			return true
		case a != nil && b == nil:
			return false
		case a != nil && b != nil && !a.Equal(*b):
			return a.Before(*b)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) GetTask(_ context.Context, ownerID, id primitive.ObjectID) (*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok || t.OwnerID != ownerID {
		return nil, models.NotFoundError("Task")
	}
	return &t, nil
}

func (s *Store) CreateTask(_ context.Context, task *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stamp(&task.ID, &task.CreatedAt, &task.UpdatedAt)
	s.tasks[task.ID] = *task
	return nil
}

func (s *Store) UpdateTask(_ context.Context, ownerID, id primitive.ObjectID, patch models.TaskPatch) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok || t.OwnerID != ownerID {
		return nil, models.NotFoundError("Task")
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Note != nil {
		t.Note = *patch.Note
	}
	if patch.Priority != nil {
		t.Priority = *patch.Priority
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	applyDate(&t.DueDate, patch.DueDate)
	t.UpdatedAt = s.now()
	s.tasks[id] = t
	return &t, nil
}

func (s *Store) DeleteTask(_ context.Context, ownerID, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok || t.OwnerID != ownerID {
		return models.NotFoundError("Task")
	}
	delete(s.tasks, id)
	return nil
}

// Users

func (s *Store) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, models.NotFoundError("User")
}

func (s *Store) FindUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, models.NotFoundError("User")
	}
	return &u, nil
}

func (s *Store) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	for _, u := range s.users {
		if u.Email == user.Email {
			return models.ConflictError("User already exists")
		}
	}
	s.stamp(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	s.users[user.ID] = *user
	return nil
}

func (s *Store) UpdateUser(_ context.Context, id primitive.ObjectID, patch models.UserPatch) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, models.NotFoundError("User")
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.PhoneNumber != nil {
		u.PhoneNumber = *patch.PhoneNumber
	}
	if patch.LanguagePreference != nil {
		u.LanguagePreference = *patch.LanguagePreference
	}
	if patch.PasswordHash != nil {
		u.PasswordHash = *patch.PasswordHash
	}
	u.UpdatedAt = s.now()
	s.users[id] = u
	return &u, nil
}

func (s *Store) ListUsers(context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// Snapshots

func (s *Store) SaveSnapshot(_ context.Context, snapshot *models.SummarySnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if snapshot.ID.IsZero() {
		snapshot.ID = primitive.NewObjectID()
	}
	if snapshot.TakenAt.IsZero() {
		snapshot.TakenAt = s.now()
	}
	s.snapshots[snapshot.ID] = *snapshot
	return nil
}

func (s *Store) ListSnapshots(_ context.Context, ownerID primitive.ObjectID, limit int64) ([]models.SummarySnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.SummarySnapshot{}
	for _, snap := range s.snapshots {
		if snap.OwnerID == ownerID {
			out = append(out, snap)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return newestFirst(out[i].TakenAt, out[j].TakenAt, out[i].ID, out[j].ID)
	})
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}
