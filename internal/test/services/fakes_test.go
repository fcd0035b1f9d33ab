package services_test

import (
	"database/sql"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"client-portal-backend/internal/models"
	"client-portal-backend/internal/notify"
	"client-portal-backend/internal/services"
)

// In-memory fakes behind the store interfaces. Shared by every service test
// in this package.

type fakeStore struct {
	users      map[uuid.UUID]*models.User
	projects   map[uuid.UUID]*models.Project
	tasks      map[uuid.UUID]*models.Task
	files      map[uuid.UUID]*models.File
	invoices   map[uuid.UUID]*models.Invoice
	activities []models.Activity
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[uuid.UUID]*models.User),
		projects: make(map[uuid.UUID]*models.Project),
		tasks:    make(map[uuid.UUID]*models.Task),
		files:    make(map[uuid.UUID]*models.File),
		invoices: make(map[uuid.UUID]*models.Invoice),
	}
}

func (s *fakeStore) addUser(email, name string, role models.Role) *models.User {
	u := &models.User{ID: uuid.New(), Email: email, Name: name, Role: role, CreatedAt: time.Now()}
	s.users[u.ID] = u
	return u
}

func (s *fakeStore) addProject(clientID uuid.UUID, title string) *models.Project {
	p := &models.Project{
		ID:        uuid.New(),
		ClientID:  clientID,
		Title:     title,
		Status:    models.ProjectStatusHearing,
		CreatedAt: time.Now(),
	}
	s.projects[p.ID] = p
	return p
}

func (s *fakeStore) activityActions() []string {
	actions := make([]string, len(s.activities))
	for i, a := range s.activities {
		actions[i] = a.Action
	}
	return actions
}

// UserStore

func (s *fakeStore) GetUserByID(id uuid.UUID) (*models.User, error) {
	return s.users[id], nil
}

func (s *fakeStore) InsertOrGetUserByEmail(email, name string, role models.Role) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return s.addUser(email, name, role), nil
}

// ProjectStore

func (s *fakeStore) CreateProject(clientID uuid.UUID, title string, status models.ProjectStatus) (*models.Project, error) {
	p := &models.Project{
		ID:        uuid.New(),
		ClientID:  clientID,
		Title:     title,
		Status:    status,
		CreatedAt: time.Now(),
	}
	s.projects[p.ID] = p
	return p, nil
}

func (s *fakeStore) GetProject(id uuid.UUID) (*models.Project, error) {
	return s.projects[id], nil
}

func (s *fakeStore) ListProjects() ([]models.Project, error) {
	out := make([]models.Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *fakeStore) ListProjectsByClient(clientID uuid.UUID) ([]models.Project, error) {
	var out []models.Project
	for _, p := range s.projects {
		if p.ClientID == clientID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *fakeStore) UpdateProjectStatus(id uuid.UUID, status models.ProjectStatus) error {
	p, ok := s.projects[id]
	if !ok {
		return errors.New("project not found")
	}
	p.Status = status
	return nil
}

func (s *fakeStore) SetProjectPaymentPending(id uuid.UUID, pending bool) error {
	p, ok := s.projects[id]
	if !ok {
		return errors.New("project not found")
	}
	p.IsPaymentPending = pending
	return nil
}

// TaskStore

func (s *fakeStore) CreateTask(task *models.Task) (*models.Task, error) {
	t := *task
	t.CreatedAt = time.Now()
	s.tasks[t.ID] = &t
	return &t, nil
}

func (s *fakeStore) GetTask(id uuid.UUID) (*models.Task, error) {
	return s.tasks[id], nil
}

func (s *fakeStore) ListTasks(projectID uuid.UUID) ([]models.Task, error) {
	var out []models.Task
	for _, t := range s.tasks {
		if t.ProjectID == projectID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (s *fakeStore) UpdateTask(id uuid.UUID, patch models.TaskPatch) (*models.Task, error) {
	t, ok := s.tasks[id]
	if !ok {
		return nil, errors.New("task not found")
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = sql.NullString{String: *patch.Description, Valid: true}
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	if patch.Tags != nil {
		t.Tags = pq.StringArray(*patch.Tags)
	}
	if patch.DueDate != nil {
		t.DueDate = sql.NullTime{Time: *patch.DueDate, Valid: true}
	}
	if patch.SortOrder != nil {
		t.SortOrder = sql.NullInt64{Int64: *patch.SortOrder, Valid: true}
	}
	copied := *t
	return &copied, nil
}

func (s *fakeStore) DeleteTask(id uuid.UUID) error {
	delete(s.tasks, id)
	return nil
}

// FileStore

func (s *fakeStore) CreateFile(file *models.File) (*models.File, error) {
	f := *file
	f.UploadedAt = time.Now()
	s.files[f.ID] = &f
	return &f, nil
}

func (s *fakeStore) GetFile(id uuid.UUID) (*models.File, error) {
	return s.files[id], nil
}

func (s *fakeStore) ListFiles(projectID uuid.UUID, category *models.FileCategory) ([]models.File, error) {
	var out []models.File
	for _, f := range s.files {
		if f.ProjectID != projectID {
			continue
		}
		if category != nil && f.Category != *category {
			continue
		}
		out = append(out, *f)
	}
	return out, nil
}

func (s *fakeStore) UpdateFileApproval(id uuid.UUID, status models.FileStatus, approvedBy uuid.UUID, approvedAt time.Time, comment sql.NullString) (*models.File, error) {
	f, ok := s.files[id]
	if !ok {
		return nil, errors.New("file not found")
	}
	f.Status = sql.NullString{String: string(status), Valid: true}
	f.ApprovedBy = uuid.NullUUID{UUID: approvedBy, Valid: true}
	f.ApprovedAt = sql.NullTime{Time: approvedAt, Valid: true}
	f.ApprovalComment = comment
	copied := *f
	return &copied, nil
}

func (s *fakeStore) DeleteFile(id uuid.UUID) error {
	delete(s.files, id)
	return nil
}

// InvoiceStore

func (s *fakeStore) CreateInvoice(projectID uuid.UUID, amount int64, currency models.Currency) (*models.Invoice, error) {
	inv := &models.Invoice{
		ID:        uuid.New(),
		ProjectID: projectID,
		Amount:    amount,
		Currency:  currency,
		Status:    models.InvoiceStatusPending,
		IssuedAt:  time.Now(),
	}
	s.invoices[inv.ID] = inv
	return inv, nil
}

func (s *fakeStore) GetPendingInvoice(projectID uuid.UUID) (*models.Invoice, error) {
	var oldest *models.Invoice
	for _, inv := range s.invoices {
		if inv.ProjectID != projectID || inv.Status != models.InvoiceStatusPending {
			continue
		}
		if oldest == nil || inv.IssuedAt.Before(oldest.IssuedAt) {
			oldest = inv
		}
	}
	if oldest == nil {
		return nil, nil
	}
	copied := *oldest
	return &copied, nil
}

// ActivityStore

func (s *fakeStore) InsertActivity(activity *models.Activity) error {
	a := *activity
	a.CreatedAt = time.Now()
	s.activities = append(s.activities, a)
	return nil
}

func (s *fakeStore) ListRecentActivities(projectID uuid.UUID, limit int) ([]models.ActivityWithUser, error) {
	var out []models.ActivityWithUser
	for i := len(s.activities) - 1; i >= 0 && len(out) < limit; i-- {
		a := s.activities[i]
		if a.ProjectID != projectID {
			continue
		}
		row := models.ActivityWithUser{Activity: a, UserName: "Unknown"}
		if u, ok := s.users[a.UserID]; ok {
			row.UserName = u.Name
			row.UserRole = sql.NullString{String: string(u.Role), Valid: true}
		}
		out = append(out, row)
	}
	return out, nil
}

// fakeBlobStorage counts calls and can be told to fail.

type fakeBlobStorage struct {
	failResolve bool
	failDelete  bool
	deleted     []string
}

func (b *fakeBlobStorage) IssueUploadURL(projectID uuid.UUID, filename string) (string, string, error) {
	handle := "projects/" + projectID.String() + "/" + filename
	return "https://storage.example.com/upload/" + handle, handle, nil
}

func (b *fakeBlobStorage) ResolveURL(handle string) (string, error) {
	if b.failResolve {
		return "", errors.New("storage unavailable")
	}
	return "https://storage.example.com/signed/" + handle, nil
}

func (b *fakeBlobStorage) DeleteBlob(handle string) error {
	if b.failDelete {
		return errors.New("storage unavailable")
	}
	b.deleted = append(b.deleted, handle)
	return nil
}

// fakeNotifier records enqueued events instead of delivering them.

type fakeNotifier struct {
	projectCreated   []notify.ProjectCreatedEvent
	invoiceRequested []notify.InvoiceRequestedEvent
}

func (n *fakeNotifier) EnqueueProjectCreated(e notify.ProjectCreatedEvent) {
	n.projectCreated = append(n.projectCreated, e)
}

func (n *fakeNotifier) EnqueueInvoiceRequested(e notify.InvoiceRequestedEvent) {
	n.invoiceRequested = append(n.invoiceRequested, e)
}

// env bundles a fully wired service set over one fake store.

type env struct {
	store    *fakeStore
	blobs    *fakeBlobStorage
	notifier *fakeNotifier

	projects *services.ProjectService
	tasks    *services.TaskService
	files    *services.FileService
	invoices *services.InvoiceService
	activity *services.ActivityService

	admin  *models.User
	client *models.User
}

func newEnv() *env {
	store := newFakeStore()
	blobs := &fakeBlobStorage{}
	notifier := &fakeNotifier{}

	activity := services.NewActivityService(store, store)

	return &env{
		store:    store,
		blobs:    blobs,
		notifier: notifier,
		projects: services.NewProjectService(store, store, activity, notifier, "http://localhost:3000"),
		tasks:    services.NewTaskService(store, store, activity),
		files:    services.NewFileService(store, store, activity, blobs),
		invoices: services.NewInvoiceService(store, store, store, notifier),
		activity: activity,
		admin:    store.addUser("admin@example.com", "Admin", models.RoleAdmin),
		client:   store.addUser("client@example.com", "Client", models.RoleClient),
	}
}
