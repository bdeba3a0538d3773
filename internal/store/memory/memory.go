// Package memory is an in-memory store used by tests. It mirrors the
// Postgres adapter's semantics: unique handles/usernames reject with
// ErrConflict and deletes cascade to dependent rows.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"jobbotron/internal/models"
	"jobbotron/internal/store"
)

type Store struct {
	mu sync.Mutex

	companies    map[string]*models.Company
	users        map[string]*models.User
	jobs         map[uint]*models.Job
	applications map[uint]*models.Application

	nextCompanyID     uint
	nextUserID        uint
	nextJobID         uint
	nextApplicationID uint
}

func NewStore() *Store {
	return &Store{
		companies:    map[string]*models.Company{},
		users:        map[string]*models.User{},
		jobs:         map[uint]*models.Job{},
		applications: map[uint]*models.Application{},
	}
}

var _ store.Store = (*Store)(nil)

func (s *Store) CreateCompany(_ context.Context, company *models.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.companies[company.Handle]; exists {
		return store.ErrConflict
	}
	s.nextCompanyID++
	company.ID = s.nextCompanyID
	company.CreatedAt = time.Now()
	company.UpdatedAt = company.CreatedAt
	stored := *company
	s.companies[company.Handle] = &stored
	return nil
}

func (s *Store) GetCompany(_ context.Context, handle string) (*models.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	company, ok := s.companies[handle]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *company
	copied.Jobs = s.jobsForCompany(handle)
	return &copied, nil
}

func (s *Store) ListCompanies(_ context.Context, filter store.ListFilter) ([]models.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var companies []models.Company
	for _, company := range s.companies {
		if filter.Search != "" && !strings.Contains(strings.ToLower(company.Handle), strings.ToLower(filter.Search)) {
			continue
		}
		copied := *company
		copied.Jobs = s.jobsForCompany(company.Handle)
		companies = append(companies, copied)
	}
	sort.Slice(companies, func(i, j int) bool { return companies[i].ID < companies[j].ID })
	return paginate(companies, filter.Limit, filter.Offset), nil
}

func (s *Store) UpdateCompany(_ context.Context, company *models.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var oldHandle string
	found := false
	for handle, existing := range s.companies {
		if existing.ID == company.ID {
			oldHandle = handle
			found = true
			break
		}
	}
	if !found {
		return store.ErrNotFound
	}
	if other, exists := s.companies[company.Handle]; exists && other.ID != company.ID {
		return store.ErrConflict
	}
	company.UpdatedAt = time.Now()
	stored := *company
	stored.Jobs = nil
	delete(s.companies, oldHandle)
	s.companies[company.Handle] = &stored
	if oldHandle != company.Handle {
		for _, job := range s.jobs {
			if job.Company == oldHandle {
				job.Company = company.Handle
			}
		}
		for _, user := range s.users {
			if user.CurrentCompany != nil && *user.CurrentCompany == oldHandle {
				handle := company.Handle
				user.CurrentCompany = &handle
			}
		}
	}
	return nil
}

func (s *Store) DeleteCompany(_ context.Context, handle string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.companies[handle]; !ok {
		return store.ErrNotFound
	}
	delete(s.companies, handle)
	for id, job := range s.jobs {
		if job.Company != handle {
			continue
		}
		delete(s.jobs, id)
		for appID, application := range s.applications {
			if application.JobID == id {
				delete(s.applications, appID)
			}
		}
	}
	for _, user := range s.users {
		if user.CurrentCompany != nil && *user.CurrentCompany == handle {
			user.CurrentCompany = nil
		}
	}
	return nil
}

func (s *Store) Employees(_ context.Context, handles ...string) (map[string][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wanted := make(map[string]bool, len(handles))
	for _, handle := range handles {
		wanted[handle] = true
	}
	var users []*models.User
	for _, user := range s.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	employees := map[string][]string{}
	for _, user := range users {
		if user.CurrentCompany == nil || !wanted[*user.CurrentCompany] {
			continue
		}
		employees[*user.CurrentCompany] = append(employees[*user.CurrentCompany], user.Username)
	}
	return employees, nil
}

func (s *Store) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[user.Username]; exists {
		return store.ErrConflict
	}
	s.nextUserID++
	user.ID = s.nextUserID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	s.users[user.Username] = &stored
	return nil
}

func (s *Store) GetUser(_ context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[username]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *Store) ListUsers(_ context.Context, filter store.ListFilter) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var users []models.User
	for _, user := range s.users {
		if filter.Search != "" && !strings.Contains(strings.ToLower(user.Username), strings.ToLower(filter.Search)) {
			continue
		}
		users = append(users, *user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return paginate(users, filter.Limit, filter.Offset), nil
}

func (s *Store) UpdateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var oldUsername string
	found := false
	for username, existing := range s.users {
		if existing.ID == user.ID {
			oldUsername = username
			found = true
			break
		}
	}
	if !found {
		return store.ErrNotFound
	}
	if other, exists := s.users[user.Username]; exists && other.ID != user.ID {
		return store.ErrConflict
	}
	user.UpdatedAt = time.Now()
	stored := *user
	delete(s.users, oldUsername)
	s.users[user.Username] = &stored
	return nil
}

func (s *Store) DeleteUser(_ context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[username]
	if !ok {
		return store.ErrNotFound
	}
	delete(s.users, username)
	for appID, application := range s.applications {
		if application.UserID == user.ID {
			delete(s.applications, appID)
		}
	}
	return nil
}

func (s *Store) AppliedJobIDs(_ context.Context, userIDs ...uint) (map[uint][]uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wanted := make(map[uint]bool, len(userIDs))
	for _, id := range userIDs {
		wanted[id] = true
	}
	applications := s.sortedApplications()
	applied := map[uint][]uint{}
	for _, application := range applications {
		if wanted[application.UserID] {
			applied[application.UserID] = append(applied[application.UserID], application.JobID)
		}
	}
	return applied, nil
}

func (s *Store) CreateJob(_ context.Context, job *models.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.companies[job.Company]; !ok {
		return store.ErrNotFound
	}
	s.nextJobID++
	job.ID = s.nextJobID
	job.CreatedAt = time.Now()
	job.UpdatedAt = job.CreatedAt
	stored := *job
	s.jobs[job.ID] = &stored
	return nil
}

func (s *Store) GetJob(_ context.Context, id uint) (*models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *job
	return &copied, nil
}

func (s *Store) ListJobs(_ context.Context) ([]models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var jobs []models.Job
	for _, job := range s.jobs {
		jobs = append(jobs, *job)
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].ID < jobs[j].ID })
	return jobs, nil
}

func (s *Store) UpdateJob(_ context.Context, job *models.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[job.ID]; !ok {
		return store.ErrNotFound
	}
	job.UpdatedAt = time.Now()
	stored := *job
	s.jobs[job.ID] = &stored
	return nil
}

func (s *Store) DeleteJob(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.jobs, id)
	for appID, application := range s.applications {
		if application.JobID == id {
			delete(s.applications, appID)
		}
	}
	return nil
}

func (s *Store) CreateApplication(_ context.Context, application *models.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[application.JobID]; !ok {
		return store.ErrNotFound
	}
	s.nextApplicationID++
	application.ID = s.nextApplicationID
	application.CreatedAt = time.Now()
	stored := *application
	s.applications[application.ID] = &stored
	return nil
}

func (s *Store) GetApplication(_ context.Context, id uint) (*models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	application, ok := s.applications[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *application
	return &copied, nil
}

func (s *Store) ListApplicationsByJob(_ context.Context, jobID uint) ([]models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var applications []models.Application
	for _, application := range s.sortedApplications() {
		if application.JobID == jobID {
			applications = append(applications, application)
		}
	}
	return applications, nil
}

func (s *Store) ListApplicationsByJobAndUser(_ context.Context, jobID, userID uint) ([]models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var applications []models.Application
	for _, application := range s.sortedApplications() {
		if application.JobID == jobID && application.UserID == userID {
			applications = append(applications, application)
		}
	}
	return applications, nil
}

func (s *Store) DeleteApplication(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.applications[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.applications, id)
	return nil
}

func (s *Store) jobsForCompany(handle string) []models.Job {
	var jobs []models.Job
	for _, job := range s.jobs {
		if job.Company == handle {
			jobs = append(jobs, *job)
		}
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].ID < jobs[j].ID })
	return jobs
}

func (s *Store) sortedApplications() []models.Application {
	var applications []models.Application
	for _, application := range s.applications {
		applications = append(applications, *application)
	}
	sort.Slice(applications, func(i, j int) bool { return applications[i].ID < applications[j].ID })
	return applications
}

func paginate[T any](rows []T, limit, offset int) []T {
	if offset >= len(rows) {
		return nil
	}
	rows = rows[offset:]
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}
