// Package gormstore implements the store interfaces on gorm/Postgres.
// Uniqueness and referential integrity are delegated to the database:
// unique indexes reject duplicate handles/usernames and ON DELETE
// CASCADE removes dependent rows.
package gormstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"jobbotron/internal/models"
	"jobbotron/internal/store"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

var _ store.Store = (*Store)(nil)

// translate maps gorm sentinels onto the store's error vocabulary.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return store.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return store.ErrConflict
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		// A rejected reference means the referenced row does not
		// exist, which the services report as a missing resource.
		return store.ErrNotFound
	default:
		return err
	}
}

func (s *Store) CreateCompany(ctx context.Context, company *models.Company) error {
	return translate(s.db.WithContext(ctx).Omit(clause.Associations).Create(company).Error)
}

func (s *Store) GetCompany(ctx context.Context, handle string) (*models.Company, error) {
	var company models.Company
	err := s.db.WithContext(ctx).
		Preload("Jobs").
		Where("handle = ?", handle).
		First(&company).Error
	if err != nil {
		return nil, translate(err)
	}
	return &company, nil
}

func (s *Store) ListCompanies(ctx context.Context, filter store.ListFilter) ([]models.Company, error) {
	query := s.db.WithContext(ctx).Preload("Jobs")
	if filter.Search != "" {
		query = query.Where("handle ILIKE ?", "%"+filter.Search+"%")
	}
	var companies []models.Company
	err := query.Order("id").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&companies).Error
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	return companies, nil
}

func (s *Store) UpdateCompany(ctx context.Context, company *models.Company) error {
	return translate(s.db.WithContext(ctx).Omit(clause.Associations).Save(company).Error)
}

func (s *Store) DeleteCompany(ctx context.Context, handle string) error {
	result := s.db.WithContext(ctx).Where("handle = ?", handle).Delete(&models.Company{})
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) Employees(ctx context.Context, handles ...string) (map[string][]string, error) {
	if len(handles) == 0 {
		return map[string][]string{}, nil
	}
	var users []models.User
	err := s.db.WithContext(ctx).
		Where("current_company IN ?", handles).
		Order("id").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	employees := make(map[string][]string, len(handles))
	for _, user := range users {
		if user.CurrentCompany == nil {
			continue
		}
		employees[*user.CurrentCompany] = append(employees[*user.CurrentCompany], user.Username)
	}
	return employees, nil
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	return translate(s.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error)
}

func (s *Store) GetUser(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *Store) ListUsers(ctx context.Context, filter store.ListFilter) ([]models.User, error) {
	query := s.db.WithContext(ctx)
	if filter.Search != "" {
		query = query.Where("username ILIKE ?", "%"+filter.Search+"%")
	}
	var users []models.User
	err := query.Order("id").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *Store) UpdateUser(ctx context.Context, user *models.User) error {
	return translate(s.db.WithContext(ctx).Omit(clause.Associations).Save(user).Error)
}

func (s *Store) DeleteUser(ctx context.Context, username string) error {
	result := s.db.WithContext(ctx).Where("username = ?", username).Delete(&models.User{})
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) AppliedJobIDs(ctx context.Context, userIDs ...uint) (map[uint][]uint, error) {
	if len(userIDs) == 0 {
		return map[uint][]uint{}, nil
	}
	var applications []models.Application
	err := s.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Order("id").
		Find(&applications).Error
	if err != nil {
		return nil, fmt.Errorf("list applied job ids: %w", err)
	}
	applied := make(map[uint][]uint, len(userIDs))
	for _, application := range applications {
		applied[application.UserID] = append(applied[application.UserID], application.JobID)
	}
	return applied, nil
}

func (s *Store) CreateJob(ctx context.Context, job *models.Job) error {
	return translate(s.db.WithContext(ctx).Omit(clause.Associations).Create(job).Error)
}

func (s *Store) GetJob(ctx context.Context, id uint) (*models.Job, error) {
	var job models.Job
	err := s.db.WithContext(ctx).First(&job, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &job, nil
}

func (s *Store) ListJobs(ctx context.Context) ([]models.Job, error) {
	var jobs []models.Job
	if err := s.db.WithContext(ctx).Order("id").Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

func (s *Store) UpdateJob(ctx context.Context, job *models.Job) error {
	return translate(s.db.WithContext(ctx).Omit(clause.Associations).Save(job).Error)
}

func (s *Store) DeleteJob(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Job{}, id)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) CreateApplication(ctx context.Context, application *models.Application) error {
	return translate(s.db.WithContext(ctx).Omit(clause.Associations).Create(application).Error)
}

func (s *Store) GetApplication(ctx context.Context, id uint) (*models.Application, error) {
	var application models.Application
	err := s.db.WithContext(ctx).First(&application, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &application, nil
}

func (s *Store) ListApplicationsByJob(ctx context.Context, jobID uint) ([]models.Application, error) {
	var applications []models.Application
	err := s.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("id").
		Find(&applications).Error
	if err != nil {
		return nil, fmt.Errorf("list applications for job %d: %w", jobID, err)
	}
	return applications, nil
}

func (s *Store) ListApplicationsByJobAndUser(ctx context.Context, jobID, userID uint) ([]models.Application, error) {
	var applications []models.Application
	err := s.db.WithContext(ctx).
		Where("job_id = ? AND user_id = ?", jobID, userID).
		Order("id").
		Find(&applications).Error
	if err != nil {
		return nil, fmt.Errorf("list applications for job %d user %d: %w", jobID, userID, err)
	}
	return applications, nil
}

func (s *Store) DeleteApplication(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Application{}, id)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}
