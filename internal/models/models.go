package models

import "time"

type Company struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Handle is the external key; jobs and user affiliations reference it.
	Handle string `gorm:"uniqueIndex;not null" json:"handle"`
	Name   string `gorm:"not null" json:"name"`
	Logo   string `json:"logo,omitempty"`
	Email  string `gorm:"not null" json:"email"`

	// Only the bcrypt hash is persisted, and it never reaches a client.
	PasswordHash string `gorm:"not null" json:"-"`

	// 'omitempty' prevents infinite loops when fetching a Job -> Company -> Jobs -> ...
	Jobs []Job `gorm:"foreignKey:Company;references:Handle;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"jobs,omitempty"`
}

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Username  string `gorm:"uniqueIndex;not null" json:"username"`
	FirstName string `gorm:"not null" json:"first_name"`
	LastName  string `gorm:"not null" json:"last_name"`
	Email     string `gorm:"not null" json:"email"`
	Photo     string `json:"photo,omitempty"`

	PasswordHash string `gorm:"not null" json:"-"`

	// Affiliation, not ownership: cleared when the company goes away.
	CurrentCompany *string  `json:"current_company"`
	Employer       *Company `gorm:"foreignKey:CurrentCompany;references:Handle;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
}

type Job struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Title  string   `gorm:"not null" json:"title"`
	Salary int      `gorm:"not null" json:"salary"`
	Equity *float64 `json:"equity"`

	// Foreign key by handle, the same external key companies expose.
	Company string  `gorm:"index;not null" json:"company"`
	Owner   Company `gorm:"foreignKey:Company;references:Handle;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// Application links a User to a Job they applied to.
type Application struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	JobID  uint `gorm:"index;not null" json:"job_id"`
	UserID uint `gorm:"index;not null" json:"user_id"`

	Job  Job  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	User User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
