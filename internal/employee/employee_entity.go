package employee

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusActive     = "ACTIVE"
	StatusOnLeave    = "ON_LEAVE"
	StatusResigned   = "RESIGNED"
	StatusTerminated = "TERMINATED"
)

// Statuses in display order.
var Statuses = []string{StatusActive, StatusOnLeave, StatusResigned, StatusTerminated}

func ValidStatus(s string) bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

type Employee struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeCode string    `gorm:"type:varchar(20);uniqueIndex:uq_employee_code"`

	FirstName   string     `gorm:"type:varchar(100);not null"`
	LastName    string     `gorm:"type:varchar(100)"`
	Email       *string    `gorm:"type:varchar(255);uniqueIndex:uq_employee_email"` // NULL when absent
	Phone       string     `gorm:"type:varchar(20)"`
	DateOfBirth *time.Time `gorm:"type:date"`
	Gender      string     `gorm:"type:varchar(10)"`
	Address     string     `gorm:"type:text"`

	Designation   string     `gorm:"type:varchar(100)"`
	Department    string     `gorm:"type:varchar(100);index"`
	DateOfJoining time.Time  `gorm:"type:date;not null"`
	SiteID        *uuid.UUID `gorm:"type:uuid;index"`

	BankName          string `gorm:"type:varchar(100)"`
	BankAccountNumber string `gorm:"type:varchar(30)"`
	IFSCCode          string `gorm:"type:varchar(11)"`

	PANNumber     string `gorm:"type:varchar(10)"`
	AadhaarNumber string `gorm:"type:varchar(12)"`
	UANNumber     string `gorm:"type:varchar(12)"`

	OfferLetterPath string
	AadhaarCardPath string
	PANCardPath     string

	Status    string `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (e Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}
