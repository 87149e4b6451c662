package salarystructure

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SalaryStructure struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uq_salary_structure_effective,priority:1"`
	EffectiveFrom time.Time `gorm:"type:date;not null;uniqueIndex:uq_salary_structure_effective,priority:2"`

	BasicSalary         decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	HRA                 decimal.Decimal `gorm:"column:hra;type:numeric(14,2);not null;default:0"`
	DA                  decimal.Decimal `gorm:"column:da;type:numeric(14,2);not null;default:0"`
	ConveyanceAllowance decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	MedicalAllowance    decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	SpecialAllowance    decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	OtherAllowances     decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`

	PFDeduction     decimal.Decimal `gorm:"column:pf_deduction;type:numeric(14,2);not null;default:0"`
	ESIDeduction    decimal.Decimal `gorm:"column:esi_deduction;type:numeric(14,2);not null;default:0"`
	ProfessionalTax decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	TDS             decimal.Decimal `gorm:"column:tds;type:numeric(14,2);not null;default:0"`
	LoanDeduction   decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	OtherDeductions decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`

	GrossSalary     decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	TotalDeductions decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	NetSalary       decimal.Decimal `gorm:"type:numeric(14,2);not null"`

	Remarks   string `gorm:"type:text"`
	IsActive  bool   `gorm:"not null;default:true;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
