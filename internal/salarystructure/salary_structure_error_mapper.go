package salarystructure

import (
	"errors"
	"strings"

	salarystructureerrors "github.com/prasadp25/protecther-hrms-sub001/internal/salarystructure/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return salarystructureerrors.ErrSalaryStructureNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_salary_structure_effective" {
			return salarystructureerrors.ErrEffectiveDateAlreadyExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_salary_structure_effective") {
		return salarystructureerrors.ErrEffectiveDateAlreadyExists
	}

	return err
}
