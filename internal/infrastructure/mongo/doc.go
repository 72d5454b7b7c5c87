package mongo

import (
	"github.com/google/uuid"

	"calcHistory/internal/domain"
)

func (d calculationDoc) toDomain() (domain.Calculation, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return domain.Calculation{}, err
	}
	return domain.Calculation{
		ID:        id,
		Operation: d.Operation,
		Operand1:  d.Operand1,
		Operand2:  d.Operand2,
		Result:    d.Result,
		Timestamp: d.CreatedAt,
	}, nil
}
