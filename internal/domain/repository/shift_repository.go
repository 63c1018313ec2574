package repository

import "github.com/tu-usuario/breakfast-pos/internal/domain/entity"

// ShiftRepository define el puerto de persistencia de turnos de caja.
type ShiftRepository interface {
	GetOpen() (*entity.ShiftSession, error)
	GetByID(id string) (*entity.ShiftSession, error)
	List(limit int) ([]*entity.ShiftSession, error)
	Create(shift *entity.ShiftSession) error
	Update(shift *entity.ShiftSession) error
}
