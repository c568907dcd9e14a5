package service

import (
	"github.com/jmoiron/sqlx"

	"github.com/solarlabs-dev/solar-equipment-catalog/internal/repository"
)

type Services struct {
	Repos *repository.Repos
}

func New(db *sqlx.DB) *Services {
	return &Services{Repos: repository.New(db)}
}
