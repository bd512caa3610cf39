package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/dravail-api/internal/repository"
)

type doctorRepository struct {
	BaseRepository
}

type hospitalRepository struct {
	BaseRepository
}

type messageRepository struct {
	BaseRepository
}

func NewDoctorRepository(db *sqlx.DB) repository.DoctorRepository {
	return &doctorRepository{NewBaseRepository(db)}
}

func NewHospitalRepository(db *sqlx.DB) repository.HospitalRepository {
	return &hospitalRepository{NewBaseRepository(db)}
}

func NewMessageRepository(db *sqlx.DB) repository.MessageRepository {
	return &messageRepository{NewBaseRepository(db)}
}
