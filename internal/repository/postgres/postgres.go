package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/Ferrari4891/selecttravel-api/internal/repository"
)

type businessRepository struct {
	db *sqlx.DB
}

type voucherRepository struct {
	db *sqlx.DB
}

type scheduleRepository struct {
	db *sqlx.DB
}

type dispatchResultRepository struct {
	db *sqlx.DB
}

type userRepository struct {
	db *sqlx.DB
}

func NewBusinessRepository(db *sqlx.DB) repository.BusinessRepository {
	return &businessRepository{db: db}
}

func NewVoucherRepository(db *sqlx.DB) repository.VoucherRepository {
	return &voucherRepository{db: db}
}

func NewScheduleRepository(db *sqlx.DB) repository.ScheduleRepository {
	return &scheduleRepository{db: db}
}

func NewDispatchResultRepository(db *sqlx.DB) repository.DispatchResultRepository {
	return &dispatchResultRepository{db: db}
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}
