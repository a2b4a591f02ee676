package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/agendaly/booking-api/internal/repository"
)

type storeRepository struct {
	db *sqlx.DB
}

type ownerRepository struct {
	db *sqlx.DB
}

type staffRepository struct {
	db *sqlx.DB
}

type serviceRepository struct {
	db *sqlx.DB
}

type workingHourRepository struct {
	db *sqlx.DB
}

type blockRepository struct {
	db *sqlx.DB
}

type appointmentRepository struct {
	db *sqlx.DB
}

func NewStoreRepository(db *sqlx.DB) repository.StoreRepository {
	return &storeRepository{db: db}
}

func NewOwnerRepository(db *sqlx.DB) repository.OwnerRepository {
	return &ownerRepository{db: db}
}

func NewStaffRepository(db *sqlx.DB) repository.StaffRepository {
	return &staffRepository{db: db}
}

func NewServiceRepository(db *sqlx.DB) repository.ServiceRepository {
	return &serviceRepository{db: db}
}

func NewWorkingHourRepository(db *sqlx.DB) repository.WorkingHourRepository {
	return &workingHourRepository{db: db}
}

func NewBlockRepository(db *sqlx.DB) repository.BlockRepository {
	return &blockRepository{db: db}
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{db: db}
}
