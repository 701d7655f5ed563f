package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	repo "github.com/baharkarakas/tours-backend/internal/repository"
)

type Repositories struct {
	Tours     repo.Tours
	Users     repo.Users
	Reviews   repo.Reviews
	Bookings  repo.Bookings
	AuditLogs repo.AuditLogs
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Tours:     &toursRepo{pool},
		Users:     &usersRepo{pool},
		Reviews:   &reviewsRepo{pool},
		Bookings:  &bookingsRepo{pool},
		AuditLogs: &auditLogsRepo{pool},
	}
}
