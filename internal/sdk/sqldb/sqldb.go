// Package sqldb provides database operations for the profile service.
package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/joho/godotenv/autoload"

	"github.com/cinemahub/profile-service/internal/sdk/models"
)

// PostgreSQL error codes
// https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	notNullViolation    = "23502"
)

var (
	ErrDBNotFound          = sql.ErrNoRows
	ErrDBDuplicatedEntry   = errors.New("duplicated entry")
	ErrForeignKeyViolation = errors.New("foreign key violation")
	ErrNotNullViolation    = errors.New("not null violation")
)

// Service represents a service that interacts with a database.
type Service interface {
	// Health returns a map of health status information.
	// The keys and values in the map are service-specific.
	Health() map[string]string

	// Close terminates the database connection.
	Close() error

	// User operations
	GetUserByID(ctx context.Context, userID int64) (models.User, error)

	// Profile operations
	GetProfileByUserID(ctx context.Context, userID int64) (models.Profile, error)
	CreateProfile(ctx context.Context, profile models.NewProfile) (models.Profile, error)
}

type service struct {
	db *sql.DB
}

var (
	database   = os.Getenv("PROFILE_DB_DATABASE")
	password   = os.Getenv("PROFILE_DB_PASSWORD")
	username   = os.Getenv("PROFILE_DB_USERNAME")
	port       = os.Getenv("PROFILE_DB_PORT")
	host       = os.Getenv("PROFILE_DB_HOST")
	schema     = os.Getenv("PROFILE_DB_SCHEMA")
	dbInstance *service
)

func New() Service {
	// Reuse Connection
	if dbInstance != nil {
		return dbInstance
	}
	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable&search_path=%s", username, password, host, port, database, schema)
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		log.Fatal(err)
	}
	dbInstance = &service{
		db: db,
	}
	return dbInstance
}

// Health checks the health of the database connection by pinging the database.
// It returns a map with keys indicating various health statistics.
func (s *service) Health() map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	stats := make(map[string]string)

	if err := s.db.PingContext(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		return stats
	}

	stats["status"] = "up"
	stats["message"] = "It's healthy"

	dbStats := s.db.Stats()
	stats["open_connections"] = strconv.Itoa(dbStats.OpenConnections)
	stats["in_use"] = strconv.Itoa(dbStats.InUse)
	stats["idle"] = strconv.Itoa(dbStats.Idle)
	stats["wait_count"] = strconv.FormatInt(dbStats.WaitCount, 10)
	stats["wait_duration"] = dbStats.WaitDuration.String()

	if dbStats.WaitCount > 1000 {
		stats["message"] = "The database has a high number of wait events, indicating potential bottlenecks."
	}

	return stats
}

// Close closes the database connection.
func (s *service) Close() error {
	log.Printf("Disconnected from database: %s", database)
	return s.db.Close()
}

// ---------------------------------------------
// SQL Commands
// ---------------------------------------------

// GetUserByID retrieves a user by their ID
func (s *service) GetUserByID(ctx context.Context, userID int64) (models.User, error) {
	const query = `
		SELECT
			id,
			email,
			is_active,
			is_admin,
			created_at,
			updated_at
		FROM users
		WHERE id = $1
	`

	var user models.User
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&user.ID,
		&user.Email,
		&user.IsActive,
		&user.IsAdmin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrDBNotFound
		}
		return models.User{}, fmt.Errorf("selecting user: %w", err)
	}

	return user, nil
}

// GetProfileByUserID retrieves the profile owned by a user
func (s *service) GetProfileByUserID(ctx context.Context, userID int64) (models.Profile, error) {
	const query = `
		SELECT
			id,
			user_id,
			first_name,
			last_name,
			gender,
			date_of_birth,
			info,
			avatar,
			created_at,
			updated_at
		FROM profiles
		WHERE user_id = $1
	`

	var profile models.Profile
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.FirstName,
		&profile.LastName,
		&profile.Gender,
		&profile.DateOfBirth,
		&profile.Info,
		&profile.Avatar,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Profile{}, ErrDBNotFound
		}
		return models.Profile{}, fmt.Errorf("selecting profile: %w", err)
	}

	return profile, nil
}

// CreateProfile inserts a new profile. The profiles.user_id unique constraint
// is the authoritative one-profile-per-user guard; a violation surfaces as
// ErrDBDuplicatedEntry even when the caller's existence pre-check passed.
func (s *service) CreateProfile(ctx context.Context, np models.NewProfile) (models.Profile, error) {
	const query = `
		INSERT INTO profiles (user_id, first_name, last_name, gender, date_of_birth, info, avatar)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, user_id, first_name, last_name, gender, date_of_birth, info, avatar, created_at, updated_at
	`

	var profile models.Profile
	err := s.db.QueryRowContext(ctx, query,
		np.UserID,
		np.FirstName,
		np.LastName,
		np.Gender,
		np.DateOfBirth,
		np.Info,
		np.Avatar,
	).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.FirstName,
		&profile.LastName,
		&profile.Gender,
		&profile.DateOfBirth,
		&profile.Info,
		&profile.Avatar,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if err != nil {
		if isPgError(err, uniqueViolation) {
			return models.Profile{}, ErrDBDuplicatedEntry
		}
		if isPgError(err, foreignKeyViolation) {
			return models.Profile{}, ErrForeignKeyViolation
		}
		return models.Profile{}, fmt.Errorf("creating profile: %w", err)
	}

	return profile, nil
}

// ---------------------------------------------
// Helpers
// ---------------------------------------------

// isPgError checks if the error is a PostgreSQL error with the given code
func isPgError(err error, code string) bool {
	var pgErr interface{ SQLState() string }
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == code
	}
	return false
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrDBNotFound)
}

// IsDuplicateEntry checks if the error is a duplicate entry error.
func IsDuplicateEntry(err error) bool {
	return errors.Is(err, ErrDBDuplicatedEntry) || isPgError(err, uniqueViolation)
}
