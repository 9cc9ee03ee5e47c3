package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/fstr/pereval/internal/app/models"
	"github.com/fstr/pereval/internal/db"
	"github.com/fstr/pereval/internal/pkg/apperrors"
	"github.com/fstr/pereval/internal/pkg/logger"
)

// Pereval error types
var (
	// ErrPerevalNotFound is returned when a pass record is not found.
	ErrPerevalNotFound = apperrors.ErrPerevalNotFound
	// ErrUpdateRejected is returned when the status gate blocks a patch.
	ErrUpdateRejected = apperrors.ErrUpdateRejected
)

var perevalColumns = []string{
	"p.id", "p.date_added", "p.beauty_title", "p.title", "p.other_titles",
	"p.connect", "p.add_time", "p.latitude", "p.longitude", "p.height",
	"p.winter", "p.summer", "p.autumn", "p.spring", "p.status",
	"u.id", "u.email", "u.phone", "u.fam", "u.name", "u.otc",
}

// PerevalRepository handles pass record database operations
type PerevalRepository struct {
	db     db.DB
	sb     squirrel.StatementBuilderType
	users  *UserRepository
	images *ImageRepository
}

// NewPerevalRepository creates a new PerevalRepository
func NewPerevalRepository(database db.DB, users *UserRepository, images *ImageRepository) *PerevalRepository {
	return &PerevalRepository{
		db:     database,
		sb:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		users:  users,
		images: images,
	}
}

// Create persists a submission in one transaction: the submitter row is
// resolved or created by email, the pass row is inserted with status forced
// to "new", and any attached images follow. Returns the new pass id.
func (r *PerevalRepository) Create(ctx context.Context, pereval *models.Pereval) (int64, error) {
	var id int64

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		userID, err := r.users.GetOrCreate(ctx, tx, pereval.User)
		if err != nil {
			return err
		}

		sql, args, err := r.sb.Insert("pereval_added").
			Columns("beauty_title", "title", "other_titles", "connect", "add_time",
				"user_id", "latitude", "longitude", "height",
				"winter", "summer", "autumn", "spring", "status").
			Values(pereval.BeautyTitle, pereval.Title, pereval.OtherTitles, pereval.Connect, pereval.AddTime,
				userID, pereval.Coords.Latitude, pereval.Coords.Longitude, pereval.Coords.Height,
				pereval.Level.Winter, pereval.Level.Summer, pereval.Level.Autumn, pereval.Level.Spring,
				string(models.StatusNew)).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build create pereval query: %w", err)
		}

		if err := tx.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
			logger.Error().Err(err).Msg("Error executing create pereval query")
			return fmt.Errorf("error creating pereval: %w", err)
		}

		for i := range pereval.Images {
			pereval.Images[i].PerevalID = id
			if _, err := r.images.CreateTx(ctx, tx, &pereval.Images[i]); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return id, nil
}

// GetByID retrieves a pass with its submitter and images.
func (r *PerevalRepository) GetByID(ctx context.Context, id int64) (*models.Pereval, error) {
	sql, args, err := r.joinedSelect().
		Where(squirrel.Eq{"p.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get pereval query: %w", err)
	}

	pereval, err := scanPereval(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPerevalNotFound
		}
		logger.Error().Err(err).Int64("perevalID", id).Msg("Error scanning pereval row")
		return nil, fmt.Errorf("error getting pereval by ID: %w", err)
	}

	images, err := r.images.ListByPereval(ctx, pereval.ID)
	if err != nil {
		return nil, err
	}
	pereval.Images = images

	return pereval, nil
}

// GetByEmail retrieves all passes submitted under the given email, newest
// first. An unknown email yields an empty slice, not an error.
func (r *PerevalRepository) GetByEmail(ctx context.Context, email string) ([]*models.Pereval, error) {
	sql, args, err := r.joinedSelect().
		Where(squirrel.Eq{"u.email": email}).
		OrderBy("p.date_added DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get perevals by email query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("email", email).Msg("Error executing get perevals by email query")
		return nil, fmt.Errorf("error querying perevals by email: %w", err)
	}
	defer rows.Close()

	perevals := []*models.Pereval{}
	for rows.Next() {
		pereval, err := scanPereval(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning pereval row: %w", err)
		}
		perevals = append(perevals, pereval)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pereval rows: %w", err)
	}

	for _, pereval := range perevals {
		images, err := r.images.ListByPereval(ctx, pereval.ID)
		if err != nil {
			return nil, err
		}
		pereval.Images = images
	}

	return perevals, nil
}

// Update applies a sparse patch to a pass. The status check and the write
// share one transaction: the row is locked with FOR UPDATE, so a concurrent
// moderation decision cannot slip between check and write.
func (r *PerevalRepository) Update(ctx context.Context, id int64, patch *models.PerevalPatch) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := r.sb.Select("p.status", "u.id", "u.email", "u.phone", "u.fam", "u.name", "u.otc").
			From("pereval_added p").
			Join("users u ON u.id = p.user_id").
			Where(squirrel.Eq{"p.id": id}).
			Suffix("FOR UPDATE OF p").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build status lock query: %w", err)
		}

		var status models.Status
		stored := &models.User{}
		err = tx.QueryRow(ctx, sql, args...).Scan(&status, &stored.ID, &stored.Email, &stored.Phone, &stored.Fam, &stored.Name, &stored.Otc)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrPerevalNotFound
			}
			logger.Error().Err(err).Int64("perevalID", id).Msg("Error locking pereval row for update")
			return fmt.Errorf("error locking pereval for update: %w", err)
		}

		if status != models.StatusNew {
			return apperrors.NewRejectedError(fmt.Sprintf("record status is %q, only new records can be updated", status))
		}

		if patch.User != nil && !stored.Matches(patch.User) {
			return apperrors.NewRejectedError("user data does not match the stored submitter")
		}

		fields := patch.Fields()
		if len(fields) == 0 {
			return apperrors.ErrNothingToUpdate
		}

		sql, args, err = r.sb.Update("pereval_added").
			SetMap(fields).
			Where(squirrel.Eq{"id": id}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build update pereval query: %w", err)
		}

		cmdTag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			logger.Error().Err(err).Int64("perevalID", id).Msg("Error executing update pereval query")
			return fmt.Errorf("error updating pereval: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			// Row held under lock, so this should not happen.
			return ErrPerevalNotFound
		}

		return nil
	})
}

func (r *PerevalRepository) joinedSelect() squirrel.SelectBuilder {
	return r.sb.Select(perevalColumns...).
		From("pereval_added p").
		Join("users u ON u.id = p.user_id")
}

// scanPereval scans a joined pereval+user row.
func scanPereval(row pgx.Row) (*models.Pereval, error) {
	pereval := &models.Pereval{User: &models.User{}}
	err := row.Scan(
		&pereval.ID, &pereval.DateAdded, &pereval.BeautyTitle, &pereval.Title, &pereval.OtherTitles,
		&pereval.Connect, &pereval.AddTime, &pereval.Coords.Latitude, &pereval.Coords.Longitude, &pereval.Coords.Height,
		&pereval.Level.Winter, &pereval.Level.Summer, &pereval.Level.Autumn, &pereval.Level.Spring, &pereval.Status,
		&pereval.User.ID, &pereval.User.Email, &pereval.User.Phone, &pereval.User.Fam, &pereval.User.Name, &pereval.User.Otc,
	)
	if err != nil {
		return nil, err
	}
	pereval.Images = []models.PerevalImage{}
	return pereval, nil
}
