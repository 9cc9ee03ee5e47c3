package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/fstr/pereval/internal/app/models"
	"github.com/fstr/pereval/internal/db"
	"github.com/fstr/pereval/internal/pkg/logger"
)

// ImageRepository handles pereval image database operations
type ImageRepository struct {
	db db.DB
	sb squirrel.StatementBuilderType
}

// NewImageRepository creates a new ImageRepository
func NewImageRepository(database db.DB) *ImageRepository {
	return &ImageRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateTx inserts an image row on q so it can share the caller's transaction.
func (r *ImageRepository) CreateTx(ctx context.Context, q db.Querier, image *models.PerevalImage) (int64, error) {
	sql, args, err := r.sb.Insert("pereval_images").
		Columns("pereval_id", "title", "img").
		Values(image.PerevalID, image.Title, image.Img).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create image query: %w", err)
	}

	var id int64
	if err := q.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Int64("perevalID", image.PerevalID).Msg("Error executing create image query")
		return 0, fmt.Errorf("error creating image: %w", err)
	}

	return id, nil
}

// ListByPereval retrieves all images attached to a pass.
func (r *ImageRepository) ListByPereval(ctx context.Context, perevalID int64) ([]models.PerevalImage, error) {
	sql, args, err := r.sb.Select("id", "pereval_id", "date_added", "title", "img").
		From("pereval_images").
		Where(squirrel.Eq{"pereval_id": perevalID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list images query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("perevalID", perevalID).Msg("Error executing list images query")
		return nil, fmt.Errorf("error querying images: %w", err)
	}
	defer rows.Close()

	images := []models.PerevalImage{}
	for rows.Next() {
		img := models.PerevalImage{}
		if err := rows.Scan(&img.ID, &img.PerevalID, &img.DateAdded, &img.Title, &img.Img); err != nil {
			return nil, fmt.Errorf("error scanning image row: %w", err)
		}
		images = append(images, img)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating image rows: %w", err)
	}

	return images, nil
}
