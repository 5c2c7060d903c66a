package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"winedeck/internal/domain"
	"winedeck/internal/domain/entity"
	"winedeck/pkg/errcodes"
)

type WineRepository struct {
	db *sqlx.DB
}

func NewWineRepository(db *sqlx.DB) *WineRepository {
	return &WineRepository{db: db}
}

// withTx выполняет функцию в транзакции.
func (r *WineRepository) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to begin transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return domain.WrapError(
				fmt.Errorf("%w; rollback: %v", err, rbErr),
				errcodes.InternalServerError,
				"transaction failed",
			)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to commit")
	}

	return nil
}

// ListWithOffers массовое чтение каталога с офферами, до limit вин.
// Больше никаких параметров запроса ядру не нужно.
func (r *WineRepository) ListWithOffers(ctx context.Context, limit int) ([]entity.Wine, error) {
	query := `
		SELECT id, source, source_item_code, display_name, style, tags, updated_at
		FROM wine
		ORDER BY updated_at DESC, id ASC
		LIMIT $1`

	var wineSchemas []wineSchema
	if err := r.db.SelectContext(ctx, &wineSchemas, query, limit); err != nil {
		return nil, domain.WrapError(err, errcodes.UpstreamFetchError, "failed to list wines")
	}

	if len(wineSchemas) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(wineSchemas))
	for _, s := range wineSchemas {
		ids = append(ids, s.ID)
	}

	offersByWine, err := r.offersByWineIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	wines := make([]entity.Wine, 0, len(wineSchemas))

	for _, s := range wineSchemas {
		wine, err := s.toDomain()
		if err != nil {
			return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to convert wine")
		}

		wine.Offers = offersByWine[s.ID]
		wines = append(wines, wine)
	}

	return wines, nil
}

func (r *WineRepository) offersByWineIDs(ctx context.Context, ids []string) (map[string][]entity.Offer, error) {
	query, args, err := sqlx.In(`
		SELECT wine_id, merchant, url, price_yen, review_count, review_average, updated_at
		FROM offer
		WHERE wine_id IN (?)
		ORDER BY id ASC`, ids)
	if err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to build query")
	}

	var offerSchemas []offerSchema
	if err := r.db.SelectContext(ctx, &offerSchemas, r.db.Rebind(query), args...); err != nil {
		return nil, domain.WrapError(err, errcodes.UpstreamFetchError, "failed to list offers")
	}

	result := make(map[string][]entity.Offer, len(ids))
	for i := range offerSchemas {
		s := &offerSchemas[i]
		result[s.WineID] = append(result[s.WineID], s.toDomain())
	}

	return result, nil
}

// UpsertBatch атомарно обновляет каталог: вина upsert-ятся по
// source_item_code, офферы мерчанта для затронутых вин пересоздаются.
func (r *WineRepository) UpsertBatch(ctx context.Context, merchant string, wines []entity.Wine) (int, error) {
	if len(wines) == 0 {
		return 0, nil
	}

	var upserted int

	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		wineIDs := make([]string, 0, len(wines))

		for i := range wines {
			id, err := r.upsertWineTx(ctx, tx, &wines[i])
			if err != nil {
				return domain.WrapError(err, errcodes.InternalServerError,
					fmt.Sprintf("failed at index %d", i))
			}

			wineIDs = append(wineIDs, id)
		}

		if err := r.deleteOffersTx(ctx, tx, merchant, wineIDs); err != nil {
			return err
		}

		for i := range wines {
			for j := range wines[i].Offers {
				if err := r.insertOfferTx(ctx, tx, wineIDs[i], &wines[i].Offers[j]); err != nil {
					return err
				}
			}
		}

		upserted = len(wines)

		return nil
	})
	if err != nil {
		return 0, err
	}

	return upserted, nil
}

func (r *WineRepository) upsertWineTx(ctx context.Context, tx *sqlx.Tx, wine *entity.Wine) (string, error) {
	tagsBytes, err := json.Marshal(wine.Tags)
	if err != nil {
		return "", fmt.Errorf("marshal tags: %w", err)
	}

	updatedAt := wine.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	query := `
		INSERT INTO wine (source, source_item_code, display_name, style, tags, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (source_item_code) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			style = EXCLUDED.style,
			tags = EXCLUDED.tags,
			updated_at = EXCLUDED.updated_at
		RETURNING id`

	var id string
	if err := tx.GetContext(ctx, &id, query,
		wine.Source, wine.SourceItemCode, wine.DisplayName, wine.Style.String(), tagsBytes, updatedAt,
	); err != nil {
		return "", fmt.Errorf("upsert wine: %w", err)
	}

	return id, nil
}

func (r *WineRepository) deleteOffersTx(ctx context.Context, tx *sqlx.Tx, merchant string, wineIDs []string) error {
	query, args, err := sqlx.In(
		`DELETE FROM offer WHERE merchant = ? AND wine_id IN (?)`, merchant, wineIDs)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to build query")
	}

	if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to delete offers")
	}

	return nil
}

func (r *WineRepository) insertOfferTx(ctx context.Context, tx *sqlx.Tx, wineID string, offer *entity.Offer) error {
	query := `
		INSERT INTO offer (wine_id, merchant, url, price_yen, review_count, review_average, updated_at)
		VALUES (:wine_id, :merchant, :url, :price_yen, :review_count, :review_average, :updated_at)`

	params := map[string]any{
		"wine_id":        wineID,
		"merchant":       offer.Merchant,
		"url":            offer.URL,
		"price_yen":      offer.PriceYen,
		"review_count":   offer.ReviewCount,
		"review_average": offer.ReviewAverage,
		"updated_at":     time.Now(),
	}

	if _, err := tx.NamedExecContext(ctx, query, params); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to insert offer")
	}

	return nil
}

// Count количество вин в каталоге (для статуса сидера).
func (r *WineRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM wine`); err != nil {
		return 0, domain.WrapError(err, errcodes.InternalServerError, "failed to count wines")
	}

	return count, nil
}
