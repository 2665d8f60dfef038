package firestore

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	pfirestore "github.com/grouptherapyeg/site-api/internal/platform/firestore"
)

const settingsCollection = "seo_settings"

// SettingsRepository persists SEO settings rows. Rows are kept as raw maps:
// the admin dashboard writes free-form keys (including schema.org seeds) and
// the SEO normalizer decides what it recognises.
type SettingsRepository struct {
	provider *pfirestore.Provider
	base     *pfirestore.BaseRepository[map[string]any]
}

// NewSettingsRepository constructs a Firestore-backed settings repository.
func NewSettingsRepository(provider *pfirestore.Provider) (*SettingsRepository, error) {
	if provider == nil {
		return nil, errors.New("settings repository requires firestore provider")
	}
	base := pfirestore.NewBaseRepository[map[string]any](provider, settingsCollection,
		pfirestore.MapEncoder[map[string]any](), pfirestore.MapDecoder())
	return &SettingsRepository{provider: provider, base: base}, nil
}

// Latest returns the most recently updated settings row, raw.
func (r *SettingsRepository) Latest(ctx context.Context) (map[string]any, error) {
	docs, err := r.base.Query(ctx, func(q firestore.Query) firestore.Query {
		return q.OrderBy("updated_at", firestore.Desc).Limit(1)
	})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, notFound("seo_settings.latest", errors.New("no settings rows"))
	}
	return docs[0].Data, nil
}

// Upsert merges the submitted keys over the stored row and stamps updated_at.
// The merge runs inside a transaction so keys the dashboard wrote but this
// payload omits survive concurrent saves.
func (r *SettingsRepository) Upsert(ctx context.Context, id string, row map[string]any) (map[string]any, error) {
	if row == nil {
		return nil, errors.New("seo_settings.upsert: row is required")
	}
	docRef, err := r.base.DocumentRef(ctx, id)
	if err != nil {
		return nil, err
	}

	var merged map[string]any
	err = r.provider.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		existing := map[string]any{}
		snap, err := tx.Get(docRef)
		if err != nil && status.Code(err) != codes.NotFound {
			return err
		}
		if snap != nil && snap.Exists() {
			existing = snap.Data()
		}
		merged = make(map[string]any, len(existing)+len(row)+1)
		for k, v := range existing {
			merged[k] = v
		}
		for k, v := range row {
			merged[k] = v
		}
		merged["updated_at"] = time.Now().UTC()
		return tx.Set(docRef, merged)
	})
	if err != nil {
		return nil, pfirestore.WrapError("seo_settings.upsert", err)
	}
	return merged, nil
}
