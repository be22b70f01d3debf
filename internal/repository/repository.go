package repository

import (
	"atelier/internal/domain/models"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/supabase-community/supabase-go"
)

// Repository bundles the three collections of one store.
type Repository struct {
	db        *pgxpool.Pool
	Paintings PaintingRepository
	Pages     PageRepository
	Settings  SettingRepository
}

func NewPostgresRepository(db *pgxpool.Pool) *Repository {
	return &Repository{
		db:        db,
		Paintings: NewPgCollection[models.Painting, models.PaintingInsert, models.PaintingUpdate](db, PaintingSchema),
		Pages:     NewPgCollection[models.Page, models.PageInsert, models.PageUpdate](db, PageSchema),
		Settings:  NewPgCollection[models.Setting, models.SettingInsert, models.SettingUpdate](db, SettingSchema),
	}
}

func NewSupabaseRepository(client *supabase.Client) *Repository {
	return &Repository{
		Paintings: NewRestCollection[models.Painting, models.PaintingInsert, models.PaintingUpdate](client, PaintingSchema),
		Pages:     NewRestCollection[models.Page, models.PageInsert, models.PageUpdate](client, PageSchema),
		Settings:  NewRestCollection[models.Setting, models.SettingInsert, models.SettingUpdate](client, SettingSchema),
	}
}

func NewMemoryRepository() *Repository {
	return &Repository{
		Paintings: NewMemoryCollection[models.Painting, models.PaintingInsert, models.PaintingUpdate](PaintingSchema),
		Pages:     NewMemoryCollection[models.Page, models.PageInsert, models.PageUpdate](PageSchema),
		Settings:  NewMemoryCollection[models.Setting, models.SettingInsert, models.SettingUpdate](SettingSchema),
	}
}

// NewUnavailableRepository is used when the store is not configured; the app
// still starts and reports the reason through every operation.
func NewUnavailableRepository(reason error) *Repository {
	return &Repository{
		Paintings: NewUnavailable[models.Painting, models.PaintingInsert, models.PaintingUpdate](paintingsTable, reason),
		Pages:     NewUnavailable[models.Page, models.PageInsert, models.PageUpdate](pagesTable, reason),
		Settings:  NewUnavailable[models.Setting, models.SettingInsert, models.SettingUpdate](settingsTable, reason),
	}
}

func (r *Repository) Close() {
	if r.db != nil {
		r.db.Close()
	}
}
