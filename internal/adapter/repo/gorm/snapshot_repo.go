package gormrepo

import (
	"context"
	"errors"

	"warped/internal/adapter/repo/gorm/model"
	"warped/internal/app/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SnapshotRepo struct {
	db *gorm.DB
}

func NewSnapshotRepo(db *gorm.DB) SnapshotRepo {
	return SnapshotRepo{db: db}
}

func (r SnapshotRepo) Get(ctx context.Context, slot string) (ports.SnapshotRecord, error) {
	var m model.SaveSlot
	if err := r.db.WithContext(ctx).Where("slot = ?", slot).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.SnapshotRecord{}, ports.ErrNotFound
		}
		return ports.SnapshotRecord{}, err
	}
	return ports.SnapshotRecord{
		Slot:      m.Slot,
		Data:      []byte(m.Data),
		UpdatedAt: m.UpdatedAt,
	}, nil
}

func (r SnapshotRepo) Put(ctx context.Context, rec ports.SnapshotRecord) error {
	row := model.SaveSlot{
		Slot:      rec.Slot,
		Data:      string(rec.Data),
		UpdatedAt: rec.UpdatedAt.UTC(),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&row).Error
}

func (r SnapshotRepo) Delete(ctx context.Context, slot string) error {
	return r.db.WithContext(ctx).Where("slot = ?", slot).Delete(&model.SaveSlot{}).Error
}
