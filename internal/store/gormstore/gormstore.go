// Package gormstore stores records in a hosted MySQL database through GORM.
//
// Substring filtering uses LIKE, which is case-insensitive under MySQL's
// default *_ci collations.
package gormstore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"comprobantes/internal/core"
)

// Transferencia is the GORM model for one receipt record.
type Transferencia struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Nombre      string    `gorm:"type:varchar(255);not null"`
	Fecha       string    `gorm:"type:varchar(64);not null;index"`
	Monto       string    `gorm:"type:varchar(64);not null;default:''"`
	Descripcion string    `gorm:"type:text"`
	Imagen      string    `gorm:"type:varchar(1024);not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (Transferencia) TableName() string { return "transferencias" }

type Store struct {
	db *gorm.DB
}

func New(dsn string) (*Store, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	if err := db.AutoMigrate(&Transferencia{}); err != nil {
		return nil, fmt.Errorf("migrate transferencias: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("underlying db: %w", err)
	}
	return sqlDB.Close()
}

func (s *Store) Create(ctx context.Context, rec core.Record) (int64, error) {
	if err := rec.Validate(); err != nil {
		return 0, err
	}

	row := Transferencia{
		Nombre:      rec.Name,
		Fecha:       rec.Date,
		Monto:       rec.Amount,
		Descripcion: rec.Description,
		Imagen:      rec.ImageRef,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, fmt.Errorf("insert record: %w", err)
	}

	slog.InfoContext(ctx, "Record saved to MySQL", "id", row.ID, "nombre", row.Nombre, "fecha", row.Fecha)
	return row.ID, nil
}

func (s *Store) List(ctx context.Context, f core.Filter) ([]core.Record, error) {
	f = f.Normalize()

	q := s.db.WithContext(ctx).Model(&Transferencia{})
	if f.Term != "" {
		q = q.Where(filterColumn(f.Field)+" LIKE ?", "%"+f.Term+"%")
	}
	if f.Date != "" {
		q = q.Where("fecha = ?", f.Date)
	}

	var rows []Transferencia
	if err := q.Order("fecha DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}

	out := make([]core.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, core.Record{
			ID:          row.ID,
			Name:        row.Nombre,
			Date:        row.Fecha,
			Amount:      row.Monto,
			Description: row.Descripcion,
			ImageRef:    row.Imagen,
			CreatedAt:   row.CreatedAt,
		})
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&Transferencia{}, id)
	if res.Error != nil {
		return false, fmt.Errorf("delete record: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// filterColumn maps a filter field to its column. The enum is closed, so no
// user input reaches the SQL text.
func filterColumn(f core.FilterField) string {
	switch f {
	case core.FieldAmount:
		return "monto"
	case core.FieldDescription:
		return "descripcion"
	default:
		return "nombre"
	}
}
