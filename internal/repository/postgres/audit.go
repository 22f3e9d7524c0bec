package postgres

import (
	"context"

	"ilas-backend/internal/domain"
	"ilas-backend/internal/repository"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// auditRepository only knows how to append and read. There is no update or
// delete path; the schema backs that up with a trigger.
type auditRepository struct {
	db DBTX
}

func NewAuditRepository(db DBTX) repository.AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(ctx context.Context, rec *domain.AuditRecord) error {
	oldValues, err := marshalValues(rec.OldValues)
	if err != nil {
		return err
	}
	newValues, err := marshalValues(rec.NewValues)
	if err != nil {
		return err
	}
	if rec.Source == "" {
		rec.Source = "system"
	}
	query := `INSERT INTO audit_logs (actor_id, action, target_type, target_id, old_values, new_values, remarks, source, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now()) RETURNING id, created_on`
	err = r.db.QueryRowContext(ctx, query,
		rec.ActorID, rec.Action, rec.TargetType, rec.TargetID,
		oldValues, newValues, rec.Remarks, rec.Source,
	).Scan(&rec.ID, &rec.CreatedOn)
	return mapError(err)
}

func (r *auditRepository) List(ctx context.Context, page, pageSize int32) ([]domain.AuditRecord, int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM audit_logs`).Scan(&count); err != nil {
		return nil, 0, mapError(err)
	}

	page, pageSize = normalizePage(page, pageSize)
	query := `SELECT id, actor_id, action, target_type, target_id, old_values, new_values, remarks, source, created_on
	          FROM audit_logs ORDER BY created_on DESC, id DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	var recs []domain.AuditRecord
	for rows.Next() {
		var rec domain.AuditRecord
		var oldValues, newValues []byte
		if err := rows.Scan(
			&rec.ID, &rec.ActorID, &rec.Action, &rec.TargetType, &rec.TargetID,
			&oldValues, &newValues, &rec.Remarks, &rec.Source, &rec.CreatedOn,
		); err != nil {
			return nil, 0, err
		}
		if rec.OldValues, err = unmarshalValues(oldValues); err != nil {
			return nil, 0, err
		}
		if rec.NewValues, err = unmarshalValues(newValues); err != nil {
			return nil, 0, err
		}
		recs = append(recs, rec)
	}
	return recs, count, rows.Err()
}

func marshalValues(values map[string]any) (any, error) {
	if values == nil {
		return nil, nil
	}
	data, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func unmarshalValues(data []byte) (map[string]any, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var values map[string]any
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, err
	}
	return values, nil
}
