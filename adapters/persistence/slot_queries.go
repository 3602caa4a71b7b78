package persistence

import (
	sq "github.com/Masterminds/squirrel"
)

const slotTable = "override_slots"

// slotQueries builds the three statements shared by the SQL backed storages.
// Only the placeholder format differs between SQLite and Postgres.
type slotQueries struct {
	builder sq.StatementBuilderType
}

func newSlotQueries(format sq.PlaceholderFormat) slotQueries {
	return slotQueries{builder: sq.StatementBuilder.PlaceholderFormat(format)}
}

func (q slotQueries) read(key string) (string, []any, error) {
	return q.builder.Select("value").
		From(slotTable).
		Where(sq.Eq{"slot_key": key}).
		ToSql()
}

func (q slotQueries) upsert(key, value string) (string, []any, error) {
	return q.builder.Insert(slotTable).
		Columns("slot_key", "value", "updated_at").
		Values(key, value, sq.Expr("CURRENT_TIMESTAMP")).
		Suffix("ON CONFLICT (slot_key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP").
		ToSql()
}

func (q slotQueries) remove(key string) (string, []any, error) {
	return q.builder.Delete(slotTable).
		Where(sq.Eq{"slot_key": key}).
		ToSql()
}
