package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ColumnInfo matches the output of SHOW COLUMNS.
type ColumnInfo struct {
	Field   string
	Type    string
	Null    string
	Key     string
	Default *string // NULL default is possible
	Extra   string
}

// sqliteColumn is one row of PRAGMA table_info.
type sqliteColumn struct {
	Cid       int
	Name      string
	Type      string
	Notnull   int
	DfltValue *string
	Pk        int
}

// GetTableColumns retrieves the column definitions for a given table.
// Field and Type are lower-cased. A missing table yields no columns on sqlite
// and an error on MySQL.
func GetTableColumns(db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	if db.Dialector.Name() == "sqlite" {
		var rows []sqliteColumn
		if err := db.Raw(fmt.Sprintf("PRAGMA table_info('%s')", tableName)).Scan(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
		}
		columns := make([]ColumnInfo, 0, len(rows))
		for _, r := range rows {
			col := ColumnInfo{
				Field:   strings.ToLower(r.Name),
				Type:    strings.ToLower(r.Type),
				Null:    "YES",
				Default: r.DfltValue,
			}
			if r.Notnull == 1 {
				col.Null = "NO"
			}
			if r.Pk > 0 {
				col.Key = "PRI"
			}
			columns = append(columns, col)
		}
		return columns, nil
	}

	var columns []ColumnInfo
	if err := db.Raw(fmt.Sprintf("SHOW COLUMNS FROM `%s`", tableName)).Scan(&columns).Error; err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
	}
	for i := range columns {
		columns[i].Type = strings.ToLower(columns[i].Type)
		columns[i].Field = strings.ToLower(columns[i].Field)
	}
	return columns, nil
}

// ColumnMap indexes GetTableColumns by column name.
func ColumnMap(db *gorm.DB, tableName string) (map[string]ColumnInfo, error) {
	columns, err := GetTableColumns(db, tableName)
	if err != nil {
		return nil, err
	}
	out := make(map[string]ColumnInfo, len(columns))
	for _, col := range columns {
		out[col.Field] = col
	}
	return out, nil
}
