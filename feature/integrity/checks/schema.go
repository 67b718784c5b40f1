package checks

import (
	"fmt"
	"reflect"
	"strings"

	"bcds-membership/core/database"

	"gorm.io/gorm"
)

// SchemaReport is the result of comparing the database with the gorm models.
type SchemaReport struct {
	Driver  string                 `json:"driver"`
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	TypeMismatches []string `json:"type_mismatches"`
	Status         string   `json:"status"` // "ok", "error"
}

// CheckSchema verifies the database schema using the gorm models as the source of truth.
// Every model must implement TableName.
func CheckSchema(db *gorm.DB, models ...any) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &SchemaReport{
		Driver:  db.Dialector.Name(),
		Tables:  make(map[string]TableReport),
		Matched: true,
		Errors:  []string{},
	}

	for _, model := range models {
		typ := reflect.TypeOf(model)
		for typ.Kind() == reflect.Ptr {
			typ = typ.Elem()
		}
		if typ.Kind() != reflect.Struct {
			return nil, fmt.Errorf("model %T is not a struct", model)
		}

		tabler, ok := reflect.New(typ).Interface().(interface{ TableName() string })
		if !ok {
			return nil, fmt.Errorf("model %s does not implement TableName", typ.Name())
		}
		tableName := tabler.TableName()

		actual, err := database.ColumnMap(db, tableName)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", tableName, err))
			report.Matched = false
			continue
		}

		tbl := checkTable(typ, actual)
		if tbl.Status != "ok" {
			report.Matched = false
		}
		report.Tables[tableName] = tbl
	}

	return report, nil
}

func checkTable(typ reflect.Type, actual map[string]database.ColumnInfo) TableReport {
	tbl := TableReport{
		MissingColumns: []string{},
		TypeMismatches: []string{},
		Status:         "ok",
	}

	for i := 0; i < typ.NumField(); i++ {
		tag := typ.Field(i).Tag.Get("gorm")
		colName := parseGormSetting(tag, "column")
		if colName == "" {
			continue
		}

		col, exists := actual[colName]
		if !exists {
			tbl.MissingColumns = append(tbl.MissingColumns, colName)
			tbl.Status = "error"
			continue
		}

		// Only columns with an explicit type are type checked.
		expType := strings.ToLower(parseGormSetting(tag, "type"))
		if expType != "" && !strings.Contains(col.Type, expType) {
			tbl.TypeMismatches = append(tbl.TypeMismatches,
				fmt.Sprintf("%s: expected %s, got %s", colName, expType, col.Type))
			tbl.Status = "error"
		}
	}
	return tbl
}

// parseGormSetting returns the value of key in a gorm tag such as "column:id;type:date".
func parseGormSetting(tag, key string) string {
	for _, p := range strings.Split(tag, ";") {
		if strings.HasPrefix(p, key+":") {
			return strings.TrimPrefix(p, key+":")
		}
	}
	return ""
}
