package repository

import (
	"log"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newMockDB opens a GORM connection backed by sqlmock, so repository
// behavior can be asserted without a running MySQL server.
func newMockDB() (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		log.Fatalf("An error '%s' was not expected when opening a stub database connection", err)
	}

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Fatalf("An error '%s' was not expected when opening gorm database", err)
	}

	return gormDB, mock
}

func counterRows(year, counter int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "year", "counter"}).
		AddRow("loan_counter", year, counter)
}

func emptyCounterRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "year", "counter"})
}
