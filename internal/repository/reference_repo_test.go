package repository

import (
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(year int) func() time.Time {
	return func() time.Time {
		return time.Date(year, time.June, 15, 12, 0, 0, 0, time.UTC)
	}
}

func TestFormatReference(t *testing.T) {
	assert.Equal(t, "PREST-2025-00001", FormatReference(2025, 1))
	assert.Equal(t, "PREST-2025-00042", FormatReference(2025, 42))
	assert.Equal(t, "PREST-2026-12345", FormatReference(2026, 12345))

	pattern := regexp.MustCompile(`^PREST-\d{4}-\d{5}$`)
	for _, counter := range []int{1, 99, 99999} {
		assert.Regexp(t, pattern, FormatReference(2025, counter))
	}
}

func TestAllocateInitializesCounterOnFirstCall(t *testing.T) {
	db, mock := newMockDB()
	repo := NewReferenceRepo(db)
	repo.now = fixedClock(2025)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `reference_counters`").
		WillReturnRows(emptyCounterRows())
	mock.ExpectExec("INSERT INTO `reference_counters`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ref, err := repo.Allocate()
	require.NoError(t, err)
	assert.Equal(t, "PREST-2025-00001", ref)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAllocateIncrementsWithinSameYear(t *testing.T) {
	db, mock := newMockDB()
	repo := NewReferenceRepo(db)
	repo.now = fixedClock(2025)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `reference_counters`").
		WillReturnRows(counterRows(2025, 41))
	mock.ExpectExec("UPDATE `reference_counters`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ref, err := repo.Allocate()
	require.NoError(t, err)
	assert.Equal(t, "PREST-2025-00042", ref)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAllocateResetsCounterOnYearRollover(t *testing.T) {
	db, mock := newMockDB()
	repo := NewReferenceRepo(db)
	repo.now = fixedClock(2026)

	// Counter still holds last year's sequence.
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `reference_counters`").
		WillReturnRows(counterRows(2025, 412))
	mock.ExpectExec("UPDATE `reference_counters`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ref, err := repo.Allocate()
	require.NoError(t, err)
	assert.Equal(t, "PREST-2026-00001", ref)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAllocateSequenceIsDense(t *testing.T) {
	db, mock := newMockDB()
	repo := NewReferenceRepo(db)
	repo.now = fixedClock(2025)

	// First call creates the row at 1, the next two increment it.
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `reference_counters`").
		WillReturnRows(emptyCounterRows())
	mock.ExpectExec("INSERT INTO `reference_counters`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	for n := 1; n <= 2; n++ {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT \\* FROM `reference_counters`").
			WillReturnRows(counterRows(2025, n))
		mock.ExpectExec("UPDATE `reference_counters`").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()
	}

	var refs []string
	for i := 0; i < 3; i++ {
		ref, err := repo.Allocate()
		require.NoError(t, err)
		refs = append(refs, ref)
	}

	assert.Equal(t, []string{
		"PREST-2025-00001",
		"PREST-2025-00002",
		"PREST-2025-00003",
	}, refs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAllocateRollsBackOnPersistFailure(t *testing.T) {
	db, mock := newMockDB()
	repo := NewReferenceRepo(db)
	repo.now = fixedClock(2025)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `reference_counters`").
		WillReturnRows(counterRows(2025, 7))
	mock.ExpectExec("UPDATE `reference_counters`").
		WillReturnError(fmt.Errorf("connection lost"))
	mock.ExpectRollback()

	ref, err := repo.Allocate()
	assert.Error(t, err)
	assert.Empty(t, ref, "no partial reference on abort")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAllocateLocksCounterRow(t *testing.T) {
	db, mock := newMockDB()
	repo := NewReferenceRepo(db)
	repo.now = fixedClock(2025)

	// The read must carry FOR UPDATE so concurrent allocations
	// serialize on the row.
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `reference_counters` .*FOR UPDATE").
		WillReturnRows(counterRows(2025, 1))
	mock.ExpectExec("UPDATE `reference_counters`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	_, err := repo.Allocate()
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
