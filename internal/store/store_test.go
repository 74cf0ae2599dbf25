package store

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/Pho3nix-24/CENTRO-web/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newStoreWithMock(t *testing.T) (*Store, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	mock.MatchExpectationsInOrder(false)

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		TranslateError:         true,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return New(gdb), mock, db
}

func clientColumns() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "nombre", "dni", "correo", "celular", "genero", "estado"})
}

func TestFindOrCreateClientReactivatesInactive(t *testing.T) {
	s, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "clientes" WHERE dni = \$1`).
		WillReturnRows(clientColumns().
			AddRow(3, "Ana Pérez", "12345678", "ana@mail.com", "999", "F", models.ClientInactive))
	mock.ExpectExec(`UPDATE "clientes" SET "estado"=\$1 WHERE "id" = \$2`).
		WithArgs(models.ClientActive, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	id, err := s.FindOrCreateClient(ClientInput{Name: "Ana Pérez", DNI: "12345678"})
	require.NoError(t, err)
	assert.Equal(t, uint(3), id, "the existing client must be reused, not duplicated")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindOrCreateClientInsertsWhenMissing(t *testing.T) {
	s, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "clientes" WHERE dni = \$1`).
		WillReturnRows(clientColumns())
	mock.ExpectQuery(`INSERT INTO "clientes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))
	mock.ExpectCommit()

	id, err := s.FindOrCreateClient(ClientInput{Name: "Luis Soto", DNI: "87654321"})
	require.NoError(t, err)
	assert.Equal(t, uint(9), id)
}

func TestFindOrCreateClientSkipsUpdateWhenActive(t *testing.T) {
	s, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "clientes" WHERE dni = \$1`).
		WillReturnRows(clientColumns().
			AddRow(4, "Ana Pérez", "12345678", "", "", "", models.ClientActive))
	mock.ExpectCommit()

	id, err := s.FindOrCreateClient(ClientInput{DNI: "12345678"})
	require.NoError(t, err)
	assert.Equal(t, uint(4), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePaymentDuplicateOperationNumber(t *testing.T) {
	s, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO "pagos"`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := s.CreatePayment(3, PaymentInput{OperationNumber: "OP-001", Amount: 500})
	assert.ErrorIs(t, err, ErrDuplicate, "a unique violation must surface as the distinguished conflict error")
}

func TestCreatePaymentReturnsNewID(t *testing.T) {
	s, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO "pagos"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	id, err := s.CreatePayment(3, PaymentInput{
		Date:            time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Amount:          500,
		OperationNumber: "OP-002",
		Advisor:         "Lud Rojas",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(11), id)
}

func TestStatsAggregates(t *testing.T) {
	s, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM pagos WHERE fecha::date = CURRENT_DATE`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(cuota\), 0\) FROM pagos WHERE fecha::date = CURRENT_DATE`).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(500.0))
	mock.ExpectQuery(`date_trunc\('month', fecha\) = date_trunc\('month', CURRENT_DATE\)`).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(500.0))

	stats := s.Stats()
	assert.Equal(t, int64(1), stats.PaymentsToday)
	assert.Equal(t, 500.0, stats.IncomeToday)
	assert.Equal(t, 500.0, stats.IncomeMonth)
}

func TestStatsDegradesToZeroOnFailure(t *testing.T) {
	s, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM pagos`).
		WillReturnError(errors.New("db caída"))

	assert.Equal(t, DashboardStats{}, s.Stats())
}

func TestAdvisorReportGroupsAndBounds(t *testing.T) {
	s, mock, db := newStoreWithMock(t)
	defer db.Close()

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT asesor, COUNT\(\*\) AS registros_asesor, SUM\(cuota\) AS total_asesor FROM "pagos" WHERE fecha >= \$1 AND fecha <= \$2 GROUP BY "asesor" ORDER BY total_asesor DESC`).
		WithArgs(start, end).
		WillReturnRows(sqlmock.NewRows([]string{"asesor", "registros_asesor", "total_asesor"}).
			AddRow("Lud Rojas", 1, 500.0))

	report := s.AdvisorReport(&start, &end)
	require.Len(t, report, 1)
	assert.Equal(t, "Lud Rojas", report[0].Advisor)
	assert.Equal(t, int64(1), report[0].Payments)
	assert.Equal(t, 500.0, report[0].Total)
}

func TestSearchPaymentsDegradesToEmpty(t *testing.T) {
	s, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM pagos p JOIN clientes c`).
		WillReturnError(errors.New("db caída"))

	assert.Empty(t, s.SearchPayments("ana"))
}

func TestDeletePaymentReportsAffectedRows(t *testing.T) {
	s, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM "pagos" WHERE "pagos"\."id" = \$1`).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := s.DeletePayment(7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
}

func TestSetClientStatusNotFound(t *testing.T) {
	s, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE "clientes" SET "estado"=\$1 WHERE id = \$2`).
		WithArgs(models.ClientInactive, 99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, s.SetClientStatus(99, models.ClientInactive), ErrNotFound)
}
