package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/schoolsite/internal/auth/domain"
	"github.com/allisson/schoolsite/internal/database"
)

type adminRepository interface {
	Create(ctx context.Context, admin *authDomain.Admin) error
	Update(ctx context.Context, admin *authDomain.Admin) error
	Get(ctx context.Context, id string) (*authDomain.Admin, error)
	GetByEmail(ctx context.Context, email string) (*authDomain.Admin, error)
	List(ctx context.Context, offset, limit int) ([]*authDomain.Admin, error)
}

type adminDialect struct {
	name         string
	newRepo      func(db *sql.DB) adminRepository
	uniqueErr    error
	getQuery     string
	listQuery    string
	updateSuffix string
}

var adminDialects = []adminDialect{
	{
		name:         "postgresql",
		newRepo:      func(db *sql.DB) adminRepository { return NewPostgreSQLAdminRepository(db) },
		uniqueErr:    &pq.Error{Code: "23505"},
		getQuery:     "FROM admins WHERE id = $1",
		listQuery:    "FROM admins ORDER BY email ASC LIMIT $1 OFFSET $2",
		updateSuffix: "WHERE id = $10",
	},
	{
		name:         "mysql",
		newRepo:      func(db *sql.DB) adminRepository { return NewMySQLAdminRepository(db) },
		uniqueErr:    &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"},
		getQuery:     "FROM admins WHERE id = ?",
		listQuery:    "FROM admins ORDER BY email ASC LIMIT ? OFFSET ?",
		updateSuffix: "WHERE id = ?",
	},
}

func TestAdminRepository_Create(t *testing.T) {
	for _, d := range adminDialects {
		t.Run(d.name+"/Success", func(t *testing.T) {
			db, mock := newMockDB(t)
			admin := newTestAdmin()

			mock.ExpectExec("INSERT INTO admins").
				WithArgs(admin.ID, admin.Email, admin.PasswordHash, admin.Name, "admin", true, 0,
					nil, nil, admin.CreatedAt, admin.UpdatedAt).
				WillReturnResult(sqlmock.NewResult(1, 1))

			require.NoError(t, d.newRepo(db).Create(context.Background(), admin))
		})

		t.Run(d.name+"/DuplicateEmail", func(t *testing.T) {
			db, mock := newMockDB(t)

			mock.ExpectExec("INSERT INTO admins").WillReturnError(d.uniqueErr)

			err := d.newRepo(db).Create(context.Background(), newTestAdmin())
			assert.ErrorIs(t, err, authDomain.ErrAdminAlreadyExists)
		})

		t.Run(d.name+"/DatabaseError", func(t *testing.T) {
			db, mock := newMockDB(t)

			mock.ExpectExec("INSERT INTO admins").WillReturnError(errors.New("connection reset"))

			err := d.newRepo(db).Create(context.Background(), newTestAdmin())
			require.Error(t, err)
			assert.Contains(t, err.Error(), "failed to create admin")
		})
	}
}

func TestAdminRepository_Update(t *testing.T) {
	for _, d := range adminDialects {
		t.Run(d.name+"/Success", func(t *testing.T) {
			db, mock := newMockDB(t)
			admin := newTestAdmin()
			locked := admin.CreatedAt.Add(15 * time.Minute)
			admin.FailedAttempts = 5
			admin.LockedUntil = &locked

			mock.ExpectExec(regexp.QuoteMeta("UPDATE admins")).
				WithArgs(admin.Email, admin.PasswordHash, admin.Name, "admin", true, 5,
					locked, nil, admin.UpdatedAt, admin.ID).
				WillReturnResult(sqlmock.NewResult(0, 1))

			require.NoError(t, d.newRepo(db).Update(context.Background(), admin))
		})

		t.Run(d.name+"/NotFound", func(t *testing.T) {
			db, mock := newMockDB(t)

			mock.ExpectExec(regexp.QuoteMeta(d.updateSuffix)).WillReturnResult(sqlmock.NewResult(0, 0))

			err := d.newRepo(db).Update(context.Background(), newTestAdmin())
			assert.ErrorIs(t, err, authDomain.ErrAdminNotFound)
		})
	}
}

func TestAdminRepository_Get(t *testing.T) {
	for _, d := range adminDialects {
		t.Run(d.name+"/Success", func(t *testing.T) {
			db, mock := newMockDB(t)
			admin := newTestAdmin()
			lastLogin := admin.CreatedAt.Add(time.Hour)
			admin.LastLoginAt = &lastLogin

			mock.ExpectQuery(regexp.QuoteMeta(d.getQuery)).
				WithArgs("a1").
				WillReturnRows(adminRow(admin))

			got, err := d.newRepo(db).Get(context.Background(), "a1")
			require.NoError(t, err)
			assert.Equal(t, admin.Email, got.Email)
			assert.Equal(t, admin.PasswordHash, got.PasswordHash)
			assert.Equal(t, authDomain.RoleAdmin, got.Role)
			assert.True(t, got.IsActive)
			assert.Nil(t, got.LockedUntil)
			require.NotNil(t, got.LastLoginAt)
			assert.Equal(t, lastLogin, *got.LastLoginAt)
		})

		t.Run(d.name+"/NotFound", func(t *testing.T) {
			db, mock := newMockDB(t)

			mock.ExpectQuery(regexp.QuoteMeta(d.getQuery)).WillReturnError(sql.ErrNoRows)

			got, err := d.newRepo(db).Get(context.Background(), "missing")
			assert.Nil(t, got)
			assert.ErrorIs(t, err, authDomain.ErrAdminNotFound)
		})

		t.Run(d.name+"/DatabaseError", func(t *testing.T) {
			db, mock := newMockDB(t)

			mock.ExpectQuery(regexp.QuoteMeta(d.getQuery)).WillReturnError(errors.New("timeout"))

			_, err := d.newRepo(db).Get(context.Background(), "a1")
			require.Error(t, err)
			assert.NotErrorIs(t, err, authDomain.ErrAdminNotFound)
		})
	}
}

func TestAdminRepository_GetByEmail(t *testing.T) {
	for _, d := range adminDialects {
		t.Run(d.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			admin := newTestAdmin()

			mock.ExpectQuery("FROM admins WHERE email").
				WithArgs("x@y.com").
				WillReturnRows(adminRow(admin))
			mock.ExpectQuery("FROM admins WHERE email").
				WithArgs("nobody@y.com").
				WillReturnRows(sqlmock.NewRows(adminColumnNames))

			repo := d.newRepo(db)
			got, err := repo.GetByEmail(context.Background(), "x@y.com")
			require.NoError(t, err)
			assert.Equal(t, "a1", got.ID)

			_, err = repo.GetByEmail(context.Background(), "nobody@y.com")
			assert.ErrorIs(t, err, authDomain.ErrAdminNotFound)
		})
	}
}

func TestAdminRepository_List(t *testing.T) {
	for _, d := range adminDialects {
		t.Run(d.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			first := newTestAdmin()
			second := newTestAdmin()
			second.ID, second.Email = "a2", "z@y.com"

			rows := adminRow(first)
			rows.AddRow(second.ID, second.Email, second.PasswordHash, second.Name, "editor", false, 0,
				nil, nil, second.CreatedAt, second.UpdatedAt)

			mock.ExpectQuery(regexp.QuoteMeta(d.listQuery)).WithArgs(10, 0).WillReturnRows(rows)

			admins, err := d.newRepo(db).List(context.Background(), 0, 10)
			require.NoError(t, err)
			require.Len(t, admins, 2)
			assert.Equal(t, "a2", admins[1].ID)
			assert.Equal(t, authDomain.RoleEditor, admins[1].Role)
			assert.False(t, admins[1].IsActive)
		})
	}
}

func TestAdminRepository_UsesTransactionFromContext(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLAdminRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO admins").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectRollback()

	err := database.NewTxManager(db).WithTx(context.Background(), func(ctx context.Context) error {
		require.NoError(t, repo.Create(ctx, newTestAdmin()))
		return errors.New("abort")
	})
	assert.EqualError(t, err, "abort")
}
