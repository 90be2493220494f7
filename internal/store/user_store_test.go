package store

import (
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/example/loginportal/internal/models"
)

func newMockStore(t *testing.T) (*UserStore, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	return NewUserStore(db), mock
}

func userColumns() []string {
	return []string{"id", "created_at", "updated_at", "name", "password_hash", "email", "phone", "address", "profile_image_path"}
}

func userRow(u models.User) []driver.Value {
	return []driver.Value{u.ID.String(), u.CreatedAt, u.UpdatedAt, u.Name, u.PasswordHash, u.Email, u.Phone, u.Address, u.ProfileImagePath}
}

func sampleUser() models.User {
	return models.User{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now().Add(-time.Hour),
			UpdatedAt: time.Now().Add(-time.Hour),
		},
		Name:             "alice",
		PasswordHash:     "$2a$10$abcdefghijklmnopqrstuv",
		Email:            "a@x.com",
		Phone:            "1234567890",
		Address:          "1 Main St",
		ProfileImagePath: models.DefaultProfileImagePath,
	}
}

func TestFindByName_OldestWins(t *testing.T) {
	s, mock := newMockStore(t)
	user := sampleUser()

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE name = .+ ORDER BY created_at asc, id asc`).
		WillReturnRows(sqlmock.NewRows(userColumns()).AddRow(userRow(user)...))

	found, err := s.FindByName("alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByName_NotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE name =`).
		WillReturnRows(sqlmock.NewRows(userColumns()))

	_, err := s.FindByName("nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindByEmailOrPhone(t *testing.T) {
	s, mock := newMockStore(t)
	user := sampleUser()

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = .+ OR phone =`).
		WillReturnRows(sqlmock.NewRows(userColumns()).AddRow(userRow(user)...))

	found, err := s.FindByEmailOrPhone("a@x.com", "1234567890")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "alice", found.Name)
}

func TestFindByEmailOrPhone_AbsenceIsNotAnError(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = .+ OR phone =`).
		WillReturnRows(sqlmock.NewRows(userColumns()))

	found, err := s.FindByEmailOrPhone("missing@x.com", "0000000000")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestCreate_DuplicateLeavesStoreUntouched(t *testing.T) {
	s, mock := newMockStore(t)
	existing := sampleUser()

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = .+ OR phone =`).
		WillReturnRows(sqlmock.NewRows(userColumns()).AddRow(userRow(existing)...))

	user := sampleUser()
	user.BaseModel = models.BaseModel{}
	err := s.Create(&user)
	assert.ErrorIs(t, err, ErrDuplicate)

	// No INSERT may have been issued.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_ValidationFailureIssuesNoSQL(t *testing.T) {
	s, mock := newMockStore(t)

	user := sampleUser()
	user.Email = "not-an-email"
	err := s.Create(&user)

	var vErr *models.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "email", vErr.Field)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAll(t *testing.T) {
	s, mock := newMockStore(t)
	first := sampleUser()
	second := sampleUser()
	second.Name = "bob"
	second.Email = "b@x.com"
	second.Phone = "0987654321"

	mock.ExpectQuery(`SELECT \* FROM "users" ORDER BY created_at desc`).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(userRow(second)...).
			AddRow(userRow(first)...))

	users, err := s.ListAll()
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "bob", users[0].Name)
	assert.Equal(t, "alice", users[1].Name)
}

func TestUpdateByID(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE "users" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.UpdateByID(uuid.New(), UserUpdate{Address: "2 Oak Ave"})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateByID_NotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE "users" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.UpdateByID(uuid.New(), UserUpdate{Address: "2 Oak Ave"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteByID(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`DELETE FROM "users" WHERE id =`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.DeleteByID(uuid.New())
	assert.NoError(t, err)
}

func TestDeleteByID_NotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`DELETE FROM "users" WHERE id =`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.DeleteByID(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetProfileImage(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE "users" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.SetProfileImage(uuid.New(), "/uploads/1234.png")
	assert.NoError(t, err)
}
