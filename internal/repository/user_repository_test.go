package repository

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/hnakamura/qa-board-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupUserRepo(t *testing.T) (UserRepository, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.InvitationCode{}))
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		require.NoError(t, err)
		sqlDB.Close()
	})

	return NewUserRepository(db), db
}

func TestCreateWithInvitation_GrantsCodeRole(t *testing.T) {
	repo, db := setupUserRepo(t)

	invitation := &models.InvitationCode{Code: "ab12", Role: models.RoleStaff}
	require.NoError(t, db.Create(invitation).Error)

	user := &models.User{Username: "newstaff", PasswordHash: "hash"}
	require.NoError(t, repo.CreateWithInvitation(user, "ab12"))
	require.Equal(t, models.RoleStaff, user.Role)

	var stored models.InvitationCode
	require.NoError(t, db.First(&stored, "code = ?", "ab12").Error)
	require.True(t, stored.IsUsed)
}

func TestCreateWithInvitation_UsedCode(t *testing.T) {
	repo, db := setupUserRepo(t)

	invitation := &models.InvitationCode{Code: "ab12", Role: models.RoleStaff, IsUsed: true}
	require.NoError(t, db.Create(invitation).Error)

	user := &models.User{Username: "newstaff", PasswordHash: "hash"}
	err := repo.CreateWithInvitation(user, "ab12")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var count int64
	db.Model(&models.User{}).Count(&count)
	require.Equal(t, int64(0), count)
}

func TestCreateWithInvitation_FailedInsertLeavesCodeUnused(t *testing.T) {
	repo, db := setupUserRepo(t)

	taken := &models.User{Username: "john", PasswordHash: "hash", Role: models.RoleStudent}
	require.NoError(t, db.Create(taken).Error)

	invitation := &models.InvitationCode{Code: "ab12", Role: models.RoleStaff}
	require.NoError(t, db.Create(invitation).Error)

	// A duplicate username fails the insert and the whole transaction
	// rolls back, leaving the single-use code redeemable
	dup := &models.User{Username: "john", PasswordHash: "otherhash"}
	err := repo.CreateWithInvitation(dup, "ab12")
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	var stored models.InvitationCode
	require.NoError(t, db.First(&stored, "code = ?", "ab12").Error)
	require.False(t, stored.IsUsed)

	var count int64
	db.Model(&models.User{}).Count(&count)
	require.Equal(t, int64(1), count)
}

func setupMockUserRepo(t *testing.T) (UserRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewUserRepository(db), mock
}

func TestCreateWithInvitation_ConditionalUpdateStatement(t *testing.T) {
	repo, mock := setupMockUserRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE `invitation_codes` SET `is_used`=? WHERE code = ? AND is_used = ?")).
		WithArgs(true, "ab12", false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT * FROM `invitation_codes` WHERE code = ?")).
		WithArgs("ab12", 1).
		WillReturnRows(sqlmock.NewRows([]string{"code", "role", "is_used"}).
			AddRow("ab12", "Student", true))
	mock.ExpectExec("INSERT INTO `users`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	user := &models.User{Username: "newstudent", PasswordHash: "hash"}
	require.NoError(t, repo.CreateWithInvitation(user, "ab12"))
	require.Equal(t, "Student", user.Role)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithInvitation_UsedCodeRollsBack(t *testing.T) {
	repo, mock := setupMockUserRepo(t)

	// A consumed code matches nothing; the whole transaction rolls back
	// and no user insert is ever attempted.
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE `invitation_codes` SET `is_used`=? WHERE code = ? AND is_used = ?")).
		WithArgs(true, "ab12", false).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	user := &models.User{Username: "newstudent", PasswordHash: "hash"}
	err := repo.CreateWithInvitation(user, "ab12")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}
