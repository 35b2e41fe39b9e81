// Package testutil provides SQLite-backed fixtures for service and handler tests.
package testutil

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"sacco-admin/internal/adapters/persistence/models"
	"sacco-admin/internal/adapters/persistence/repositories"
	"sacco-admin/internal/config"
	"sacco-admin/internal/core/domain"
	"sacco-admin/internal/pkg/password"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Password is the plain-text password of every fixture user
const Password = "password123"

var seq atomic.Int64

func init() {
	password.Cost = bcrypt.MinCost
}

// NewDB opens a migrated SQLite database in a temp dir, closed when the test ends
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := config.OpenSQLite(filepath.Join(t.TempDir(), "test.db"), logger.Default.LogMode(logger.Silent))
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// NewStore returns a store over a fresh database
func NewStore(t testing.TB) *repositories.Store {
	t.Helper()
	return repositories.NewStore(NewDB(t))
}

// CreateUser inserts an active user with the given role
func CreateUser(t testing.TB, store *repositories.Store, role domain.Role) *models.User {
	t.Helper()

	hash, err := password.Hash(Password)
	require.NoError(t, err)

	n := seq.Add(1)
	user := &models.User{
		Username:  fmt.Sprintf("%s%d", role, n),
		Email:     fmt.Sprintf("%s%d@example.com", role, n),
		Password:  hash,
		FirstName: "Test",
		LastName:  fmt.Sprintf("User%d", n),
		Role:      string(role),
		IsActive:  true,
	}
	require.NoError(t, store.Users.Create(context.Background(), user))
	return user
}

// CreateMember inserts a member profile for a new member-role user
func CreateMember(t testing.TB, store *repositories.Store) *models.Member {
	t.Helper()

	user := CreateUser(t, store, domain.RoleMember)
	member := &models.Member{
		UserID:         user.ID,
		MembershipDate: time.Now().UTC().Truncate(24 * time.Hour),
		Status:         string(domain.MemberStatusActive),
	}
	require.NoError(t, store.Members.Create(context.Background(), member))

	loaded, err := store.Members.GetByID(context.Background(), member.ID)
	require.NoError(t, err)
	return loaded
}

// CreateAccount opens a regular savings account with balance posted directly
func CreateAccount(t testing.TB, store *repositories.Store, member *models.Member, balance string) *models.SavingsAccount {
	t.Helper()

	account := &models.SavingsAccount{
		MemberID:     member.ID,
		AccountType:  string(domain.AccountTypeRegular),
		Balance:      decimal.RequireFromString(balance),
		InterestRate: decimal.NewFromInt(5),
		IsActive:     true,
	}
	require.NoError(t, store.Accounts.Create(context.Background(), account))
	return account
}

// ConflictOnUpdate bumps the row version of table just before the next times
// versioned updates on it, so each of them finds a stale version.
// The bump runs on the caller's connection and rolls back with its transaction.
func ConflictOnUpdate(t testing.TB, db *gorm.DB, table string, times int) {
	t.Helper()

	remaining := times
	name := fmt.Sprintf("testutil:conflict_%s_%d", table, seq.Add(1))
	err := db.Callback().Update().Before("gorm:update").Register(name, func(tx *gorm.DB) {
		if remaining == 0 || tx.Statement.Table != table {
			return
		}
		remaining--
		tx.Session(&gorm.Session{NewDB: true}).
			Exec(fmt.Sprintf("UPDATE %s SET version = version + 1", table))
	})
	require.NoError(t, err)
}

// FailOnUpdate makes every later update on table fail with err
func FailOnUpdate(t testing.TB, db *gorm.DB, table string, err error) {
	t.Helper()

	name := fmt.Sprintf("testutil:fail_%s_%d", table, seq.Add(1))
	require.NoError(t, db.Callback().Update().Before("gorm:update").Register(name, func(tx *gorm.DB) {
		if tx.Statement.Table == table {
			_ = tx.AddError(err)
		}
	}))
}
