package jwt

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"storefront/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.LoginToken{}))

	return db
}

func issueTestToken(t *testing.T, m *Manager, db *gorm.DB, userID uint, role string, exp time.Time) string {
	t.Helper()

	token, err := m.GenerateToken(userID, role, exp.Unix())
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.LoginToken{
		Token:          token,
		ExpirationTime: exp,
		UserID:         userID,
		Role:           role,
	}).Error)

	return token
}

func TestTokenRoundTrip(t *testing.T) {
	db := newTestDB(t)
	m := NewManager("test-secret")

	token := issueTestToken(t, m, db, 42, models.RoleUser, time.Now().Add(time.Hour))

	userID, role, err := m.VerifyToken(token, db)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
	assert.Equal(t, models.RoleUser, role)
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	db := newTestDB(t)
	m := NewManager("test-secret")

	token := issueTestToken(t, m, db, 42, models.RoleUser, time.Now().Add(time.Hour))

	other := NewManager("another-secret")
	_, _, err := other.VerifyToken(token, db)
	assert.Error(t, err)
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	db := newTestDB(t)
	m := NewManager("test-secret")

	token := issueTestToken(t, m, db, 42, models.RoleUser, time.Now().Add(-time.Hour))

	_, _, err := m.VerifyToken(token, db)
	assert.Error(t, err)
}

func TestVerifyTokenRejectsRevoked(t *testing.T) {
	db := newTestDB(t)
	m := NewManager("test-secret")

	token := issueTestToken(t, m, db, 42, models.RoleUser, time.Now().Add(time.Hour))

	// Logging out deletes the row, which revokes the otherwise valid token.
	require.NoError(t, db.Delete(&models.LoginToken{}, "token = ?", token).Error)

	_, _, err := m.VerifyToken(token, db)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	db := newTestDB(t)
	m := NewManager("test-secret")

	_, _, err := m.VerifyToken("not-a-token", db)
	assert.Error(t, err)
}
