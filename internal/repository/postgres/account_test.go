package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/dentix/clinic-server/internal/password"
)

func TestNewAccountRepository(t *testing.T) {
	db := &Connection{}
	hasher := password.NewBcrypt(bcrypt.MinCost)
	repo := NewAccountRepository(db, hasher)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
	assert.Equal(t, hasher, repo.hasher)
}
