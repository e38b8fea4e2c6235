package password_test

import (
	"dinebook/shared/password"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	password.Cost = bcrypt.MinCost
}

func TestHash(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "account password", input: "s3cret-table-for-two"},
		{name: "exactly the bcrypt limit", input: strings.Repeat("a", password.MaxLength)},
		{name: "empty", input: "", wantErr: password.ErrEmptyPassword},
		{name: "over the bcrypt limit", input: strings.Repeat("a", password.MaxLength+1), wantErr: password.ErrPasswordTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hashed, err := password.Hash(tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, hashed)

				return
			}

			assert.NoError(t, err)
			assert.NotEqual(t, tt.input, hashed)
			assert.True(t, strings.HasPrefix(hashed, "$2a$"))
		})
	}
}

func TestHash_Salted(t *testing.T) {
	first, err := password.Hash("password123")
	assert.NoError(t, err)

	second, err := password.Hash("password123")
	assert.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerify(t *testing.T) {
	hashed, err := password.Hash("password123")
	assert.NoError(t, err)

	tests := []struct {
		name    string
		plain   string
		hashed  string
		wantErr error
	}{
		{name: "match", plain: "password123", hashed: hashed},
		{name: "mismatch", plain: "password124", hashed: hashed, wantErr: password.ErrInvalidPassword},
		{name: "empty password", plain: "", hashed: hashed, wantErr: password.ErrInvalidPassword},
		{name: "empty hash", plain: "password123", hashed: "", wantErr: password.ErrInvalidPassword},
		{name: "truncated hash", plain: "password123", hashed: "$2a$", wantErr: password.ErrInvalidPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.plain, tt.hashed)

			if tt.wantErr == nil {
				assert.NoError(t, err)

				return
			}

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
