package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVerificationCodeMatches(t *testing.T) {
	a := Account{VerificationCode: "482193"}
	assert.True(t, a.VerificationCodeMatches("482193"))
	assert.False(t, a.VerificationCodeMatches("482194"))
	assert.False(t, a.VerificationCodeMatches(" 482193"))

	// no outstanding code never matches, even the empty string
	empty := Account{}
	assert.False(t, empty.VerificationCodeMatches(""))
}

func TestVerificationCodeExpiryBoundary(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	a := Account{VerificationExpires: issued.Add(CodeTTL)}

	assert.False(t, a.VerificationCodeExpired(issued))
	assert.False(t, a.VerificationCodeExpired(issued.Add(CodeTTL)), "now > expiry is strict")
	assert.True(t, a.VerificationCodeExpired(issued.Add(CodeTTL+time.Nanosecond)))
}

func TestResetCodeChecksAreIndependent(t *testing.T) {
	now := time.Now()
	a := Account{
		VerificationCode:    "111111",
		VerificationExpires: now.Add(-time.Minute),
		ResetCode:           "222222",
		ResetExpires:        now.Add(time.Minute),
	}
	assert.True(t, a.VerificationCodeExpired(now))
	assert.True(t, a.ResetCodeMatches("222222"))
	assert.False(t, a.ResetCodeExpired(now))
}

func TestPendingRoleDefaultsToStudent(t *testing.T) {
	assert.Equal(t, RoleStudent, (&Account{}).PendingRole())
	assert.Equal(t, RoleSME, (&Account{TempRole: RoleSME}).PendingRole())
}
