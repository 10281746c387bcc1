package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("x"))
	assert.False(t, IsEmpty(" x "))
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last@sub.domain.co",
		"user+tag@example.io",
	}
	for _, e := range valid {
		assert.True(t, IsValidEmail(e), e)
	}

	invalid := []string{
		"",
		"plainaddress",
		"@missinglocal.com",
		"user@",
		"user@domain",
	}
	for _, e := range invalid {
		assert.False(t, IsValidEmail(e), e)
	}
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("0188e07e-3c62-7f41-8923-1d3a5b6c7d8e"))
	assert.True(t, IsValidUUID("9a2f4b6e-1c3d-4e5f-8a9b-0c1d2e3f4a5b"))
	assert.False(t, IsValidUUID("not-a-uuid"))
	assert.False(t, IsValidUUID("0188e07e3c627f4189231d3a5b6c7d8e"))
}

func TestIsValidDate(t *testing.T) {
	_, ok := IsValidDate("2024-06-15")
	assert.True(t, ok)

	_, ok = IsValidDate("15-06-2024")
	assert.False(t, ok)

	_, ok = IsValidDate("2024-13-40")
	assert.False(t, ok)
}

func TestIsValidTaskStatus(t *testing.T) {
	for _, s := range []string{"todo", "inProgress", "review", "done"} {
		assert.True(t, IsValidTaskStatus(s), s)
	}
	assert.False(t, IsValidTaskStatus("archived"))
	assert.False(t, IsValidTaskStatus("in_progress"))
	assert.False(t, IsValidTaskStatus(""))
}

func TestIsValidInterval(t *testing.T) {
	assert.True(t, IsValidInterval(1))
	assert.True(t, IsValidInterval(600))
	assert.False(t, IsValidInterval(0))
	assert.False(t, IsValidInterval(-5))
}

func TestIsValidDateTime(t *testing.T) {
	_, ok := IsValidDateTime("2024-01-15T10:30:00Z")
	assert.True(t, ok)

	_, ok = IsValidDateTime("2024-01-15T10:30:00+07:00")
	assert.True(t, ok)

	_, ok = IsValidDateTime("2024-01-15 10:30:00")
	assert.False(t, ok)
}
