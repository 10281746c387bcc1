package postgresql

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateParam(t *testing.T) {
	assert.Nil(t, dateParam(""))
	assert.Nil(t, dateParam("not-a-date"))

	d := dateParam("2026-03-08")
	require.NotNil(t, d)
	assert.Equal(t, time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC), *d)
}

func TestTextParam(t *testing.T) {
	assert.Nil(t, textParam(""))

	s := textParam("approved")
	require.NotNil(t, s)
	assert.Equal(t, "approved", *s)
}
