package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRangeRequestValidate(t *testing.T) {
	good := RangeRequest{StartDate: "2026-03-01", EndDate: "2026-03-31"}
	assert.NoError(t, good.Validate())

	bad := RangeRequest{StartDate: "03/01/2026", EndDate: "2026-03-31"}
	err := bad.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "start_date")
}
