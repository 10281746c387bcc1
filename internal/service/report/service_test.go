package report

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saudkhanbpk/ems-backend-go/internal/domain/report"
	"github.com/saudkhanbpk/ems-backend-go/internal/pkg/pdfgen"
)

func authedContext(t *testing.T, userID, role string) context.Context {
	t.Helper()
	tokenAuth := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := tokenAuth.Encode(map[string]interface{}{"user_id": userID, "role": role})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

type fakeReportRepo struct {
	summaries  []report.UserSummary
	lastUserID string
}

func (r *fakeReportRepo) Summarize(ctx context.Context, start, end time.Time, userID string) ([]report.UserSummary, error) {
	r.lastUserID = userID
	return r.summaries, nil
}

func TestSummaryScopesEmployeesToThemselves(t *testing.T) {
	repo := &fakeReportRepo{}
	svc := NewReportService(repo, pdfgen.NewClient(""))

	ctx := authedContext(t, "user-1", "employee")
	_, err := svc.Summary(ctx, report.RangeRequest{
		StartDate: "2026-03-01",
		EndDate:   "2026-03-31",
		UserID:    "user-2",
	})
	require.NoError(t, err)
	assert.Equal(t, "user-1", repo.lastUserID)
}

func TestSummaryAllowsAdminWideQueries(t *testing.T) {
	repo := &fakeReportRepo{}
	svc := NewReportService(repo, pdfgen.NewClient(""))

	ctx := authedContext(t, "admin-1", "admin")
	_, err := svc.Summary(ctx, report.RangeRequest{
		StartDate: "2026-03-01",
		EndDate:   "2026-03-31",
	})
	require.NoError(t, err)
	assert.Empty(t, repo.lastUserID)
}

func TestSummaryRejectsInvertedRange(t *testing.T) {
	svc := NewReportService(&fakeReportRepo{}, pdfgen.NewClient(""))

	ctx := authedContext(t, "admin-1", "admin")
	_, err := svc.Summary(ctx, report.RangeRequest{
		StartDate: "2026-03-31",
		EndDate:   "2026-03-01",
	})
	assert.ErrorIs(t, err, report.ErrEmptyRange)
}

func TestExportPDFWithoutRendererFails(t *testing.T) {
	repo := &fakeReportRepo{summaries: []report.UserSummary{
		{UserID: "user-1", Name: "Sam", TrackedSeconds: 3600, AttendanceRate: 0.9},
	}}
	svc := NewReportService(repo, pdfgen.NewClient(""))

	ctx := authedContext(t, "admin-1", "admin")
	_, err := svc.ExportPDF(ctx, report.RangeRequest{
		StartDate: "2026-03-01",
		EndDate:   "2026-03-31",
	})
	assert.ErrorIs(t, err, report.ErrPDFDisabled)
}

func TestExportPDFEmptyRange(t *testing.T) {
	svc := NewReportService(&fakeReportRepo{}, pdfgen.NewClient(""))

	ctx := authedContext(t, "admin-1", "admin")
	_, err := svc.ExportPDF(ctx, report.RangeRequest{
		StartDate: "2026-03-01",
		EndDate:   "2026-03-31",
	})
	assert.ErrorIs(t, err, report.ErrEmptyRange)
}
