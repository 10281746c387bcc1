package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/saudkhanbpk/ems-backend-go/internal/domain/report"
	"github.com/saudkhanbpk/ems-backend-go/internal/domain/tracking"
	"github.com/saudkhanbpk/ems-backend-go/internal/domain/user"
	"github.com/saudkhanbpk/ems-backend-go/internal/pkg/pdfgen"
)

type ReportServiceImpl struct {
	report.ReportRepository
	pdfClient *pdfgen.Client
}

func NewReportService(reportRepo report.ReportRepository, pdfClient *pdfgen.Client) report.ReportService {
	return &ReportServiceImpl{
		ReportRepository: reportRepo,
		pdfClient:        pdfClient,
	}
}

func claimsFromContext(ctx context.Context) (userID, role string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", tracking.ErrNoCurrentUser
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", tracking.ErrNoCurrentUser
	}
	role, _ = claims["role"].(string)
	return userID, role, nil
}

// Summary implements report.ReportService. Employees get their own
// numbers; admins can request anyone's or the whole organization's.
func (s *ReportServiceImpl) Summary(ctx context.Context, req report.RangeRequest) (report.SummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return report.SummaryResponse{}, err
	}

	userID, role, err := claimsFromContext(ctx)
	if err != nil {
		return report.SummaryResponse{}, err
	}
	if role != string(user.RoleAdmin) {
		req.UserID = userID
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return report.SummaryResponse{}, fmt.Errorf("failed to parse start date: %w", err)
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return report.SummaryResponse{}, fmt.Errorf("failed to parse end date: %w", err)
	}
	if end.Before(start) {
		return report.SummaryResponse{}, report.ErrEmptyRange
	}

	summaries, err := s.ReportRepository.Summarize(ctx, start, end, req.UserID)
	if err != nil {
		return report.SummaryResponse{}, fmt.Errorf("failed to summarize range: %w", err)
	}

	return report.SummaryResponse{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Users:     summaries,
	}, nil
}

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"hours": func(seconds int64) string {
		return fmt.Sprintf("%.1f", float64(seconds)/3600)
	},
	"percent": func(rate float64) string {
		return fmt.Sprintf("%.0f%%", rate*100)
	},
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Helvetica, Arial, sans-serif; font-size: 12px; color: #1f2933; }
  h1 { font-size: 18px; }
  .range { color: #616e7c; margin-bottom: 16px; }
  table { width: 100%; border-collapse: collapse; }
  th, td { border-bottom: 1px solid #e4e7eb; padding: 6px 8px; text-align: left; }
  th { background: #f5f7fa; }
  td.num { text-align: right; }
</style>
</head>
<body>
<h1>Work Summary</h1>
<div class="range">{{.StartDate}} to {{.EndDate}}</div>
<table>
<tr>
  <th>Employee</th><th>Present</th><th>Absent</th><th>On leave</th>
  <th>Tracked (h)</th><th>Sessions</th><th>Screenshots</th><th>Attendance</th>
</tr>
{{range .Users}}
<tr>
  <td>{{.Name}}</td>
  <td class="num">{{.DaysPresent}}</td>
  <td class="num">{{.DaysAbsent}}</td>
  <td class="num">{{.DaysOnLeave}}</td>
  <td class="num">{{hours .TrackedSeconds}}</td>
  <td class="num">{{.SessionCount}}</td>
  <td class="num">{{.ScreenshotCount}}</td>
  <td class="num">{{percent .AttendanceRate}}</td>
</tr>
{{end}}
</table>
</body>
</html>`))

// ExportPDF implements report.ReportService.
func (s *ReportServiceImpl) ExportPDF(ctx context.Context, req report.RangeRequest) ([]byte, error) {
	summary, err := s.Summary(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(summary.Users) == 0 {
		return nil, report.ErrEmptyRange
	}

	var html bytes.Buffer
	if err := reportTemplate.Execute(&html, summary); err != nil {
		return nil, fmt.Errorf("failed to render report template: %w", err)
	}

	pdf, err := s.pdfClient.RenderHTML(ctx, html.String())
	if err != nil {
		if errors.Is(err, pdfgen.ErrNotConfigured) {
			return nil, report.ErrPDFDisabled
		}
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return pdf, nil
}
