package report

import "context"

type ReportService interface {
	Summary(ctx context.Context, req RangeRequest) (SummaryResponse, error)
	ExportPDF(ctx context.Context, req RangeRequest) ([]byte, error)
}
