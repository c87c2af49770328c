package salary

import "context"

// SalaryService is the record manager: one on-demand batch computation per
// employee and period, then lifecycle and read operations.
type SalaryService interface {
	Generate(ctx context.Context, req GenerateRequest) (RecordResponse, error)
	GetRecord(ctx context.Context, id string) (RecordResponse, error)
	ListRecords(ctx context.Context, filter Filter) (ListResponse, error)
	ListMyRecords(ctx context.Context) ([]RecordResponse, error)
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) (RecordResponse, error)
	GetStats(ctx context.Context, startDate, endDate *string) (StatsResponse, error)
}
