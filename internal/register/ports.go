package register

import (
	"context"

	"hajeri/internal/core"
)

// Ports for outbound register adapters.
type (
	// Writer replaces one month's rows in the external payroll register.
	Writer interface {
		WriteMonthlyReport(ctx context.Context, report core.MonthlyReport) error
	}
)
