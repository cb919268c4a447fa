package booking

import (
	"github.com/m04kA/SMC-StudioBookingService/pkg/dbmetrics"
)

// DBExecutor is the query surface, a *dbmetrics.DB or a plain *sql.DB
type DBExecutor = dbmetrics.DBExecutor
