package stats

import (
	"fmt"

	"hit-analytics/internal/shared/svcerrors"
)

// StatsService errors
const (
	codeValidationFailed = "STA_1000"

	codeInternalCounterStoreFailed = "STA_9000"
)

func errValidationFailed(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeValidationFailed, msg, cause)
}

func errInternalCounterStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalCounterStoreFailed, fmt.Errorf("counterStoreFailed: %w", cause))
}
