package http

import (
	"fmt"

	"hit-analytics/internal/shared/svcerrors"
)

// Handler-level errors for malformed query strings; everything semantic is
// validated by the services.
const (
	codeInvalidQueryParam = "HTP_1000"
)

func errInvalidQueryParam(param string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidQueryParam,
		fmt.Sprintf("invalid query parameter %q", param), cause)
}
