package beacons

import (
	"fmt"

	"hit-analytics/internal/shared/svcerrors"
)

// BeaconService errors. They are never surfaced to the tracking client; the
// beacon endpoint always responds as if it succeeded. Codes feed logs and
// metric labels only.
const (
	codeMissingPath   = "BCN_1000"
	codeInvalidScreen = "BCN_1001"
	codeTooLarge      = "BCN_1002"
	codeInvalidSite   = "BCN_1003"
)

func errMissingPath() *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeMissingPath, "event hits require a non-empty path", nil)
}

func errInvalidScreen(value string) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidScreen,
		fmt.Sprintf("invalid screen dimensions: %q", value), nil)
}

func errPayloadTooLarge(field string, limit int) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeTooLarge,
		fmt.Sprintf("%s too large: max %d bytes", field, limit), nil)
}

func errInvalidSite(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidSite, msg, cause)
}
