package repository

import (
	"fmt"

	"github.com/noah-isme/athlete-load-api/pkg/database"
	appErrors "github.com/noah-isme/athlete-load-api/pkg/errors"
)

// storeError classifies a database failure so callers can tell an
// unreachable store apart from a failed statement.
func storeError(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case database.IsUnavailable(err):
		return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, appErrors.ErrStoreUnavailable.Message)
	case database.IsUniqueViolation(err):
		return appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "record was created concurrently, retry the submission")
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
