package services

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/expensetracker/internal/common"
)

var passThrough = []error{
	common.ErrorNotFound,
	common.ErrBadRequest,
	common.ErrNoPrincipal,
	common.ErrEmailAlreadyInUse,
	common.ErrInvalidEmailFormat,
	common.ErrInvalidCredentials,
}

// wrapInternal returns err unchanged when it already belongs to the error
// taxonomy and wraps it as common.ErrorInternal otherwise.
func wrapInternal(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, target := range passThrough {
		if errors.Is(err, target) {
			return err
		}
	}
	return fmt.Errorf("%w: %s: %v", common.ErrorInternal, op, err)
}

func badRequest(reason string) error {
	return fmt.Errorf("%w: %s", common.ErrBadRequest, reason)
}
