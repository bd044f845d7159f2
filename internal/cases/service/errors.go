package service

import (
	"errors"

	"medhope/internal/cases/models"
	identity "medhope/internal/identity/models"
	dErrors "medhope/pkg/domain-errors"
	"medhope/pkg/platform/sentinel"
)

func requireRole(actor models.Actor, role identity.Role, action string) error {
	if !actor.Is(role) {
		return dErrors.New(dErrors.CodeForbidden, "only "+string(role)+"s can "+action)
	}
	return nil
}

// wrapCaseErr translates store failures. Coded errors from model validation
// pass through unchanged.
func wrapCaseErr(err error, msg string) error {
	if err == nil {
		return nil
	}
	var de *dErrors.Error
	if errors.As(err, &de) {
		return err
	}
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "case not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}
