package service

import (
	"errors"

	dErrors "medhope/pkg/domain-errors"
	"medhope/pkg/platform/sentinel"
)

func wrapLedgerErr(err error, msg string) error {
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
