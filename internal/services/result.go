package services

import (
	"errors"
	"fmt"
	"log/slog"

	"boardhub/internal/auth"
	"boardhub/internal/store"
)

// Result messages
const (
	MsgIdentityMismatch = "identity mismatch"
	MsgPostNotFound     = "board not found"
	MsgCommentNotFound  = "comment not found"
	MsgReportNotFound   = "report not found"
)

var (
	// ErrTransactionFailure is what callers see for any unexpected store fault.
	ErrTransactionFailure = errors.New("internal failure")
	// ErrForbidden is returned when a caller lacks the grade an operation needs.
	ErrForbidden = errors.New("forbidden")
	ErrNotFound  = store.ErrNotFound
)

// Result is the outcome of an operation that callers map onto their own transport.
type Result struct {
	Success bool        `json:"success"`
	Message string      `json:"msg,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func ok(data interface{}) Result {
	return Result{Success: true, Data: data}
}

func mismatch() Result {
	return Result{Success: false, Message: MsgIdentityMismatch}
}

// failure passes the expected error kinds through and turns every other fault into
// ErrTransactionFailure after logging it.
func failure(logger *slog.Logger, op string, err error) error {
	switch {
	case errors.Is(err, auth.ErrInvalidCredential):
		logger.Debug("rejected credential", "op", op, "err", err)
		return auth.ErrInvalidCredential
	case errors.Is(err, ErrForbidden), errors.Is(err, ErrNotFound):
		return err
	}
	logger.Error("operation failed", "op", op, "err", err)
	return fmt.Errorf("%s: %w", op, ErrTransactionFailure)
}
