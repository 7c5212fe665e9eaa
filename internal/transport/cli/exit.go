package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/Eiad-Soufan/bm-requests-frontend/internal/domain"
)

// Exit codes.
const (
	ExitOK         = 0
	ExitFailure    = 1
	ExitValidation = 2
	ExitSession    = 3
)

// ExitCode maps an error onto the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, domain.ErrSessionInvalidated),
		errors.Is(err, domain.ErrNoSession),
		errors.Is(err, domain.ErrUnauthorized):
		return ExitSession
	case errors.Is(err, domain.ErrValidation):
		return ExitValidation
	default:
		return ExitFailure
	}
}

func reportError(w io.Writer, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		fmt.Fprintln(w, "Error: invalid input")
		for _, fe := range ve.Errors {
			fmt.Fprintf(w, "  %s: %s\n", fe.Field, fe.Message)
		}
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
	switch {
	case errors.Is(err, domain.ErrSessionInvalidated):
		fmt.Fprintln(w, "Your session has expired. Run `portal login` to sign in again.")
	case errors.Is(err, domain.ErrNoSession):
		fmt.Fprintln(w, "You are not signed in. Run `portal login` first.")
	}
}
