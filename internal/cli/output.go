package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/ambercart/internal/cart"
	"github.com/roach88/ambercart/internal/extract"
	"github.com/roach88/ambercart/internal/money"
	"github.com/roach88/ambercart/internal/order"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Cart or checkout refused the request, scenarios failed
	ExitCommandError = 2 // Command error (invalid flags, database or config unavailable)
)

// errNotInCart is returned by item commands for an id the cart does not hold.
var errNotInCart = errors.New("item is not in the cart")

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates an ExitError without a cause.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError attaches an exit code and context to err.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode returns the exit code carried by err, ExitFailure otherwise.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// reasonCodes name the cart failures a script may want to branch on.
// Checked in order; the first match wins.
var reasonCodes = []struct {
	err  error
	code string
}{
	{cart.ErrInvalidQuantity, "E_QUANTITY"},
	{cart.ErrInvalidDescriptor, "E_PRODUCT"},
	{money.ErrInvalidPrice, "E_PRICE"},
	{extract.ErrMissingName, "E_PRODUCT"},
	{extract.ErrMissingPrice, "E_PRICE"},
	{order.ErrEmptyCart, "E_EMPTY_CART"},
	{order.ErrMissingCustomer, "E_CUSTOMER"},
	{order.ErrUnknownChannel, "E_CHANNEL"},
	{errNotInCart, "E_NOT_IN_CART"},
}

// errorCode picks the CLIError code for err: a cart reason when one is
// wrapped, else a code for the exit status.
func errorCode(err error) string {
	for _, r := range reasonCodes {
		if errors.Is(err, r.err) {
			return r.code
		}
	}
	switch GetExitCode(err) {
	case ExitFailure:
		return "E_REJECTED"
	case ExitCommandError:
		return "E_COMMAND"
	default:
		return "E_UNKNOWN"
	}
}

// shopperNotice returns the text the storefront would show for err.
func shopperNotice(err error) (string, bool) {
	var f *extract.Failure
	if errors.As(err, &f) {
		return f.Notice, true
	}
	var ve *order.ValidationError
	if errors.As(err, &ve) {
		return ve.Notice, true
	}
	return "", false
}

// OutputFormatter writes command results as text or JSON.
type OutputFormatter struct {
	Format string
	Writer io.Writer
	// ErrWriter receives diagnostics so JSON output stays parseable.
	// Defaults to Writer.
	ErrWriter io.Writer
	Verbose   bool
}

// CLIResponse is the JSON envelope for every command.
type CLIResponse struct {
	Status string    `json:"status"` // "ok" or "error"
	Data   any       `json:"data,omitempty"`
	Error  *CLIError `json:"error,omitempty"`
}

// CLIError describes a failed command.
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Notice is the shopper-facing text, when the cart produced one.
	Notice string `json:"notice,omitempty"`
}

// Success writes data. Text mode prints it with %v; commands with a richer
// text rendering write to Writer themselves.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return f.encode(CLIResponse{Status: "ok", Data: data})
	}
	fmt.Fprintln(f.Writer, data)
	return nil
}

// Fail reports err and returns the exit code for it.
func (f *OutputFormatter) Fail(err error) int {
	resp := &CLIError{Code: errorCode(err), Message: err.Error()}
	if notice, ok := shopperNotice(err); ok {
		resp.Notice = notice
	}

	if f.Format == "json" {
		_ = f.encode(CLIResponse{Status: "error", Error: resp})
	} else {
		fmt.Fprintf(f.Writer, "Error [%s]: %s\n", resp.Code, resp.Message)
		if f.Verbose && resp.Notice != "" {
			fmt.Fprintf(f.Writer, "Notice: %s\n", resp.Notice)
		}
	}
	return GetExitCode(err)
}

// Debugf writes a diagnostic line in verbose mode.
func (f *OutputFormatter) Debugf(format string, args ...any) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}

// encode writes v as one JSON line. Product names keep their <, > and &.
func (f *OutputFormatter) encode(v any) error {
	enc := json.NewEncoder(f.Writer)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
