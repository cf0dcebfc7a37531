package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ambercart/internal/cart"
	"github.com/roach88/ambercart/internal/extract"
	"github.com/roach88/ambercart/internal/money"
	"github.com/roach88/ambercart/internal/order"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, formatter.Success(map[string]string{"total": "6 720 ₽ <b>"}))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Contains(t, buf.String(), "<b>", "HTML is not escaped")
}

func TestOutputFormatter_FailJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	err := WrapExitError(ExitFailure, "checkout refused", &order.ValidationError{
		Err:    order.ErrEmptyCart,
		Notice: "Корзина пустая",
	})
	assert.Equal(t, ExitFailure, formatter.Fail(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E_EMPTY_CART", resp.Error.Code)
	assert.Equal(t, "checkout refused: checkout: cart is empty", resp.Error.Message)
	assert.Equal(t, "Корзина пустая", resp.Error.Notice)
}

func TestOutputFormatter_FailText(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}
	err := WrapExitError(ExitFailure, "failed to add product", &extract.Failure{
		Err:    extract.ErrMissingName,
		Notice: "Не удалось определить товар",
	})

	assert.Equal(t, ExitFailure, formatter.Fail(err))
	assert.Contains(t, buf.String(), "Error [E_PRODUCT]: failed to add product")
	assert.NotContains(t, buf.String(), "Notice:")

	buf.Reset()
	formatter.Verbose = true
	formatter.Fail(err)
	assert.Contains(t, buf.String(), "Notice: Не удалось определить товар")
}

func TestOutputFormatter_Debugf(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		wantLog bool
	}{
		{"verbose_enabled", true, true},
		{"verbose_disabled", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			diag := &bytes.Buffer{}
			formatter := &OutputFormatter{Format: "json", Writer: out, ErrWriter: diag, Verbose: tt.verbose}

			formatter.Debugf("page controls: %d", 4)

			assert.Empty(t, out.String(), "diagnostics never go to the JSON stream")
			if tt.wantLog {
				assert.Contains(t, diag.String(), "page controls: 4")
			} else {
				assert.Empty(t, diag.String())
			}
		})
	}
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "boom")))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))

	wrapped := fmt.Errorf("outer: %w", WrapExitError(ExitCommandError, "inner", errors.New("cause")))
	assert.Equal(t, ExitCommandError, GetExitCode(wrapped))
	assert.EqualError(t, wrapped, "outer: inner: cause")
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"quantity", WrapExitError(ExitFailure, "add", fmt.Errorf("%w: got 0", cart.ErrInvalidQuantity)), "E_QUANTITY"},
		{"price", WrapExitError(ExitFailure, "add", fmt.Errorf("%w: no digits", money.ErrInvalidPrice)), "E_PRICE"},
		{"channel", WrapExitError(ExitFailure, "checkout", order.ErrUnknownChannel), "E_CHANNEL"},
		{"not_in_cart", WrapExitError(ExitFailure, "inc", errNotInCart), "E_NOT_IN_CART"},
		{"rejected", NewExitError(ExitFailure, "scenarios failed"), "E_REJECTED"},
		{"command", WrapExitError(ExitCommandError, "open", errors.New("locked")), "E_COMMAND"},
		{"unknown", &ExitError{Code: 42, Message: "odd"}, "E_UNKNOWN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorCode(tt.err))
		})
	}
}
