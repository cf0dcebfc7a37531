package cli

import (
	"context"
	"errors"
	"log/slog"

	"github.com/roach88/ambercart/internal/cart"
	"github.com/roach88/ambercart/internal/config"
	"github.com/roach88/ambercart/internal/extract"
	"github.com/roach88/ambercart/internal/markup"
	"github.com/roach88/ambercart/internal/money"
	"github.com/roach88/ambercart/internal/order"
	"github.com/roach88/ambercart/internal/storage"
	"github.com/roach88/ambercart/internal/storefront"
	"github.com/roach88/ambercart/internal/view"
)

// session is one command's view of the persisted cart.
type session struct {
	cfg      config.Config
	db       *storage.SQLite
	renderer *view.Renderer
	ctrl     *storefront.Controller
}

// sessionOptions tune openSession for a command.
type sessionOptions struct {
	page     *markup.Document
	launcher order.Launcher
}

// openSession loads config, opens the database and wires a controller.
// Failures are command errors (exit code 2).
func openSession(ctx context.Context, opts *RootOptions, so sessionOptions) (*session, error) {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}

	slog.Debug("opening database", "path", opts.Database)
	db, err := storage.Open(opts.Database)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}

	store, err := cart.Open(ctx, db, cart.WithKey(cfg.StorageKey))
	if err != nil {
		db.Close()
		return nil, WrapExitError(ExitCommandError, "failed to read cart", err)
	}
	rev, err := db.Revision(ctx, cfg.StorageKey)
	if err != nil {
		db.Close()
		return nil, WrapExitError(ExitCommandError, "failed to read cart", err)
	}
	slog.Debug("cart loaded", "key", cfg.StorageKey, "revision", rev, "items", store.ItemCount())

	renderer := view.NewRenderer(money.NewFormatter(cfg.Locale, cfg.Currency), cfg.Labels)
	ctrl, err := storefront.NewFromConfig(cfg, storefront.Deps{
		Store:    store,
		Renderer: renderer,
		Launcher: so.launcher,
		Orders:   db,
		Page:     so.page,
	})
	if err != nil {
		db.Close()
		return nil, WrapExitError(ExitCommandError, "failed to start storefront", err)
	}

	return &session{cfg: cfg, db: db, renderer: renderer, ctrl: ctrl}, nil
}

func (s *session) Close() {
	if err := s.db.Close(); err != nil {
		slog.Error("error closing database", "error", err)
	}
}

// eventError maps a cart event failure to an exit code. Shopper-facing
// failures are exit 1, storage failures exit 2.
func eventError(message string, err error) error {
	var f *extract.Failure
	var ve *order.ValidationError
	switch {
	case errors.As(err, &f), errors.As(err, &ve),
		errors.Is(err, cart.ErrInvalidDescriptor),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, money.ErrInvalidPrice),
		errors.Is(err, order.ErrUnknownChannel):
		return WrapExitError(ExitFailure, message, err)
	default:
		return WrapExitError(ExitCommandError, message, err)
	}
}
