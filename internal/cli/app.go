// Package cli implements the interactive BookDesk command line: a REPL that
// stands in for the touch UI, issuing desk mutations and store saves.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/bookdesk/bookdesk/internal/config"
	"github.com/bookdesk/bookdesk/internal/database"
	"github.com/bookdesk/bookdesk/internal/filex"
	"github.com/bookdesk/bookdesk/internal/logging"
	"github.com/bookdesk/bookdesk/internal/models"
	"github.com/bookdesk/bookdesk/internal/repositories/cards"
	"github.com/bookdesk/bookdesk/internal/repositories/settings"
	"github.com/bookdesk/bookdesk/internal/services"

	_ "modernc.org/sqlite"
)

type App struct {
	config   *config.Config
	db       *sql.DB
	desks    *models.DeskSet
	store    *services.CardStore
	importer *services.Importer
	pages    *services.PageMemory
	log      logging.Logger
}

// NewApp opens the local store, loads the desks, and wires the services.
// A load failure is logged and the app starts with five empty desks rather
// than refusing to run.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if err := filex.EnsureDir(cfg.DataDir); err != nil {
		return nil, err
	}
	if err := filex.EnsureDir(cfg.LibraryDir()); err != nil {
		return nil, err
	}

	db, err := database.Open(ctx, cfg.DatabasePath())
	if err != nil {
		return nil, err
	}

	cardRepo := cards.NewSQLiteRepository(db)
	store := services.NewCardStore(cardRepo, cfg.LibraryDir(), log)

	desks, err := store.Load(ctx)
	if err != nil {
		log.Error(ctx, "desk load failed, starting empty", "error", err)
		desks = models.NewDeskSet()
	}

	canvas := models.Size{Width: cfg.CanvasWidth, Height: cfg.CanvasHeight}

	return &App{
		config:   cfg,
		db:       db,
		desks:    desks,
		store:    store,
		importer: services.NewImporter(cfg.LibraryDir(), canvas, log),
		pages:    services.NewPageMemory(settings.NewSQLiteRepository(db), log),
		log:      log,
	}, nil
}

func (a *App) Close() error {
	return a.db.Close()
}

// Run starts the interactive loop on stdin.
func (a *App) Run(ctx context.Context) {
	defer func() { _ = a.Close() }()
	printlnFn("Welcome to BookDesk (type 'help' for commands)")
	runREPL(ctx, a, bufio.NewScanner(os.Stdin))
}

// save persists the current desk state and reports failures without
// interrupting the session.
func (a *App) save(ctx context.Context) error {
	if err := a.store.Save(ctx, a.desks); err != nil {
		a.log.Error(ctx, "save failed", "error", err)
		return err
	}
	return nil
}

// findCard resolves a full id or a unique id prefix to a card.
func (a *App) findCard(id string) (*models.Card, error) {
	if card, _, err := a.desks.Find(id); err == nil {
		return card, nil
	}

	var match *models.Card
	for desk := 0; desk < models.DeskCount; desk++ {
		onDesk, err := a.desks.Cards(desk)
		if err != nil {
			return nil, err
		}
		for _, c := range onDesk {
			if strings.HasPrefix(c.ID, id) {
				if match != nil {
					return nil, fmt.Errorf("ambiguous card id %q", id)
				}
				match = c
			}
		}
	}
	if match == nil {
		return nil, fmt.Errorf("no card with id %q", id)
	}
	return match, nil
}

// Import handles: import [desk] <file> ...
func (a *App) Import(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: import [desk] <file> ...")
		return nil
	}

	desk := 0
	if n, err := strconv.Atoi(args[0]); err == nil {
		desk = n
		args = args[1:]
	}
	if len(args) == 0 {
		printlnFn("Usage: import [desk] <file> ...")
		return nil
	}

	imported, err := a.importer.Import(ctx, a.desks, desk, args)
	if err != nil {
		printlnFn("Import failed:", err)
		return err
	}
	for _, c := range imported {
		printlnFn(fmt.Sprintf("imported %s -> desk %d (%s)", c.ID[:8], desk, c.Path))
	}
	if len(imported) < len(args) {
		printlnFn(fmt.Sprintf("%d document(s) skipped, see log", len(args)-len(imported)))
	}
	return a.save(ctx)
}

// List prints every desk with its cards in order.
func (a *App) List(ctx context.Context) error {
	total := 0
	for desk := 0; desk < models.DeskCount; desk++ {
		onDesk, err := a.desks.Cards(desk)
		if err != nil {
			return err
		}
		printlnFn(fmt.Sprintf("desk %d (%d cards)", desk, len(onDesk)))
		for _, c := range onDesk {
			printlnFn(fmt.Sprintf("  %s  (%.0f,%.0f)  %s", c.ID[:8], c.Position.X, c.Position.Y, c.Path))
			total++
		}
	}
	printlnFn(fmt.Sprintf("%d card(s) total", total))
	return nil
}

// Move handles: move <id> <x> <y>  (drag-end position update)
func (a *App) Move(ctx context.Context, args []string) error {
	if len(args) != 3 {
		printlnFn("Usage: move <id> <x> <y>")
		return nil
	}
	card, err := a.findCard(args[0])
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	x, errX := strconv.ParseFloat(args[1], 64)
	y, errY := strconv.ParseFloat(args[2], 64)
	if errX != nil || errY != nil {
		printlnFn("Usage: move <id> <x> <y>")
		return nil
	}

	if err := a.desks.SetPosition(card.ID, models.Point{X: x, Y: y}); err != nil {
		printlnFn(err.Error())
		return err
	}
	return a.save(ctx)
}

// Shelve handles: shelve <id> <desk>  (move a card to another desk)
func (a *App) Shelve(ctx context.Context, args []string) error {
	if len(args) != 2 {
		printlnFn("Usage: shelve <id> <desk>")
		return nil
	}
	card, err := a.findCard(args[0])
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	desk, err := strconv.Atoi(args[1])
	if err != nil {
		printlnFn("Usage: shelve <id> <desk>")
		return nil
	}

	if err := a.desks.Move(card.ID, desk); err != nil {
		printlnFn(err.Error())
		return err
	}
	return a.save(ctx)
}

// Remove handles: rm <id>
func (a *App) Remove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		printlnFn("Usage: rm <id>")
		return nil
	}
	card, err := a.findCard(args[0])
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	if err := a.desks.Remove(card.ID); err != nil {
		printlnFn(err.Error())
		return err
	}
	printlnFn("removed", card.ID[:8])
	return a.save(ctx)
}

// Open handles: open <id> — prints the document location and the page the
// viewer should restore.
func (a *App) Open(ctx context.Context, args []string) error {
	if len(args) != 1 {
		printlnFn("Usage: open <id>")
		return nil
	}
	card, err := a.findCard(args[0])
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	page, err := a.pages.Page(ctx, card.Path)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	printlnFn(fmt.Sprintf("%s  page %d", card.Path, page))
	return nil
}

// SetPage handles: page <id> <n> — remembers the last-viewed page.
func (a *App) SetPage(ctx context.Context, args []string) error {
	if len(args) != 2 {
		printlnFn("Usage: page <id> <n>")
		return nil
	}
	card, err := a.findCard(args[0])
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	page, err := strconv.Atoi(args[1])
	if err != nil {
		printlnFn("Usage: page <id> <n>")
		return nil
	}

	if err := a.pages.SetPage(ctx, card.Path, page); err != nil {
		printlnFn(err.Error())
		return err
	}
	return nil
}
