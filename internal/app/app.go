package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jmoiron/sqlx"

	"fitclub/internal/appointment"
	"fitclub/internal/attendance"
	"fitclub/internal/config"
	"fitclub/internal/console"
	"fitclub/internal/db"
	"fitclub/internal/location"
	"fitclub/internal/logger"
	"fitclub/internal/member"
	"fitclub/internal/store"
	"fitclub/internal/subscription"
)

type collection interface {
	Name() string
	Len() int
}

// App owns the storage backend and the menu tree built on top of it.
type App struct {
	console     *console.Console
	db          *sqlx.DB
	collections []collection
	menu        console.Menu
}

// New opens the configured backend and wires repositories, services and
// handlers. A collection that fails to load starts empty and is logged.
func New(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) (*App, error) {
	a := &App{console: console.New(in, out)}

	docs, err := a.openStore(cfg)
	if err != nil {
		return nil, err
	}

	members, err := member.NewRepository(ctx, docs)
	a.track(members, err)
	locations, err := location.NewRepository(ctx, docs)
	a.track(locations, err)
	appointments, err := appointment.NewRepository(ctx, docs)
	a.track(appointments, err)
	visits, err := attendance.NewRepository(ctx, docs)
	a.track(visits, err)
	subscriptions, err := subscription.NewRepository(ctx, docs)
	a.track(subscriptions, err)

	appointmentHandler := appointment.NewHandler(appointment.NewService(appointments), a.console)
	attendanceHandler := attendance.NewHandler(attendance.NewService(visits), a.console)
	memberHandler := member.NewHandler(member.NewService(members), a.console)
	locationHandler := location.NewHandler(location.NewService(locations), a.console)
	subscriptionHandler := subscription.NewHandler(subscription.NewService(subscriptions), a.console)

	a.menu = console.Menu{
		Title: "Fitness Club Management",
		Items: []console.MenuItem{
			{Label: "Appointments", Action: a.submenu(appointmentHandler.Menu())},
			{Label: "Attendance", Action: a.submenu(attendanceHandler.Menu())},
			{Label: "Members", Action: a.submenu(memberHandler.Menu())},
			{Label: "Locations", Action: a.submenu(locationHandler.Menu())},
			{Label: "Subscriptions", Action: a.submenu(subscriptionHandler.Menu())},
		},
		ExitLabel: "Exit",
	}

	logger.Info("application initialized", "backend", cfg.StorageBackend, "stats", a.Stats())
	return a, nil
}

func (a *App) openStore(cfg *config.Config) (store.DocumentStore, error) {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		return store.NewMemoryStore(), nil
	case config.BackendSQLite:
		database, err := db.Connect(cfg.SQLitePath())
		if err != nil {
			return nil, err
		}
		if err := db.RunMigrations(database); err != nil {
			database.Close()
			return nil, err
		}
		a.db = database
		return store.NewSQLStore(database), nil
	case config.BackendJSON:
		files, err := store.NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		return files, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

func (a *App) track(c collection, err error) {
	if err != nil {
		logger.Warn("collection could not be loaded, starting empty", "collection", c.Name(), "error", err)
	}
	a.collections = append(a.collections, c)
}

func (a *App) submenu(m console.Menu) func(context.Context) error {
	return func(ctx context.Context) error {
		return a.console.Run(ctx, m)
	}
}

// Run shows the main menu until the operator exits or the input ends.
func (a *App) Run(ctx context.Context) error {
	err := a.console.Run(ctx, a.menu)
	if errors.Is(err, console.ErrInputClosed) {
		err = nil
	}
	if err == nil {
		a.console.Println("Goodbye!")
	}
	return err
}

// Stats reports the number of entities in each collection.
func (a *App) Stats() map[string]int {
	stats := make(map[string]int, len(a.collections))
	for _, c := range a.collections {
		stats[c.Name()] = c.Len()
	}
	return stats
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
