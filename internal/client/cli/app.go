package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrijs2005/fraudsentry/internal/client/config"
	"github.com/dmitrijs2005/fraudsentry/internal/client/device"
	"github.com/dmitrijs2005/fraudsentry/internal/client/gateway"
	"github.com/dmitrijs2005/fraudsentry/internal/client/provider"
	"github.com/dmitrijs2005/fraudsentry/internal/client/repositories/slots"
	"github.com/dmitrijs2005/fraudsentry/internal/client/session"
	"github.com/dmitrijs2005/fraudsentry/internal/client/storage"
	"github.com/dmitrijs2005/fraudsentry/internal/client/views"
	"github.com/dmitrijs2005/fraudsentry/internal/logging"
)

type App struct {
	config *config.Config
	db     *sql.DB
	slots  slots.Repository
	gw     gateway.Gateway
	prov   *provider.Provider
	reg    *prometheus.Registry
	log    logging.Logger
	reader *bufio.Reader
	out    io.Writer

	mu     sync.Mutex
	send   *views.CreateTransaction
	modals []*views.TransactionModal
	unsub  func()
}

// NewApp opens the local database, resolves the device id and restores the
// persisted session, if any.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	l, err := logging.New(c.LogLevel, os.Stderr)
	if err != nil {
		return nil, err
	}

	db, err := storage.Open(ctx, c.DatabasePath)
	if err != nil {
		l.Error(ctx, "error initializing database", "path", c.DatabasePath, "err", err)
		return nil, err
	}

	reg := prometheus.NewRegistry()
	gw, err := gateway.New(c.APIBaseURL, gateway.WithRegisterer(reg), gateway.WithLogger(l))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	app, err := newApp(ctx, c, db, gw, reg, l, os.Stdin, os.Stdout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return app, nil
}

func newApp(ctx context.Context, c *config.Config, db *sql.DB, gw gateway.Gateway, reg *prometheus.Registry, l logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	repo := slots.NewSQLiteRepository(db)

	deviceID, err := device.Resolve(ctx, repo)
	if err != nil {
		l.Warn(ctx, "device id unavailable", "err", err, "device_id", deviceID)
	}

	prov, err := provider.New(ctx, session.NewSQLiteStore(db), gw, deviceID, provider.WithLogger(l))
	if err != nil {
		return nil, err
	}

	return &App{
		config: c,
		db:     db,
		slots:  repo,
		gw:     gw,
		prov:   prov,
		reg:    reg,
		log:    l,
		reader: bufio.NewReader(in),
		out:    &lockedWriter{w: out},
	}, nil
}

// Run blocks in the REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	a.unsub = a.prov.Subscribe(a.onEvent)
	defer a.unsub()

	if s, ok := a.prov.Session(); ok {
		a.println("Welcome back,", s.Profile.Name)
	}

	runREPL(ctx, a, a.status, bufio.NewScanner(lineReader{r: a.reader}))
}

// Close waits for transfers still in flight and closes the database.
func (a *App) Close() error {
	a.mu.Lock()
	modals := a.modals
	a.modals = nil
	send := a.send
	a.mu.Unlock()

	for _, m := range modals {
		m.Wait()
	}
	a.flushNotices()
	if send != nil {
		send.Unmount()
	}
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.prov.State() == provider.Authenticated
}

func (a *App) status() string {
	if s, ok := a.prov.Session(); ok {
		return s.Profile.Email
	}
	return "guest"
}

func (a *App) onEvent(ev provider.Event) {
	switch ev.Kind {
	case provider.EventSessionExpired:
		a.println("Your session has expired. Please log in again.")
	case provider.EventLoggedOut:
		a.println("Signed out.")
	}
	a.log.Debug(context.Background(), "session event", "kind", ev.Kind.String(), "state", ev.State.String())
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// lockedWriter serializes writes from the REPL and from background transfers.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
