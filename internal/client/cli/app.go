package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/greengrid/rectrade/internal/client/api"
	"github.com/greengrid/rectrade/internal/client/config"
	"github.com/greengrid/rectrade/internal/client/credstore"
	"github.com/greengrid/rectrade/internal/client/dashboard"
	"github.com/greengrid/rectrade/internal/client/session"
	"github.com/greengrid/rectrade/internal/filex"
	"github.com/greengrid/rectrade/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config  *config.Config
	api     api.Client
	session *session.Manager
	dash    *dashboard.Aggregator
	log     logging.Logger

	db     *sql.DB
	reader *bufio.Reader
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	dbPath, err := filex.EnsureParentDir(c.CredentialDBPath)
	if err != nil {
		log.Error(ctx, "preparing credential database path", "error", err)
		return nil, err
	}

	db, err := credstore.Open(ctx, dbPath)
	if err != nil {
		log.Error(ctx, "initializing credential database", "error", err)
		return nil, err
	}
	creds := credstore.NewSQLiteStore(db)

	apiClient := api.NewHTTPClient(c.APIBaseURL)
	apiClient.SetCallTimeout(c.RequestTimeout)

	return &App{
		config:  c,
		api:     apiClient,
		session: session.NewManager(apiClient, creds, log),
		dash:    dashboard.NewAggregator(apiClient, log),
		log:     log,
		db:      db,
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) getStatus() string {
	u := a.session.User()
	if u == nil {
		return ""
	}
	return fmt.Sprintf("(%s %s)", u.Email, u.Role)
}

// Run restores any previous session and enters the REPL. It blocks until
// the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.session.Bootstrap(ctx)

	printlnFn("Welcome to the rectrade terminal client (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}

func (a *App) Close() {
	if err := a.api.Close(); err != nil {
		a.log.Warn(context.Background(), "closing api client", "error", err)
	}
	if err := a.db.Close(); err != nil {
		a.log.Warn(context.Background(), "closing credential database", "error", err)
	}
}
