// Package cli команды promptpal поверх client stores.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	apiclient "github.com/iudanet/promptpal/internal/client/api"
	"github.com/iudanet/promptpal/internal/client/config"
	"github.com/iudanet/promptpal/internal/client/iocli"
	"github.com/iudanet/promptpal/internal/client/prompts"
	"github.com/iudanet/promptpal/internal/client/session"
	"github.com/iudanet/promptpal/internal/client/storage"
	"github.com/iudanet/promptpal/internal/client/storage/boltdb"
	"github.com/iudanet/promptpal/internal/client/suggest"
	"github.com/iudanet/promptpal/internal/version"
)

// skipSetup команды с этой аннотацией не открывают хранилище и не ходят на сервер
const skipSetup = "promptpal/skip-setup"

// App зависимости команд. Создается один раз на запуск.
type App struct {
	io      iocli.IO
	logger  *slog.Logger
	api     *apiclient.Client
	session *session.Store
	prompts *prompts.Store
	suggest *suggest.Client
	closer  io.Closer
	cfgFile string
}

// New создает App, зависимости подключаются перед выполнением команды
func New(io iocli.IO) *App {
	return &App{io: io}
}

// Close закрывает локальное хранилище
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.closer = nil
	return err
}

// RootCmd корневая команда promptpal
func (a *App) RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "promptpal",
		Short: "PromptPal command line client",
		Long: `PromptPal keeps your AI prompts: write, tag and categorize them,
share the good ones publicly and browse what others have published.

Settings come from flags, PROMPTPAL_* environment variables
(PROMPTPAL_SERVER_URL, PROMPTPAL_DB, PROMPTPAL_SUGGEST_URL) or --config.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipSetup] == "true" || a.session != nil {
				return nil
			}
			return a.setup(cmd)
		},
	}
	root.SetOut(a.io)
	root.SetErr(a.io)

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (YAML)")
	flags.String("server", "http://localhost:3001", "PromptPal server URL")
	flags.String("db", "promptpal-client.db", "path to local session database")
	flags.String("suggest-url", "http://localhost:5000", "suggestion service URL")
	flags.String("log-level", "error", "log level for diagnostics on stderr")

	root.AddCommand(
		a.registerCmd(),
		a.loginCmd(),
		a.logoutCmd(),
		a.whoamiCmd(),
		a.listCmd(),
		a.showCmd(),
		a.addCmd(),
		a.editCmd(),
		a.toggleCmd(),
		a.deleteCmd(),
		a.statsCmd(),
		a.statusCmd(),
		a.suggestCmd(),
		a.versionCmd(),
	)

	return root
}

// setup читает конфигурацию и подключает хранилище, API и stores
func (a *App) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level, err := cfg.Level()
	if err != nil {
		return err
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	store, err := boltdb.New(cmd.Context(), cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open local database: %w", err)
	}
	a.closer = store

	a.connect(cmd.Context(), cfg, store)
	return nil
}

// connect связывает API клиент, сессию и кеш промптов.
// Смена токена сессии перечитывает промпты.
func (a *App) connect(ctx context.Context, cfg *config.Config, sessions storage.SessionStorage) {
	if a.logger == nil {
		a.logger = slog.New(slog.DiscardHandler)
	}

	var sess *session.Store
	client := apiclient.NewClient(cfg.ServerURL, apiclient.WithTokenSource(
		apiclient.TokenSourceFunc(func() string { return sess.Token() }),
	))

	sess = session.New(ctx, a.logger, client, sessions)
	store := prompts.New(a.logger, client, cfg.PublicLimit)
	sess.Subscribe(store.OnTokenChange)

	a.api = client
	a.session = sess
	a.prompts = store
	a.suggest = suggest.NewClient(cfg.SuggestURL, cfg.SuggestTimeout)
}

// destination команда для повтора после входа
func destination(cmd *cobra.Command, args []string) string {
	return strings.TrimSpace(cmd.CommandPath() + " " + strings.Join(args, " "))
}

// requireLogin проверяет сессию перед защищенной командой
func (a *App) requireLogin(cmd *cobra.Command, args []string) error {
	return a.session.Require(destination(cmd, args))
}

// authFailed: если сервер отверг токен, сессия удаляется, а ошибка
// превращается в LoginRequiredError с командой для повтора
func (a *App) authFailed(cmd *cobra.Command, args []string, err error) error {
	if !apiclient.IsUnauthorized(err) {
		return err
	}
	if logoutErr := a.session.Logout(cmd.Context()); logoutErr != nil {
		a.logger.Warn("failed to clear rejected session", slog.String("error", logoutErr.Error()))
	}
	return &session.LoginRequiredError{Destination: destination(cmd, args)}
}

// reload перечитывает промпты для текущей сессии
func (a *App) reload(cmd *cobra.Command, args []string) error {
	if err := a.prompts.Reload(cmd.Context(), a.session.Token()); err != nil {
		return a.authFailed(cmd, args, err)
	}
	return nil
}

// ErrorMessage текст ошибки для пользователя: сообщение сервера как есть,
// для LoginRequiredError подсказка с командой для повтора
func ErrorMessage(err error) string {
	var loginErr *session.LoginRequiredError
	if errors.As(err, &loginErr) {
		if loginErr.Destination == "" {
			return "you are not logged in, run 'promptpal login' first"
		}
		return fmt.Sprintf("you are not logged in, run 'promptpal login' and then re-run '%s'", loginErr.Destination)
	}
	return apiclient.Message(err)
}
