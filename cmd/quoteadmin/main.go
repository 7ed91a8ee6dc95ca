package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/proappliance/quoteadmin/internal/api"
	"github.com/proappliance/quoteadmin/internal/cli"
	"github.com/proappliance/quoteadmin/internal/config"
	"github.com/proappliance/quoteadmin/internal/i18n"
	"github.com/proappliance/quoteadmin/internal/services"
	"github.com/proappliance/quoteadmin/internal/session"
)

const shutdownTimeout = 10 * time.Second

var errUsage = errors.New("usage")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			printUsage(os.Stderr)
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

func run(args []string, out io.Writer) error {
	command, rest := "serve", args
	if len(args) > 0 {
		command, rest = args[0], args[1:]
	}

	switch command {
	case "help", "-h", "--help":
		printUsage(out)
		return nil
	case "gen-secret":
		return cli.GenerateSecret(out)
	}
	if err := checkArgs(command, rest); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	location := config.LoadLocation(cfg.TimeZone)
	time.Local = location

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := newApplication(cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	if command == "serve" {
		return serve(ctx, app, location)
	}

	commands := cli.NewCommands(app.auth, app.seeder, app.quotes, cfg.PublicURL, out)
	switch command {
	case "invite":
		return commands.Invite(ctx, rest[0])
	case "reset-password":
		return commands.ResetPassword(ctx, rest[0])
	case "set-password":
		return commands.SetPassword(ctx, rest[0])
	case "seed":
		return commands.Seed(ctx)
	case "copy":
		return commands.Copy(ctx, rest[0], rest[1])
	}
	return fmt.Errorf("%w: unknown command %q", errUsage, command)
}

var commandArity = map[string]int{
	"serve":          0,
	"invite":         1,
	"reset-password": 1,
	"set-password":   1,
	"seed":           0,
	"copy":           2,
}

func checkArgs(command string, args []string) error {
	want, known := commandArity[command]
	if !known {
		return fmt.Errorf("%w: unknown command %q", errUsage, command)
	}
	if len(args) != want {
		return fmt.Errorf("%w: %s takes %d argument(s)", errUsage, command, want)
	}
	return nil
}

func printUsage(out io.Writer) {
	fmt.Fprint(out, `usage: quoteadmin [command]

commands:
  serve                       run the admin console (default)
  invite <email>              print an invite link for a staff member
  reset-password <email>      clear a password and print a new invite link
  set-password <email>        set a password from a terminal prompt
  seed                        insert sample quotes
  copy <quote-id> <field>     copy a quote field to the clipboard
  gen-secret                  print a random SECRET_KEY
`)
}

func serve(ctx context.Context, app *application, location *time.Location) error {
	cfg := app.cfg

	handler, gate, err := newHandler(ctx, app, location)
	if err != nil {
		return err
	}
	defer gate.Close()

	server := newServer(handler, cfg.CookieSecure)

	lifecycleCtx, cancelLifecycle := context.WithCancel(ctx)
	defer cancelLifecycle()
	app.runEventRelay(lifecycleCtx)
	services.NewSessionSweeper(app.repos.Sessions, 0).Start(lifecycleCtx)

	go func() {
		<-lifecycleCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("quoteadmin listening on http://0.0.0.0:%s (db: %s, storage: %s, tz: %s)", cfg.Port, cfg.Database.Driver, cfg.Storage.Driver, location.String())
	if err := server.Listen(":" + cfg.Port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

func newHandler(ctx context.Context, app *application, location *time.Location) (*api.Handler, *session.Gate, error) {
	cfg := app.cfg

	i18nManager, err := i18n.NewManager(cfg.DefaultLanguage)
	if err != nil {
		return nil, nil, fmt.Errorf("i18n init failed: %w", err)
	}

	signer, objects, err := app.newSigner(ctx)
	if err != nil {
		return nil, nil, err
	}

	gate := session.NewGate(app.auth, session.WithCacheTTL(cfg.SessionCacheTTL))
	handler, err := api.NewHandler(api.Dependencies{
		Auth:     app.auth,
		Gate:     gate,
		Quotes:   app.quotes,
		Seeder:   app.seeder,
		Previews: services.NewFilePreviewService(signer),
		Objects:  objects,
		I18n:     i18nManager,
	}, []byte(cfg.SecretKey), location, cfg.CookieSecure)
	if err != nil {
		gate.Close()
		return nil, nil, fmt.Errorf("handler init failed: %w", err)
	}
	return handler, gate, nil
}

func newServer(handler *api.Handler, cookieSecure bool) *fiber.App {
	server := fiber.New(fiber.Config{
		AppName:               "quoteadmin",
		DisableStartupMessage: true,
	})

	server.Use(recover.New())
	server.Use(logger.New())
	server.Use(compress.New())
	server.Use(handler.LanguageMiddleware)
	server.Use(csrf.New(csrfMiddlewareConfig(cookieSecure)))

	api.RegisterRoutes(server, handler)
	server.Use(handler.NotFound)
	return server
}

func csrfMiddlewareConfig(cookieSecure bool) csrf.Config {
	return csrf.Config{
		KeyLookup:      "form:csrf_token",
		CookieName:     "quoteadmin_csrf",
		CookieSameSite: "Lax",
		CookieHTTPOnly: true,
		CookieSecure:   cookieSecure,
		ContextKey:     "csrf",
	}
}
