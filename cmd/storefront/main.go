package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Skotchmaster/ecommerce_hub/pkg/apiclient"
	"github.com/Skotchmaster/ecommerce_hub/pkg/config"
	"github.com/Skotchmaster/ecommerce_hub/pkg/logging"
	"github.com/Skotchmaster/ecommerce_hub/pkg/session"
)

const usage = `usage: storefront [flags] <command> [args]

commands:
  login -email <email> [-password <password>]
  logout
  whoami
  products [-q <term>] [-category <name>]
  categories
  admin list [-q <term>]
  admin create -sku <sku> -name <name> -price <price> [product flags]
  admin update -sku <sku> [product flags]
  admin delete -sku <sku> -yes

flags:
`

type app struct {
	client *apiclient.Client
	store  *session.Store
	out    io.Writer
	errOut io.Writer
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("storefront", flag.ContinueOnError)
	fs.SetOutput(stderr)
	apiURL := fs.String("api", config.EnvDefault("STOREFRONT_API_URL", "http://localhost:8080/api"), "gateway base url")
	sessionFile := fs.String("session", "", "session file (default $STOREFRONT_SESSION_FILE or the user config dir)")
	logFile := fs.String("log-file", config.EnvDefault("STOREFRONT_LOG_FILE", ""), "log file (default in the user cache dir)")
	logLevel := fs.String("log-level", config.EnvDefault("LOG_LEVEL", "info"), "debug, info, warn or error")
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	logger, closeLog := openLog(*logFile, *logLevel)
	defer func() { _ = closeLog() }()
	ctx = logging.IntoContext(ctx, logger.With("cmd", fs.Arg(0)))

	path := *sessionFile
	if path == "" {
		p, err := session.DefaultPath()
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		path = p
	}

	a := &app{out: stdout, errOut: stderr}
	a.client = apiclient.NewClient(*apiURL, apiclient.WithTokenSource(apiclient.TokenFunc(func() string {
		return a.store.AccessToken()
	})))
	a.store = session.New(session.NewFileStorage(path), a.client)
	a.store.Restore(ctx)

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "login":
		return a.login(ctx, rest)
	case "logout":
		return a.logout(ctx)
	case "whoami":
		return a.whoami()
	case "products":
		return a.products(ctx, rest)
	case "categories":
		return a.categories(ctx)
	case "admin":
		return a.admin(ctx, rest)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", cmd)
		fs.Usage()
		return 2
	}
}

func openLog(file, level string) (*slog.Logger, func() error) {
	if file == "" {
		dir, err := os.UserCacheDir()
		if err != nil {
			return logging.Discard(), func() error { return nil }
		}
		file = filepath.Join(dir, "ecommerce_hub", "storefront.log")
	}
	return logging.NewFile(level, logging.FileRotate{
		Filename:   file,
		MaxSizeMB:  5,
		MaxBackups: 3,
		MaxAgeDays: 14,
	})
}
