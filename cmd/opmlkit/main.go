package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli"

	"opmlkit/internal/config"
	"opmlkit/internal/db"
	"opmlkit/internal/handler"
	ghttp "opmlkit/internal/http"
	"opmlkit/internal/repository"
	"opmlkit/internal/scheduler"
	"opmlkit/internal/service"
	"opmlkit/pkg/logger"
	"opmlkit/pkg/opml"
	"opmlkit/pkg/snowflake"
)

const version = "1.0.0"

func main() {
	app := cli.NewApp()
	app.Name = "opmlkit"
	app.Usage = "OPML subscription list toolkit"
	app.Version = version

	fileFlag := cli.StringFlag{
		Name:  "file, f",
		Usage: "read the OPML document from `PATH` instead of stdin",
	}
	dbFlag := cli.StringFlag{
		Name:  "db",
		Usage: "sqlite database `PATH` (overrides OPMLKIT_DB_PATH)",
	}

	app.Commands = []cli.Command{
		{
			Name:  "validate",
			Usage: "check that a document is well-formed OPML",
			Flags: []cli.Flag{fileFlag},
			Action: func(c *cli.Context) error {
				doc, err := parseInput(c)
				if err != nil {
					return err
				}
				fmt.Printf("valid OPML %s\n", doc.Version)
				return nil
			},
		},
		{
			Name:  "convert",
			Usage: "convert an OPML document to JSON",
			Flags: []cli.Flag{
				fileFlag,
				cli.BoolFlag{Name: "pretty, p", Usage: "indent the JSON output"},
			},
			Action: func(c *cli.Context) error {
				doc, err := parseInput(c)
				if err != nil {
					return err
				}
				payload, err := doc.JSON(c.Bool("pretty"))
				if err != nil {
					return cli.NewExitError(err.Error(), 1)
				}
				fmt.Println(string(payload))
				return nil
			},
		},
		{
			Name:  "rss",
			Usage: "list the feed URLs of an OPML document",
			Flags: []cli.Flag{
				fileFlag,
				cli.BoolFlag{Name: "verbose, v", Usage: "print titles alongside the URLs"},
			},
			Action: func(c *cli.Context) error {
				doc, err := parseInput(c)
				if err != nil {
					return err
				}
				printFeeds(doc.Body.Outlines, c.Bool("verbose"))
				return nil
			},
		},
		{
			Name:  "tree",
			Usage: "print the outline hierarchy of an OPML document",
			Flags: []cli.Flag{fileFlag},
			Action: func(c *cli.Context) error {
				doc, err := parseInput(c)
				if err != nil {
					return err
				}
				printTree(doc.Body.Outlines, 0)
				return nil
			},
		},
		{
			Name:  "import",
			Usage: "import an OPML document into the local store",
			Flags: []cli.Flag{fileFlag, dbFlag},
			Action: runImport,
		},
		{
			Name:  "export",
			Usage: "export the local store as an OPML document",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "out, o", Usage: "write the document to `PATH` instead of stdout"},
				dbFlag,
			},
			Action: runExport,
		},
		{
			Name:   "refresh",
			Usage:  "fetch every stored feed and update its metadata",
			Flags:  []cli.Flag{dbFlag},
			Action: runRefresh,
		},
		{
			Name:   "serve",
			Usage:  "run the HTTP API server",
			Action: runServe,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func parseInput(c *cli.Context) (*opml.Document, error) {
	reader, closer, err := openInput(c)
	if err != nil {
		return nil, cli.NewExitError(err.Error(), 1)
	}
	defer closer()

	cfg := loadConfig(c)
	doc, err := opml.ParseWithOptions(reader, opml.ParseOptions{MaxDepth: cfg.MaxDepth})
	if err != nil {
		return nil, cli.NewExitError(err.Error(), 1)
	}
	return doc, nil
}

func openInput(c *cli.Context) (io.Reader, func(), error) {
	path := c.String("file")
	if path == "" || path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

func printFeeds(outlines []opml.Outline, verbose bool) {
	for _, outline := range outlines {
		if outline.XMLURL != nil && strings.TrimSpace(*outline.XMLURL) != "" {
			if verbose {
				fmt.Printf("%s\t%s\n", outline.Text, *outline.XMLURL)
			} else {
				fmt.Println(*outline.XMLURL)
			}
		}
		printFeeds(outline.Outlines, verbose)
	}
}

func printTree(outlines []opml.Outline, depth int) {
	for _, outline := range outlines {
		fmt.Printf("%s%s\n", strings.Repeat("  ", depth), outline.Text)
		printTree(outline.Outlines, depth+1)
	}
}

// loadConfig applies command-line overrides on top of the environment.
func loadConfig(c *cli.Context) config.Config {
	cfg := config.Load()
	if path := c.String("db"); path != "" {
		cfg.DBPath = path
	}
	return cfg
}

type store struct {
	folders repository.FolderRepository
	subs    repository.SubscriptionRepository
	close   func()
}

func openStore(cfg config.Config) (*store, error) {
	if err := snowflake.Init(0); err != nil {
		return nil, err
	}
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	return &store{
		folders: repository.NewFolderRepository(database),
		subs:    repository.NewSubscriptionRepository(database),
		close:   func() { database.Close() },
	}, nil
}

func runImport(c *cli.Context) error {
	cfg := loadConfig(c)
	logger.Init(logger.ParseLevel(cfg.LogLevel))

	reader, closer, err := openInput(c)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	defer closer()

	st, err := openStore(cfg)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	defer st.close()

	importSvc := service.NewImportService(st.folders, st.subs, cfg.MaxDepth)
	result, err := importSvc.Import(context.Background(), reader)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	fmt.Printf("imported %d feeds, %d folders, %d skipped\n", result.FeedsCreated, result.FoldersCreated, result.Skipped)
	return nil
}

func runExport(c *cli.Context) error {
	cfg := loadConfig(c)
	logger.Init(logger.ParseLevel(cfg.LogLevel))

	st, err := openStore(cfg)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	defer st.close()

	exportSvc := service.NewExportService(st.folders, st.subs)
	payload, err := exportSvc.Export(context.Background())
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	if path := c.String("out"); path != "" {
		if err := os.WriteFile(path, payload, 0o644); err != nil {
			return cli.NewExitError(err.Error(), 1)
		}
		return nil
	}
	fmt.Print(string(payload))
	return nil
}

func runRefresh(c *cli.Context) error {
	cfg := loadConfig(c)
	logger.Init(logger.ParseLevel(cfg.LogLevel))

	st, err := openStore(cfg)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	defer st.close()

	refreshSvc := service.NewRefreshService(st.subs)
	if err := refreshSvc.RefreshAll(context.Background()); err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	return nil
}

func runServe(c *cli.Context) error {
	cfg := loadConfig(c)
	logger.Init(logger.ParseLevel(cfg.LogLevel))

	st, err := openStore(cfg)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	defer st.close()

	importSvc := service.NewImportService(st.folders, st.subs, cfg.MaxDepth)
	exportSvc := service.NewExportService(st.folders, st.subs)
	subscriptionSvc := service.NewSubscriptionService(st.folders, st.subs)
	refreshSvc := service.NewRefreshService(st.subs)

	opmlHandler := handler.NewOPMLHandler(importSvc, exportSvc, cfg.MaxDepth)
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionSvc, refreshSvc)

	e := ghttp.NewRouter(opmlHandler, subscriptionHandler)

	sched := scheduler.New(refreshSvc, cfg.RefreshInterval)
	sched.Start()
	defer sched.Stop()

	go func() {
		logger.Info("server started", "addr", cfg.Addr)
		if err := e.Start(cfg.Addr); err != nil {
			logger.Error("server stopped", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	return nil
}
