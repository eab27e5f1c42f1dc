// Package main implements the pglex command line tool.
//
// Without flags it starts a REPL: statements are read up to the
// terminating semicolon, lower-cased, tokenized and printed. With -e it
// tokenizes a single statement, and with -serve it runs the HTTP API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cabewaldrop/pglex/internal/logging"
	"github.com/cabewaldrop/pglex/internal/render"
	"github.com/cabewaldrop/pglex/internal/sql/lexer"
	"github.com/cabewaldrop/pglex/internal/web"
)

const (
	version = "0.1.0"
	banner  = `pglex %s - SELECT statement lexer
Type '.help' for usage hints or '.quit' to exit.
`
)

func main() {
	serve := flag.Bool("serve", false, "Run the HTTP API instead of the REPL")
	port := flag.Int("port", 8080, "Port for the HTTP API")
	expr := flag.String("e", "", "Tokenize a single statement and exit")
	strict := flag.Bool("strict", false, "Reject empty identifiers")
	plain := flag.Bool("plain", false, "Disable coloured output")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	logFormat := flag.String("log-format", "text", "Log format: text or json")
	logFile := flag.String("log-file", "", "Write logs to this file instead of stderr")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("pglex version %s\n", version)
		return
	}

	level, err := logging.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if err := logging.Init(logging.Config{Level: level, Format: *logFormat, OutputPath: *logFile}); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
		os.Exit(1)
	}
	defer logging.Close()

	policy := lexer.Permissive
	if *strict {
		policy = lexer.Strict
	}

	if *serve {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := web.NewServer(*port, policy).Run(ctx); err != nil {
			logging.GetLogger().Error("server failed", "err", err)
			os.Exit(1)
		}
		return
	}

	sess := newSession(os.Stdout, render.New(*plain), policy)

	if *expr != "" {
		if !sess.tokenize(*expr) {
			os.Exit(1)
		}
		return
	}

	fmt.Printf(banner, version)
	sess.repl(os.Stdin)
}
