// Package cli wires configuration, the gateway client, and the session
// manager, then hands off to the TUI or runs a one-shot command.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"taxchat/internal/chat"
	"taxchat/internal/config"
	"taxchat/internal/gateway"
	"taxchat/internal/tui"
	"taxchat/internal/utils"
)

const usage = `taxchat - terminal client for the tax advisory backend

Usage:
  taxchat [flags]                 start the interactive chat
  taxchat ask [flags] <question>  ask a single question and print the answer
  taxchat conversations [flags]   list saved conversations (requires a token)

Flags:
  -backend <url>   backend base URL (or TAXCHAT_BACKEND_URL)
  -token <token>   bearer token (or TAXCHAT_TOKEN)
  -log-file <path> log destination for the interactive chat
  -verbose         debug logging
`

// Run is the process entry point. It returns the exit code so main
// stays a one-liner.
func Run() int {
	args := os.Args[1:]

	command := ""
	if len(args) > 0 && args[0] != "" && args[0][0] != '-' {
		command = args[0]
		args = args[1:]
	}

	switch command {
	case "", "chat":
		return runTUI(args)
	case "ask":
		return runAsk(args)
	case "conversations":
		return runConversations(args)
	case "help", "-h", "--help":
		fmt.Print(usage)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", command)
		fmt.Fprint(os.Stderr, usage)
		return 2
	}
}

type flags struct {
	backend string
	token   string
	logFile string
	verbose bool
}

func parseFlags(name string, args []string) (flags, []string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var f flags
	fs.StringVar(&f.backend, "backend", "", "backend base URL")
	fs.StringVar(&f.token, "token", "", "bearer token")
	fs.StringVar(&f.logFile, "log-file", "", "log file path")
	fs.BoolVar(&f.verbose, "verbose", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return f, nil, err
	}
	return f, fs.Args(), nil
}

// resolveConfig layers defaults, then the environment, then flags.
func resolveConfig(f flags) config.Config {
	cfg := config.DefaultConfig()
	cfg.LoadEnv()
	if f.backend != "" {
		cfg.Backend.URL = f.backend
	}
	if f.token != "" {
		cfg.Backend.Token = f.token
	}
	if f.logFile != "" {
		cfg.Logging.File = f.logFile
	}
	if f.verbose {
		cfg.Logging.Level = "debug"
	}
	return cfg
}

// buildManager assembles the logger, client, and manager shared by
// every command. logOut selects where the logger writes; one-shot
// commands use stderr, the TUI a rotating file.
func buildManager(cfg config.Config, logOut io.Writer) (*chat.Manager, *utils.Logger) {
	logger := utils.NewLogger(cfg.Logging.Level, logOut)
	client := gateway.NewClient(cfg.Backend.URL, logger)
	manager := chat.NewManager(client, logger)
	manager.Adopt(cfg.Backend.Token)
	return manager, logger
}

func runTUI(args []string) int {
	f, rest, err := parseFlags("taxchat", args)
	if err != nil {
		return 2
	}
	if len(rest) > 0 {
		fmt.Fprintf(os.Stderr, "unexpected argument: %s\n", rest[0])
		return 2
	}

	cfg := resolveConfig(f)
	// The alt screen owns stderr while the TUI runs, so logs go to a
	// rotating file instead.
	logOut := io.Writer(io.Discard)
	if cfg.Logging.File != "" {
		logOut = &lumberjack.Logger{
			Filename:   cfg.Logging.File,
			MaxSize:    5, // megabytes
			MaxBackups: 2,
		}
	}

	manager, logger := buildManager(cfg, logOut)
	logger.Infof("starting chat, backend=%q", manager.Client().BaseURL())
	if err := tui.Run(cfg, manager, logger); err != nil {
		fmt.Fprintf(os.Stderr, "taxchat: %v\n", err)
		return 1
	}
	return 0
}

func runAsk(args []string) int {
	f, rest, err := parseFlags("taxchat ask", args)
	if err != nil {
		return 2
	}
	if len(rest) == 0 {
		fmt.Fprintln(os.Stderr, "usage: taxchat ask <question>")
		return 2
	}
	question := rest[0]
	for _, part := range rest[1:] {
		question += " " + part
	}

	manager, _ := buildManager(resolveConfig(f), os.Stderr)
	if err := manager.Submit(question); err != nil {
		fmt.Fprintf(os.Stderr, "taxchat: %v\n", err)
		return 2
	}
	if err := manager.Dispatch(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, gateway.Notice(err))
		return 1
	}
	snap := manager.Snapshot()
	for i := len(snap.Messages) - 1; i >= 0; i-- {
		if snap.Messages[i].Role == chat.RoleAssistant {
			fmt.Println(snap.Messages[i].Content)
			break
		}
	}
	return 0
}

func runConversations(args []string) int {
	f, rest, err := parseFlags("taxchat conversations", args)
	if err != nil {
		return 2
	}
	if len(rest) > 0 {
		fmt.Fprintf(os.Stderr, "unexpected argument: %s\n", rest[0])
		return 2
	}

	manager, _ := buildManager(resolveConfig(f), os.Stderr)
	if err := manager.RefreshConversations(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, gateway.Notice(err))
		return 1
	}
	snap := manager.Snapshot()
	if len(snap.Conversations) == 0 {
		fmt.Println("no conversations")
		return 0
	}
	for _, c := range snap.Conversations {
		title := c.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Printf("%s\t%s\n", c.ID, title)
	}
	return 0
}
