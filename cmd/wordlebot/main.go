// cmd/wordlebot/main.go
//
// Command-line entry point.
//
//	wordlebot play   solve today's puzzle in a real browser
//	wordlebot sim    solve local games (fixed answer, random, or the local daily)
//	wordlebot bench  solve every dictionary word locally and report statistics
//	wordlebot serve  run the HTTP API
//	wordlebot token  mint a bearer token for the HTTP API
//
// Configuration comes from config.Load (YAML file, .env, environment);
// flags given on the command line win.

package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/davidsrrose/wordle-bot/internal/config"
	"github.com/davidsrrose/wordle-bot/internal/session"
	"github.com/davidsrrose/wordle-bot/internal/solver"
	"github.com/davidsrrose/wordle-bot/internal/store"
	"github.com/davidsrrose/wordle-bot/internal/words"
)

const usage = `usage: wordlebot <command> [flags]

commands:
  play    solve the NYT puzzle in a browser
  sim     solve local games
  bench   solve every dictionary word and report statistics
  serve   run the HTTP API
  token   mint a bearer token for the HTTP API

run "wordlebot <command> -h" for flags`

type command func(ctx context.Context, env *env, args []string) error

var commands = map[string]command{
	"play":  runPlay,
	"sim":   runSim,
	"bench": runBench,
	"serve": runServe,
	"token": runToken,
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	cmd, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s\n", os.Args[1], usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd(ctx, &env{name: os.Args[1]}, os.Args[2:]); err != nil {
		log.Error().Err(err).Str("command", os.Args[1]).Msg("failed")
		stop()
		os.Exit(1)
	}
}

// env carries the shared flags and the resolved configuration.
type env struct {
	name string
	fs   *flag.FlagSet
	cfg  config.Config

	configPath string
	mode       string
	strategy   string
	seed       uint64
	wordsFile  string
	opening    string
	hard       bool
	dbPath     string
}

// flags returns a FlagSet with the flags every command shares.
func (e *env) flags() *flag.FlagSet {
	e.fs = flag.NewFlagSet(e.name, flag.ExitOnError)
	e.fs.StringVar(&e.configPath, "config", "", "YAML config file (or CONFIG_FILE)")
	e.fs.StringVar(&e.mode, "mode", "", "filter mode: strict, positional or legacy")
	e.fs.StringVar(&e.strategy, "strategy", "", "guess strategy: random, entropy or first")
	e.fs.Uint64Var(&e.seed, "seed", 0, "seed for the random strategy")
	e.fs.StringVar(&e.wordsFile, "words", "", "dictionary file (default: embedded list)")
	e.fs.StringVar(&e.opening, "opening", "", "opening word")
	e.fs.BoolVar(&e.hard, "hard", true, "hard mode")
	e.fs.StringVar(&e.dbPath, "db", "", "SQLite database for run history")
	return e.fs
}

// parse parses args, loads the configuration and applies explicit flags.
func (e *env) parse(args []string) error {
	if err := e.fs.Parse(args); err != nil {
		return err
	}
	cfg, err := config.Load(e.configPath)
	if err != nil {
		return err
	}
	e.fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "mode":
			cfg.FilterMode = e.mode
		case "strategy":
			cfg.Strategy = e.strategy
		case "seed":
			cfg.Seed = e.seed
		case "words":
			cfg.WordsFile = e.wordsFile
		case "opening":
			cfg.OpeningWord = e.opening
		case "hard":
			cfg.HardMode = e.hard
		case "db":
			cfg.DBPath = e.dbPath
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}
	e.cfg = cfg

	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	return nil
}

// dictionary loads the configured word list.
func (e *env) dictionary() (*words.List, error) {
	list, err := words.Load(e.cfg.WordsFile)
	if err != nil {
		return nil, err
	}
	log.Info().Str("source", list.Source).Int("words", list.Len()).Int("rejected", list.Rejected).Msg("dictionary loaded")
	return list, nil
}

// solver builds the configured solver over list.
func (e *env) solver(list *words.List) (*session.Solver, error) {
	mode, err := solver.ParseMode(e.cfg.FilterMode)
	if err != nil {
		return nil, err
	}
	sv := session.NewSolver(list, mode, e.cfg.Strategy, e.cfg.Seed)
	sv.Opening = e.cfg.OpeningWord
	sv.HardMode = e.cfg.HardMode
	return sv, nil
}

// openStore returns the SQLite store when a database is configured, else memory.
// The *sql.DB is nil for the memory store.
func (e *env) openStore() (store.Store, *sql.DB, error) {
	if e.cfg.DBPath == "" {
		return store.NewMemoryStore(), nil, nil
	}
	db, err := store.OpenDB(e.cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	if err := store.Migrate(db); err != nil {
		db.Close()
		return nil, nil, err
	}
	return store.NewSQLiteStore(db), db, nil
}
