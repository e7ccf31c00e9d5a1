package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/davidsrrose/wordle-bot/internal/browser"
	"github.com/davidsrrose/wordle-bot/internal/daily"
	"github.com/davidsrrose/wordle-bot/internal/httpserver"
	"github.com/davidsrrose/wordle-bot/internal/session"
	"github.com/davidsrrose/wordle-bot/internal/solver"
)

// runPlay solves the real puzzle in a browser and prints the share text.
func runPlay(ctx context.Context, e *env, args []string) error {
	fs := e.flags()
	headless := fs.Bool("headless", true, "run the browser without a window")
	url := fs.String("url", "", "game URL (default GAME_URL)")
	if err := e.parse(args); err != nil {
		return err
	}
	if e.isSet("headless") {
		e.cfg.Headless = *headless
	}
	if *url != "" {
		e.cfg.GameURL = *url
	}

	list, err := e.dictionary()
	if err != nil {
		return err
	}
	sv, err := e.solver(list)
	if err != nil {
		return err
	}
	sv.Logger = log.Logger
	picker, err := sv.Picker()
	if err != nil {
		return err
	}
	st, db, err := e.openStore()
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	page, err := browser.Launch(ctx, browser.Options{
		URL:      e.cfg.GameURL,
		Headless: e.cfg.Headless,
		HardMode: e.cfg.HardMode,
		Logger:   log.Logger,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := page.Close(); err != nil {
			log.Warn().Err(err).Msg("browser shutdown")
		}
	}()

	res, runErr := session.Run(ctx, page, picker, session.WithLogger(log.Logger))
	answer := ""
	if res.Won() {
		answer = res.Guesses[len(res.Guesses)-1]
	}
	run := sv.Record("play", answer, res, runErr)
	run.Date = daily.DateKey(time.Now())
	if err := st.Save(ctx, run); err != nil {
		log.Warn().Err(err).Msg("save run")
	}
	if runErr != nil {
		return runErr
	}
	fmt.Println(res.Summary)
	return nil
}

// runSim solves local games and prints one line per game.
func runSim(ctx context.Context, e *env, args []string) error {
	fs := e.flags()
	answer := fs.String("answer", "", "fixed answer (default: random)")
	games := fs.Int("n", 1, "number of games")
	today := fs.Bool("daily", false, "solve the local daily puzzle")
	if err := e.parse(args); err != nil {
		return err
	}

	list, err := e.dictionary()
	if err != nil {
		return err
	}
	sv, err := e.solver(list)
	if err != nil {
		return err
	}
	st, db, err := e.openStore()
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	var puzzle daily.Puzzle
	if *today {
		puzzle = daily.For(time.Now(), e.cfg.DailySalt, list)
		*answer, *games = puzzle.Answer, 1
	}

	for i := 0; i < *games; i++ {
		res, g, err := sv.Play(ctx, *answer)
		if res == nil {
			return err
		}
		source := "sim"
		if *today {
			source = "daily"
		}
		run := sv.Record(source, g.Answer, res, err)
		run.Date = puzzle.Date
		if err := st.Save(ctx, run); err != nil {
			log.Warn().Err(err).Msg("save run")
		}

		if *today && db != nil {
			ds := daily.NewStore(db)
			if err := ds.InsertResult(ctx, daily.Result{
				Solver: sv.Name(), Date: puzzle.Date, WordIndex: puzzle.Index,
				Guesses: len(res.Guesses), Won: res.Won(), ElapsedMs: run.ElapsedMs,
			}); err != nil {
				log.Warn().Err(err).Msg("insert daily result")
			}
		}

		fmt.Printf("%s %-7s %d %s", g.Answer, res.Outcome, len(res.Guesses), strings.Join(res.Guesses, " "))
		if err != nil {
			fmt.Printf(" (%v)", err)
		}
		fmt.Println()
		if *games == 1 && res.Summary != "" {
			fmt.Println()
			fmt.Println(res.Summary)
		}
	}
	return nil
}

// benchResult is one answer's outcome in a benchmark.
type benchResult struct {
	answer  string
	guesses int
	outcome session.Outcome
	err     error
}

// runBench plays every dictionary word (or a seeded sample) on a worker pool.
func runBench(ctx context.Context, e *env, args []string) error {
	fs := e.flags()
	limit := fs.Int("n", 0, "sample size (default: every word)")
	workers := fs.Int("workers", runtime.GOMAXPROCS(0), "parallel games")
	if err := e.parse(args); err != nil {
		return err
	}

	list, err := e.dictionary()
	if err != nil {
		return err
	}
	sv, err := e.solver(list)
	if err != nil {
		return err
	}

	answers := append([]string(nil), list.Words...)
	if *limit > 0 && *limit < len(answers) {
		rng := rand.New(rand.NewPCG(e.cfg.Seed, e.cfg.Seed))
		rng.Shuffle(len(answers), func(i, j int) { answers[i], answers[j] = answers[j], answers[i] })
		answers = answers[:*limit]
	}

	start := time.Now()
	results := make([]benchResult, len(answers))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < max(1, *workers); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				res, _, err := sv.Play(ctx, answers[i])
				r := benchResult{answer: answers[i], err: err, outcome: session.OutcomeAborted}
				if res != nil {
					r.guesses, r.outcome = len(res.Guesses), res.Outcome
				}
				results[i] = r
			}
		}()
	}
feed:
	for i := range answers {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return err
	}

	printBench(sv, results, time.Since(start))
	return nil
}

func printBench(sv *session.Solver, results []benchResult, elapsed time.Duration) {
	hist := map[int]int{}
	won, lost, exhausted, aborted, total := 0, 0, 0, 0, 0
	var failures []string
	for _, r := range results {
		switch {
		case r.outcome == session.OutcomeWon:
			won++
			total += r.guesses
			hist[r.guesses]++
		case r.outcome == session.OutcomeLost:
			lost++
			failures = append(failures, r.answer)
		case errors.Is(r.err, solver.ErrExhaustedPool):
			exhausted++
			failures = append(failures, r.answer)
		default:
			aborted++
			failures = append(failures, r.answer)
		}
	}

	fmt.Printf("solver     %s\n", sv.Name())
	fmt.Printf("games      %d in %s\n", len(results), elapsed.Round(time.Millisecond))
	fmt.Printf("won        %d (%.1f%%)\n", won, 100*float64(won)/float64(max(1, len(results))))
	fmt.Printf("lost       %d\n", lost)
	fmt.Printf("exhausted  %d\n", exhausted)
	fmt.Printf("aborted    %d\n", aborted)
	if won > 0 {
		fmt.Printf("avg        %.3f guesses\n", float64(total)/float64(won))
	}
	keys := make([]int, 0, len(hist))
	for k := range hist {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, k := range keys {
		fmt.Printf("  %d: %d\n", k, hist[k])
	}
	if len(failures) > 0 {
		sort.Strings(failures)
		if len(failures) > 20 {
			failures = append(failures[:20], "...")
		}
		fmt.Printf("failed     %s\n", strings.Join(failures, " "))
	}
}

// runServe runs the HTTP API.
func runServe(ctx context.Context, e *env, args []string) error {
	fs := e.flags()
	port := fs.String("port", "", "listen port (default PORT)")
	if err := e.parse(args); err != nil {
		return err
	}
	if *port != "" {
		e.cfg.Port = *port
	}

	list, err := e.dictionary()
	if err != nil {
		return err
	}
	st, db, err := e.openStore()
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	srv, err := httpserver.New(e.cfg, list, st, db)
	if err != nil {
		return err
	}
	if e.cfg.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET not set: run history is public")
	}
	log.Info().Str("port", e.cfg.Port).Bool("sqlite", db != nil).Msg("starting wordlebot server")

	errc := make(chan error, 1)
	go func() { errc <- srv.Start(":" + e.cfg.Port) }()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		return nil
	}
}

// runToken prints a bearer token for the HTTP API.
func runToken(ctx context.Context, e *env, args []string) error {
	fs := e.flags()
	subject := fs.String("sub", "", "token subject (default: $USER)")
	days := fs.Int("days", 0, "expiry in days (default JWT_EXPIRES_DAYS)")
	if err := e.parse(args); err != nil {
		return err
	}
	if *subject == "" {
		*subject = firstNonEmpty(os.Getenv("USER"), "wordlebot")
	}
	if *days == 0 {
		*days = e.cfg.JWTExpiresDays
	}
	tok, exp, err := httpserver.SignToken(e.cfg.JWTSecret, *subject, *days)
	if err != nil {
		return err
	}
	log.Info().Str("sub", *subject).Time("expires", exp).Msg("token minted")
	fmt.Println(tok)
	return nil
}

// isSet reports whether the flag was given on the command line.
func (e *env) isSet(name string) bool {
	set := false
	e.fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
