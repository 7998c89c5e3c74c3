package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/undeconstructed/monopoly/ai"
	"github.com/undeconstructed/monopoly/game"
	"github.com/undeconstructed/monopoly/server"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cmd := &cli.Command{
		Name:  "simbin",
		Usage: "play many computer games and count who wins",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "games", Value: 10, Usage: "number of games"},
			&cli.IntFlag{Name: "parallel", Value: 4, Usage: "games played at once"},
			&cli.IntFlag{Name: "players", Value: 4, Usage: "computer players per game"},
			&cli.IntFlag{Name: "rounds", Value: 100, Usage: "round limit, 0 to play until one is left"},
			&cli.Int64Flag{Name: "seed", Usage: "random seed of the first game, 0 for the clock"},
			&cli.StringFlag{Name: "board", Usage: "board file, the standard board if empty"},
			&cli.StringFlag{Name: "web", Usage: "address to serve spectators on, none if empty"},
			&cli.StringSliceFlag{Name: "origin", Value: []string{"localhost:*"}, Usage: "websocket origins to allow"},
			&cli.DurationFlag{Name: "turn-delay", Usage: "pause after every turn, for watching"},
			&cli.StringFlag{Name: "log-level", Value: "info", Usage: "log level"},
		},
		Action: run,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cmd.Run(ctx, os.Args); err != nil {
		log.Error().Err(err).Msg("simulation return")
		os.Exit(1)
	}
}

type result struct {
	id      string
	seed    int64
	rounds  int
	winners []string
}

func run(ctx context.Context, cmd *cli.Command) error {
	level, err := zerolog.ParseLevel(cmd.String("log-level"))
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(level)

	n := cmd.Int("players")
	if n < game.MinNumberOfPlayers || n > game.MaxNumberOfPlayers {
		return game.ErrInvalidPlayerCount
	}
	rounds := cmd.Int("rounds")
	if rounds != game.NoRoundLimit && rounds < game.MinNumberOfRounds {
		return game.ErrRoundCountTooShort
	}
	seed := cmd.Int64("seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	delay := cmd.Duration("turn-delay")

	var hub *server.Hub
	if addr := cmd.String("web"); addr != "" {
		hub = server.NewHub()
		srv := server.New(hub, cmd.StringSlice("origin"), log.Logger)
		sctx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			if err := srv.Run(sctx, addr); err != nil {
				log.Error().Err(err).Msg("web return")
			}
		}()
	}

	var (
		l       sync.Mutex
		results []result
	)

	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(cmd.Int("parallel"))

	for i := 0; i < cmd.Int("games"); i++ {
		gseed := seed + int64(i)
		grp.Go(func() error {
			res, err := playGame(gctx, cmd.String("board"), n, rounds, gseed, hub, delay)
			if err != nil {
				return err
			}
			l.Lock()
			results = append(results, res)
			l.Unlock()
			return nil
		})
	}

	err = grp.Wait()
	printResults(results)
	return err
}

func playGame(ctx context.Context, boardPath string, n, rounds int, seed int64, hub *server.Hub, delay time.Duration) (result, error) {
	id := uuid.New().String()
	glog := log.With().Str("game", id).Logger()

	board, err := loadBoard(boardPath)
	if err != nil {
		return result{}, err
	}
	source := game.NewSource(seed)
	g, err := board.NewGame(source)
	if err != nil {
		return result{}, err
	}
	if err := g.SetNumberOfPlayers(n); err != nil {
		return result{}, err
	}
	if err := g.SetNumberOfRounds(rounds); err != nil {
		return result{}, err
	}

	var names []string
	for i := 0; i < n; i++ {
		names = append(names, fmt.Sprintf("computer %d", i+1))
	}
	players, err := board.NewPlayers(names...)
	if err != nil {
		return result{}, err
	}
	if err := g.SetPlayers(players...); err != nil {
		return result{}, err
	}

	policy := ai.NewPolicy(source, glog)
	deciders := map[int]game.Decider{}
	for _, p := range players {
		deciders[p.ID()] = policy
	}

	e, err := game.NewEngine(g, deciders, glog)
	if err != nil {
		return result{}, err
	}
	publish := func(game.Update) {}
	if hub != nil {
		publish = hub.Observer(id)
	}
	e.Observe(func(u game.Update) {
		publish(u)
		if delay > 0 {
			time.Sleep(delay)
		}
	})

	winners, err := e.Run(ctx)
	if err != nil {
		return result{}, fmt.Errorf("game %s: %w", id, err)
	}

	res := result{id: id, seed: seed, rounds: g.CurrentRound()}
	for _, w := range winners {
		res.winners = append(res.winners, w.Name())
	}
	return res, nil
}

func printResults(results []result) {
	sort.Slice(results, func(i, j int) bool { return results[i].seed < results[j].seed })
	wins := map[string]int{}
	for _, r := range results {
		fmt.Printf("%s seed %d: %d rounds, won by %v\n", r.id, r.seed, r.rounds, r.winners)
		for _, w := range r.winners {
			wins[w]++
		}
	}
	var names []string
	for name := range wins {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("%-12s %d\n", name, wins[name])
	}
}

func loadBoard(path string) (game.Board, error) {
	if path == "" {
		return game.DefaultBoard()
	}
	return game.LoadBoard(path)
}
