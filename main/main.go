package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/undeconstructed/monopoly/ai"
	"github.com/undeconstructed/monopoly/client"
	"github.com/undeconstructed/monopoly/game"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cmd := &cli.Command{
		Name:  "monopoly",
		Usage: "play at the terminal, against people or the computer",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "player", Aliases: []string{"p"}, Usage: "name of a human player, repeat for more"},
			&cli.IntFlag{Name: "ai", Value: 1, Usage: "number of computer players"},
			&cli.IntFlag{Name: "rounds", Value: game.NoRoundLimit, Usage: "round limit, 0 to play until one is left"},
			&cli.Int64Flag{Name: "seed", Usage: "random seed, 0 for the clock"},
			&cli.StringFlag{Name: "board", Usage: "board file, the standard board if empty"},
			&cli.StringFlag{Name: "history", Value: "hist.txt", Usage: "readline history file"},
			&cli.StringFlag{Name: "log-level", Value: "warn", Usage: "log level"},
		},
		Action: run,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cmd.Run(ctx, os.Args); err != nil {
		log.Error().Err(err).Msg("game return")
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	level, err := zerolog.ParseLevel(cmd.String("log-level"))
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(level)

	board, err := loadBoard(cmd.String("board"))
	if err != nil {
		return err
	}

	humans := cmd.StringSlice("player")
	names := append([]string(nil), humans...)
	for i := 0; i < cmd.Int("ai"); i++ {
		names = append(names, fmt.Sprintf("computer %d", i+1))
	}

	seed := cmd.Int64("seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	source := game.NewSource(seed)

	g, err := board.NewGame(source)
	if err != nil {
		return err
	}
	if err := g.SetNumberOfPlayers(len(names)); err != nil {
		return err
	}
	if err := g.SetNumberOfRounds(cmd.Int("rounds")); err != nil {
		return err
	}
	players, err := board.NewPlayers(names...)
	if err != nil {
		return err
	}
	if err := g.SetPlayers(players...); err != nil {
		return err
	}

	id := uuid.New().String()
	glog := log.With().Str("game", id).Logger()

	l, err := client.NewReadline(cmd.String("history"))
	if err != nil {
		return err
	}
	defer l.Close()
	out := l.Stdout()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	console := client.NewConsole(l, out)
	console.OnClose(cancel)

	policy := ai.NewPolicy(source, glog)
	deciders := map[int]game.Decider{}
	for _, p := range players {
		if p.ID() < len(humans) {
			deciders[p.ID()] = console
		} else {
			deciders[p.ID()] = policy
		}
	}

	e, err := game.NewEngine(g, deciders, glog)
	if err != nil {
		return err
	}
	console.Attach(e)
	e.Observe(func(u game.Update) {
		client.PrintNews(out, u.News)
	})

	glog.Info().Int64("seed", seed).Strs("players", names).Msg("game made")

	winners, err := e.Run(ctx)
	if err != nil {
		fmt.Fprintf(out, "game abandoned in round %d\n", g.CurrentRound())
		return nil
	}
	client.PrintWinners(out, winners)
	return nil
}

func loadBoard(path string) (game.Board, error) {
	if path == "" {
		return game.DefaultBoard()
	}
	return game.LoadBoard(path)
}
