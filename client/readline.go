package client

import (
	rl "github.com/chzyer/readline"
)

// LineReader is what the console needs from a terminal.
type LineReader interface {
	Readline() (string, error)
	SetPrompt(string)
}

// Commands are offered for completion at the turn prompt.
var Commands = []string{
	"board", "players", "me", "field",
	"build", "sellhouse", "mortgage", "unmortgage", "sell",
	"auction", "trade", "market", "end",
}

// NewReadline opens the terminal with completion for turn commands.
func NewReadline(historyFile string) (*rl.Instance, error) {
	var items []rl.PrefixCompleterInterface
	for _, c := range Commands {
		items = append(items, rl.PcItem(c))
	}
	completer := rl.NewPrefixCompleter(items...)

	return rl.NewEx(&rl.Config{
		Prompt:            "» ",
		HistoryFile:       historyFile,
		AutoComplete:      completer,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
}
