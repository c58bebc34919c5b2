package shell

import "github.com/chzyer/readline"

var completer = readline.NewPrefixCompleter(
	readline.PcItem("new"),
	readline.PcItem("show"),
	readline.PcItem("moves"),
	readline.PcItem("play"),
	readline.PcItem("undo"),
	readline.PcItem("random"),
	readline.PcItem("canonical"),
	readline.PcItem("count"),
	readline.PcItem("threads"),
	readline.PcItem("help"),
	readline.PcItem("exit"),
)
