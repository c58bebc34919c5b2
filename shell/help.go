package shell

import "io"

func usage(w io.Writer) {
	io.WriteString(w, "commands:\n")
	io.WriteString(w, "new - reset to the empty board\n")
	io.WriteString(w, "show - draw the current position\n")
	io.WriteString(w, "moves - list legal cells for the side to move\n")
	io.WriteString(w, "play <cell> - play a cell (0..80); cell = field*9 + index within field\n")
	io.WriteString(w, "undo - take back the last ply\n")
	io.WriteString(w, "random [plies] - play random legal moves, 5 by default\n")
	io.WriteString(w, "canonical - draw the canonical form of the position\n")
	io.WriteString(w, "count [depth] - count move sequences from here\n")
	io.WriteString(w, "threads [n] - show or set the worker count\n")
	io.WriteString(w, "exit - leave the shell\n")
}
