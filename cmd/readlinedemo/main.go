/* Copyright © 2025 The readline authors.
 * Use of this source code is governed by this module's license terms.
 */

// Command readlinedemo exercises the readline package against a real
// terminal: it accepts typed lines while a background goroutine prints
// a colored status tick every couple seconds, pausing the writer before
// each tick and resuming it after.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/kodeline/readline"
)

const tickInterval = 2 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "readlinedemo: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	term := readline.NewStdTerminal(os.Stdout)
	input := readline.NewStdInputStream(os.Stdin)

	rl, writer, err := readline.New("readlinedemo> ", term, input)
	if err != nil {
		return fmt.Errorf("start readline: %w", err)
	}
	defer rl.Close()
	defer writer.Close()

	done := make(chan struct{})
	defer close(done)
	go tickStatus(writer, done)

	for {
		ev, err := rl.ReadLine()
		if err != nil {
			if errors.Is(err, readline.ErrClosed) {
				return nil
			}
			return fmt.Errorf("read line: %w", err)
		}

		switch {
		case ev.IsEOF():
			return nil
		case ev.IsInterrupted():
			fmt.Fprintln(writer, color.YellowString("interrupted"))
			continue
		case ev.IsResized():
			continue
		}

		line, ok := ev.Line()
		if !ok {
			continue
		}
		switch line {
		case "quit", "exit":
			return nil
		case "":
			continue
		default:
			fmt.Fprintln(writer, color.CyanString("you said: %s", line))
		}
	}
}

// tickStatus simulates a long-running background task (a build, a
// network call) that wants to print progress without trampling the
// user's in-progress input line. It pauses the writer around each
// print, so the tick is held in the PauseBuffer and then replayed,
// followed by a prompt redraw, when Resume is sent.
func tickStatus(w *readline.SharedWriter, done <-chan struct{}) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	n := 0
	for {
		select {
		case <-ticker.C:
			n++
			if err := w.Pause(); err != nil {
				return
			}
			fmt.Fprintln(w, color.GreenString("[status] tick %d", n))
			if err := w.Resume(); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
