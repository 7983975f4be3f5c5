package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/mrdg/patternmod/dub"
	"github.com/mrdg/patternmod/host"
	"github.com/mrdg/patternmod/score"
)

type env struct {
	object *host.Object
	score  score.Options
	out    io.Writer
	last   *host.Output // most recent output of the object
}

func (e *env) emit(out host.Output) {
	e.last = &out
}

// eval runs every message on a line and joins their results.
func (e *env) eval(input string) (string, error) {
	msgs, err := dub.ParseLine(input)
	if err != nil {
		return "", err
	}
	var results []string
	for _, msg := range msgs {
		result, err := e.evalMessage(msg)
		if err != nil {
			return strings.Join(results, "\n"), err
		}
		if result != "" {
			results = append(results, result)
		}
	}
	return strings.Join(results, "\n"), nil
}

func (e *env) evalMessage(msg dub.Message) (string, error) {
	name := string(msg.Name)
	for _, cmd := range commands {
		if name != cmd.name {
			continue
		}
		if cmd.arity < 0 {
			arity := -cmd.arity
			if len(msg.Args) < arity {
				return "", fmt.Errorf("%s: wrong number of arguments: need at least %v, got %v",
					cmd.name, arity, len(msg.Args))
			}
		} else if len(msg.Args) != cmd.arity {
			return "", fmt.Errorf("%s: wrong number of arguments: want %v, got %v",
				cmd.name, cmd.arity, len(msg.Args))
		}
		result, err := cmd.run(e, msg.Args)
		if err != nil {
			return result, fmt.Errorf("%s error: %w", cmd.name, err)
		}
		return result, nil
	}
	return "", fmt.Errorf("unknown command: %s", name)
}

func repl(e *env) error {
	rl, err := readline.New("> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == io.EOF || err == readline.ErrInterrupt {
			return io.EOF
		}
		if err != nil {
			fmt.Fprintln(e.out, err)
			continue
		}
		if len(strings.TrimSpace(line)) == 0 {
			continue
		}
		result, err := e.eval(line)
		printResult(e.out, result)
		if err != nil {
			fmt.Fprintln(e.out, err)
		}
	}
}

func printResult(w io.Writer, result string) {
	if result != "" {
		fmt.Fprintln(w, result)
	}
}
