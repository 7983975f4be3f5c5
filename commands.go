package main

import (
	"fmt"
	"strconv"
	"strings"

	"gitlab.com/gomidi/midi/v2"
	"gopkg.in/yaml.v3"

	"github.com/mrdg/patternmod/dub"
	"github.com/mrdg/patternmod/host"
	"github.com/mrdg/patternmod/pattern"
	"github.com/mrdg/patternmod/score"
)

type command struct {
	name  string
	help  string
	run   func(e *env, args []dub.Node) (string, error)
	arity int // -n means len(args) must be >= n
}

var commands []command

func init() {
	commands = []command{
		{"pattern", "send a pattern and print the transformed pair", patternCommand, -1},
		{"envelope", "set the envelope, by tag name or number", envelopeCommand, -1},
		{"mode", "select the transform, by name or number", modeCommand, 1},
		{"args", "set the extra arguments of the mode", paramCommand(host.PropArgs), -1},
		{"weights", "set weights for weighted choice", paramCommand(host.PropWeights), -1},
		{"choices", "set the number of weighted draws", paramCommand(host.PropChoices), 1},
		{"range", "set the max pattern range", paramCommand(host.PropRange), 1},
		{"rest", "set the rest value", paramCommand(host.PropRest), 1},
		{"scale", "set the scale length", paramCommand(host.PropScale), 1},
		{"row", "set the envelope matrix row", paramCommand(host.PropRow), 1},
		{"strict", "1 to require an envelope for every mode", paramCommand(host.PropStrict), 1},
		{"show", "draw the last output", showCommand, 0},
		{"midi", "list the MIDI events of the last output", midiCommand, 0},
		{"modes", "list the transform modes", modesCommand, 0},
		{"config", "print the current settings", configCommand, 0},
		{"help", "list commands", helpCommand, 0},
	}
}

func patternCommand(e *env, args []dub.Node) (string, error) {
	values, err := dub.Ints(args)
	if err != nil {
		return "", err
	}
	e.last = nil
	if err := e.object.Send(host.SetPattern{Pattern: values}); err != nil {
		return "", err
	}
	if e.last == nil {
		return "", nil
	}
	return formatOutput(*e.last), nil
}

func envelopeCommand(e *env, args []dub.Node) (string, error) {
	tags := make(pattern.Envelope, len(args))
	for i, word := range dub.Words(args) {
		t, err := pattern.ParseTag(word)
		if err != nil {
			return "", err
		}
		tags[i] = t
	}
	return "", e.object.Send(host.SetEnvelope{Envelope: tags})
}

func modeCommand(e *env, args []dub.Node) (string, error) {
	m, err := pattern.ParseMode(dub.Words(args)[0])
	if err != nil {
		return "", err
	}
	if err := e.object.Send(host.SetMode{Mode: m}); err != nil {
		return "", err
	}
	return fmt.Sprintf("mode %d %s", int(m), m), nil
}

func paramCommand(name string) func(*env, []dub.Node) (string, error) {
	return func(e *env, args []dub.Node) (string, error) {
		values, err := dub.Numbers(args)
		if err != nil {
			return "", err
		}
		return "", e.object.Send(host.SetParam{Name: name, Values: values})
	}
}

func showCommand(e *env, args []dub.Node) (string, error) {
	if e.last == nil {
		return "", fmt.Errorf("no pattern has been sent")
	}
	return renderOutput(*e.last, e.object.Config()), nil
}

func midiCommand(e *env, args []dub.Node) (string, error) {
	if e.last == nil {
		return "", fmt.Errorf("no pattern has been sent")
	}
	track, err := score.Track(e.last.Pattern, e.last.Envelope, e.object.Config(), e.score)
	if err != nil {
		return "", err
	}
	var lines []string
	for _, ev := range track {
		lines = append(lines, fmt.Sprintf("%6d %s", ev.Delta, midi.Message(ev.Message)))
	}
	return strings.Join(lines, "\n"), nil
}

func modesCommand(e *env, args []dub.Node) (string, error) {
	var lines []string
	for _, m := range pattern.Modes() {
		lines = append(lines, fmt.Sprintf("%2d %-18s %s", int(m), m, m.Help()))
	}
	return strings.Join(lines, "\n"), nil
}

func configCommand(e *env, args []dub.Node) (string, error) {
	b, err := yaml.Marshal(e.object.Settings())
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(b), "\n"), nil
}

func helpCommand(e *env, args []dub.Node) (string, error) {
	var lines []string
	for _, cmd := range commands {
		lines = append(lines, fmt.Sprintf("%-9s %s", cmd.name, cmd.help))
	}
	lines = append(lines, "settings: "+strings.Join(e.object.Params(), " "))
	return strings.Join(lines, "\n"), nil
}

// formatOutput prints an output the way the host receives it: the pattern
// list, then the envelope as matrix triplets.
func formatOutput(out host.Output) string {
	s := "pattern " + joinInts(out.Pattern)
	if len(out.Envelope) > 0 {
		s += "\nenvelope " + joinInts(out.Matrix())
	}
	return s
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, " ")
}
