package main

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mrdg/patternmod/host"
	"github.com/mrdg/patternmod/pattern"
)

const spacePerStep = 4

var (
	stepStyle  = lipgloss.NewStyle().Width(spacePerStep).Foreground(lipgloss.Color("5"))
	valueStyle = lipgloss.NewStyle().Width(spacePerStep).Foreground(lipgloss.Color("4"))
	restStyle  = lipgloss.NewStyle().Width(spacePerStep).Foreground(lipgloss.Color("8"))
	tagStyle   = lipgloss.NewStyle().Width(spacePerStep).Foreground(lipgloss.Color("2"))
	labelStyle = lipgloss.NewStyle().Width(18).Bold(true)
)

var tagGlyphs = map[pattern.Tag]string{
	pattern.Full:    "■",
	pattern.Attack:  "┌─",
	pattern.Sustain: "──",
	pattern.Release: "─┐",
}

// renderOutput draws an output as a grid: step numbers, then the values
// with rests as dots, then the envelope.
func renderOutput(out host.Output, cfg pattern.Config) string {
	var steps, values, tags []string
	for i, v := range out.Pattern {
		steps = append(steps, stepStyle.Render(strconv.Itoa(i+1)))
		if cfg.IsRest(v) {
			values = append(values, restStyle.Render("·"))
		} else {
			values = append(values, valueStyle.Render(strconv.Itoa(v)))
		}
	}
	for _, t := range out.Envelope {
		tags = append(tags, tagStyle.Render(tagGlyphs[t]))
	}

	rows := []string{
		row(labelStyle.Render(out.Mode.String()), steps),
		row(labelStyle.Render("pattern"), values),
	}
	if len(tags) > 0 {
		rows = append(rows, row(labelStyle.Render("envelope"), tags))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func row(label string, cells []string) string {
	return strings.TrimRight(lipgloss.JoinHorizontal(lipgloss.Top, append([]string{label}, cells...)...), " ")
}
