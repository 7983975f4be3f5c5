// Package dub parses host messages written one per line, such as
//
//	pattern 1 -1 4 5 -1 -1 7
//	mode reverse-inverse; args 0.5 2
//
// A message is a selector followed by atoms. Several messages may share a
// line when separated by semicolons.
package dub

import (
	"fmt"
	"math"
	"strconv"
)

type Node interface {
	isNode()
}

func (Identifier) isNode() {}
func (Int) isNode()        {}
func (Float) isNode()      {}
func (String) isNode()     {}

type Message struct {
	Name Identifier
	Args []Node
}

type Identifier string
type Int int
type Float float64
type String string

// Parse reads a single message.
func Parse(input string) (Message, error) {
	msgs, err := ParseLine(input)
	if err != nil {
		return Message{}, err
	}
	if len(msgs) != 1 {
		return Message{}, fmt.Errorf("expected one message, got %d", len(msgs))
	}
	return msgs[0], nil
}

// ParseLine reads every message on a line. A blank line holds no messages.
func ParseLine(input string) ([]Message, error) {
	tokens, err := lex(input)
	if err != nil {
		return nil, err
	}
	p := parser{tokens: tokens}
	return p.parse()
}

type parser struct {
	pos    int
	tokens []token
}

func (p *parser) next() token {
	t := p.tokens[p.pos]
	p.pos++
	return t
}

func (p *parser) peek() token {
	t := p.next()
	p.pos--
	return t
}

func (p *parser) parse() ([]Message, error) {
	var msgs []Message
	for {
		switch p.peek().typ {
		case typeEOF:
			return msgs, nil
		case typeSemicolon:
			p.next()
			continue
		}
		msg, err := p.message()
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}
}

func (p *parser) message() (Message, error) {
	var msg Message
	token := p.next()
	if token.typ != typeIdentifier {
		return msg, unexpected(token)
	}
	msg.Name = Identifier(token.text)
	for token := p.peek(); token.typ != typeEOF && token.typ != typeSemicolon; token = p.peek() {
		p.next()
		var arg Node
		switch token.typ {
		case typeIdentifier:
			arg = Identifier(token.text)
		case typeString:
			arg = String(token.text[1 : len(token.text)-1])
		case typeFloat:
			f, err := strconv.ParseFloat(token.text, 64)
			if err != nil {
				return msg, err
			}
			arg = Float(f)
		case typeInt:
			n, err := strconv.Atoi(token.text)
			if err != nil {
				return msg, err
			}
			arg = Int(n)
		default:
			return msg, unexpected(token)
		}
		msg.Args = append(msg.Args, arg)
	}
	return msg, nil
}

func unexpected(t token) error {
	if t.typ == typeEOF {
		return fmt.Errorf("unexpected end of input")
	}
	return fmt.Errorf("unexpected %v %q at position %d", t.typ, t.text, t.pos)
}

// Numbers converts every argument to a float64. Identifiers are rejected.
func Numbers(args []Node) ([]float64, error) {
	out := make([]float64, 0, len(args))
	for i, arg := range args {
		switch n := arg.(type) {
		case Int:
			out = append(out, float64(n))
		case Float:
			out = append(out, float64(n))
		default:
			return nil, fmt.Errorf("argument %d: expected a number, got %v", i+1, arg)
		}
	}
	return out, nil
}

// Ints converts every argument to an int. Floats are accepted when they hold
// a whole number, as hosts often send 1. for 1.
func Ints(args []Node) ([]int, error) {
	fs, err := Numbers(args)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(fs))
	for i, f := range fs {
		if f != math.Trunc(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("argument %d: expected a whole number, got %v", i+1, f)
		}
		out[i] = int(f)
	}
	return out, nil
}

// Words converts every argument to its text, so a list like "attack 2 full"
// can be read as names.
func Words(args []Node) []string {
	out := make([]string, len(args))
	for i, arg := range args {
		switch v := arg.(type) {
		case Identifier:
			out[i] = string(v)
		case String:
			out[i] = string(v)
		case Int:
			out[i] = strconv.Itoa(int(v))
		case Float:
			out[i] = strconv.FormatFloat(float64(v), 'g', -1, 64)
		}
	}
	return out
}
