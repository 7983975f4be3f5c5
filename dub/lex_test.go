package dub

import "testing"

func TestLexer(t *testing.T) {
	type test struct {
		input  string
		expect []token
	}
	tests := []test{
		{
			input: "pattern 1 -1",
			expect: []token{
				{typ: typeIdentifier, text: "pattern"},
				{typ: typeInt, text: "1"},
				{typ: typeInt, text: "-1"},
				{typ: typeEOF},
			},
		},
		{
			input: "mode 3;args .5",
			expect: []token{
				{typ: typeIdentifier, text: "mode"},
				{typ: typeInt, text: "3"},
				{typ: typeSemicolon, text: ";"},
				{typ: typeIdentifier, text: "args"},
				{typ: typeFloat, text: ".5"},
				{typ: typeEOF},
			},
		},
		{
			input: "1.0",
			expect: []token{
				{typ: typeFloat, text: "1.0"},
				{typ: typeEOF},
			},
		},
		{
			input: "-1.",
			expect: []token{
				{typ: typeFloat, text: "-1."},
				{typ: typeEOF},
			},
		},
		{
			input: "-.1",
			expect: []token{
				{typ: typeFloat, text: "-.1"},
				{typ: typeEOF},
			},
		},
		{
			input: "2e-3",
			expect: []token{
				{typ: typeFloat, text: "2e-3"},
				{typ: typeEOF},
			},
		},
		{
			input: `command "this is a string" 1`,
			expect: []token{
				{typ: typeIdentifier, text: "command"},
				{typ: typeString, text: `"this is a string"`},
				{typ: typeInt, text: "1"},
				{typ: typeEOF},
			},
		},
	}
	for _, test := range tests {
		t.Log(test.input)
		tokens, err := lex(test.input)
		if err != nil {
			t.Errorf("unexpected lex error: %v", err)
			continue
		}
		if len(tokens) != len(test.expect) {
			t.Fatalf("token mismatch: \nwant: %+v, \ngot:  %+v", test.expect, tokens)
		}
		for i, got := range tokens {
			want := test.expect[i]
			if want.typ != got.typ {
				t.Errorf("wrong type: want %v, got %v", want, got)
			}
			if want.text != got.text {
				t.Errorf("wrong text: want %v, got %v", want, got)
			}
		}
	}
}

func TestLexerErrors(t *testing.T) {
	for _, input := range []string{
		"a -",
		"a .-",
		"a 1e",
		"a 3b",
		`a "b`,
	} {
		_, err := lex(input)
		if err == nil {
			t.Errorf("expected error for input: %q", input)
		}
	}
}
