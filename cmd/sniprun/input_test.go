package main

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestBasicLineInput_ReadsAndTrims(t *testing.T) {
	var out bytes.Buffer
	in := newBasicLineInput(strings.NewReader("hello world\r\nnext\n"), &out)

	line, err := in.ReadLine("> ")
	if err != nil {
		t.Fatalf("ReadLine: %v", err)
	}
	if line != "hello world" {
		t.Fatalf("want trimmed line, got %q", line)
	}
	if !strings.Contains(out.String(), "> ") {
		t.Fatalf("prompt not echoed: %q", out.String())
	}

	line, err = in.ReadLine("> ")
	if err != nil || line != "next" {
		t.Fatalf("second read wrong: %q, %v", line, err)
	}
}

func TestBasicLineInput_EOF(t *testing.T) {
	in := newBasicLineInput(strings.NewReader(""), io.Discard)
	if _, err := in.ReadLine("> "); err != io.EOF {
		t.Fatalf("want io.EOF, got %v", err)
	}
}
