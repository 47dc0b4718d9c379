package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestSession_Persists(t *testing.T) {
	s := &session{}
	if v, err := s.eval("x = 2*3;"); err != nil || v != 6 {
		t.Fatalf("got %d, %v", v, err)
	}
	if v, err := s.eval("x + 4;"); err != nil || v != 10 {
		t.Fatalf("got %d, %v", v, err)
	}
}

func TestSession_ErrorKeepsState(t *testing.T) {
	s := &session{}
	if _, err := s.eval("a = 1;"); err != nil {
		t.Fatal(err)
	}
	for _, bad := range []string{"(a+1) = 2;", "#", "1/0;"} {
		if _, err := s.eval(bad); err == nil {
			t.Errorf("%q: expected error", bad)
		}
	}
	if v, err := s.eval("a;"); err != nil || v != 1 {
		t.Errorf("got %d, %v", v, err)
	}
}

func TestSession_Commands(t *testing.T) {
	s := &session{}
	if _, err := s.eval("b = 1; a = 2;"); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	s.command(&out, ":vars")
	if got := out.String(); got != "b\t-8(%rbp)\na\t-16(%rbp)\n" {
		t.Errorf(":vars printed %q", got)
	}
	out.Reset()
	s.command(&out, ":asm")
	if !strings.HasPrefix(out.String(), ".text\n") {
		t.Errorf(":asm printed %q", out.String())
	}
	out.Reset()
	s.command(&out, ":ir")
	if !strings.Contains(out.String(), "stmt1:\n") {
		t.Errorf(":ir printed %q", out.String())
	}
	s.command(&out, ":reset")
	if s.src != "" || s.last != nil {
		t.Errorf("reset kept state")
	}
	if !s.command(&out, ":quit") {
		t.Errorf(":quit did not exit")
	}
}

func TestIncomplete(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"x = 1", true},
		{"x = (1 +", true},
		{"x = 1;", false},
		{"x = ;", false},
		{"#", false},
	}
	for _, tc := range tests {
		if got := incomplete(tc.src); got != tc.want {
			t.Errorf("incomplete(%q) = %v, want %v", tc.src, got, tc.want)
		}
	}
}
