package svcconfig_test

import (
	"testing"
	"time"

	svcconfig "github.com/rpckit/svcconfig"
)

func TestParseDuration(t *testing.T) {
	cases := []struct {
		in   svcconfig.Value
		want time.Duration
		ok   bool
	}{
		{svcconfig.String("5s"), 5 * time.Second, true},
		{svcconfig.String("1.5s"), 1500 * time.Millisecond, true},
		{svcconfig.String("0.001s"), time.Millisecond, true},
		{svcconfig.String("0s"), 0, true},
		{svcconfig.String("9000000000s"), 9000000000 * time.Second, true},
		{svcconfig.String("315576000000.999999999s"), 0, false}, // exceeds the time.Duration range
		{svcconfig.String("99999999999999999999s"), 0, false},
		{svcconfig.String("5"), 0, false},
		{svcconfig.String("s"), 0, false},
		{svcconfig.String(".5s"), 0, false},
		{svcconfig.String("5.s"), 0, false},
		{svcconfig.String("1.2.3s"), 0, false},
		{svcconfig.String("-1s"), 0, false},
		{svcconfig.String("1e3s"), 0, false},
		{svcconfig.String("5 s"), 0, false},
		{svcconfig.String(""), 0, false},
		{svcconfig.Number("5"), 0, false},
		{svcconfig.Null(), 0, false},
		{svcconfig.Bool(true), 0, false},
	}
	for _, c := range cases {
		got, ok := svcconfig.ParseDuration(c.in)
		if ok != c.ok {
			t.Fatalf("ParseDuration(%v): ok=%v want %v", c.in, ok, c.ok)
		}
		if !ok || c.want == 0 {
			continue
		}
		if got != c.want {
			t.Fatalf("ParseDuration(%v): got %v want %v", c.in, got, c.want)
		}
	}
}
