package svcconfig_test

import (
	"strings"
	"testing"

	svcconfig "github.com/rpckit/svcconfig"
)

type namedParser struct {
	svcconfig.BaseParser
	name string
}

func (p namedParser) Name() string { return p.name }

func TestRegistry_AssignsStableIndexes(t *testing.T) {
	reg := svcconfig.NewRegistry()
	reg.MustRegister(namedParser{name: "alpha"})
	reg.MustRegister(namedParser{name: "beta"})

	if n := reg.NumParsers(); n != 2 {
		t.Fatalf("NumParsers = %d, want 2", n)
	}
	if i, ok := reg.GetParserIndex("alpha"); !ok || i != 0 {
		t.Fatalf("alpha index = %d ok=%v, want 0 true", i, ok)
	}
	if i, ok := reg.GetParserIndex("beta"); !ok || i != 1 {
		t.Fatalf("beta index = %d ok=%v, want 1 true", i, ok)
	}
	if _, ok := reg.GetParserIndex("gamma"); ok {
		t.Fatalf("unknown name resolved")
	}
}

func TestRegistry_DuplicateNameRejected(t *testing.T) {
	reg := svcconfig.NewRegistry()
	if err := reg.Register(namedParser{name: "alpha"}); err != nil {
		t.Fatalf("first register: %v", err)
	}
	err := reg.Register(namedParser{name: "alpha"})
	if err == nil {
		t.Fatalf("expected duplicate-name error")
	}
	if !strings.Contains(err.Error(), `service config parser "alpha" already registered`) {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestRegistry_MustRegisterPanicsOnDuplicate(t *testing.T) {
	reg := svcconfig.NewRegistry()
	reg.MustRegister(namedParser{name: "alpha"})
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	reg.MustRegister(namedParser{name: "alpha"})
}
