package svcconfig_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	svcconfig "github.com/rpckit/svcconfig"
)

func decode(t *testing.T, text string) svcconfig.Value {
	t.Helper()
	v, err := svcconfig.DecodeValue(svcconfig.JSONBytes([]byte(text)))
	if err != nil {
		t.Fatalf("decode %q: %v", text, err)
	}
	return v
}

func TestDecodeValue_KeyOrderPreserved(t *testing.T) {
	v := decode(t, `{"zebra":1,"apple":2,"mango":3}`)
	obj, ok := v.AsObject()
	if !ok {
		t.Fatalf("expected object")
	}
	want := []string{"zebra", "apple", "mango"}
	got := obj.Keys()
	if len(got) != len(want) {
		t.Fatalf("keys: got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("keys: got %v want %v", got, want)
		}
	}
}

func TestDecodeValue_NumberKeepsTextForm(t *testing.T) {
	v := decode(t, `{"ratio":0.10,"big":1e3}`)
	obj, _ := v.AsObject()
	ratio, _ := obj.Get("ratio")
	if text, ok := ratio.AsNumber(); !ok || text != "0.10" {
		t.Fatalf("ratio text: got %q ok=%v", text, ok)
	}
	big, _ := obj.Get("big")
	if text, ok := big.AsNumber(); !ok || text != "1e3" {
		t.Fatalf("big text: got %q ok=%v", text, ok)
	}
}

func TestValue_Int64RejectsFractionsAndExponents(t *testing.T) {
	cases := map[string]bool{
		`{"n":5}`:    true,
		`{"n":-5}`:   true,
		`{"n":5.0}`:  false,
		`{"n":5e0}`:  false,
		`{"n":0.5}`:  false,
		`{"n":"5"}`:  false,
		`{"n":true}`: false,
	}
	for text, wantOK := range cases {
		v := decode(t, text)
		obj, _ := v.AsObject()
		n, _ := obj.Get("n")
		if _, ok := n.Int64(); ok != wantOK {
			t.Fatalf("Int64 on %s: ok=%v want %v", text, ok, wantOK)
		}
	}
}

func TestDecodeValue_NullVersusAbsent(t *testing.T) {
	v := decode(t, `{"present":null}`)
	obj, _ := v.AsObject()
	pv, ok := obj.Get("present")
	if !ok || !pv.IsNull() {
		t.Fatalf("explicit null lost: ok=%v null=%v", ok, pv.IsNull())
	}
	if _, ok := obj.Get("absent"); ok {
		t.Fatalf("absent key reported present")
	}
}

func TestDecodeValue_DuplicateKeyIsError(t *testing.T) {
	_, err := svcconfig.DecodeValue(svcconfig.JSONBytes([]byte(`{"a":1,"a":2}`)))
	if err == nil {
		t.Fatalf("expected error for duplicate key")
	}
	var dup *svcconfig.DuplicateKeyError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateKeyError, got %T: %v", err, err)
	}
	if dup.Key != "a" {
		t.Fatalf("expected key a, got %q", dup.Key)
	}
	if !strings.Contains(err.Error(), `duplicate key "a" at index`) {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestDecodeValue_DuplicateKeyNested(t *testing.T) {
	_, err := svcconfig.DecodeValue(svcconfig.JSONBytes([]byte(`[{"b":{"x":1,"x":2}}]`)))
	var dup *svcconfig.DuplicateKeyError
	if !errors.As(err, &dup) || dup.Key != "x" {
		t.Fatalf("expected nested DuplicateKeyError for x, got %v", err)
	}
}

func TestDecodeValue_SyntaxErrors(t *testing.T) {
	for _, text := range []string{"", "{", `{"a":}`, "[1,", "tru"} {
		_, err := svcconfig.DecodeValue(svcconfig.JSONBytes([]byte(text)))
		if err == nil {
			t.Fatalf("expected error for %q", text)
		}
		var syn *svcconfig.SyntaxError
		if !errors.As(err, &syn) {
			t.Fatalf("expected SyntaxError for %q, got %T: %v", text, err, err)
		}
		if !strings.Contains(err.Error(), "JSON parse error at index") {
			t.Fatalf("unexpected message for %q: %v", text, err)
		}
	}
}

func TestDecodeValue_TrailingContentIsError(t *testing.T) {
	_, err := svcconfig.DecodeValue(svcconfig.JSONBytes([]byte(`{} {}`)))
	if err == nil {
		t.Fatalf("expected error for trailing content")
	}
}

func TestDecodeValueOpt_MaxDepth(t *testing.T) {
	deep := `{"a":{"b":{"c":1}}}`
	if _, err := svcconfig.DecodeValueOpt(svcconfig.JSONBytes([]byte(deep)), svcconfig.DecodeOpt{MaxDepth: 2}); err == nil {
		t.Fatalf("expected depth error")
	}
	if _, err := svcconfig.DecodeValueOpt(svcconfig.JSONBytes([]byte(deep)), svcconfig.DecodeOpt{MaxDepth: 3}); err != nil {
		t.Fatalf("unexpected error at allowed depth: %v", err)
	}
}

func TestValue_MarshalJSONRoundTrip(t *testing.T) {
	text := `{"z":1e3,"a":[true,null,"s"],"m":{"k":0.10}}`
	v := decode(t, text)
	out, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != text {
		t.Fatalf("round trip changed document:\n got: %s\nwant: %s", out, text)
	}
}

func TestJSONReader_MatchesBytes(t *testing.T) {
	v, err := svcconfig.DecodeValue(svcconfig.JSONReader(strings.NewReader(`{"a":1}`)))
	if err != nil {
		t.Fatalf("reader decode: %v", err)
	}
	obj, ok := v.AsObject()
	if !ok || obj.Len() != 1 {
		t.Fatalf("unexpected value from reader source")
	}
}
