package sensor

import (
	"strings"
	"testing"
)

func TestEncodeDecodeTip(t *testing.T) {
	b, err := Encode(MsgTip, Tip{X: 0.25, Y: 0.5, Detected: true})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	env, err := DecodeEnvelope(b)
	if err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.T != MsgTip {
		t.Fatalf("type = %q, want %q", env.T, MsgTip)
	}
	tip, err := DecodePayload[Tip](env)
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if tip.X != 0.25 || tip.Y != 0.5 || !tip.Detected {
		t.Fatalf("unexpected tip %+v", tip)
	}
}

func TestEncodeRejectsEmpty(t *testing.T) {
	if _, err := Encode("", Tip{}); err == nil {
		t.Fatal("expected error for empty type")
	}
	if _, err := Encode(MsgTip, nil); err == nil {
		t.Fatal("expected error for nil payload")
	}
}

func TestDecodeErrors(t *testing.T) {
	cases := map[string]string{
		"empty":        "",
		"not json":     "tip",
		"missing type": `{"p":{}}`,
	}
	for name, in := range cases {
		if _, err := DecodeEnvelope([]byte(in)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}

	_, err := DecodePayload[Tip](Envelope{T: MsgTip})
	if err == nil || !strings.Contains(err.Error(), "empty payload") {
		t.Fatalf("expected empty payload error, got %v", err)
	}
	_, err = DecodePayload[Tip](Envelope{T: MsgTip, P: []byte(`{"x":"left"}`)})
	if err == nil {
		t.Fatal("expected type error")
	}
}
