package model_test

import (
	"encoding/json"
	"math"
	"testing"

	"go-data-quality/internal/model"
)

func TestFloatValueCollapsesNonFinite(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if v := model.FloatValue(f); !v.IsNull() {
			t.Fatalf("expected null for %v, got kind %v", f, v.Kind)
		}
	}
	if v := model.FloatValue(3.5); v.IsNull() {
		t.Fatalf("finite float must not collapse to null")
	}
}

func TestValueEqual(t *testing.T) {
	cases := []struct {
		a, b model.Value
		want bool
	}{
		{model.Null(), model.Null(), true},
		{model.Null(), model.IntValue(0), false},
		{model.IntValue(1), model.FloatValue(1), true},
		{model.IntValue(1), model.IntValue(2), false},
		{model.StringValue("a"), model.StringValue("a"), true},
		{model.StringValue("1"), model.IntValue(1), false},
		{model.BoolValue(true), model.BoolValue(true), true},
	}
	for _, c := range cases {
		if got := c.a.Equal(c.b); got != c.want {
			t.Errorf("Equal(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestSignatureMatchesEqual(t *testing.T) {
	if model.IntValue(1).Signature() != model.FloatValue(1).Signature() {
		t.Fatalf("1 and 1.0 must share a signature")
	}
	if model.StringValue("1").Signature() == model.IntValue(1).Signature() {
		t.Fatalf("string \"1\" and int 1 must not collide")
	}
	if model.Null().Signature() != model.Null().Signature() {
		t.Fatalf("null signature must be stable")
	}
}

func TestValueJSONRoundTrip(t *testing.T) {
	values := []model.Value{
		model.Null(),
		model.IntValue(42),
		model.FloatValue(3.25),
		model.StringValue("hello"),
		model.BoolValue(true),
	}
	for _, v := range values {
		data, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal %v: %v", v, err)
		}
		var back model.Value
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if !v.Equal(back) {
			t.Errorf("round trip changed %v into %v", v, back)
		}
	}
}

func TestNullMarshalsAsJSONNull(t *testing.T) {
	data, err := json.Marshal(model.Null())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "null" {
		t.Fatalf("expected null, got %s", data)
	}
}

func TestRowCellMissingColumn(t *testing.T) {
	row := model.Row{"a": model.IntValue(1)}
	if !row.Cell("b").IsNull() {
		t.Fatalf("missing column must read as null")
	}
	if row.Cell("a").Int != 1 {
		t.Fatalf("present column must read back")
	}
}
