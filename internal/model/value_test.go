package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestCellKinds(t *testing.T) {
	if v := TextCell("0012"); v.Kind() != KindText || v.String() != "0012" {
		t.Fatalf("TextCell=%v %q", v.Kind(), v.String())
	}
	if v := TextCell("  "); !v.IsNull() {
		t.Fatalf("blank text cell should be null")
	}
	if v := NumberCell(" 100 "); v.Kind() != KindNumber || v.String() != "100" {
		t.Fatalf("NumberCell=%v %q", v.Kind(), v.String())
	}
	if v := NumberCell("abc"); v.Kind() != KindText {
		t.Fatalf("unparseable number cell should fall back to text")
	}
}

func TestFloatOnlyForNumbers(t *testing.T) {
	if _, ok := Text("200").Float(); ok {
		t.Fatalf("text cell must not have a numeric view")
	}
	if f, ok := Text(" 200 ").Numeric(); !ok || f != 200 {
		t.Fatalf("Numeric=%v,%v", f, ok)
	}
	if f, ok := NumberCell("12.5").Float(); !ok || f != 12.5 {
		t.Fatalf("Float=%v,%v", f, ok)
	}
}

func TestMarshalJSON(t *testing.T) {
	row := Row{
		"n": Number(350),
		"s": Text("0012"),
		"d": Time(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)),
		"z": Null,
	}
	data, err := json.Marshal(row)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	want := `{"d":"2024-03-05 00:00:00","n":350,"s":"0012","z":null}`
	if string(data) != want {
		t.Fatalf("json=%s, want %s", data, want)
	}
}
