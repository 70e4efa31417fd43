package main

import (
	"errors"
	"testing"
)

func TestMarshalEvent_KeyPressWireFormat(t *testing.T) {
	data, err := MarshalEvent(KeyPress{Row: 1, Col: 2})
	if err != nil {
		t.Fatalf("MarshalEvent: %v", err)
	}
	want := `{"type":"key_press","data":{"row":1,"col":2}}`
	if string(data) != want {
		t.Fatalf("got %s, want %s", data, want)
	}
}

func TestMarshalEvent_ModeSelectHasNoData(t *testing.T) {
	data, err := MarshalEvent(ModeSelectTap{})
	if err != nil {
		t.Fatalf("MarshalEvent: %v", err)
	}
	if string(data) != `{"type":"mode_select"}` {
		t.Fatalf("got %s", data)
	}
}

func TestUnmarshalEvent_DecodesEachType(t *testing.T) {
	cases := []struct {
		line string
		want Event
	}{
		{`{"type":"pins","data":{"a":false,"b":true}}`, PinLevels{A: false, B: true}},
		{`{"type":"rotate","data":{"direction":"ccw"}}`, Rotate{Direction: "ccw"}},
		{`{"type":"key_press","data":{"row":4,"col":3}}`, KeyPress{Row: 4, Col: 3}},
		{`{"type":"key_release","data":{"row":0,"col":1}}`, KeyRelease{Row: 0, Col: 1}},
		{`{"type":"mode_select"}`, ModeSelectTap{}},
		{`{"type":"mode_select_press"}`, ModeSelectPress{}},
		{`{"type":"mode_select_release"}`, ModeSelectRelease{}},
	}
	for _, tc := range cases {
		got, err := UnmarshalEvent([]byte(tc.line))
		if err != nil {
			t.Errorf("UnmarshalEvent(%s): %v", tc.line, err)
			continue
		}
		if got != tc.want {
			t.Errorf("UnmarshalEvent(%s) = %#v, want %#v", tc.line, got, tc.want)
		}
	}
}

func TestUnmarshalEvent_UnknownType(t *testing.T) {
	_, err := UnmarshalEvent([]byte(`{"type":"volume_held","data":{"direction":1}}`))
	if !errors.Is(err, errUnknownEvent) {
		t.Fatalf("expected errUnknownEvent, got %v", err)
	}
}

func TestUnmarshalEvent_RejectsBadDirection(t *testing.T) {
	if _, err := UnmarshalEvent([]byte(`{"type":"rotate","data":{"direction":"up"}}`)); err == nil {
		t.Fatalf("expected invalid direction error")
	}
}

func TestUnmarshalEvent_MalformedJSON(t *testing.T) {
	if _, err := UnmarshalEvent([]byte(`{"type":`)); err == nil {
		t.Fatalf("expected envelope error")
	}
	if _, err := UnmarshalEvent([]byte(`{"type":"key_press","data":{"row":"x"}}`)); err == nil {
		t.Fatalf("expected payload error")
	}
}

func TestMarshalEvent_InternalEventsRejected(t *testing.T) {
	if _, err := MarshalEvent(RequestStateSnapshot{}); err == nil {
		t.Fatalf("RequestStateSnapshot must not be marshaled")
	}
}
