package utils

import "testing"

func TestStripCodeFences(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"{\"a\": 1}", "{\"a\": 1}"},
		{"```json\n{\"a\": 1}\n```", "{\"a\": 1}"},
		{"```\n{\"a\": 1}\n```", "{\"a\": 1}"},
		{"  {\"a\": 1}  ", "{\"a\": 1}"},
	}
	for _, c := range cases {
		if got := StripCodeFences(c.in); got != c.want {
			t.Errorf("StripCodeFences(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestExtractJSONObject(t *testing.T) {
	got, ok := ExtractJSONObject(`Sure! Here it is: {"skills": ["Go"]} enjoy`)
	if !ok || got != `{"skills": ["Go"]}` {
		t.Fatalf("got %q, ok=%v", got, ok)
	}

	// outermost braces win when objects nest
	got, ok = ExtractJSONObject(`{"a": {"b": 1}}`)
	if !ok || got != `{"a": {"b": 1}}` {
		t.Fatalf("got %q, ok=%v", got, ok)
	}

	if _, ok := ExtractJSONObject("no json here"); ok {
		t.Fatal("expected no object")
	}
	if _, ok := ExtractJSONObject("} backwards {"); ok {
		t.Fatal("expected no object for reversed braces")
	}
}
