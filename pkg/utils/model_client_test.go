package utils

import (
	"context"
	"errors"
	"testing"
)

// TestCleanJSONResponse verifies markdown fences are stripped whichever way
// the completion wraps them.
func TestCleanJSONResponse(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```JSON\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  \n{\"a\":1}\n  ", `{"a":1}`},
		{"", ""},
	}
	for _, tc := range cases {
		if got := cleanJSONResponse(tc.in); got != tc.want {
			t.Errorf("cleanJSONResponse(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

// TestClassifyCallError verifies deadline errors map to timeout and
// everything else to network.
func TestClassifyCallError(t *testing.T) {
	me := classifyCallError("generate_json", context.DeadlineExceeded)
	if me.Kind != ModelErrorTimeout {
		t.Fatalf("deadline error classified as %s", me.Kind)
	}

	me = classifyCallError("generate_json", errors.New("connection refused"))
	if me.Kind != ModelErrorNetwork {
		t.Fatalf("transport error classified as %s", me.Kind)
	}
	if me.Op != "generate_json" {
		t.Fatalf("op = %q", me.Op)
	}
}

// TestModelErrorUnwrap verifies the wrapped cause stays reachable through
// errors.Is.
func TestModelErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := NewModelError(ModelErrorRefusal, "generate_image", cause)

	if !errors.Is(err, cause) {
		t.Fatal("cause not reachable via errors.Is")
	}
	me, ok := AsModelError(error(err))
	if !ok || me.Kind != ModelErrorRefusal {
		t.Fatalf("AsModelError: %v, %v", me, ok)
	}
}
