package validate

import (
	"errors"
	"fmt"
	"testing"
)

type sample struct {
	Age    int     `json:"age" validate:"gte=2,lte=120"`
	Weight float64 `json:"weight" validate:"gt=0"`
	Gender string  `json:"gender" validate:"oneof=male female"`
	Extra  *int    `json:"extra,omitempty" validate:"omitempty,lte=10"`
}

func TestStructCollectsFieldErrors(t *testing.T) {
	extra := 11
	verr := Struct(sample{Age: 1, Weight: 0, Gender: "x", Extra: &extra})

	want := map[string]string{
		"age":    "must be at least 2",
		"weight": "must be greater than 0",
		"gender": "must be one of: male, female",
		"extra":  "must be at most 10",
	}
	if len(verr.Fields) != len(want) {
		t.Fatalf("expected %d field errors, got %v", len(want), verr.Fields)
	}
	for k, v := range want {
		if verr.Fields[k] != v {
			t.Errorf("field %s: want %q, got %q", k, v, verr.Fields[k])
		}
	}
}

func TestStructValid(t *testing.T) {
	if err := Struct(sample{Age: 30, Weight: 70, Gender: "male"}).OrNil(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestCheckPrefix(t *testing.T) {
	verr := &ValidationError{}
	verr.Check("person", sample{Age: 30, Weight: 70, Gender: "other"})
	if _, ok := verr.Fields["person.gender"]; !ok {
		t.Fatalf("expected prefixed field, got %v", verr.Fields)
	}
}

func TestAddKeepsFirstMessage(t *testing.T) {
	verr := &ValidationError{}
	verr.Add("age", "first")
	verr.Add("age", "second")
	if verr.Fields["age"] != "first" {
		t.Fatalf("expected first message to win, got %q", verr.Fields["age"])
	}
	if !verr.Has("age") || verr.Has("weight") {
		t.Fatalf("Has reported wrong fields: %v", verr.Fields)
	}
}

func TestAs(t *testing.T) {
	verr := &ValidationError{}
	verr.Add("age", "bad")
	wrapped := fmt.Errorf("calc: %w", verr.OrNil())

	got, ok := As(wrapped)
	if !ok || got.Fields["age"] != "bad" {
		t.Fatalf("As did not unwrap the validation error: %v", wrapped)
	}
	if _, ok := As(errors.New("plain")); ok {
		t.Fatalf("As should not match a plain error")
	}
	if verr.Error() != "invalid input: age: bad" {
		t.Fatalf("unexpected message %q", verr.Error())
	}
}
