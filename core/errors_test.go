package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorClassification(t *testing.T) {
	notFound := NotFoundf("list %s", "l1")
	if !IsNotFound(notFound) {
		t.Error("NotFoundf result not classified as not found")
	}
	if IsInvalidInput(notFound) {
		t.Error("not-found rejection misclassified as invalid input")
	}
	if notFound.Error() != "list l1: not found" {
		t.Errorf("message: got %q", notFound.Error())
	}

	invalid := InvalidInputf("unknown product %d", 99)
	if !IsInvalidInput(invalid) {
		t.Error("InvalidInputf result not classified as invalid input")
	}
	if invalid.Error() != "unknown product 99: invalid input" {
		t.Errorf("message: got %q", invalid.Error())
	}
}

func TestErrorWrappingSurvivesFurtherWrapping(t *testing.T) {
	err := fmt.Errorf("handling request: %w", NotFoundf("item %s", "i1"))
	if !IsNotFound(err) {
		t.Error("classification lost through an extra wrap")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Error("errors.Is does not reach the sentinel")
	}
}

func TestPlainErrorsAreNeitherClass(t *testing.T) {
	err := errors.New("disk full")
	if IsNotFound(err) || IsInvalidInput(err) {
		t.Error("unrelated error classified as a structured rejection")
	}
}
