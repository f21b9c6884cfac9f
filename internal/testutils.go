// Package internal holds the small assertion helpers the skyjo tests share.
// Anything richer goes through testify.
package internal

import (
	"fmt"
	"reflect"
	"testing"
	"time"
)

// mismatch reports got against want without stopping the test.
func mismatch(t *testing.T, got, want interface{}) {
	t.Helper()
	t.Errorf("\nGot:  %s\nwant: %s", describe(got), describe(want))
}

// describe prints cards, phases and actions through their String methods,
// everything else with field names.
func describe(v interface{}) string {
	if _, ok := v.(fmt.Stringer); ok {
		return fmt.Sprintf("%v (%+v)", v, v)
	}
	return fmt.Sprintf("%+v", v)
}

// AssertNoError stops the test on a non-nil error.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertErrored stops the test when err is nil.
func AssertErrored(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
}

// AssertEqual compares with ==, so both sides must be comparable.
func AssertEqual(t *testing.T, got, want interface{}) {
	t.Helper()
	if got != want {
		mismatch(t, got, want)
	}
}

// AssertDeepEqual is AssertEqual for slices, maps and boards.
func AssertDeepEqual(t *testing.T, got, want interface{}) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		mismatch(t, got, want)
	}
}

func AssertTrue(t *testing.T, got bool) {
	t.Helper()
	if !got {
		t.Error("expected true, got false")
	}
}

// Within runs fn in the background and fails if it has not returned after d.
// Used for channel reads that would otherwise hang the test binary.
func Within(t *testing.T, d time.Duration, fn func()) {
	t.Helper()

	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-done:
	case <-timer.C:
		t.Errorf("did not finish within %s", d)
	}
}
