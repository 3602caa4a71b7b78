package override_test

import (
	"testing"

	"go.uber.org/goleak"
)

// Publishing runs in goroutines; none may outlive the tests.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
