package errors

import (
	"context"
	goerrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type classedErr struct{ class string }

func (e classedErr) Error() string      { return "classed" }
func (e classedErr) ErrorClass() string { return e.class }

func TestClassify(t *testing.T) {
	assert.Equal(t, "", Classify(nil))
	assert.Equal(t, "auth", Classify(fmt.Errorf("wrap: %w", classedErr{class: "auth"})))
	assert.Equal(t, "errors_errorstring", Classify(fmt.Errorf("outer: %w", goerrors.New("inner"))))
	assert.Equal(t, "context_deadlineexceedederror", Classify(context.DeadlineExceeded))
}
