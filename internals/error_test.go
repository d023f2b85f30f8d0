package internals

import (
	"errors"
	"testing"

	"github.com/go-test/deep"
)

func TestErrorCollector(t *testing.T) {
	ec := NewErrorCollector()
	if ec.HasErrors() {
		t.Fatal("fresh collector should be empty")
	}

	ec.Add(errors.New("first"))
	ec.Add(nil)
	ec.Seal(errors.New("second"))
	ec.Add(errors.New("dropped"))

	if diff := deep.Equal(ec.Messages(), []string{"first", "second"}); diff != nil {
		t.Error(diff)
	}
}
