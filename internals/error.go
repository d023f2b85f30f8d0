package internals

// This file handles an error collector obj

type ErrorCollector struct {
	Errors []error
	// once sealed, further errors are dropped
	sealed bool
}

func NewErrorCollector() *ErrorCollector {
	return &ErrorCollector{
		Errors: make([]error, 0),
	}
}

func (ec *ErrorCollector) Add(err error) {
	if ec.sealed || err == nil {
		return
	}
	ec.Errors = append(ec.Errors, err)
}

// Seal records err as the last accepted error.
func (ec *ErrorCollector) Seal(err error) {
	ec.Add(err)
	ec.sealed = true
}

func (ec *ErrorCollector) HasErrors() bool {
	return len(ec.Errors) > 0
}

// Messages returns the rendered form of every collected error, in order.
func (ec *ErrorCollector) Messages() []string {
	msgs := make([]string, 0, len(ec.Errors))
	for _, err := range ec.Errors {
		msgs = append(msgs, err.Error())
	}
	return msgs
}
