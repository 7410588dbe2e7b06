package harness

import "fmt"

// HandlerPanicError is returned by Perform when the handler under test panics.
type HandlerPanicError struct {
	Method string
	URI    string
	Value  interface{}
	Stack  []byte
}

func (e *HandlerPanicError) Error() string {
	return fmt.Sprintf("handler panicked during %s %s: %v", e.Method, e.URI, e.Value)
}

// Unwrap returns the panic value if it was an error.
func (e *HandlerPanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// ContentDecodingError is returned by Result.ContentAsString when the body cannot be read as
// text in its declared character set.
type ContentDecodingError struct {
	Charset string
	Err     error
}

func (e *ContentDecodingError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("response content is not valid %s text", e.Charset)
	}
	return fmt.Sprintf("cannot decode response content as %s: %s", e.Charset, e.Err)
}

func (e *ContentDecodingError) Unwrap() error {
	return e.Err
}
