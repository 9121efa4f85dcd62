package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/bytedance/sonic"
)

// OutputFormatter writes command results either as the JSON envelope
// or as human-readable text
type OutputFormatter struct {
	JSON bool

	Out io.Writer
	Err io.Writer
}

// Success outputs a successful result. pretty renders the human-readable form;
// when nil, data is printed with %+v.
func (f *OutputFormatter) Success(data any, pretty func() string) error {
	if f.JSON {
		return sonic.ConfigStd.NewEncoder(f.Out).Encode(map[string]any{
			"success": true,
			"data":    data,
		})
	}

	if pretty != nil {
		_, err := fmt.Fprintln(f.Out, pretty())
		return err
	}
	_, err := fmt.Fprintf(f.Out, "%+v\n", data)
	return err
}

// ErrorWithSuggestion outputs error information with an optional suggestion
func (f *OutputFormatter) ErrorWithSuggestion(err error, suggestion string) error {
	if f.JSON {
		errData := map[string]any{
			"code":    ErrorCode(err),
			"message": err.Error(),
		}
		if suggestion != "" {
			errData["suggestion"] = suggestion
		}
		return sonic.ConfigStd.NewEncoder(f.Out).Encode(map[string]any{
			"success": false,
			"error":   errData,
		})
	}

	if _, werr := fmt.Fprintf(f.Err, "Error: %s\n", err); werr != nil {
		return werr
	}
	if suggestion != "" {
		_, werr := fmt.Fprintf(f.Err, "Suggestion: %s\n", suggestion)
		return werr
	}
	return nil
}

// reportedError marks an error the formatter has already written out
type reportedError struct{ err error }

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// Fail writes err (and the optional suggestion) and returns it marked as
// reported, so the caller does not print it a second time.
func (f *OutputFormatter) Fail(err error, suggestion string) error {
	_ = f.ErrorWithSuggestion(err, suggestion)
	return &reportedError{err: err}
}

// IsReported reports whether err was already written by an OutputFormatter
func IsReported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}
