package cmd

// Error is a user facing error printed without a stack trace.
type Error struct {
	// Cause is a short description of what went wrong
	Cause string
	// OriginalError is the error that bubbled up
	OriginalError error
	// Suggestion is a full sentence telling the user how to continue
	Suggestion string
}

func (e Error) Error() string {
	if e.OriginalError == nil && len(e.Cause) == 0 {
		return e.Suggestion
	}

	output := "Error: " + e.Cause
	if e.OriginalError != nil {
		output += "\n" + e.OriginalError.Error()
	}
	if len(e.Suggestion) > 0 {
		output += "\n\n" + e.Suggestion
	}
	return output
}

func (e Error) Unwrap() error {
	return e.OriginalError
}
