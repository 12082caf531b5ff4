// Package history saves and loads debugger histories.
//
// A history file is the JSON document of a File. Its name is derived from the
// number of messages it holds, "history-<N>.txt".
package history

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Version is the format version written to new files.
const Version = 1

// Metadata identifies the program a history was recorded from.
type Metadata struct {
	Program string `json:"program"`
	Session string `json:"session,omitempty"`
	Version int    `json:"version"`
}

// File is a saved history: the messages in the order they were delivered,
// each encoded by the program, plus the summary label of each message.
type File struct {
	Metadata Metadata          `json:"metadata"`
	Messages []json.RawMessage `json:"history"`
	Labels   []string          `json:"labels,omitempty"`
}

// Len returns the number of messages in f.
func (f *File) Len() int {
	return len(f.Messages)
}

// ImportError reports a history that cannot be loaded into the running
// program.
type ImportError struct {
	Reason string
	Err    error
}

func (e *ImportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot import history: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("cannot import history: %s", e.Reason)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// IsImportError reports whether err is an ImportError.
func IsImportError(err error) bool {
	var ie *ImportError
	return errors.As(err, &ie)
}

// Encode returns the JSON document of f.
func Encode(f *File) ([]byte, error) {
	if f.Metadata.Version == 0 {
		f.Metadata.Version = Version
	}
	data, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal history: %w", err)
	}
	return data, nil
}

// Decode parses a history document. When program is not empty the file must
// have been recorded from a program with that name.
func Decode(data []byte, program string) (*File, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, &ImportError{Reason: "malformed history", Err: err}
	}
	if f.Metadata.Version > Version {
		return nil, &ImportError{Reason: fmt.Sprintf("unsupported version %d", f.Metadata.Version)}
	}
	if program != "" && f.Metadata.Program != program {
		return nil, &ImportError{Reason: fmt.Sprintf("recorded from %q, not %q", f.Metadata.Program, program)}
	}
	if len(f.Labels) > 0 && len(f.Labels) != len(f.Messages) {
		return nil, &ImportError{Reason: "labels do not match messages"}
	}
	return &f, nil
}
