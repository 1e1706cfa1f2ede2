package uploader

import "fmt"

// MissingEntryError means the batch initialization response did not
// contain a session for a submitted key. Fatal: nothing has been
// uploaded yet and the whole batch is aborted.
type MissingEntryError struct {
	Key string
}

func (e *MissingEntryError) Error() string {
	return fmt.Sprintf("no file entry found for %q in initialization response", e.Key)
}

// PartUploadError is a failed part PUT against the storage endpoint.
type PartUploadError struct {
	Key    string
	Part   int64
	Status int
	Body   string
	Err    error
}

func (e *PartUploadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to upload part %d of %q: %v", e.Part, e.Key, e.Err)
	}
	return fmt.Sprintf("failed to upload part %d of %q (status %d): %s", e.Part, e.Key, e.Status, e.Body)
}

func (e *PartUploadError) Unwrap() error {
	return e.Err
}

// CommitError is a failed commit call after all parts of a file were
// uploaded.
type CommitError struct {
	Key string
	Err error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("failed to commit %q: %v", e.Key, e.Err)
}

func (e *CommitError) Unwrap() error {
	return e.Err
}
