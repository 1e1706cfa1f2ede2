package schemas

import "fmt"

// TransferTypeMultipart is the transfer type requested for every file
// registered on a draft.
const TransferTypeMultipart = "M"

type FileMetadata struct {
	Description string `json:"description"`
}

type TransferInit struct {
	Type     string `json:"type"`
	Parts    int64  `json:"parts"`
	PartSize int64  `json:"part_size"`
}

// FileInit is one element of the batch request to
// POST /api/records/{id}/draft/files.
type FileInit struct {
	Key      string       `json:"key"`
	Size     int64        `json:"size"`
	Metadata FileMetadata `json:"metadata"`
	Transfer TransferInit `json:"transfer"`
}

type PartLink struct {
	Part int64  `json:"part"`
	URL  string `json:"url"`
}

type EntryLinks struct {
	Parts []PartLink `json:"parts"`
}

type TransferEntry struct {
	Type     string `json:"type"`
	Parts    int64  `json:"parts"`
	PartSize int64  `json:"part_size"`
}

// FileEntry is the per-file transfer session returned by the batch
// initialization call.
type FileEntry struct {
	Key      string        `json:"key"`
	Size     int64         `json:"size"`
	Transfer TransferEntry `json:"transfer"`
	Links    EntryLinks    `json:"links"`
}

type InitResponse struct {
	Entries []FileEntry `json:"entries"`
}

// Validate checks the structural invariants the part loop depends on:
// a positive part size for non-empty files and 1-based part numbers
// within the declared count.
func (e *FileEntry) Validate() error {
	if e.Key == "" {
		return fmt.Errorf("file entry missing key")
	}
	if e.Size > 0 && e.Transfer.PartSize <= 0 {
		return fmt.Errorf("file entry %q has invalid part_size %d", e.Key, e.Transfer.PartSize)
	}
	for _, p := range e.Links.Parts {
		if p.Part < 1 || p.Part > e.Transfer.Parts {
			return fmt.Errorf("file entry %q has out-of-range part number %d", e.Key, p.Part)
		}
		if p.URL == "" {
			return fmt.Errorf("file entry %q has no upload url for part %d", e.Key, p.Part)
		}
	}
	return nil
}

// Entry returns the session for key, or nil when the response does not
// contain it.
func (r *InitResponse) Entry(key string) *FileEntry {
	for i := range r.Entries {
		if r.Entries[i].Key == key {
			return &r.Entries[i]
		}
	}
	return nil
}
