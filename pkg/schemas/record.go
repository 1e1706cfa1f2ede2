package schemas

import "fmt"

const (
	AccessPublic     = "public"
	AccessRestricted = "restricted"

	DefaultResourceType = "dataset"
)

type Access struct {
	Record string `json:"record"`
	Files  string `json:"files"`
}

type FilesOption struct {
	Enabled bool `json:"enabled"`
}

type ResourceType struct {
	ID string `json:"id"`
}

type Subject struct {
	Subject string `json:"subject" yaml:"subject"`
}

// RecordMetadata is the metadata section of an InvenioRDM record
// payload. Rights and creators are passed through untouched, so they
// stay loosely typed.
type RecordMetadata struct {
	Title           string           `json:"title"`
	ResourceType    ResourceType     `json:"resource_type"`
	PublicationDate string           `json:"publication_date"`
	Publisher       string           `json:"publisher,omitempty"`
	Description     string           `json:"description,omitempty"`
	Subjects        []Subject        `json:"subjects,omitempty"`
	Rights          []map[string]any `json:"rights,omitempty"`
	Creators        []map[string]any `json:"creators,omitempty"`
}

// Record is the full payload submitted to POST /api/records.
type Record struct {
	Access   Access         `json:"access"`
	Files    FilesOption    `json:"files"`
	Metadata RecordMetadata `json:"metadata"`
}

type DraftLinks struct {
	SelfHTML string `json:"self_html"`
}

// Draft is the server response to draft creation. Only the fields the
// uploader relies on are decoded.
type Draft struct {
	ID    string     `json:"id"`
	Links DraftLinks `json:"links"`
}

func (d *Draft) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("draft response missing id")
	}
	if d.Links.SelfHTML == "" {
		return fmt.Errorf("draft response missing links.self_html")
	}
	return nil
}
