package mapper

import (
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rdmup/rdmup/pkg/schemas"
)

// DefaultPublisher is set on records built from simplified metadata
// unless the metadata names one itself.
const DefaultPublisher = "Universität Münster"

var validate = validator.New()

// Metadata is the simplified metadata shape accepted from flags or a
// metadata file that does not carry a complete record payload.
type Metadata struct {
	Title           string            `json:"title" yaml:"title" validate:"required"`
	Description     string            `json:"description,omitempty" yaml:"description"`
	Subjects        []schemas.Subject `json:"subjects,omitempty" yaml:"subjects"`
	ResourceType    string            `json:"resource_type,omitempty" yaml:"resource_type"`
	Rights          []map[string]any  `json:"rights,omitempty" yaml:"rights"`
	Creators        []map[string]any  `json:"creators,omitempty" yaml:"creators"`
	PublicationDate string            `json:"publication_date,omitempty" yaml:"publication_date"`
	Publisher       string            `json:"publisher,omitempty" yaml:"publisher"`
}

func (m *Metadata) Validate() error {
	return validate.Struct(m)
}

// ToRecord maps simplified metadata to a full record payload. The
// publication date falls back to the current year, the resource type
// to "dataset", and both record and files visibility follow the target
// system's restricted flag.
func ToRecord(md Metadata, restricted bool) schemas.Record {
	access := schemas.AccessPublic
	if restricted {
		access = schemas.AccessRestricted
	}

	pubDate := strings.TrimSpace(md.PublicationDate)
	if pubDate == "" {
		pubDate = strconv.Itoa(time.Now().Year())
	}

	resourceType := md.ResourceType
	if resourceType == "" {
		resourceType = schemas.DefaultResourceType
	}

	publisher := md.Publisher
	if publisher == "" {
		publisher = DefaultPublisher
	}

	return schemas.Record{
		Access: schemas.Access{Record: access, Files: access},
		Files:  schemas.FilesOption{Enabled: true},
		Metadata: schemas.RecordMetadata{
			Title:           md.Title,
			ResourceType:    schemas.ResourceType{ID: resourceType},
			PublicationDate: pubDate,
			Publisher:       publisher,
			Description:     md.Description,
			Subjects:        md.Subjects,
			Rights:          md.Rights,
			Creators:        md.Creators,
		},
	}
}
