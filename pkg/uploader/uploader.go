package uploader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"

	"github.com/rdmup/rdmup/internal/md5"
	"github.com/rdmup/rdmup/pkg/client"
	"github.com/rdmup/rdmup/pkg/schemas"
	"go.uber.org/zap"
)

// fileDescription is the fixed metadata attached to every registered
// file.
const fileDescription = "Uploaded file."

type Option func(*Uploader)

func WithPartSize(n int64) Option {
	return func(u *Uploader) {
		if n > 0 {
			u.partSize = n
		}
	}
}

func WithProgress(s Sink) Option {
	return func(u *Uploader) {
		u.progress = s
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(u *Uploader) {
		u.log = logger.Named("uploader")
	}
}

// Uploader drives the multipart upload protocol against a draft:
// batch-initialize transfer sessions, stream parts to presigned
// storage URLs, commit each file. Strictly sequential, one file and
// one part at a time; the first failure aborts the whole batch.
type Uploader struct {
	client   *client.Client
	partSize int64
	progress Sink
	log      *zap.Logger
}

func New(c *client.Client, opts ...Option) *Uploader {
	u := &Uploader{
		client:   c,
		partSize: DefaultPartSize,
		progress: NopSink(),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// CreateDraft submits the record payload and validates that the
// response carries an id and a browsable URL. No file initialization
// happens when the response is structurally invalid.
func (u *Uploader) CreateDraft(ctx context.Context, payload any) (*schemas.Draft, error) {
	var draft schemas.Draft
	if err := u.client.Post(ctx, "/api/records", payload, &draft); err != nil {
		return nil, err
	}
	if err := draft.Validate(); err != nil {
		return nil, &client.ProtocolError{URL: "/api/records", Err: err}
	}
	u.log.Info("draft created", zap.String("id", draft.ID), zap.String("url", draft.Links.SelfHTML))
	return &draft, nil
}

// UploadFiles registers all targets on the draft in one batch call and
// then uploads and commits them one by one.
func (u *Uploader) UploadFiles(ctx context.Context, draftID string, targets []Target) error {
	inits := make([]schemas.FileInit, 0, len(targets))
	for _, t := range targets {
		inits = append(inits, schemas.FileInit{
			Key:      t.Key,
			Size:     t.Size,
			Metadata: schemas.FileMetadata{Description: fileDescription},
			Transfer: schemas.TransferInit{
				Type:     schemas.TransferTypeMultipart,
				Parts:    PartCount(t.Size, u.partSize),
				PartSize: u.partSize,
			},
		})
	}

	initPath := fmt.Sprintf("/api/records/%s/draft/files", draftID)
	var resp schemas.InitResponse
	if err := u.client.Post(ctx, initPath, inits, &resp); err != nil {
		return err
	}

	// Every submitted key must have a session before any byte moves.
	sessions := make([]*schemas.FileEntry, 0, len(targets))
	for _, t := range targets {
		entry := resp.Entry(t.Key)
		if entry == nil {
			return &MissingEntryError{Key: t.Key}
		}
		if err := entry.Validate(); err != nil {
			return &client.ProtocolError{URL: initPath, Err: err}
		}
		sessions = append(sessions, entry)
	}

	for i, t := range targets {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := u.uploadFile(ctx, draftID, t, sessions[i]); err != nil {
			return err
		}
	}
	return nil
}

func (u *Uploader) uploadFile(ctx context.Context, draftID string, t Target, entry *schemas.FileEntry) error {
	u.progress.Start(t.Key, entry.Size)

	f, err := os.Open(t.Path)
	if err != nil {
		err = fmt.Errorf("local file %s is no longer readable: %w", t.Path, err)
		u.progress.Fail(t.Key, err)
		return err
	}
	defer f.Close()

	links := append([]schemas.PartLink(nil), entry.Links.Parts...)
	sort.Slice(links, func(i, j int) bool { return links[i].Part < links[j].Part })

	for _, link := range links {
		if err := ctx.Err(); err != nil {
			u.progress.Fail(t.Key, err)
			return err
		}
		if err := u.uploadPart(ctx, f, t.Key, entry, link); err != nil {
			u.progress.Fail(t.Key, err)
			return err
		}
	}

	commitPath := fmt.Sprintf("/api/records/%s/draft/files/%s/commit", draftID, t.Key)
	if err := u.client.Post(ctx, commitPath, nil, nil); err != nil {
		cerr := &CommitError{Key: t.Key, Err: err}
		u.progress.Fail(t.Key, cerr)
		return cerr
	}

	u.progress.Done(t.Key)
	u.log.Info("file committed", zap.String("key", t.Key), zap.Int64("size", entry.Size))
	return nil
}

func (u *Uploader) uploadPart(ctx context.Context, f *os.File, key string, entry *schemas.FileEntry, link schemas.PartLink) error {
	size := PartSizeOf(entry.Size, entry.Transfer.PartSize, entry.Transfer.Parts, link.Part)
	buf := make([]byte, size)

	if _, err := f.Seek((link.Part-1)*entry.Transfer.PartSize, io.SeekStart); err != nil {
		return fmt.Errorf("seek to part %d of %q: %w", link.Part, key, err)
	}
	if _, err := io.ReadFull(f, buf); err != nil {
		return fmt.Errorf("read part %d of %q (file changed during upload?): %w", link.Part, key, err)
	}

	checksum := md5.Base64FromBytes(buf)
	status, body, err := u.client.PutPresigned(ctx, link.URL, buf, checksum)
	if err != nil {
		return &PartUploadError{Key: key, Part: link.Part, Err: err}
	}
	if status != http.StatusOK {
		return &PartUploadError{Key: key, Part: link.Part, Status: status, Body: body}
	}

	u.progress.Advance(key, size)
	u.log.Debug("part uploaded",
		zap.String("key", key),
		zap.Int64("part", link.Part),
		zap.Int64("size", size))
	return nil
}
