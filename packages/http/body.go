package http

import (
	"bytes"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"sync"

	"github.com/abdul-hamid-achik/fetchquest/packages/core/errs"
	"github.com/abdul-hamid-achik/fetchquest/packages/core/options"
)

const (
	// UploadFieldName is the multipart field the form file is sent under
	UploadFieldName = "file"
	// UploadChunkSize bounds the buffer used to stream the upload file
	UploadChunkSize = 32 * 1024
)

type BodyKind int

const (
	BodyNone BodyKind = iota
	BodyRaw
	BodyUpload
)

func (k BodyKind) String() string {
	switch k {
	case BodyRaw:
		return "raw"
	case BodyUpload:
		return "upload"
	default:
		return "none"
	}
}

// BodySource is where request payload bytes come from.
type BodySource interface {
	Kind() BodyKind
	// Reader returns nil when there is no body
	Reader() io.Reader
	// ContentType returns the Content-Type the source requires, or ""
	ContentType() string
	// ContentLength returns the exact length, or -1 when unknown
	ContentLength() int64
	Close() error
}

// ResolveBody picks the single body source for opts. A form file takes precedence
// over raw data.
func ResolveBody(opts *options.Options) (BodySource, error) {
	switch {
	case opts.FormFile != "":
		return OpenUpload(opts.FormFile)
	case opts.Data != nil:
		return NewRawBody([]byte(*opts.Data)), nil
	default:
		return NoBody{}, nil
	}
}

type NoBody struct{}

func (NoBody) Kind() BodyKind { return BodyNone }
func (NoBody) Reader() io.Reader { return nil }
func (NoBody) ContentType() string { return "" }
func (NoBody) ContentLength() int64 { return 0 }
func (NoBody) Close() error { return nil }

// RawBody sends its bytes verbatim with no content type.
type RawBody struct {
	data []byte
}

func NewRawBody(data []byte) *RawBody {
	return &RawBody{data: data}
}

func (b *RawBody) Kind() BodyKind { return BodyRaw }
func (b *RawBody) Reader() io.Reader { return bytes.NewReader(b.data) }
func (b *RawBody) ContentType() string { return "" }
func (b *RawBody) ContentLength() int64 { return int64(len(b.data)) }
func (b *RawBody) Close() error { return nil }
func (b *RawBody) Bytes() []byte { return b.data }

// UploadBody streams a file as a single-part multipart/form-data body. The file is
// opened up front; a producer goroutine starts on the first Read and copies the file
// through a pipe one chunk at a time. The stream can be read once.
type UploadBody struct {
	path     string
	filename string
	file     *os.File
	size     int64

	pr *io.PipeReader
	pw *io.PipeWriter
	mw *multipart.Writer

	start     sync.Once
	fileClose sync.Once
	fileErr   error
}

// OpenUpload opens path for streaming. Open failures are file access errors.
func OpenUpload(path string) (*UploadBody, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.New(errs.KindFileAccess, "open upload file", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errs.New(errs.KindFileAccess, "stat upload file", err)
	}
	if info.IsDir() {
		f.Close()
		return nil, errs.Errorf(errs.KindFileAccess, "open upload file", "%s is a directory", path)
	}

	size := int64(-1)
	if info.Mode().IsRegular() {
		size = info.Size()
	}

	pr, pw := io.Pipe()
	return &UploadBody{
		path:     path,
		filename: filepath.Base(path),
		file:     f,
		size:     size,
		pr:       pr,
		pw:       pw,
		mw:       multipart.NewWriter(pw),
	}, nil
}

func (u *UploadBody) Kind() BodyKind { return BodyUpload }
func (u *UploadBody) Reader() io.Reader { return u }
func (u *UploadBody) ContentType() string { return u.mw.FormDataContentType() }
func (u *UploadBody) Filename() string { return u.filename }

// ContentLength is the multipart envelope plus the file size, or -1 for non-regular files.
func (u *UploadBody) ContentLength() int64 {
	if u.size < 0 {
		return -1
	}

	var envelope bytes.Buffer
	mw := multipart.NewWriter(&envelope)
	if err := mw.SetBoundary(u.mw.Boundary()); err != nil {
		return -1
	}
	if _, err := mw.CreateFormFile(UploadFieldName, u.filename); err != nil {
		return -1
	}
	if err := mw.Close(); err != nil {
		return -1
	}
	return int64(envelope.Len()) + u.size
}

func (u *UploadBody) Read(p []byte) (int, error) {
	u.start.Do(func() {
		go u.produce()
	})
	return u.pr.Read(p)
}

// Close stops the stream. If reading never began the file is closed here, otherwise
// the producer closes it once the pipe is torn down.
func (u *UploadBody) Close() error {
	started := true
	u.start.Do(func() {
		started = false
	})
	_ = u.pr.Close()
	if !started {
		_ = u.pw.Close()
		return u.closeFile()
	}
	return nil
}

func (u *UploadBody) produce() {
	err := u.writeParts()
	if cerr := u.closeFile(); err == nil && cerr != nil {
		err = errs.New(errs.KindFileAccess, "close upload file", cerr)
	}
	// a nil error closes the pipe with io.EOF
	_ = u.pw.CloseWithError(err)
}

func (u *UploadBody) writeParts() error {
	part, err := u.mw.CreateFormFile(UploadFieldName, u.filename)
	if err != nil {
		return err
	}

	// hide os.File's WriterTo so the copy stays within the chunk buffer
	src := struct{ io.Reader }{u.file}
	if _, err := io.CopyBuffer(part, src, make([]byte, UploadChunkSize)); err != nil {
		if err == io.ErrClosedPipe {
			return err
		}
		return errs.New(errs.KindFileAccess, "read upload file", err)
	}

	return u.mw.Close()
}

func (u *UploadBody) closeFile() error {
	u.fileClose.Do(func() {
		u.fileErr = u.file.Close()
	})
	return u.fileErr
}
