package output

import (
	"io"
	"os"

	"github.com/abdul-hamid-achik/fetchquest/packages/core/errs"
)

// OpenSink returns the output destination. An empty path or "-" selects stdout, whose
// Close is a no-op; anything else is created or truncated through openFile.
func OpenSink(path string, stdout io.Writer, openFile func(string) (io.WriteCloser, error)) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{stdout}, nil
	}

	if openFile == nil {
		openFile = createFile
	}
	f, err := openFile(path)
	if err != nil {
		return nil, errs.New(errs.KindFileAccess, "create output file", err)
	}
	return f, nil
}

func createFile(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
