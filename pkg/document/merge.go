package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

func init() {
	// keep pdfcpu from creating a config dir under $HOME
	api.DisableConfigDir()
}

// ErrEmptyDocument is returned for zero-length input. pdfcpu does not
// terminate on it, so it never reaches the parser.
var ErrEmptyDocument = errors.New("empty document")

type mergeFunc func(rsc []io.ReadSeeker, w io.Writer) error

// Merger appends attachment PDFs to a base document.
type Merger struct {
	merge mergeFunc
}

func NewMerger() *Merger {
	return &Merger{merge: func(rsc []io.ReadSeeker, w io.Writer) error {
		return api.MergeRaw(rsc, w, false, newConf())
	}}
}

func newConf() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// PageCount parses b and returns its number of pages.
func (m *Merger) PageCount(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, ErrEmptyDocument
	}
	return api.PageCount(bytes.NewReader(b), newConf())
}

// Merge returns base followed by every page of each readable attachment,
// in order. Attachments that fail to parse, have no pages or break the merge
// are skipped and counted. Only an unreadable base is an error.
func (m *Merger) Merge(base []byte, attachments [][]byte) ([]byte, int, error) {
	if _, err := m.PageCount(base); err != nil {
		return nil, 0, fmt.Errorf("base document: %w", err)
	}

	var readable [][]byte
	skipped := 0
	for i, a := range attachments {
		n, err := m.PageCount(a)
		if err != nil || n == 0 {
			slog.Warn("attachment skipped", "index", i, "pages", n, "error", err)
			skipped++
			continue
		}
		readable = append(readable, a)
	}
	if len(readable) == 0 {
		return base, skipped, nil
	}

	out, err := m.mergeAll(append([][]byte{base}, readable...))
	if err == nil {
		return out, skipped, nil
	}
	slog.Warn("merge failed, appending attachments one at a time", "error", err)

	// The slow path isolates the attachment pdfcpu chokes on.
	cur := base
	for i, a := range readable {
		next, err := m.mergeAll([][]byte{cur, a})
		if err != nil {
			slog.Warn("attachment skipped", "index", i, "error", err)
			skipped++
			continue
		}
		cur = next
	}
	return cur, skipped, nil
}

func (m *Merger) mergeAll(docs [][]byte) ([]byte, error) {
	rsc := make([]io.ReadSeeker, len(docs))
	for i, d := range docs {
		rsc[i] = bytes.NewReader(d)
	}
	var out bytes.Buffer
	if err := m.merge(rsc, &out); err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	return out.Bytes(), nil
}
