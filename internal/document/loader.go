// Package document loads the single context document injected into every model request.
package document

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/ledongthuc/pdf"
)

// DefaultPath is the knowledge base bundled alongside the service
const DefaultPath = "RAG_Complete_Knowledge_Base.pdf"

// PageDelimiter separates consecutive pages in the extracted text
const PageDelimiter = "\n\n"

// ErrLoad is matched by every error returned from Loader.Text
var ErrLoad = errors.New("failed to load context document")

// LoadError describes why the context document could not be loaded
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%v %s: %v", ErrLoad, e.Path, e.Err)
}

func (e *LoadError) Unwrap() []error {
	return []error{ErrLoad, e.Err}
}

// PageExtractor returns the plain text of every page of a document, in page order
type PageExtractor func(path string) ([]string, error)

// Option configures a Loader
type Option func(*Loader)

// WithExtractor replaces the PDF page extractor
func WithExtractor(extract PageExtractor) Option {
	return func(l *Loader) {
		l.extract = extract
	}
}

// Loader extracts the text of one document and caches it for the process lifetime
type Loader struct {
	path    string
	extract PageExtractor

	once sync.Once
	text string
	err  error
}

// NewLoader creates a loader for the document at path
func NewLoader(path string, opts ...Option) *Loader {
	l := &Loader{
		path:    path,
		extract: ExtractPDFPages,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Path returns the document path
func (l *Loader) Path() string {
	return l.path
}

// Text returns the full document text. The file is read on the first call only;
// later calls return the cached result, including a cached failure
func (l *Loader) Text() (string, error) {
	l.once.Do(func() {
		l.text, l.err = l.load()
		if l.err == nil {
			log.Printf("[DOCUMENT]: Loaded %s (%d characters)", l.path, len(l.text))
		}
	})
	return l.text, l.err
}

func (l *Loader) load() (string, error) {
	info, err := os.Stat(l.path)
	if err != nil {
		return "", &LoadError{Path: l.path, Err: err}
	}
	if info.IsDir() {
		return "", &LoadError{Path: l.path, Err: errors.New("path is a directory")}
	}

	pages, err := l.extract(l.path)
	if err != nil {
		return "", &LoadError{Path: l.path, Err: err}
	}

	text := strings.TrimSpace(strings.Join(pages, PageDelimiter))
	if text == "" {
		return "", &LoadError{Path: l.path, Err: errors.New("document contains no extractable text")}
	}

	return text, nil
}

// ExtractPDFPages reads the plain text of each page of a PDF file
func ExtractPDFPages(path string) (pages []string, err error) {
	// Malformed files can panic deep inside the parser
	defer func() {
		if r := recover(); r != nil {
			pages, err = nil, fmt.Errorf("invalid PDF: %v", r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("invalid PDF: %w", err)
	}
	defer f.Close()

	total := reader.NumPage()
	pages = make([]string, 0, total)
	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to extract page %d: %w", i, err)
		}
		pages = append(pages, strings.TrimSpace(text))
	}

	return pages, nil
}
