package record

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// DocumentExt is the file extension of records stored as documents on disk.
const DocumentExt = ".md"

// ParseEmployee reads an employee document (YAML front matter).
// The ID is not part of the document; callers set it from the filename.
func ParseEmployee(r io.Reader) (*Employee, error) {
	return parseDocument[Employee](r)
}

// ParseUser reads a user document (YAML front matter).
func ParseUser(r io.Reader) (*User, error) {
	return parseDocument[User](r)
}

func parseDocument[T any](r io.Reader) (*T, error) {
	var doc T
	if _, err := frontmatter.Parse(r, &doc); err != nil {
		return nil, fmt.Errorf("parsing front matter: %w", err)
	}
	return &doc, nil
}

// Render serializes the employee as a front matter document.
func (e *Employee) Render() ([]byte, error) {
	return renderDocument(e)
}

// Render serializes the user as a front matter document.
func (u *User) Render() ([]byte, error) {
	return renderDocument(u)
}

func renderDocument(v any) ([]byte, error) {
	fmBytes, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshaling front matter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(fmBytes)
	buf.WriteString("---\n")
	return buf.Bytes(), nil
}

// BuildFilename returns the document filename for a record ID.
func BuildFilename(id string) string {
	return id + DocumentExt
}

// ParseFilename extracts the record ID from a document filename.
// ok is false for files that are not documents.
func ParseFilename(name string) (id string, ok bool) {
	id, ok = strings.CutSuffix(name, DocumentExt)
	if !ok || id == "" || strings.HasPrefix(id, ".") {
		return "", false
	}
	return id, true
}
