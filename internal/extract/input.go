package extract

import (
	"fmt"
	"os"
)

// InputKind tags the source of a document payload.
type InputKind int

const (
	// InputBytes is an in-memory PDF payload (e.g. an upload body).
	InputBytes InputKind = iota
	// InputFile is a path to a PDF on disk.
	InputFile
	// InputText is already-extracted text that skips the PDF chain.
	InputText
)

// Input is a tagged union. Exactly one of Data, Path, or Text is meaningful,
// selected by Kind. Construct via FromBytes, FromFile, or FromText.
type Input struct {
	Kind InputKind
	Data []byte
	Path string
	Text string
}

// FromBytes wraps an in-memory PDF payload.
func FromBytes(data []byte) Input {
	return Input{Kind: InputBytes, Data: data}
}

// FromFile wraps a path to a PDF on disk.
func FromFile(path string) Input {
	return Input{Kind: InputFile, Path: path}
}

// FromText wraps text that needs no PDF extraction.
func FromText(text string) Input {
	return Input{Kind: InputText, Text: text}
}

// payload loads the PDF bytes for bytes- and file-kind inputs.
func (in Input) payload() ([]byte, error) {
	switch in.Kind {
	case InputBytes:
		return in.Data, nil
	case InputFile:
		data, err := os.ReadFile(in.Path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", in.Path, err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("input kind %d carries no PDF payload", in.Kind)
	}
}
