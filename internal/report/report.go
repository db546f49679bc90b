package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// Format selects the report encoding.
type Format string

const (
	// FormatText renders one "key: value" line per field.
	FormatText Format = "text"
	// FormatJSON renders a JSON object.
	FormatJSON Format = "json"
)

// ErrUnknownFormat is returned for formats other than text and json.
var ErrUnknownFormat = errors.New("unknown report format")

// Result is the probe outcome to render.
type Result struct {
	// Name is the display version.
	Name string
	// ReleaseTarget is the release family.
	ReleaseTarget string
	// Revision is the server revision, e.g. 1.19 R3.
	Revision string
	// Accessor is the symbol the display version was read through.
	Accessor string
}

// ParseFormat converts a flag value into a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Write renders r to w.
func Write(w io.Writer, r *Result, format Format) error {
	switch format {
	case FormatText, "":
		return writeText(w, r)
	case FormatJSON:
		return writeJSON(w, r)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func writeText(w io.Writer, r *Result) error {
	_, err := fmt.Fprintf(w,
		"name: %s\nrelease_target: %s\nrevision: %s\naccessor: %s\n",
		r.Name, r.ReleaseTarget, r.Revision, r.Accessor)
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}

func writeJSON(w io.Writer, r *Result) error {
	message, err := structpb.NewStruct(map[string]any{
		"name":           r.Name,
		"release_target": r.ReleaseTarget,
		"revision":       r.Revision,
		"accessor":       r.Accessor,
	})
	if err != nil {
		return fmt.Errorf("build report: %w", err)
	}

	marshalOptions := protojson.MarshalOptions{
		Multiline: true,
		Indent:    "  ",
	}

	data, err := marshalOptions.Marshal(message)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	if _, err = w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}
