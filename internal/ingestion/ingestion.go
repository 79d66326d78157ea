// Package ingestion converts uploaded binaries into the transport-safe
// encoding the model backend accepts, and flattens HTML résumés back to text.
package ingestion

import (
	"encoding/base64"
	"io"

	"github.com/odiseo153/tailorcv/internal/gateway"
)

// FileKind declares how an uploaded binary should be presented to the model.
type FileKind string

// Supported upload kinds.
const (
	KindPDF   FileKind = "pdf"
	KindImage FileKind = "image"
)

// MIMEType returns the declared MIME type for the kind.
func (k FileKind) MIMEType() string {
	switch k {
	case KindPDF:
		return "application/pdf"
	case KindImage:
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}

// EncodeFile reads the whole binary and returns it as a base64 attachment
// ready for embedding in a model request. No content inspection happens here.
func EncodeFile(r io.Reader, kind FileKind) (gateway.Attachment, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return gateway.Attachment{}, &EncodeError{Kind: kind, Cause: err}
	}
	if len(data) == 0 {
		return gateway.Attachment{}, &EncodeError{Kind: kind, Message: "file is empty"}
	}

	return gateway.Attachment{
		MIMEType: kind.MIMEType(),
		Data:     base64.StdEncoding.EncodeToString(data),
	}, nil
}
