package port

import "context"

// Recognizer turns a document image into raw text. Recognition is an
// external collaborator: implementations may shell out or call a remote
// service, and a failure or empty result degrades the document rather
// than failing the request.
type Recognizer interface {
	Recognize(ctx context.Context, data []byte, contentType string) (string, error)
}
