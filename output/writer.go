package output

import (
	"fmt"
	"os"
)

type Writer interface {
	Write(path string, doc Document) error
}

// HTMLWriter renders a document and writes it as one self-contained file.
type HTMLWriter struct {
	Options RenderOptions
}

func (w *HTMLWriter) Write(path string, doc Document) error {
	html, err := Render(doc, w.Options)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return fmt.Errorf("write html output %s: %w", path, err)
	}
	return nil
}
