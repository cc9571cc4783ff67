package replay

import (
	"context"
	"os"
)

// FileClipboard stands in for the system clipboard by writing shared text to a file.
type FileClipboard struct {
	Path string
}

// WriteText implements viewer.Clipboard.
func (c FileClipboard) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.WriteFile(c.Path, []byte(text+"\n"), 0644)
}
