package draw

import (
	"bufio"
	"io"
	"os"
	"strconv"

	"golang.org/x/term"
)

// ANSI control sequences.
const (
	seqClear      = "\033[H\033[2J"
	seqHideCursor = "\033[?25l"
	seqShowCursor = "\033[?25h"
)

// ChunkWriter collects one frame of terminal output (canvas cells and
// overlay text) and flushes it in chunks no larger than maxChunkSize, so a
// frame over SSH goes out in packet-sized writes. Cursor positions passed to
// it are relative to the canvas; the writer adds the canvas offset.
type ChunkWriter struct {
	frame  []byte
	out    *bufio.Writer
	offCol int
	offRow int
}

// NewChunkWriter creates a ChunkWriter flushing to w with the given
// canvas offset.
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		frame:  make([]byte, 0, 4*maxChunkSize),
		out:    bufio.NewWriterSize(w, 8192),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset moves the canvas origin, e.g. after a terminal resize.
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol = offsetCol
	cw.offRow = offsetRow
}

// MoveCursor queues a cursor move to the 1-based canvas cell (col, row).
func (cw *ChunkWriter) MoveCursor(col, row int) {
	cw.frame = append(cw.frame, "\033["...)
	cw.frame = strconv.AppendInt(cw.frame, int64(row+cw.offRow), 10)
	cw.frame = append(cw.frame, ';')
	cw.frame = strconv.AppendInt(cw.frame, int64(col+cw.offCol), 10)
	cw.frame = append(cw.frame, 'H')
}

// Write queues raw bytes. Canvas.Render writes through it.
func (cw *ChunkWriter) Write(p []byte) (int, error) {
	cw.frame = append(cw.frame, p...)
	return len(p), nil
}

var _ io.Writer = (*ChunkWriter)(nil)

// WriteString queues s at the current cursor position.
func (cw *ChunkWriter) WriteString(s string) {
	cw.frame = append(cw.frame, s...)
}

// WriteAt queues s at the 1-based canvas cell (col, row).
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.MoveCursor(col, row)
	cw.frame = append(cw.frame, s...)
}

// Flush sends the queued frame and empties the queue.
func (cw *ChunkWriter) Flush() error {
	for data := cw.frame; len(data) > 0; {
		n := min(len(data), maxChunkSize)
		if _, err := cw.out.Write(data[:n]); err != nil {
			cw.frame = cw.frame[:0]
			return err
		}
		data = data[n:]
	}
	cw.frame = cw.frame[:0]
	return cw.out.Flush()
}

// TermSizeFunc reports the terminal size in cells.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc reads the size of the process's stdout terminal.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// ClearScreen clears the terminal and homes the cursor.
func ClearScreen(w io.Writer) {
	io.WriteString(w, seqClear)
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	io.WriteString(w, seqHideCursor)
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	io.WriteString(w, seqShowCursor)
}

// FitArena returns the largest render area inside a width x height terminal
// that keeps the arena's aspect ratio (one cell is two sub-pixels tall),
// together with the 0-based offsets that center it. maxWidth caps the
// render width; zero means no cap.
func FitArena(width, height int, arenaWidth, arenaHeight float64, maxWidth int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	if width <= 0 || height <= 0 || arenaWidth <= 0 || arenaHeight <= 0 {
		return max(width, 0), max(height, 0), 0, 0
	}
	aspect := arenaWidth / arenaHeight
	renderWidth = width
	if maxWidth > 0 {
		renderWidth = min(renderWidth, maxWidth)
	}
	renderHeight = int(float64(renderWidth) / aspect / 2)
	if renderHeight > height {
		renderHeight = height
		renderWidth = int(float64(height) * 2 * aspect)
	}
	renderWidth = max(renderWidth, 1)
	renderHeight = max(renderHeight, 1)
	offsetCol = (width - renderWidth) / 2
	offsetRow = (height - renderHeight) / 2
	return renderWidth, renderHeight, offsetCol, offsetRow
}
