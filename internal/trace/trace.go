// Package trace records board projections as zstd-compressed JSON lines,
// one frame per tick, for offline replay and diffing.
package trace

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/Garsondee/Block-Launch/internal/board"
)

// Frame is one tick of a board.
type Frame struct {
	Tick     int               `json:"tick"`
	Launched int               `json:"launched"`
	Blocks   []board.BlockView `json:"blocks"`
}

// Capture snapshots b into a Frame.
func Capture(b *board.Board) Frame {
	return Frame{
		Tick:     b.CurrentTick(),
		Launched: b.TotalLaunched(),
		Blocks:   b.Projection(),
	}
}

// Writer streams frames into a zstd encoder. Close must be called to flush
// the final block; it does not close the underlying writer.
type Writer struct {
	zw     *zstd.Encoder
	enc    *json.Encoder
	frames int
}

// NewWriter wraps w.
func NewWriter(w io.Writer) (*Writer, error) {
	zw, err := zstd.NewWriter(w,
		zstd.WithEncoderLevel(zstd.SpeedFastest),
		zstd.WithEncoderConcurrency(1),
	)
	if err != nil {
		return nil, fmt.Errorf("trace encoder: %w", err)
	}
	return &Writer{zw: zw, enc: json.NewEncoder(zw)}, nil
}

// Write appends one frame.
func (tw *Writer) Write(f Frame) error {
	if err := tw.enc.Encode(f); err != nil {
		return fmt.Errorf("trace frame %d: %w", f.Tick, err)
	}
	tw.frames++
	return nil
}

// Frames is the number of frames written so far.
func (tw *Writer) Frames() int { return tw.frames }

func (tw *Writer) Close() error {
	return tw.zw.Close()
}

// ReadAll decodes every frame from a trace stream.
func ReadAll(r io.Reader) ([]Frame, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("trace decoder: %w", err)
	}
	defer zr.Close()

	var frames []Frame
	sc := bufio.NewScanner(zr)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		var f Frame
		if err := json.Unmarshal(sc.Bytes(), &f); err != nil {
			return frames, fmt.Errorf("trace line %d: %w", len(frames)+1, err)
		}
		frames = append(frames, f)
	}
	if err := sc.Err(); err != nil {
		return frames, fmt.Errorf("trace read: %w", err)
	}
	return frames, nil
}
