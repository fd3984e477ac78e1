package trace

import (
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"pulse/kernel"
)

// Recorder encodes every round it observes to w as a stream of msgpack
// Records. The first write error stops recording and is kept for Err.
type Recorder struct {
	enc *msgpack.Encoder
	n   int
	err error
}

func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{enc: msgpack.NewEncoder(w)}
}

func (r *Recorder) Round(rep kernel.Report) {
	if r.err != nil {
		return
	}
	if err := r.enc.Encode(FromReport(rep)); err != nil {
		r.err = fmt.Errorf("trace: record round %d: %w", rep.Seq, err)
		return
	}
	r.n++
}

// Rounds returns the number of rounds recorded.
func (r *Recorder) Rounds() int { return r.n }

func (r *Recorder) Err() error { return r.err }

// Reader decodes a stream written by Recorder.
type Reader struct {
	dec *msgpack.Decoder
}

func NewReader(r io.Reader) *Reader {
	return &Reader{dec: msgpack.NewDecoder(r)}
}

// Next returns the next record, or io.EOF at a clean end of stream.
func (r *Reader) Next() (Record, error) {
	var rec Record
	if err := r.dec.Decode(&rec); err != nil {
		if errors.Is(err, io.EOF) {
			return Record{}, io.EOF
		}
		return Record{}, fmt.Errorf("trace: decode: %w", err)
	}
	return rec, nil
}

// ReadAll decodes every record in r.
func ReadAll(r io.Reader) ([]Record, error) {
	rd := NewReader(r)
	var out []Record
	for {
		rec, err := rd.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
}
