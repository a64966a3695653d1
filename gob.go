package offlinecache

import (
	"bytes"
	"encoding/gob"
	"errors"
	"io"
)

// dumpRecord is the serialized form of one store entry.
type dumpRecord struct {
	Key  string
	Resp Response
}

// Dump saves stored responses and returns a number of processed entries.
func (c *Memory) Dump(w io.Writer) (int, error) {
	encoder := gob.NewEncoder(w)

	return c.Walk(func(key string, resp *Response) error {
		return encoder.Encode(dumpRecord{Key: key, Resp: *resp})
	})
}

// Restore loads stored responses and returns number of processed entries.
func (c *Memory) Restore(r io.Reader) (int, error) {
	var (
		decoder = gob.NewDecoder(r)
		n       int
	)

	for {
		// Fresh record per entry, gob merges maps on decode.
		rec := dumpRecord{}

		err := decoder.Decode(&rec)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return n, nil
			}

			return n, err
		}

		c.Lock()
		if c.data == nil {
			c.Unlock()

			return n, ErrStoreClosed
		}

		c.seq++
		c.data[rec.Key] = memEntry{Val: rec.Resp.Clone(), Seq: c.seq}
		c.Unlock()

		n++
	}
}

// encodeResponse serializes a response for byte-oriented stores.
func encodeResponse(resp *Response) ([]byte, error) {
	buf := bytes.Buffer{}

	if err := gob.NewEncoder(&buf).Encode(resp); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// decodeResponse deserializes a response produced by encodeResponse.
func decodeResponse(b []byte) (*Response, error) {
	resp := Response{}

	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&resp); err != nil {
		return nil, err
	}

	return &resp, nil
}
