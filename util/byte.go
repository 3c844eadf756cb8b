package util

import (
	"encoding/json"
	"io"
)

// FullDecode decodes a JSON request body into obj, then drains the reader
// completely. The point of reading to EOF is to allow connection reuse.
func FullDecode(r io.ReadCloser, obj interface{}) error {
	d := json.NewDecoder(r)
	err := d.Decode(obj)
	io.Copy(io.Discard, r)
	r.Close()
	return err
}
