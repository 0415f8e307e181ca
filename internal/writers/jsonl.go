// internal/writers/jsonl.go
package writers

import (
	"encoding/json"
	"io"

	"gffio/core/gff3"
	"gffio/internal/jsonlutil"
)

func init() { RegisterRecord("jsonl", StartRecordJSONLWriter) }

// StartRecordJSONLWriter streams each record as one JSON line (v1). Headers
// are not part of the JSONL stream.
func StartRecordJSONLWriter(out io.Writer, opt Options, bufSize int) (chan<- gff3.Record, <-chan error) {
	return jsonlutil.Start[gff3.Record](out, bufSize,
		func(enc *json.Encoder, rec gff3.Record) error {
			return enc.Encode(ToAPIRecord(rec, opt.SourceFile))
		},
		IsBrokenPipe,
	)
}
