package codec

import (
	"bytes"
	"fmt"
	"strconv"
)

// FlexInt decodes a field that arrives either as a native JSON number or as
// its decimal-string equivalent. limit, rating and initial_evaluation all
// use this shape.
type FlexInt int64

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) >= 2 && b[0] == '"' && b[len(b)-1] == '"' {
		b = b[1 : len(b)-1]
	}
	if len(b) == 0 {
		return fmt.Errorf("codec: empty integer field")
	}
	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return fmt.Errorf("codec: invalid integer field %q: %w", b, err)
	}
	*f = FlexInt(n)
	return nil
}

func (f FlexInt) Int() int64 { return int64(f) }

// FlexBool decodes the "0"/"1" string form or a native JSON boolean. Only
// best_talks.all uses this shape today, but the decoder is shared so any
// future boolean field gets it for free.
type FlexBool bool

func (f *FlexBool) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch string(b) {
	case "true", `"1"`, "1":
		*f = true
		return nil
	case "false", `"0"`, "0":
		*f = false
		return nil
	default:
		return fmt.Errorf("codec: invalid boolean field %q", b)
	}
}

func (f FlexBool) Bool() bool { return bool(f) }
