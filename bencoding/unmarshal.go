package bencoding

import (
	"bytes"
	"errors"
	"io"
	"strconv"
)

// Unmarshal decodes the first value in data. Bytes after that value are ignored.
func Unmarshal(data []byte) (Value, error) {
	v, _, err := UnmarshalPrefix(data)
	return v, err
}

// UnmarshalPrefix decodes the first value in data and also returns how many bytes it spanned,
// leaving the caller to decide what trailing bytes mean.
func UnmarshalPrefix(data []byte) (Value, int, error) {
	raw := bytes.NewReader(data)
	v, err := unmarshal(raw, 0)
	if err != nil {
		return Value{}, 0, err
	}
	return v, int(offset(raw)), nil
}

func offset(raw *bytes.Reader) int64 {
	return raw.Size() - int64(raw.Len())
}

func syntaxError(at int64, err error) error {
	return &SyntaxError{Offset: at, Err: err}
}

// maxDepth bounds list and dict nesting so hostile input can't exhaust the stack.
const maxDepth = 512

func unmarshal(raw *bytes.Reader, depth int) (Value, error) {
	start := offset(raw)
	b, err := raw.ReadByte()
	if err != nil {
		return Value{}, syntaxError(start, ErrUnexpectedEnd)
	}
	if err := raw.UnreadByte(); err != nil {
		return Value{}, err
	}
	switch {
	case b == 'i':
		return unmarshalInt(raw)
	case (b == 'l' || b == 'd') && depth >= maxDepth:
		return Value{}, syntaxError(start, ErrNestingTooDeep)
	case b == 'l':
		return unmarshalList(raw, depth+1)
	case b == 'd':
		return unmarshalDict(raw, depth+1)
	case b >= '0' && b <= '9':
		return unmarshalString(raw)
	default:
		return Value{}, syntaxError(start, ErrUnknownTag)
	}
}

func unmarshalInt(raw *bytes.Reader) (Value, error) {
	start := offset(raw)
	if b, err := raw.ReadByte(); err != nil || b != 'i' {
		return Value{}, syntaxError(start, ErrMalformedInteger)
	}

	intBytes := make([]byte, 0, 20)
	for {
		b, err := raw.ReadByte()
		if err != nil {
			return Value{}, syntaxError(start, ErrMalformedInteger)
		}
		if b == 'e' {
			break
		}
		intBytes = append(intBytes, b)
	}
	if !canonicalInt(intBytes) {
		return Value{}, syntaxError(start, ErrMalformedInteger)
	}
	i, err := strconv.ParseInt(string(intBytes), 10, 64)
	if err != nil {
		// out of int64 range
		return Value{}, syntaxError(start, ErrMalformedInteger)
	}
	return NewInt(i), nil
}

// canonicalInt accepts "0" and optionally negative digit runs without leading zeros.
func canonicalInt(digits []byte) bool {
	if len(digits) > 0 && digits[0] == '-' {
		digits = digits[1:]
		if len(digits) > 0 && digits[0] == '0' {
			return false
		}
	}
	if len(digits) == 0 {
		return false
	}
	if digits[0] == '0' && len(digits) > 1 {
		return false
	}
	for _, b := range digits {
		if b < '0' || b > '9' {
			return false
		}
	}
	return true
}

func unmarshalString(raw *bytes.Reader) (Value, error) {
	start := offset(raw)
	lenBytes := make([]byte, 0, 8)
	for {
		b, err := raw.ReadByte()
		if err != nil {
			return Value{}, syntaxError(start, ErrTruncatedString)
		}
		if b == ':' {
			break
		}
		if b < '0' || b > '9' {
			return Value{}, syntaxError(start, ErrMalformedString)
		}
		lenBytes = append(lenBytes, b)
	}

	strLen, err := strconv.ParseInt(string(lenBytes), 10, 64)
	if errors.Is(err, strconv.ErrRange) || (err == nil && strLen > int64(raw.Len())) {
		return Value{}, syntaxError(start, ErrTruncatedString)
	}
	if err != nil {
		return Value{}, syntaxError(start, ErrMalformedString)
	}

	strBytes := make([]byte, strLen)
	if _, err := io.ReadFull(raw, strBytes); err != nil {
		return Value{}, syntaxError(start, ErrTruncatedString)
	}
	return NewString(strBytes), nil
}

func unmarshalList(raw *bytes.Reader, depth int) (Value, error) {
	start := offset(raw)
	if b, err := raw.ReadByte(); err != nil || b != 'l' {
		return Value{}, syntaxError(start, ErrUnknownTag)
	}

	l := []Value{}
	for {
		b, err := raw.ReadByte()
		if err != nil {
			return Value{}, syntaxError(start, ErrUnterminatedList)
		}
		if b == 'e' {
			return NewList(l...), nil
		}
		if err = raw.UnreadByte(); err != nil {
			return Value{}, err
		}
		elem, err := unmarshal(raw, depth)
		if err != nil {
			return Value{}, err
		}
		l = append(l, elem)
	}
}

func unmarshalDict(raw *bytes.Reader, depth int) (Value, error) {
	start := offset(raw)
	if b, err := raw.ReadByte(); err != nil || b != 'd' {
		return Value{}, syntaxError(start, ErrUnknownTag)
	}

	d := map[string]Value{}
	for {
		b, err := raw.ReadByte()
		if err != nil {
			return Value{}, syntaxError(start, ErrUnterminatedDict)
		}
		if b == 'e' {
			return NewDict(d), nil
		}
		if err = raw.UnreadByte(); err != nil {
			return Value{}, err
		}

		keyStart := offset(raw)
		key, err := unmarshal(raw, depth)
		if err != nil {
			return Value{}, err
		}
		keyBytes, ok := key.Bytes()
		if !ok {
			return Value{}, syntaxError(keyStart, ErrNonStringKey)
		}

		if raw.Len() == 0 {
			return Value{}, syntaxError(start, ErrUnterminatedDict)
		}
		elem, err := unmarshal(raw, depth)
		if err != nil {
			return Value{}, err
		}
		// a repeated key keeps its last value
		d[string(keyBytes)] = elem
	}
}
