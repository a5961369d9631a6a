package bencoding

import (
	"bytes"
	"strconv"
)

// Marshal encodes v canonically: dictionary keys are written in ascending raw byte order.
// A zero Value encodes to nothing.
func Marshal(v Value) []byte {
	bs := &bytes.Buffer{}
	marshal(bs, v)
	return bs.Bytes()
}

func marshal(bs *bytes.Buffer, v Value) {
	switch v.kind {
	case String:
		marshalString(bs, v.s)
	case Int:
		marshalInt(bs, v.i)
	case List:
		marshalList(bs, v.l)
	case Dict:
		marshalDict(bs, v)
	}
}

func MarshalString(s string) []byte {
	bs := &bytes.Buffer{}
	marshalString(bs, []byte(s))
	return bs.Bytes()
}

func marshalString(bs *bytes.Buffer, s []byte) {
	bs.WriteString(strconv.Itoa(len(s)))
	bs.WriteString(":")
	bs.Write(s)
}

func MarshalInt(i int64) []byte {
	bs := &bytes.Buffer{}
	marshalInt(bs, i)
	return bs.Bytes()
}

func marshalInt(bs *bytes.Buffer, i int64) {
	bs.WriteString("i")
	bs.WriteString(strconv.FormatInt(i, 10))
	bs.WriteString("e")
}

func marshalList(bs *bytes.Buffer, l []Value) {
	bs.WriteString("l")
	for _, elem := range l {
		marshal(bs, elem)
	}
	bs.WriteString("e")
}

func marshalDict(bs *bytes.Buffer, d Value) {
	bs.WriteString("d")
	for _, k := range d.Keys() {
		marshalString(bs, []byte(k))
		marshal(bs, d.d[k])
	}
	bs.WriteString("e")
}
