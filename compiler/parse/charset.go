package parse

type (
	// Charset is a set of ASCII chars below 64.
	Charset uint64
)

var (
	Space = NewCharset(' ', '\r')
	Punct = NewCharset('(', ')', ',', ':')
)

func NewCharset(cs ...byte) (s Charset) {
	for _, q := range cs {
		if q >= 64 {
			panic("too high char code")
		}

		s |= 1 << q
	}

	return
}

func (s Charset) Is(c byte) bool {
	return c < 64 && s&(1<<c) != 0
}

func (s Charset) Skip(b []byte, st int) (i int) {
	i = st

	for i < len(b) && s.Is(b[i]) {
		i++
	}

	return
}
