package parse

type (
	word struct {
		text   string
		phrase bool
	}
)

// words splits a line body into words.
// Quoted phrases are kept whole with quotes stripped,
// punctuation chars become words of their own.
func words(b []byte, num int) (ws []word, err error) {
	i := Space.Skip(b, 0)

	for i < len(b) {
		switch {
		case b[i] == '"':
			end := findChar(b, i+1, '"')
			if end == len(b) {
				return nil, MalformedError{Line: num, Msg: "unterminated phrase"}
			}

			ws = append(ws, word{text: string(b[i+1 : end]), phrase: true})
			i = end + 1
		case Punct.Is(b[i]):
			ws = append(ws, word{text: string(b[i : i+1])})
			i++
		default:
			st := i

			for i < len(b) && b[i] != '"' && b[i] != '\t' && !Space.Is(b[i]) && !Punct.Is(b[i]) {
				i++
			}

			if i == st { // stray tab inside the line
				i++
				continue
			}

			ws = append(ws, word{text: string(b[st:i])})
		}

		i = Space.Skip(b, i)
	}

	return ws, nil
}

func findChar(b []byte, i int, c byte) int {
	for i < len(b) && b[i] != c {
		i++
	}

	return i
}
