package parse

// Number reports whether w is a number literal
// and returns it normalized to always have a decimal point.
//
//	-?[0-9]*(\.[0-9]*)?  with at least one digit
func Number(w string) (string, bool) {
	i := 0

	if i < len(w) && w[i] == '-' {
		i++
	}

	digits := 0
	dot := false

	for ; i < len(w); i++ {
		switch {
		case w[i] >= '0' && w[i] <= '9':
			digits++
		case !dot && w[i] == '.':
			dot = true
		default:
			return "", false
		}
	}

	if digits == 0 {
		return "", false
	}

	if !dot {
		w += ".0"
	}

	return w, true
}

// numeric reports whether w starts like a number.
func numeric(w string) bool {
	i := 0

	if i < len(w) && w[i] == '-' {
		i++
	}

	if i < len(w) && w[i] == '.' {
		i++
	}

	return i < len(w) && w[i] >= '0' && w[i] <= '9'
}
