package compile

import "strings"

// reserved are names a program can't use as C++ identifiers.
var reserved = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`
		alignas alignof and and_eq asm auto bitand bitor bool break case catch char
		char8_t char16_t char32_t class compl concept const consteval constexpr constinit
		const_cast continue co_await co_return co_yield decltype default delete do double
		dynamic_cast else enum explicit export extern false float for friend goto if
		inline int long mutable namespace new noexcept not not_eq nullptr operator or
		or_eq private protected public register reinterpret_cast requires return short
		signed sizeof static static_assert static_cast struct switch template this
		thread_local throw true try typedef typeid typename union unsigned using virtual
		void volatile wchar_t while xor xor_eq
		main std Library BuiltinType
	`) {
		reserved[w] = struct{}{}
	}
}

// ident appends a user name as a C++ identifier.
// Reserved names and names ending with an underscore get one more underscore,
// so distinct names stay distinct.
func ident(b []byte, name string) []byte {
	b = append(b, name...)

	if _, ok := reserved[name]; ok || strings.HasSuffix(name, "_") {
		b = append(b, '_')
	}

	return b
}
