/*

Process of compilation

Program Text ->
	parse ->
Classified Token Lines (ir) ->
	front.Structure ->
Explicit Block Lines ->
	order ->
Evaluation Order per Line ->
	ast ->
Statement Trees ->
	front.Classify ->
Categorized Statements ->
	compile ->
C++ Source Text

Bindings are resolved by analyze as part of parse.
Statements can also be rendered back as source by format.

*/
package compiler
