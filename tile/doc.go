// Package tile renders indented multi-line text templates with embedded
// expressions, splicing multi-line results into the text by column.
//
// # Templates
//
// A template is an ordinary string, typically a raw string literal
// indented to match the surrounding Go code. Rendering first trims it: the
// common leading indentation and any leading or trailing blank lines are
// removed, as are trailing spaces (see [Trim]).
//
// Each @{expr} marker is then replaced by the value of expr. The marker
// ends at the first "}" after "@{" on the same line; there is no nesting
// and no escape for a literal "@{".
//
// # Column Splicing
//
// A value that renders to several lines is trimmed like a template and
// pasted in as a block starting at the marker's column. This is what makes
// nested generation line up:
//
//	func greet(name string) string {
//	    return tile.MustRender(`
//	        fmt.Println("Hello, @{name}!")
//	        fmt.Println("Welcome!")
//	        `, tile.Vars(map[string]any{"name": name}))
//	}
//
//	code := tile.MustRender(`
//	    func main() {
//	        @{greet("Alice")}
//	        if len(os.Args) > 1 {
//	            @{greet("Bob")}
//	        }
//	    }
//	    `, tile.Vars(map[string]any{"greet": greet}))
//
// yields
//
//	func main() {
//	    fmt.Println("Hello, Alice!")
//	    fmt.Println("Welcome!")
//	    if len(os.Args) > 1 {
//	        fmt.Println("Hello, Bob!")
//	        fmt.Println("Welcome!")
//	    }
//	}
//
// Padding is always made of spaces, so templates that splice multi-line
// values are best indented with spaces.
//
// # Expressions and Scope
//
// Marker expressions use the expr language (github.com/expr-lang/expr):
// literals, arithmetic, comparisons, string operators, member and index
// access, and calls of functions found in scope. The names an expression
// may use are exactly those of the [Scope] passed to [Render], plus
// [Builtins] when enabled with [WithBuiltins]. A function in scope may
// return (T, error); a non-nil error aborts the render.
//
// Values are converted to text by [Text].
//
// # Partials
//
// Templates registered with [WithPartials] can be rendered from an
// expression with include(name). A partial sees the same scope as the
// template that includes it. Nesting is limited by [WithMaxDepth].
package tile
