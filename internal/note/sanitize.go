package note

import "strings"

var pathReplacer = strings.NewReplacer(
	"*", " ",
	`"`, " ",
	`\`, " ",
	"/", " ",
	"<", " ",
	">", " ",
	":", " ",
	"|", " ",
	"?", " ",
)

// Sanitize replaces every character that is unsafe in a file path segment
// with a single space.
func Sanitize(name string) string {
	return pathReplacer.Replace(name)
}
