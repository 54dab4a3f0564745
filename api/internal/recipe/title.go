package recipe

import (
	"regexp"
	"strings"
)

// FallbackDishName is used for the image prompt when no heading is found.
const FallbackDishName = "delicious food"

var titleRe = regexp.MustCompile(`# (.*)|요리명: (.*)|제목: (.*)`)

// ExtractDishName pulls the dish name from the first "# X", "요리명: X" or
// "제목: X" line of a generated recipe. A match whose name is blank after
// trimming yields FallbackDishName, never an empty name.
func ExtractDishName(text string) string {
	m := titleRe.FindStringSubmatch(text)
	if m == nil {
		return FallbackDishName
	}
	for _, g := range m[1:] {
		if s := strings.TrimSpace(g); s != "" {
			return s
		}
	}
	return FallbackDishName
}
