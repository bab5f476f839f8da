package course

import (
	"math/rand"
	"strings"
)

const (
	// CodeAlphabet leaves out look-alike symbols (I, L, O, Y, 0, 1).
	CodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXZ23456789"
	CodeLength   = 6
)

var GenerateCode = generateCode // mockable

func generateCode() string {
	var sb strings.Builder
	sb.Grow(CodeLength)
	for i := 0; i < CodeLength; i++ {
		sb.WriteByte(CodeAlphabet[rand.Intn(len(CodeAlphabet))])
	}
	return sb.String()
}

// NormalizeCode makes user input comparable to stored codes.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// uniqueCode draws codes until one is not already used by a course.
func uniqueCode(courses []Course) string {
	taken := make(map[string]struct{}, len(courses))
	for _, c := range courses {
		taken[strings.ToUpper(c.Code)] = struct{}{}
	}
	for {
		code := GenerateCode()
		if _, ok := taken[strings.ToUpper(code)]; !ok {
			return code
		}
	}
}
