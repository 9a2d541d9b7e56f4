// internal/repositories/mysql/util.go
package mysql

import "strings"

// placeholders menghasilkan "?, ?, ?, ..." sebanyak n.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?,", n-1) + "?"
}

// stringArgs mengubah []string menjadi []any untuk QueryContext.
func stringArgs(in []string) []any {
	out := make([]any, 0, len(in))
	for _, s := range in {
		out = append(out, s)
	}
	return out
}
