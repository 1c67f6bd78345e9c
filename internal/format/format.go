// Package format renders numeric sequences for diagnostics.
package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Array renders arr as "[a, b, c]" using the shortest representation that
// round-trips each value; an empty or nil slice is "[]".
func Array(arr []float64) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range arr {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	sb.WriteByte(']')
	return sb.String()
}

// Print writes Array(arr) followed by a newline.
func Print(w io.Writer, arr []float64) error {
	_, err := fmt.Fprintln(w, Array(arr))
	return err
}
