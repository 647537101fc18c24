package common

import (
	"fmt"
	"io"
	"strings"

	"github.com/coreemu/coretk/api"
)

// FprintfIfNotEmpty prints only if `v` is not empty.
func FprintfIfNotEmpty(w io.Writer, format string, v interface{}) {
	if v != nil && v != "" {
		fmt.Fprintf(w, format, v)
	}
}

// FormatInterfaces renders interfaces as "eth0=10.0.0.1/24".
func FormatInterfaces(ifaces []*api.Interface) string {
	out := make([]string, 0, len(ifaces))
	for _, iface := range ifaces {
		if iface.IP4 == "" {
			out = append(out, iface.Name)
			continue
		}
		out = append(out, fmt.Sprintf("%s=%s/%d", iface.Name, iface.IP4, iface.IP4Mask))
	}
	return strings.Join(out, ",")
}

// PrintHeader prints a tab separated header and its underline.
func PrintHeader(w io.Writer, columns ...string) {
	underline := make([]string, len(columns))
	for i := range underline {
		underline[i] = strings.Repeat("-", len(columns[i]))
	}
	fmt.Fprintf(w, "%s\n", strings.Join(columns, "\t"))
	fmt.Fprintf(w, "%s\n", strings.Join(underline, "\t"))
}
