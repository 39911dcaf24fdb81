package pmtconfig

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	FormatFHiCL  = "FHiCL"
	FormatPython = "Python"
)

// settingsKeys fixes the field emission order expected by the DrawWaveforms
// utility. It is not derived from the record layout.
var settingsKeys = []string{"Channel", "BoardNumber", "BoardChannel", "Baseline", "Threshold"}

// formatParams carries the rendering configuration of a single
// FormatSettings call. A fresh value is built per call, nothing is shared.
type formatParams struct {
	paddings map[string]int
	keys     []string
}

func newFormatParams(settings []ChannelRecord) formatParams {
	return formatParams{
		paddings: extractValuePaddings(settings),
		keys:     settingsKeys,
	}
}

func fieldValue(record ChannelRecord, key string) int {
	switch key {
	case "Channel":
		return record.Channel
	case "BoardNumber":
		return record.BoardNumber
	case "BoardChannel":
		return record.BoardChannel
	case "Baseline":
		return record.Baseline
	case "Threshold":
		return record.Threshold
	}
	return 0
}

// extractValuePaddings computes the widest decimal representation of each
// field across all records, used to align the output columns.
func extractValuePaddings(settings []ChannelRecord) map[string]int {
	paddings := make(map[string]int)
	for _, record := range settings {
		for _, key := range settingsKeys {
			width := len(strconv.Itoa(fieldValue(record, key)))
			if width > paddings[key] {
				paddings[key] = width
			}
		}
	}
	return paddings
}

func entryToFHiCL(entry ChannelRecord, params formatParams) string {
	fields := make([]string, len(params.keys))
	for i, key := range params.keys {
		fields[i] = fmt.Sprintf("%s: %*d", key, params.paddings[key], fieldValue(entry, key))
	}
	return "{ " + strings.Join(fields, ", ") + " }"
}

func entryToPython(entry ChannelRecord, params formatParams) string {
	var builder strings.Builder
	builder.WriteString("{ ")
	for _, key := range params.keys {
		fmt.Fprintf(&builder, "'%s': %*d, ", key, params.paddings[key], fieldValue(entry, key))
	}
	builder.WriteString("}")
	return builder.String()
}

// FormatSettings renders the sorted settings as a single text block in the
// requested syntax. When varName is empty the variable assignment and the
// closing comment are omitted.
func FormatSettings(settings []ChannelRecord, format string, varName string) (string, error) {
	params := newFormatParams(settings)

	switch format {
	case FormatFHiCL:
		entries := make([]string, len(settings))
		for i, entry := range settings {
			entries[i] = "  " + entryToFHiCL(entry, params)
		}
		prefix := ""
		comment := ""
		if varName != "" {
			prefix = varName + " : "
			comment = "# " + varName
		}
		return prefix + "[\n" + strings.Join(entries, ",\n") + "] " + comment + "\n", nil

	case FormatPython:
		var builder strings.Builder
		if varName != "" {
			builder.WriteString(varName + " = ")
		}
		builder.WriteString("[")
		for _, entry := range settings {
			builder.WriteString("\n  " + entryToPython(entry, params) + ",")
		}
		comment := ""
		if varName != "" {
			comment = "# " + varName
		}
		builder.WriteString("\n] " + comment + "\n")
		return builder.String(), nil
	}

	return "", &ErrUnknownFormat{Format: format}
}
