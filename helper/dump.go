package helper

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	jsoniter "github.com/json-iterator/go"
)

// Dump the given variables to stdout for debugging
func Dump(values ...interface{}) {
	for _, v := range values {
		if err, ok := v.(error); ok {
			color.Red(err.Error())
			continue
		}

		switch v.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, bool:
			color.Cyan(fmt.Sprintf("%v", v))
		case string, []byte:
			color.Green(fmt.Sprintf("%s", v))
		default:
			bytes, err := jsoniter.MarshalIndent(v, "", "    ")
			if err != nil {
				color.Red(err.Error())
				continue
			}
			fmt.Println(string(bytes))
		}
	}
}

// ToString returns a formatted string representation of the given variables
func ToString(values ...interface{}) string {
	var result strings.Builder
	for _, v := range values {
		if err, ok := v.(error); ok {
			result.WriteString(err.Error() + "\n")
			continue
		}

		switch v.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, bool:
			result.WriteString(fmt.Sprintf("%v\n", v))
		case string, []byte:
			result.WriteString(fmt.Sprintf("%s\n", v))
		default:
			bytes, err := jsoniter.MarshalIndent(v, "", "    ")
			if err != nil {
				result.WriteString(err.Error() + "\n")
				continue
			}
			result.WriteString(string(bytes) + "\n")
		}
	}
	return result.String()
}

// DumpError dumps the given variables in red color
func DumpError(values ...interface{}) {
	color.Red(ToString(values...))
}

// DumpWarn dumps the given variables in yellow color
func DumpWarn(values ...interface{}) {
	color.Yellow(ToString(values...))
}
