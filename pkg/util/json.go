package util

import (
	"encoding/json"
	"fmt"
	"os"
)

// PrintPrettyJSON writes v to stdout as indented JSON. Used by the
// --output json path of listing commands.
func PrintPrettyJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// PrintPrettyJSONSlice prints items as a JSON array, never null, so an
// empty listing renders as [].
func PrintPrettyJSONSlice[T any](items []T) error {
	if items == nil {
		fmt.Println("[]")
		return nil
	}
	return PrintPrettyJSON(items)
}
