package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
		return
	}
	o.printText(data)
}

// PrintList outputs a slice of items, one per line in text mode
func PrintList[T any](o *Output, items []T) {
	if o.format == "json" {
		o.printJSON(items)
		return
	}
	if len(items) == 0 {
		fmt.Println("(none)")
		return
	}
	for _, item := range items {
		o.printText(item)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
		return
	}
	fmt.Println(msg)
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	if s, ok := data.(fmt.Stringer); ok {
		fmt.Println(s.String())
		return
	}
	fmt.Printf("%+v\n", data)
}
