package script

import (
	"io"

	jsoniter "github.com/json-iterator/go"
)

var reportJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// WriteReport prints the report as indented JSON.
func WriteReport(w io.Writer, report Report) error {
	out, err := reportJSON.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	out = append(out, '\n')
	_, err = w.Write(out)
	return err
}
