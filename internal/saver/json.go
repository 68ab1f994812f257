package saver

import (
	"encoding/json"
	"os"

	"marcap/internal/model"
)

// JSONSaver writes frame records as an indented JSON array.
// Keys come from model.Record tags, so the delta ratio is always "ChangesRatio".
// Extra columns are nested under "Extra".
type JSONSaver struct{}

func (JSONSaver) Extension() string { return "json" }

func (JSONSaver) Save(frame model.Frame, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	records := frame.Records
	if records == nil {
		records = []model.Record{}
	}
	if err := enc.Encode(records); err != nil {
		return err
	}
	return f.Close()
}
