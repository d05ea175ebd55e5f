package model

// Category is a kind of waste material. Categories are fixed reference
// data and never written by the app.
type Category struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Color       Color
	Types       []WasteType
	Tips        []string
}

// WasteType is a sub-type of a category
type WasteType struct {
	Code          string
	Name          string
	Examples      string
	Recyclability string
}
