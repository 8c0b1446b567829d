// Package tag manages the labels attachable to inventory items.
package tag

// Tag is a colored label. TextDark tells the frontend whether to render
// dark text on the tag's background color.
type Tag struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	ColorHex string `json:"color_hex"`
	TextDark bool   `json:"text_dark"`
}
