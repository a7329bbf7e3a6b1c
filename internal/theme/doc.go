// Package theme holds the ordered registry of named color palettes and the
// cursor that walks it.
//
// Integration example:
//
//	themes := theme.Default()
//	var cursor theme.Cursor
//	current, err := themes.At(cursor)
//	if err != nil {
//		return err
//	}
//	heading.SetText(current.Name)
//	img, err := render.Render(pattern.Heart, current.Palette, render.DefaultOptions(), nil)
//	...
//	cursor = themes.Advance(cursor) // on every "next theme" click
package theme
