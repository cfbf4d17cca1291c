// Package web holds the embedded page shell and its browser assets.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var assets embed.FS

// IndexHTML returns the page shell.
func IndexHTML() string {
	data, err := assets.ReadFile("static/index.html")
	if err != nil {
		panic(err)
	}
	return string(data)
}

// Static returns the script and style files served under /static/.
func Static() fs.FS {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
