package gateway

import (
	"bytes"
	"encoding/base64"
	"html/template"
	"image"

	"heart-of-colors/internal/render"
)

const pageTitle = "Herz der Farben"

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="de">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<link rel="icon" type="image/png" href="/favicon.png">
<style>
body { font-family: system-ui, sans-serif; max-width: 46rem; margin: 2rem auto; padding: 0 1rem; }
form button { width: 100%; padding: .6rem; font-size: 1rem; cursor: pointer; }
h2 { padding-bottom: .4rem; border-bottom: 3px solid; border-image: linear-gradient(90deg, red, orange, yellow, green, blue, indigo, violet) 1; }
img { max-width: 100%; height: auto; }
.error { color: #9A3E2A; }
</style>
</head>
<body>
<h1>💖 {{.Title}}</h1>
<form method="post" action="/next"><button type="submit">Nächstes Thema</button></form>
<h2>{{.Theme}}</h2>
<p><small>{{.Position}} / {{.Count}}</small></p>
{{if .Error}}<p class="error">{{.Error}}</p>{{else}}<img src="{{.Image}}" alt="{{.Theme}}" width="{{.Width}}" height="{{.Height}}">{{end}}
</body>
</html>
`))

type pageData struct {
	Title    string
	Theme    string
	Position int
	Count    int
	Image    template.URL
	Width    int
	Height   int
	Error    string
}

func renderPage(data pageData) ([]byte, error) {
	data.Title = pageTitle
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func pngDataURL(img image.Image) (template.URL, error) {
	var buf bytes.Buffer
	if err := render.EncodePNG(&buf, img); err != nil {
		return "", err
	}
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())), nil
}
