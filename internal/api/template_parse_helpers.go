package api

import (
	"fmt"
	"html/template"
	"io/fs"
)

func parsePageTemplates(templates fs.FS, funcMap template.FuncMap, pages []string, shared []string) (map[string]*template.Template, error) {
	parsed := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		patterns := []string{"base.html", page + ".html"}
		for _, partial := range shared {
			patterns = append(patterns, partial+".html")
		}
		tmpl, err := template.New("base").Funcs(funcMap).ParseFS(templates, patterns...)
		if err != nil {
			return nil, fmt.Errorf("parse page template %s: %w", page, err)
		}
		parsed[page] = tmpl
	}
	return parsed, nil
}

func parsePartialTemplates(templates fs.FS, funcMap template.FuncMap, partials []string) (map[string]*template.Template, error) {
	parsed := make(map[string]*template.Template, len(partials))
	for _, partial := range partials {
		tmpl, err := template.New(partial).Funcs(funcMap).ParseFS(templates, "base.html", partial+".html")
		if err != nil {
			return nil, fmt.Errorf("parse partial %s: %w", partial, err)
		}
		parsed[partial] = tmpl
	}
	return parsed, nil
}
