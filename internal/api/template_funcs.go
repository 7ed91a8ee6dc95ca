package api

import (
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/proappliance/quoteadmin/internal/services"
)

func newTemplateFuncMap() template.FuncMap {
	return template.FuncMap{
		"t":          translateMessage,
		"tf":         translateMessagef,
		"formatDate": formatTemplateDate,
		"since":      humanize.Time,
		"join":       strings.Join,
		"inc":        func(value int) int { return value + 1 },
		"fileIcon":   templateFileIcon,
		"dict":       templateDict,
	}
}

func translateMessage(messages map[string]string, key string) string {
	if value, ok := messages[key]; ok && strings.TrimSpace(value) != "" {
		return value
	}
	return key
}

func translateMessagef(messages map[string]string, key string, args ...any) string {
	return fmt.Sprintf(translateMessage(messages, key), args...)
}

func formatTemplateDate(value time.Time, layout string) string {
	if value.IsZero() {
		return ""
	}
	return value.Format(layout)
}

func templateFileIcon(kind services.FileKind) string {
	switch kind {
	case services.FileKindImage:
		return "🖼"
	case services.FileKindPDF:
		return "📕"
	case services.FileKindWord:
		return "📘"
	case services.FileKindSpreadsheet:
		return "📗"
	default:
		return "📄"
	}
}

func templateDict(values ...any) (map[string]any, error) {
	if len(values)%2 != 0 {
		return nil, errors.New("dict expects key/value pairs")
	}
	result := make(map[string]any, len(values)/2)
	for index := 0; index < len(values); index += 2 {
		key, ok := values[index].(string)
		if !ok {
			return nil, fmt.Errorf("dict key at %d is not a string", index)
		}
		result[key] = values[index+1]
	}
	return result, nil
}
