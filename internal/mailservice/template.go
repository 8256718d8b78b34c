package mailservice

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
)

//go:embed templates/*.html
var templateFS embed.FS

// sections every email template must define, in the order ParseTemplate returns them.
var sections = [3]string{"subject", "plainBody", "htmlBody"}

// NewTemplate parses every embedded email template up front. Each file gets its
// own set since they all define the same section names.
func NewTemplate() (*Template, error) {
	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	tp := &Template{emails: make(map[string]*template.Template, len(files))}
	for _, file := range files {
		name := path.Base(file)

		t, err := template.New(name).ParseFS(templateFS, file)
		if err != nil {
			return nil, fmt.Errorf("could not parse template %s: %w", name, err)
		}

		for _, section := range sections {
			if t.Lookup(section) == nil {
				return nil, fmt.Errorf("template %s does not define %q", name, section)
			}
		}

		tp.emails[name] = t
	}

	return tp, nil
}

// ParseTemplate renders the subject, plain text body and html body of the named email.
func (tp *Template) ParseTemplate(name string, data any) (*bytes.Buffer, *bytes.Buffer, *bytes.Buffer, error) {
	t, ok := tp.emails[name]
	if !ok {
		return nil, nil, nil, fmt.Errorf("unknown email template %q", name)
	}

	var out [3]*bytes.Buffer
	for i, section := range sections {
		out[i] = new(bytes.Buffer)
		if err := t.ExecuteTemplate(out[i], section, data); err != nil {
			return nil, nil, nil, fmt.Errorf("could not render %s of %s: %w", section, name, err)
		}
	}

	return out[0], out[1], out[2], nil
}
