package snippet

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/lithammer/dedent"
)

var boilerplates = map[Code]string{
	RAFCE: `
		import React from 'react'

		const {{.Name}} = () => {
		  return (
		    <div>{{.Name}}</div>
		  )
		}

		export default {{.Name}}
	`,
	RFC: `
		import React from 'react'

		export default function {{.Name}}() {
		  return (
		    <div>{{.Name}}</div>
		  )
		}
	`,
	RAFC: `
		import React from 'react'

		export const {{.Name}} = () => {
		  return (
		    <div>{{.Name}}</div>
		  )
		}
	`,
	RSC: `
		import React from 'react'

		const {{.Name}} = () => (
		  <div>{{.Name}}</div>
		)

		export default {{.Name}}
	`,
	RCC: `
		import React, { Component } from 'react'

		export default class {{.Name}} extends Component {
		  render() {
		    return (
		      <div>{{.Name}}</div>
		    )
		  }
		}
	`,
}

var templates = compileTemplates()

func compileTemplates() map[Code]*template.Template {
	out := make(map[Code]*template.Template, len(boilerplates))
	for code, text := range boilerplates {
		body := strings.TrimPrefix(dedent.Dedent(text), "\n")
		out[code] = template.Must(template.New(string(code)).Parse(body))
	}
	return out
}

func render(code Code, name string) (string, error) {
	tmpl, ok := templates[code]
	if !ok {
		return "", fmt.Errorf("unknown snippet code %q", code)
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, struct{ Name string }{Name: name}); err != nil {
		return "", fmt.Errorf("failed to expand snippet %q: %w", code, err)
	}
	return sb.String(), nil
}
