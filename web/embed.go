package web

import _ "embed"

// FormPage is the three-step lead capture form served at /.
//
//go:embed index.html
var FormPage []byte
