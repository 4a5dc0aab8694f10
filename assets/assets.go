// Package assets carries files compiled into the binary.
package assets

import _ "embed"

// ChildProfile is the default child profile document.
//
//go:embed child_profile.yaml
var ChildProfile []byte
