// Package source installs the go-json driver as the process-wide default.
// Import it for side effects:
//
//	import _ "github.com/reoring/fmeaskema/source"
package source

import (
	"github.com/reoring/fmeaskema"
	drvgojson "github.com/reoring/fmeaskema/source/gojson"
)

// init in a separate package to avoid import cycle in root. This sets go-json as default driver.
func init() { fmeaskema.SetJSONDriver(drvgojson.Driver()) }
