package fmeaskema

import (
	"os"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

var pkgLogger atomic.Pointer[log.Logger]

func init() {
	pkgLogger.Store(log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "fmeaskema",
		Level:  log.InfoLevel,
	}))
}

// Logger returns the logger used for warnings that have no sink installed.
func Logger() *log.Logger { return pkgLogger.Load() }

// SetLogger replaces the package logger; nil values are ignored.
func SetLogger(l *log.Logger) {
	if l == nil {
		return
	}
	pkgLogger.Store(l)
}
