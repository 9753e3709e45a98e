package tool

import (
	// Packages
	opt "github.com/mutablelogic/go-weatherdeck/pkg/opt"
)

// WithToolkit sets a toolkit for generation options.
// The toolkit is stored under opt.ToolkitKey and can be retrieved
// with FromOpts.
func WithToolkit(toolkit *Toolkit) opt.Opt {
	if toolkit == nil {
		return nil
	}
	return opt.WithToolkit(toolkit)
}

// FromOpts returns the toolkit set with WithToolkit, or nil
func FromOpts(options *opt.Options) *Toolkit {
	if options == nil {
		return nil
	}
	if tk, ok := options.GetToolkit().(*Toolkit); ok {
		return tk
	}
	return nil
}
