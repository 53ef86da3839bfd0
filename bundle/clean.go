package bundle

import (
	"github.com/spf13/afero"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/notargets/aerocase/types"
)

// Clean removes every artifact a case may have left under route, including
// those of earlier tool generations. Missing files are not an error; every
// failed removal is reported.
func Clean(fs afero.Fs, route, caseName string) (removed int, err error) {
	e := NewExporter(fs, route, caseName)
	exts := append([]string{StructureExt, AeroExt, DynamicExt, SolverExt}, legacyExts...)
	for _, ext := range exts {
		path := e.Path(ext)
		exists, statErr := afero.Exists(fs, path)
		if statErr != nil {
			err = multierr.Append(err, &types.IOError{Path: path, Err: statErr})
			continue
		}
		if !exists {
			continue
		}
		if rmErr := fs.Remove(path); rmErr != nil {
			err = multierr.Append(err, &types.IOError{Path: path, Err: rmErr})
			continue
		}
		zap.S().Debugw("removed artifact", "path", path)
		removed++
	}
	return
}
