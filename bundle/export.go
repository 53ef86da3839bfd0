package bundle

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/notargets/aerocase/aeroelastic"
	"github.com/notargets/aerocase/settings"
	"github.com/notargets/aerocase/types"
)

// Exporter writes the artifacts of a validated case under Route, each file
// named after CaseName. Every artifact of one export carries the same build
// id.
type Exporter struct {
	Fs       afero.Fs
	Route    string
	CaseName string
}

func NewExporter(fs afero.Fs, route, caseName string) *Exporter {
	return &Exporter{Fs: fs, Route: route, CaseName: caseName}
}

// Path returns the artifact path for a suffix such as StructureExt.
func (e *Exporter) Path(ext string) string {
	return filepath.Join(e.Route, e.CaseName+ext)
}

// Export writes the structural and aerodynamic artifacts, the dynamic forcing
// when f is not nil and the solver file when s is not nil. The case must be
// validated.
func (e *Exporter) Export(c *aeroelastic.Case, s *settings.Settings, f *Forcing) (buildID string, err error) {
	if c.Stage() != aeroelastic.Validated {
		err = &types.ConfigurationError{Op: "export", Msg: fmt.Sprintf("case is %s, not validated", c.Stage())}
		return
	}
	if e.CaseName == "" {
		err = &types.ConfigurationError{Op: "export", Msg: "empty case name"}
		return
	}
	if f != nil {
		if err = f.Check(c.Structure.NumNode); err != nil {
			return
		}
	}
	if err = e.Fs.MkdirAll(e.Route, 0755); err != nil {
		err = &types.IOError{Path: e.Route, Err: err}
		return
	}
	buildID = uuid.NewString()
	if err = e.writeBSON(StructureExt, newStructureDocument(buildID, c.Structure)); err != nil {
		return
	}
	if err = e.writeBSON(AeroExt, newAeroDocument(buildID, c.Aero)); err != nil {
		return
	}
	if f != nil {
		if err = e.writeBSON(DynamicExt, f.document(buildID)); err != nil {
			return
		}
	}
	if s != nil {
		var buf bytes.Buffer
		fmt.Fprintf(&buf, "; build_id = %s\n", buildID)
		if err = s.WriteSolverFile(&buf); err != nil {
			return
		}
		if err = e.write(SolverExt, buf.Bytes()); err != nil {
			return
		}
	}
	return
}

func (e *Exporter) writeBSON(ext string, doc interface{}) (err error) {
	var data []byte
	if data, err = bson.Marshal(doc); err != nil {
		return &types.IOError{Path: e.Path(ext), Err: fmt.Errorf("error marshaling to BSON: %w", err)}
	}
	return e.write(ext, data)
}

func (e *Exporter) write(ext string, data []byte) (err error) {
	path := e.Path(ext)
	if err = afero.WriteFile(e.Fs, path, data, 0644); err != nil {
		return &types.IOError{Path: path, Err: err}
	}
	zap.S().Infow("wrote artifact", "path", path, "bytes", len(data))
	return
}

// Bundle is the decoded set of artifacts of one case.
type Bundle struct {
	Structure *StructureDocument
	Aero      *AeroDocument
	Dynamic   *DynamicDocument   // nil when no forcing was exported
	Solver    *settings.Settings // nil when no solver file was exported
}

// Load reads back the artifacts written by an Exporter. The structural and
// aerodynamic artifacts are required and all BSON artifacts must come from
// the same export.
func Load(fs afero.Fs, route, caseName string) (b *Bundle, err error) {
	e := NewExporter(fs, route, caseName)
	b = &Bundle{Structure: &StructureDocument{}, Aero: &AeroDocument{}}
	if _, err = e.readBSON(StructureExt, b.Structure); err != nil {
		return nil, err
	}
	if _, err = e.readBSON(AeroExt, b.Aero); err != nil {
		return nil, err
	}
	dyn := &DynamicDocument{}
	var found bool
	if found, err = e.readBSON(DynamicExt, dyn); err != nil {
		return nil, err
	}
	if found {
		b.Dynamic = dyn
	}
	for _, id := range []string{b.Aero.BuildID, dyn.BuildID} {
		if id != "" && id != b.Structure.BuildID {
			return nil, &types.ConfigurationError{Op: "load",
				Msg: fmt.Sprintf("artifacts of %s come from different builds", caseName)}
		}
	}
	var data []byte
	if data, found, err = e.read(SolverExt); err != nil {
		return nil, err
	}
	if found {
		if b.Solver, err = settings.ReadSolverFile(data); err != nil {
			return nil, err
		}
	}
	return
}

func (e *Exporter) read(ext string) (data []byte, found bool, err error) {
	path := e.Path(ext)
	if data, err = afero.ReadFile(e.Fs, path); err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, &types.IOError{Path: path, Err: err}
	}
	return data, true, nil
}

func (e *Exporter) readBSON(ext string, doc interface{}) (found bool, err error) {
	var data []byte
	if data, found, err = e.read(ext); err != nil || !found {
		if err == nil && ext != DynamicExt {
			err = &types.IOError{Path: e.Path(ext), Err: os.ErrNotExist}
		}
		return
	}
	if err = bson.Unmarshal(data, doc); err != nil {
		err = &types.IOError{Path: e.Path(ext), Err: fmt.Errorf("error unmarshaling BSON: %w", err)}
	}
	return
}
